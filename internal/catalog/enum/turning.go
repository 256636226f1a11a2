package enum

// ToolHolderType is how a turning cutter is mounted.
type ToolHolderType string

const (
	HolderHolder ToolHolderType = "Державочный"
	HolderTurret ToolHolderType = "Револьверный"
)

var ToolHolderTypes = NewSet("tool holder type",
	Item[ToolHolderType]{"Holder", HolderHolder},
	Item[ToolHolderType]{"Turret", HolderTurret},
)

func (t ToolHolderType) String() string { return string(t) }
func (t ToolHolderType) Valid() bool    { return ToolHolderTypes.Has(t) }

func (t *ToolHolderType) UnmarshalText(text []byte) error {
	return parseInto(ToolHolderTypes, t, text)
}

// LoadType is the load regime a turning cutter is rated for.
type LoadType string

const (
	LoadUniform          LoadType = "Равномерная"
	LoadNonUniform       LoadType = "Неравномерная"
	LoadHighlyNonUniform LoadType = "Сильно неравномерная"
)

var LoadTypes = NewSet("load type",
	Item[LoadType]{"Uniform", LoadUniform},
	Item[LoadType]{"NonUniform", LoadNonUniform},
	Item[LoadType]{"HighlyNonUniform", LoadHighlyNonUniform},
)

func (t LoadType) String() string { return string(t) }
func (t LoadType) Valid() bool    { return LoadTypes.Has(t) }

func (t *LoadType) UnmarshalText(text []byte) error { return parseInto(LoadTypes, t, text) }
