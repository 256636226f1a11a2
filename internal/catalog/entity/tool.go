package entity

import (
	"time"

	"gorm.io/datatypes"

	"github.com/bitfantasy/toolcat/internal/catalog/enum"
)

// Tool is the header row shared by every family.
type Tool struct {
	ID        int64             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Marking   string            `json:"marking" gorm:"size:128;not null;index"`
	Group     string            `json:"group" gorm:"column:group;size:32;index"`
	Standard  string            `json:"standard" gorm:"size:64;index"`
	Extra     datatypes.JSONMap `json:"extra,omitempty" gorm:"type:jsonb"` // unmapped cells of the source row
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relations
	MillingCutter *MillingCutterGeometry `json:"milling_cutter,omitempty" gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE"`
	Drill         *DrillGeometry         `json:"drill,omitempty" gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE"`
	Countersink   *CountersinkGeometry   `json:"countersink,omitempty" gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE"`
	Reamer        *ReamerGeometry        `json:"reamer,omitempty" gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE"`
	TurningCutter *TurningCutterGeometry `json:"turning_cutter,omitempty" gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE"`
	Broach        *BroachGeometry        `json:"broach,omitempty" gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE"`
}

func (Tool) TableName() string {
	return "tools"
}

// Relation names usable with Preload.
const (
	RelationMillingCutter = "MillingCutter"
	RelationDrill         = "Drill"
	RelationCountersink   = "Countersink"
	RelationReamer        = "Reamer"
	RelationTurningCutter = "TurningCutter"
	RelationBroach        = "Broach"
)

var relations = map[enum.Group]string{
	enum.GroupMillingCutter: RelationMillingCutter,
	enum.GroupDrill:         RelationDrill,
	enum.GroupCountersink:   RelationCountersink,
	enum.GroupReamer:        RelationReamer,
	enum.GroupCutter:        RelationTurningCutter,
	enum.GroupBroach:        RelationBroach,
}

// RelationFor returns the geometry relation of a group.
func RelationFor(group enum.Group) (string, bool) {
	r, ok := relations[group]
	return r, ok
}

// Relations lists every geometry relation in table order.
func Relations() []string {
	return []string{
		RelationMillingCutter,
		RelationDrill,
		RelationCountersink,
		RelationReamer,
		RelationTurningCutter,
		RelationBroach,
	}
}

// GeometryTables returns a zero model per geometry table.
func GeometryTables() []any {
	return []any{
		&MillingCutterGeometry{},
		&DrillGeometry{},
		&CountersinkGeometry{},
		&ReamerGeometry{},
		&TurningCutterGeometry{},
		&BroachGeometry{},
	}
}

// Models returns every catalog model, header first.
func Models() []any {
	return append([]any{&Tool{}}, GeometryTables()...)
}

// TableNames lists the catalog tables in Models order.
func TableNames() []string {
	return []string{
		Tool{}.TableName(),
		MillingCutterGeometry{}.TableName(),
		DrillGeometry{}.TableName(),
		CountersinkGeometry{}.TableName(),
		ReamerGeometry{}.TableName(),
		TurningCutterGeometry{}.TableName(),
		BroachGeometry{}.TableName(),
	}
}
