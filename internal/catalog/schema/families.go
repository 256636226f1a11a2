package schema

import "github.com/bitfantasy/toolcat/internal/catalog/enum"

// Default number of cutting blades per family.
const (
	DefaultDrillBlades       = 2
	DefaultCountersinkBlades = 8
	DefaultReamerBlades      = 8
	DefaultMillBlades        = 12
	DefaultTurningBlades     = 1
)

// AxialParams are shared by rotating tools.
type AxialParams struct {
	ToolParams
	AxialSizes
	Angles
	BladeMaterial
	Tolerance          Tolerance `json:"tolerance"`
	NumOfCuttingBlades int       `json:"num_of_cutting_blades" validate:"gte=0"`
}

// PrismaticParams are shared by bar-shaped tools.
type PrismaticParams struct {
	ToolParams
	PrismaticSizes
	Angles
	BladeMaterial
	Tolerance          Tolerance `json:"tolerance"`
	NumOfCuttingBlades int       `json:"num_of_cutting_blades" validate:"gte=0"`
}

type MillParams struct {
	AxialParams
	TypeCutter        enum.MillingCutterType `json:"type_cutter" validate:"omitempty,enum"`
	TypeOfCuttingPart enum.CuttingPartType   `json:"type_of_cutting_part" validate:"omitempty,enum"`
	TypeOfTooth       enum.ToothType         `json:"type_of_tooth" validate:"omitempty,enum"`
	AccuracyClass     enum.AccuracyClass     `json:"accuracy_class" validate:"enum"`
	CutterNumber      int                    `json:"cutter_number" validate:"gte=0"`
	Module            float64                `json:"module" validate:"gte=0"`
	Execution         string                 `json:"execution"`
}

type DrillParams struct {
	AxialParams
	Taper     string `json:"taper"`
	Execution string `json:"execution"`
}

// HoleParams are the parameters of countersinks and reamers.
type HoleParams struct {
	AxialParams
	Taper     string `json:"taper"`
	HoleType  string `json:"hole_type"`
	Execution string `json:"execution"`
}

type TurningParams struct {
	PrismaticParams
	TypeOfToolHolder enum.ToolHolderType `json:"type_of_tool_holder" validate:"omitempty,enum"`
	TypeOfLoad       enum.LoadType       `json:"type_of_load" validate:"omitempty,enum"`
	IsComplexProfile bool                `json:"is_complex_profile"`
	Execution        string              `json:"execution"`
}

type BroachParams struct {
	CustomToolParams
	PitchOfTeeth         float64 `json:"pitch_of_teeth" validate:"gte=0"`
	AngleOfInclination   float64 `json:"angle_of_inclination" validate:"gte=0"`
	NumberOfTeethSection int     `json:"number_of_teeth_section" validate:"gte=0"`
	DeltaS               float64 `json:"delta_s" validate:"gte=0"`
	LengthOfWorkingPart  float64 `json:"length_of_working_part" validate:"gte=0"`
}

// AxialCuttingTool is a rotating tool with diameter and length.
type AxialCuttingTool struct {
	model
	axial *AxialParams
}

// Getters and setters of the axial fields. Setters validate like Set.
func (t *AxialCuttingTool) Sizes() AxialSizes                  { return t.axial.AxialSizes }
func (t *AxialCuttingTool) DiaMM() float64                     { return t.axial.DiaMM }
func (t *AxialCuttingTool) LengthMM() float64                  { return t.axial.LengthMM }
func (t *AxialCuttingTool) RadiusOfCuttingVertex() float64     { return t.axial.RadiusOfCuttingVertex }
func (t *AxialCuttingTool) Angles() Angles                     { return t.axial.Angles }
func (t *AxialCuttingTool) Material() enum.Material            { return t.axial.MatOfCuttingPart }
func (t *AxialCuttingTool) BladeMaterial() BladeMaterial       { return t.axial.BladeMaterial }
func (t *AxialCuttingTool) Tolerance() Tolerance               { return t.axial.Tolerance }
func (t *AxialCuttingTool) NumOfCuttingBlades() int            { return t.axial.NumOfCuttingBlades }
func (t *AxialCuttingTool) GabaritVolume() float64             { return t.axial.GabaritVolume() }
func (t *AxialCuttingTool) GabaritStr() string                 { return t.axial.GabaritStr() }
func (t *AxialCuttingTool) SetDiaMM(v float64) error           { return t.Set("dia_mm", v) }
func (t *AxialCuttingTool) SetLengthMM(v float64) error        { return t.Set("length_mm", v) }
func (t *AxialCuttingTool) SetMaterial(v enum.Material) error  { return t.Set("mat_of_cutting_part", v) }
func (t *AxialCuttingTool) SetTolerance(v Tolerance) error     { return t.Set("tolerance", v) }
func (t *AxialCuttingTool) SetNumOfCuttingBlades(v int) error  { return t.Set("num_of_cutting_blades", v) }
func (t *AxialCuttingTool) SetAngles(a Angles) error {
	return t.SetMany(map[string]any{
		"main_angle":                a.MainAngle,
		"front_angle":               a.FrontAngle,
		"inclination_of_main_blade": a.InclinationOfMainBlade,
	})
}

// PrismaticCuttingTool is a bar-shaped tool with length, width and height.
type PrismaticCuttingTool struct {
	model
	prism *PrismaticParams
}

// Getters and setters of the prismatic fields. Setters validate like Set.
func (t *PrismaticCuttingTool) Sizes() PrismaticSizes            { return t.prism.PrismaticSizes }
func (t *PrismaticCuttingTool) LengthMM() float64                { return t.prism.LengthMM }
func (t *PrismaticCuttingTool) WidthMM() float64                 { return t.prism.WidthMM }
func (t *PrismaticCuttingTool) HeightMM() float64                { return t.prism.HeightMM }
func (t *PrismaticCuttingTool) Angles() Angles                   { return t.prism.Angles }
func (t *PrismaticCuttingTool) Material() enum.Material          { return t.prism.MatOfCuttingPart }
func (t *PrismaticCuttingTool) BladeMaterial() BladeMaterial     { return t.prism.BladeMaterial }
func (t *PrismaticCuttingTool) Tolerance() Tolerance             { return t.prism.Tolerance }
func (t *PrismaticCuttingTool) NumOfCuttingBlades() int          { return t.prism.NumOfCuttingBlades }
func (t *PrismaticCuttingTool) GabaritVolume() float64           { return t.prism.GabaritVolume() }
func (t *PrismaticCuttingTool) GabaritStr() string               { return t.prism.GabaritStr() }
func (t *PrismaticCuttingTool) SetMaterial(v enum.Material) error { return t.Set("mat_of_cutting_part", v) }
func (t *PrismaticCuttingTool) SetSizes(s PrismaticSizes) error {
	return t.SetMany(map[string]any{
		"length_mm":                s.LengthMM,
		"width_mm":                 s.WidthMM,
		"height_mm":                s.HeightMM,
		"radius_of_cutting_vertex": s.RadiusOfCuttingVertex,
	})
}

// MillingCutter is a Фреза.
type MillingCutter struct {
	AxialCuttingTool
	p *MillParams
}

// NewMillingCutter creates a milling cutter with the default number of blades.
func NewMillingCutter(marking, standard string) (*MillingCutter, error) {
	p := &MillParams{}
	p.NumOfCuttingBlades = DefaultMillBlades
	t := &MillingCutter{AxialCuttingTool: AxialCuttingTool{axial: &p.AxialParams}, p: p}
	if err := t.bind(enum.GroupMillingCutter, p, marking, standard); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *MillingCutter) TypeCutter() enum.MillingCutterType       { return t.p.TypeCutter }
func (t *MillingCutter) TypeOfCuttingPart() enum.CuttingPartType  { return t.p.TypeOfCuttingPart }
func (t *MillingCutter) TypeOfTooth() enum.ToothType              { return t.p.TypeOfTooth }
func (t *MillingCutter) AccuracyClass() enum.AccuracyClass        { return t.p.AccuracyClass }
func (t *MillingCutter) CutterNumber() int                        { return t.p.CutterNumber }
func (t *MillingCutter) Module() float64                          { return t.p.Module }
func (t *MillingCutter) Execution() string                        { return t.p.Execution }
func (t *MillingCutter) SetCutterNumber(v int) error              { return t.Set("cutter_number", v) }
func (t *MillingCutter) SetModule(v float64) error                { return t.Set("module", v) }
func (t *MillingCutter) SetExecution(v string) error              { return t.Set("execution", v) }

// The enumerated mill fields take either the member or its displayed value.

func (t *MillingCutter) SetTypeCutter(v enum.MillingCutterType) error { return t.Set("type_cutter", v) }
func (t *MillingCutter) SetTypeCutterValue(v string) error           { return t.Set("type_cutter", v) }

func (t *MillingCutter) SetTypeOfCuttingPart(v enum.CuttingPartType) error {
	return t.Set("type_of_cutting_part", v)
}

func (t *MillingCutter) SetTypeOfCuttingPartValue(v string) error {
	return t.Set("type_of_cutting_part", v)
}

func (t *MillingCutter) SetTypeOfTooth(v enum.ToothType) error { return t.Set("type_of_tooth", v) }
func (t *MillingCutter) SetTypeOfToothValue(v string) error    { return t.Set("type_of_tooth", v) }

func (t *MillingCutter) SetAccuracyClass(v enum.AccuracyClass) error {
	return t.Set("accuracy_class", v)
}

func (t *MillingCutter) SetAccuracyClassValue(v string) error { return t.Set("accuracy_class", v) }

// Drill is a Сверло.
type Drill struct {
	AxialCuttingTool
	p *DrillParams
}

// NewDrill creates a drill with the default number of blades.
func NewDrill(marking, standard string) (*Drill, error) {
	p := &DrillParams{}
	p.NumOfCuttingBlades = DefaultDrillBlades
	t := &Drill{AxialCuttingTool: AxialCuttingTool{axial: &p.AxialParams}, p: p}
	if err := t.bind(enum.GroupDrill, p, marking, standard); err != nil {
		return nil, err
	}
	return t, nil
}

// Drill-only fields.
func (t *Drill) Taper() string               { return t.p.Taper }
func (t *Drill) Execution() string           { return t.p.Execution }
func (t *Drill) SetTaper(v string) error     { return t.Set("taper", v) }
func (t *Drill) SetExecution(v string) error { return t.Set("execution", v) }

type holeTool struct {
	AxialCuttingTool
	p *HoleParams
}

func newHoleTool(group enum.Group, blades int, marking, standard string) (holeTool, error) {
	p := &HoleParams{}
	p.NumOfCuttingBlades = blades
	t := holeTool{AxialCuttingTool: AxialCuttingTool{axial: &p.AxialParams}, p: p}
	err := t.bind(group, p, marking, standard)
	return t, err
}

func (t *holeTool) Taper() string               { return t.p.Taper }
func (t *holeTool) HoleType() string            { return t.p.HoleType }
func (t *holeTool) Execution() string           { return t.p.Execution }
func (t *holeTool) SetTaper(v string) error     { return t.Set("taper", v) }
func (t *holeTool) SetHoleType(v string) error  { return t.Set("hole_type", v) }
func (t *holeTool) SetExecution(v string) error { return t.Set("execution", v) }

// Countersink is a Зенкер.
type Countersink struct{ holeTool }

// NewCountersink creates a countersink with the default number of blades.
func NewCountersink(marking, standard string) (*Countersink, error) {
	h, err := newHoleTool(enum.GroupCountersink, DefaultCountersinkBlades, marking, standard)
	if err != nil {
		return nil, err
	}
	return &Countersink{h}, nil
}

// Reamer is a Развертка.
type Reamer struct{ holeTool }

// NewReamer creates a reamer with the default number of blades.
func NewReamer(marking, standard string) (*Reamer, error) {
	h, err := newHoleTool(enum.GroupReamer, DefaultReamerBlades, marking, standard)
	if err != nil {
		return nil, err
	}
	return &Reamer{h}, nil
}

// TurningCutter is a Резец.
type TurningCutter struct {
	PrismaticCuttingTool
	p *TurningParams
}

// NewTurningCutter creates a turning cutter with the default number of blades.
func NewTurningCutter(marking, standard string) (*TurningCutter, error) {
	p := &TurningParams{}
	p.NumOfCuttingBlades = DefaultTurningBlades
	t := &TurningCutter{PrismaticCuttingTool: PrismaticCuttingTool{prism: &p.PrismaticParams}, p: p}
	if err := t.bind(enum.GroupCutter, p, marking, standard); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TurningCutter) TypeOfToolHolder() enum.ToolHolderType { return t.p.TypeOfToolHolder }
func (t *TurningCutter) TypeOfLoad() enum.LoadType             { return t.p.TypeOfLoad }
func (t *TurningCutter) IsComplexProfile() bool                { return t.p.IsComplexProfile }
func (t *TurningCutter) Execution() string                     { return t.p.Execution }

func (t *TurningCutter) SetTypeOfToolHolder(v enum.ToolHolderType) error {
	return t.Set("type_of_tool_holder", v)
}

func (t *TurningCutter) SetTypeOfLoad(v enum.LoadType) error { return t.Set("type_of_load", v) }
func (t *TurningCutter) SetIsComplexProfile(v bool) error    { return t.Set("is_complex_profile", v) }

// BroachingCutter is a Протяжка made to a special drawing.
type BroachingCutter struct {
	CustomTool
	b *BroachParams
}

// NewBroachingCutter creates a broach.
func NewBroachingCutter(marking, standard string) (*BroachingCutter, error) {
	b := &BroachParams{}
	t := &BroachingCutter{CustomTool: CustomTool{c: &b.CustomToolParams}, b: b}
	if err := t.bind(enum.GroupBroach, b, marking, standard); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *BroachingCutter) PitchOfTeeth() float64        { return t.b.PitchOfTeeth }
func (t *BroachingCutter) AngleOfInclination() float64  { return t.b.AngleOfInclination }
func (t *BroachingCutter) NumberOfTeethSection() int    { return t.b.NumberOfTeethSection }
func (t *BroachingCutter) DeltaS() float64              { return t.b.DeltaS }
func (t *BroachingCutter) LengthOfWorkingPart() float64 { return t.b.LengthOfWorkingPart }
