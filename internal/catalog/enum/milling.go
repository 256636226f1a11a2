package enum

// MillingCutterType is the construction kind of a mill.
type MillingCutterType string

const (
	CutterCylindrical MillingCutterType = "Цилиндрическая"
	CutterFace        MillingCutterType = "Торцевая"
	CutterDiscFace    MillingCutterType = "Дисковая трехсторонняя"
	CutterDiscGroove  MillingCutterType = "Дисковая пазовая"
	CutterGroove      MillingCutterType = "Пазовая"
	CutterCutOff      MillingCutterType = "Отрезная"
	CutterSlitting    MillingCutterType = "Прорезная"
	CutterEndFace     MillingCutterType = "Концевая торцевая"
	CutterEndGroove   MillingCutterType = "Концевая пазовая"
	CutterEnd         MillingCutterType = "Концевая"
	CutterEndTSlot    MillingCutterType = "Концевая для Т-образных пазов"
	CutterAngular     MillingCutterType = "Угловая"
	CutterFormConvex  MillingCutterType = "Фасонная выпуклая"
	CutterForm        MillingCutterType = "Фасонная"
	CutterFormConcave MillingCutterType = "Фасонная вогнутая"
	CutterKeyway      MillingCutterType = "Шпоночная"
	CutterThread      MillingCutterType = "Резьбовая"
	CutterWorm        MillingCutterType = "Червячная"
)

var MillingCutterTypes = NewSet("milling cutter type",
	Item[MillingCutterType]{"Cylindrical", CutterCylindrical},
	Item[MillingCutterType]{"Face", CutterFace},
	Item[MillingCutterType]{"DiscFace", CutterDiscFace},
	Item[MillingCutterType]{"DiscGroove", CutterDiscGroove},
	Item[MillingCutterType]{"Groove", CutterGroove},
	Item[MillingCutterType]{"CutOff", CutterCutOff},
	Item[MillingCutterType]{"Slitting", CutterSlitting},
	Item[MillingCutterType]{"EndFace", CutterEndFace},
	Item[MillingCutterType]{"EndGroove", CutterEndGroove},
	Item[MillingCutterType]{"End", CutterEnd},
	Item[MillingCutterType]{"EndTSlot", CutterEndTSlot},
	Item[MillingCutterType]{"Angular", CutterAngular},
	Item[MillingCutterType]{"FormConvex", CutterFormConvex},
	Item[MillingCutterType]{"Form", CutterForm},
	Item[MillingCutterType]{"FormConcave", CutterFormConcave},
	Item[MillingCutterType]{"Keyway", CutterKeyway},
	Item[MillingCutterType]{"Thread", CutterThread},
	Item[MillingCutterType]{"Worm", CutterWorm},
)

func (t MillingCutterType) String() string { return string(t) }
func (t MillingCutterType) Valid() bool    { return MillingCutterTypes.Has(t) }

func (t *MillingCutterType) UnmarshalText(text []byte) error {
	return parseInto(MillingCutterTypes, t, text)
}

// CuttingPartType is how the cutting part of a mill is built.
type CuttingPartType string

const (
	CuttingPartHelicalInserts CuttingPartType = "С винтовыми пластинами"
	CuttingPartSolid          CuttingPartType = "Цельная"
	CuttingPartCrown          CuttingPartType = "Коронка"
)

var CuttingPartTypes = NewSet("cutting part type",
	Item[CuttingPartType]{"HelicalInserts", CuttingPartHelicalInserts},
	Item[CuttingPartType]{"Solid", CuttingPartSolid},
	Item[CuttingPartType]{"Crown", CuttingPartCrown},
)

func (t CuttingPartType) String() string { return string(t) }
func (t CuttingPartType) Valid() bool    { return CuttingPartTypes.Has(t) }

func (t *CuttingPartType) UnmarshalText(text []byte) error {
	return parseInto(CuttingPartTypes, t, text)
}

// ToothType is the coarseness of mill teeth.
type ToothType string

const (
	ToothCoarse ToothType = "Крупный"
	ToothFine   ToothType = "Мелкий"
)

var ToothTypes = NewSet("tooth type",
	Item[ToothType]{"Coarse", ToothCoarse},
	Item[ToothType]{"Fine", ToothFine},
)

func (t ToothType) String() string { return string(t) }
func (t ToothType) Valid() bool    { return ToothTypes.Has(t) }

func (t *ToothType) UnmarshalText(text []byte) error { return parseInto(ToothTypes, t, text) }
