package ingest

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
)

// Header labels of the tools columns.
const (
	LabelID       = "index"
	LabelMarking  = "Обозначение"
	LabelGroup    = "Тип_инструмента"
	LabelStandard = "Стандарт"
)

var idLabels = []string{"", LabelID, "id", "Unnamed: 0"}

// Kind is how a cell is parsed.
type Kind int

const (
	Text Kind = iota
	Number
	Integer
	Flag
)

// Column is a geometry column; its label in the source equals its database name.
type Column struct {
	Label string
	Kind  Kind
}

// Family describes the geometry table of one group.
type Family struct {
	Group   enum.Group
	Model   any
	Columns []Column
}

func (f Family) Table() string {
	return f.Model.(interface{ TableName() string }).TableName()
}

var edgeColumns = []Column{
	{"r", Number}, {"φ", Number}, {"γ", Number}, {"λ", Number},
	{"Допуск", Text}, {"Материал", Text}, {"z", Integer},
}

func withEdge(head []Column, tail ...Column) []Column {
	out := append(append([]Column{}, head...), edgeColumns...)
	return append(out, tail...)
}

// Families returns the geometry layout of every family.
func Families() []Family {
	axial := []Column{{"D", Number}, {"L", Number}}
	return []Family{
		{enum.GroupMillingCutter, &entity.MillingCutterGeometry{}, withEdge(axial,
			Column{"Тип_фрезы", Text}, Column{"Тип_режущей_части", Text}, Column{"Зуб", Text},
			Column{"Класс_точности", Text}, Column{"Номер", Integer}, Column{"Модуль", Number},
			Column{"Исполнение", Text})},
		{enum.GroupDrill, &entity.DrillGeometry{}, withEdge(axial,
			Column{"Конус", Text}, Column{"Исполнение", Text})},
		{enum.GroupCountersink, &entity.CountersinkGeometry{}, withEdge(axial,
			Column{"Конус", Text}, Column{"Отверстие", Text}, Column{"Исполнение", Text})},
		{enum.GroupReamer, &entity.ReamerGeometry{}, withEdge(axial,
			Column{"Конус", Text}, Column{"Отверстие", Text}, Column{"Исполнение", Text})},
		{enum.GroupCutter, &entity.TurningCutterGeometry{}, withEdge(
			[]Column{{"L", Number}, {"B", Number}, {"H", Number}},
			Column{"Державка", Text}, Column{"Нагрузка", Text}, Column{"Сложный_профиль", Flag},
			Column{"Исполнение", Text})},
		{enum.GroupBroach, &entity.BroachGeometry{}, []Column{
			{"Шаг", Number}, {"Угол_наклона", Number}, {"Зубьев_в_секции", Integer},
			{"Подача_на_зуб", Number}, {"Длина_рабочей_части", Number}, {"Исполнение", Text},
		}},
	}
}

// parseCell converts a raw cell; an empty cell is nil.
func parseCell(raw string, kind Kind) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return nil, nil
	}
	switch kind {
	case Number:
		return cast.ToFloat64E(strings.ReplaceAll(raw, ",", "."))
	case Integer:
		f, err := cast.ToFloat64E(strings.ReplaceAll(raw, ",", "."))
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%q is not a whole number", raw)
		}
		return int(f), nil
	case Flag:
		switch strings.ToLower(raw) {
		case "да", "+":
			return true, nil
		case "нет", "-":
			return false, nil
		}
		return cast.ToBoolE(strings.ToLower(raw))
	default:
		return raw, nil
	}
}
