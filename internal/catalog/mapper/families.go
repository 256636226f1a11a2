package mapper

import (
	"go.uber.org/zap"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
)

var edgeMappings = []FieldMapping{
	{"r", "radius_of_cutting_vertex"},
	{"φ", "main_angle"},
	{"γ", "front_angle"},
	{"λ", "inclination_of_main_blade"},
	{"Допуск", "tolerance"},
	{"Материал", "mat_of_cutting_part"},
	{"z", "num_of_cutting_blades"},
}

func axial(extra ...FieldMapping) []FieldMapping {
	out := []FieldMapping{{"D", "dia_mm"}, {"L", "length_mm"}}
	out = append(out, edgeMappings...)
	return append(out, extra...)
}

// MillingCutterMappings lists the geometry_milling_cutters columns.
func MillingCutterMappings() []FieldMapping {
	return axial(
		FieldMapping{"Тип_фрезы", "type_cutter"},
		FieldMapping{"Тип_режущей_части", "type_of_cutting_part"},
		FieldMapping{"Зуб", "type_of_tooth"},
		FieldMapping{"Класс_точности", "accuracy_class"},
		FieldMapping{"Номер", "cutter_number"},
		FieldMapping{"Модуль", "module"},
		FieldMapping{"Исполнение", "execution"},
	)
}

func DrillMappings() []FieldMapping {
	return axial(
		FieldMapping{"Конус", "taper"},
		FieldMapping{"Исполнение", "execution"},
	)
}

// HoleMappings serves countersinks and reamers.
func HoleMappings() []FieldMapping {
	return axial(
		FieldMapping{"Конус", "taper"},
		FieldMapping{"Отверстие", "hole_type"},
		FieldMapping{"Исполнение", "execution"},
	)
}

func TurningCutterMappings() []FieldMapping {
	out := []FieldMapping{{"L", "length_mm"}, {"B", "width_mm"}, {"H", "height_mm"}}
	out = append(out, edgeMappings...)
	return append(out,
		FieldMapping{"Державка", "type_of_tool_holder"},
		FieldMapping{"Нагрузка", "type_of_load"},
		FieldMapping{"Сложный_профиль", "is_complex_profile"},
		FieldMapping{"Исполнение", "execution"},
	)
}

func BroachMappings() []FieldMapping {
	return []FieldMapping{
		{"Шаг", "pitch_of_teeth"},
		{"Угол_наклона", "angle_of_inclination"},
		{"Зубьев_в_секции", "number_of_teeth_section"},
		{"Подача_на_зуб", "delta_s"},
		{"Длина_рабочей_части", "length_of_working_part"},
	}
}

func checkMill(tool *entity.Tool, s schema.Schema, logger *zap.Logger) {
	m, ok := s.(*schema.MillingCutter)
	if !ok {
		return
	}
	if m.NumOfCuttingBlades() == 0 {
		logger.Warn("milling cutter has no blades", zap.Int64("tool_id", tool.ID), zap.String("marking", tool.Marking))
	}
	if m.TypeCutter() == enum.CutterWorm && m.Module() == 0 {
		logger.Warn("worm cutter without module", zap.Int64("tool_id", tool.ID), zap.String("marking", tool.Marking))
	}
}

func checkTurning(tool *entity.Tool, s schema.Schema, logger *zap.Logger) {
	c, ok := s.(*schema.TurningCutter)
	if !ok {
		return
	}
	if c.IsComplexProfile() && c.TypeOfToolHolder() == "" {
		logger.Warn("complex profile cutter without tool holder type", zap.Int64("tool_id", tool.ID), zap.String("marking", tool.Marking))
	}
}

// DefaultMappers builds one mapper per geometry table.
func DefaultMappers(logger *zap.Logger) []Mapper {
	return []Mapper{
		NewGeometryMapper(enum.GroupMillingCutter, entity.RelationMillingCutter, MillingCutterMappings(), checkMill, logger),
		NewGeometryMapper(enum.GroupDrill, entity.RelationDrill, DrillMappings(), nil, logger),
		NewGeometryMapper(enum.GroupCountersink, entity.RelationCountersink, HoleMappings(), nil, logger),
		NewGeometryMapper(enum.GroupReamer, entity.RelationReamer, HoleMappings(), nil, logger),
		NewGeometryMapper(enum.GroupCutter, entity.RelationTurningCutter, TurningCutterMappings(), checkTurning, logger),
		NewGeometryMapper(enum.GroupBroach, entity.RelationBroach, BroachMappings(), nil, logger),
	}
}
