// Package mapper copies geometry rows into tool schemas.
package mapper

import (
	"context"
	"reflect"
	"sync"

	"go.uber.org/zap"
	gormschema "gorm.io/gorm/schema"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

// Mapper enriches the schema of one tool group from its geometry row.
type Mapper interface {
	ToolGroup() enum.Group
	CanMap(tool *entity.Tool) bool
	MapToSchema(ctx context.Context, tool *entity.Tool, s schema.Schema) error
	// GeometryObject returns the preloaded geometry row, or nil.
	GeometryObject(tool *entity.Tool) any
}

// FieldMapping copies a geometry column into a schema field.
type FieldMapping struct {
	Column string
	Field  string
}

// PostProcessFunc runs after the columns are copied.
type PostProcessFunc func(tool *entity.Tool, s schema.Schema, logger *zap.Logger)

// GeometryMapper is the table-driven Mapper used by every family.
type GeometryMapper struct {
	group       enum.Group
	relation    string
	mappings    []FieldMapping
	postProcess PostProcessFunc
	logger      *zap.Logger
}

// NewGeometryMapper maps the geometry loaded under relation onto schemas of
// group. post runs after the field mappings and may be nil.
func NewGeometryMapper(group enum.Group, relation string, mappings []FieldMapping, post PostProcessFunc, logger *zap.Logger) *GeometryMapper {
	return &GeometryMapper{
		group:       group,
		relation:    relation,
		mappings:    mappings,
		postProcess: post,
		logger:      logging.OrGlobal(logger),
	}
}

func (m *GeometryMapper) ToolGroup() enum.Group { return m.group }

func (m *GeometryMapper) Mappings() []FieldMapping {
	return append([]FieldMapping(nil), m.mappings...)
}

// CanMap reports whether tool belongs to the mapper's group.
func (m *GeometryMapper) CanMap(tool *entity.Tool) bool {
	return tool != nil && tool.Group == string(m.group)
}

// GeometryObject returns the loaded geometry record, or nil.
func (m *GeometryMapper) GeometryObject(tool *entity.Tool) any {
	if tool == nil {
		return nil
	}
	rel := reflect.ValueOf(tool).Elem().FieldByName(m.relation)
	if !rel.IsValid() || rel.Kind() != reflect.Pointer || rel.IsNil() {
		return nil
	}
	return rel.Interface()
}

var geometrySchemas sync.Map

// MapToSchema copies every non-null mapped column. Columns or fields the
// mapper does not know are skipped; values the schema rejects are dropped
// with a warning.
func (m *GeometryMapper) MapToSchema(ctx context.Context, tool *entity.Tool, s schema.Schema) error {
	geom := m.GeometryObject(tool)
	if geom == nil {
		m.logger.Debug("no geometry row",
			zap.Int64("tool_id", tool.ID), zap.String("relation", m.relation))
		return nil
	}
	parsed, err := gormschema.Parse(geom, &geometrySchemas, gormschema.NamingStrategy{})
	if err != nil {
		return err
	}
	row := reflect.ValueOf(geom).Elem()

	for _, fm := range m.mappings {
		field, ok := parsed.FieldsByDBName[fm.Column]
		if !ok {
			m.logger.Debug("unknown geometry column", zap.String("table", parsed.Table), zap.String("column", fm.Column))
			continue
		}
		if !s.Has(fm.Field) {
			m.logger.Debug("schema has no field", zap.String("group", string(m.group)), zap.String("field", fm.Field))
			continue
		}
		value, zero := field.ValueOf(ctx, row)
		if zero {
			continue
		}
		value = deref(value)
		if value == nil {
			continue
		}
		if err := s.Set(fm.Field, value); err != nil {
			m.logger.Warn("dropping geometry value rejected by schema",
				zap.Int64("tool_id", tool.ID),
				zap.String("column", fm.Column),
				zap.Any("value", value),
				zap.Error(err),
			)
		}
	}

	if m.postProcess != nil {
		m.postProcess(tool, s, m.logger)
	}
	return nil
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}
