package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/catalog/mapper"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
	"github.com/bitfantasy/toolcat/internal/shared/metrics"
	"github.com/bitfantasy/toolcat/internal/shared/registry"
)

// ErrGroupNotSupported is matched by *GroupNotSupportedError.
var ErrGroupNotSupported = errors.New("group not supported")

type GroupNotSupportedError struct {
	Group     string
	Supported []string
}

func (e *GroupNotSupportedError) Error() string {
	return fmt.Sprintf("group %q is not supported; supported groups: %s", e.Group, strings.Join(e.Supported, ", "))
}

func (e *GroupNotSupportedError) Is(target error) bool { return target == ErrGroupNotSupported }

// Constructor builds an empty schema from header fields.
type Constructor func(marking, standard string) (schema.Schema, error)

func constructorFor(group enum.Group) Constructor {
	return func(marking, standard string) (schema.Schema, error) {
		return schema.New(group, marking, standard)
	}
}

// DefaultConstructors maps every known group to its schema family.
func DefaultConstructors() map[string]Constructor {
	out := make(map[string]Constructor, len(enum.Groups.Values()))
	for _, g := range enum.Groups.Values() {
		out[string(g)] = constructorFor(g)
	}
	return out
}

// SchemaFactory picks the schema constructor by tool group.
type SchemaFactory struct {
	*registry.Registry[Constructor]
}

// NewSchemaFactory registers a constructor for every supported group.
func NewSchemaFactory() *SchemaFactory {
	return &SchemaFactory{Registry: registry.New(DefaultConstructors)}
}

// CreateSchema builds the header-only schema of tool.
func (f *SchemaFactory) CreateSchema(tool *entity.Tool) (schema.Schema, error) {
	ctor, ok := f.Get(tool.Group)
	if !ok {
		return nil, &GroupNotSupportedError{Group: tool.Group, Supported: f.Names()}
	}
	return ctor(tool.Marking, tool.Standard)
}

// Assembler turns tool rows into enriched schemas.
type Assembler struct {
	factory *SchemaFactory
	mappers *mapper.Registry
	logger  *zap.Logger
}

// NewAssembler builds schemas with factory and enriches them with mappers.
// Nil arguments get the defaults.
func NewAssembler(factory *SchemaFactory, mappers *mapper.Registry, logger *zap.Logger) *Assembler {
	logger = logging.OrGlobal(logger)
	if factory == nil {
		factory = NewSchemaFactory()
	}
	if mappers == nil {
		mappers = mapper.NewRegistry(logger)
	}
	return &Assembler{factory: factory, mappers: mappers, logger: logger}
}

func (a *Assembler) Factory() *SchemaFactory   { return a.factory }
func (a *Assembler) Mappers() *mapper.Registry { return a.mappers }

// Assemble builds and enriches the schema of one row. Rows whose group is
// unsupported or whose header fails validation fall back to the base tool
// schema; ok is false when even that fails.
func (a *Assembler) Assemble(ctx context.Context, tool *entity.Tool) (schema.Schema, bool) {
	s, err := a.factory.CreateSchema(tool)
	if err != nil {
		a.logger.Warn("falling back to base tool schema",
			zap.Int64("tool_id", tool.ID),
			zap.String("group", tool.Group),
			zap.String("marking", tool.Marking),
			zap.Error(err),
		)
		s, err = schema.New(enum.GroupTool, tool.Marking, tool.Standard)
		if err != nil {
			a.logger.Error("skipping tool row",
				zap.Int64("tool_id", tool.ID),
				zap.String("marking", tool.Marking),
				zap.String("standard", tool.Standard),
				zap.Error(err),
			)
			metrics.SchemasAssembled.WithLabelValues(tool.Group, metrics.OutcomeSkipped).Inc()
			return nil, false
		}
		metrics.SchemasAssembled.WithLabelValues(tool.Group, metrics.OutcomeFallback).Inc()
		return s, true
	}

	if err := a.mappers.Map(ctx, tool, s); err != nil {
		a.logger.Warn("geometry mapping failed", zap.Int64("tool_id", tool.ID), zap.Error(err))
	}
	metrics.SchemasAssembled.WithLabelValues(tool.Group, metrics.OutcomeBuilt).Inc()
	return s, true
}

// AssembleAll assembles rows in order, dropping the ones that cannot be built.
func (a *Assembler) AssembleAll(ctx context.Context, tools []entity.Tool) []schema.Schema {
	out := make([]schema.Schema, 0, len(tools))
	for i := range tools {
		if s, ok := a.Assemble(ctx, &tools[i]); ok {
			out = append(out, s)
		}
	}
	return out
}
