package mapper

import (
	"context"

	"go.uber.org/zap"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
	"github.com/bitfantasy/toolcat/internal/shared/registry"
)

// Registry dispatches a tool to the mapper of its group.
type Registry struct {
	*registry.Registry[Mapper]
	logger *zap.Logger
}

// NewRegistry creates a registry preloaded with DefaultMappers.
func NewRegistry(logger *zap.Logger) *Registry {
	logger = logging.OrGlobal(logger)
	return &Registry{
		Registry: registry.New(func() map[string]Mapper {
			out := map[string]Mapper{}
			for _, m := range DefaultMappers(logger) {
				out[string(m.ToolGroup())] = m
			}
			return out
		}),
		logger: logger,
	}
}

// Add registers m under its group.
func (r *Registry) Add(m Mapper) {
	r.Register(string(m.ToolGroup()), m)
}

// Map enriches s with the geometry of tool. Tools no mapper accepts are left as is.
func (r *Registry) Map(ctx context.Context, tool *entity.Tool, s schema.Schema) error {
	var match Mapper
	for _, name := range r.Names() {
		m, _ := r.Get(name)
		if !m.CanMap(tool) {
			continue
		}
		if match != nil {
			r.logger.Warn("several mappers accept tool, using first",
				zap.Int64("tool_id", tool.ID), zap.String("group", tool.Group))
			break
		}
		match = m
	}
	if match == nil {
		return nil
	}
	return match.MapToSchema(ctx, tool, s)
}
