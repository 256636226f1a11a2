// Package schema holds the typed, validated representation of a catalog tool.
//
// Every family stores its parameters in a plain struct whose json tags name the
// fields and whose validate tags carry the constraints. Assignments are
// transactional: the whole parameter struct is re-validated before a change is
// kept.
package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/catalog/naming"
)

// FieldGroup is the read-only group key present in ToMap output.
const FieldGroup = naming.FieldGroup

// Schema is implemented by every tool family.
type Schema interface {
	naming.Fields

	Group() enum.Group
	// SetGroup always fails with ErrProtectedField.
	SetGroup(enum.Group) error
	Marking() string
	SetMarking(string) error
	Standard() string
	SetStandard(string) error
	// Name is the override if set, otherwise the name composed by the naming engine.
	Name() string
	SetName(string) error

	Set(field string, value any) error
	SetMany(values map[string]any) error
	Has(field string) bool
	Fields() []string
	ToMap() map[string]any
	Equal(other Schema) bool
}

// ToolParams are the header fields of a standard tool.
type ToolParams struct {
	Marking  string `json:"marking" validate:"required"`
	Standard string `json:"standard" validate:"required,standard"`
	Name     string `json:"name"`
}

// CustomToolParams are the header fields of a tool made to a special drawing.
type CustomToolParams struct {
	Marking  enum.SpecialMarking `json:"marking" validate:"required,enum"`
	Standard string              `json:"standard" validate:"omitempty,standard"`
	Name     string              `json:"name"`
}

// model is the shared implementation behind every family. params points to
// the family's parameter struct.
type model struct {
	group  enum.Group
	params any
}

func (m *model) bind(group enum.Group, params any, marking, standard string) error {
	m.group = group
	m.params = params
	return assign(params, map[string]any{"marking": marking, "standard": standard})
}

func (m *model) value() reflect.Value { return reflect.ValueOf(m.params).Elem() }

// Group is fixed at construction.
func (m *model) Group() enum.Group { return m.group }

func (m *model) SetGroup(enum.Group) error { return &ProtectedFieldError{Field: FieldGroup} }

// Marking and Standard are the common header fields.
func (m *model) Marking() string          { return m.text("marking") }
func (m *model) SetMarking(v string) error { return m.Set("marking", v) }

func (m *model) Standard() string          { return m.text("standard") }
func (m *model) SetStandard(v string) error { return m.Set("standard", v) }

// SetName overrides the composed display name; empty restores it.
func (m *model) SetName(v string) error { return m.Set("name", v) }

// Name returns the override or composes one from the naming rules.
func (m *model) Name() string {
	if override := strings.TrimSpace(m.text("name")); override != "" {
		return override
	}
	name, err := naming.Default().Compose(m)
	if err != nil {
		zap.L().Warn("no naming rule for standard, using default name",
			zap.String("group", string(m.group)),
			zap.String("marking", m.Marking()),
			zap.String("standard", m.Standard()),
			zap.Error(err),
		)
	}
	return name
}

// Get returns a field by its json name, including "group".
func (m *model) Get(field string) (any, bool) {
	if field == FieldGroup {
		return m.group, true
	}
	v := m.value()
	ref, ok := fieldsOf(v.Type()).lookup(field)
	if !ok {
		return nil, false
	}
	return v.FieldByIndex(ref.index).Interface(), true
}

// Set coerces and validates one value. The schema is unchanged on error.
func (m *model) Set(field string, value any) error {
	return assign(m.params, map[string]any{field: value})
}

// SetMany applies all values as one assignment, so constraints spanning
// several fields are checked once against the final state.
func (m *model) SetMany(values map[string]any) error {
	return assign(m.params, values)
}

// Has reports whether the family defines field.
func (m *model) Has(field string) bool {
	_, ok := m.Get(field)
	return ok
}

// Fields lists "group" followed by the family fields in declaration order.
func (m *model) Fields() []string {
	refs := fieldsOf(m.value().Type()).order
	out := make([]string, 0, len(refs)+1)
	out = append(out, FieldGroup)
	for _, r := range refs {
		out = append(out, r.name)
	}
	return out
}

// ToMap renders every field with enumerations and tolerances as strings.
// FromMap accepts the result.
func (m *model) ToMap() map[string]any {
	v := m.value()
	refs := fieldsOf(v.Type()).order
	out := make(map[string]any, len(refs)+1)
	out[FieldGroup] = string(m.group)
	for _, r := range refs {
		out[r.name] = plain(v.FieldByIndex(r.index).Interface())
	}
	return out
}

// Equal compares two schemas field by field, group included.
func (m *model) Equal(other Schema) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(m.ToMap(), other.ToMap())
}

func (m *model) text(field string) string {
	v, ok := m.Get(field)
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// New constructs the family registered for group.
func New(group enum.Group, marking, standard string) (Schema, error) {
	switch group {
	case enum.GroupTool:
		if standard == "" && enum.SpecialMarkings.Has(enum.SpecialMarking(marking)) {
			return wrap(NewCustomTool(marking, standard))
		}
		return wrap(NewTool(marking, standard))
	case enum.GroupMillingCutter:
		return wrap(NewMillingCutter(marking, standard))
	case enum.GroupDrill:
		return wrap(NewDrill(marking, standard))
	case enum.GroupCountersink:
		return wrap(NewCountersink(marking, standard))
	case enum.GroupReamer:
		return wrap(NewReamer(marking, standard))
	case enum.GroupCutter:
		return wrap(NewTurningCutter(marking, standard))
	case enum.GroupBroach:
		return wrap(NewBroachingCutter(marking, standard))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
}

// FromMap rebuilds a schema from ToMap output.
func FromMap(values map[string]any) (Schema, error) {
	var group enum.Group
	if err := group.UnmarshalText([]byte(cast.ToString(plain(values[FieldGroup])))); err != nil {
		return nil, err
	}
	s, err := New(group, cast.ToString(plain(values["marking"])), cast.ToString(plain(values["standard"])))
	if err != nil {
		return nil, err
	}
	rest := make(map[string]any, len(values))
	for k, v := range values {
		switch k {
		case FieldGroup, "marking", "standard":
			continue
		}
		rest[k] = v
	}
	if err := s.SetMany(rest); err != nil {
		return nil, err
	}
	return s, nil
}

func wrap[S Schema](s S, err error) (Schema, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Tool is the base family and the fallback for unsupported groups.
type Tool struct {
	model
	p *ToolParams
}

// NewTool creates a tool of the base family.
func NewTool(marking, standard string) (*Tool, error) {
	t := &Tool{p: &ToolParams{}}
	if err := t.bind(enum.GroupTool, t.p, marking, standard); err != nil {
		return nil, err
	}
	return t, nil
}

// CustomTool is a tool made to a special drawing; its marking is a SpecialMarking
// and the standard may be empty.
type CustomTool struct {
	model
	c *CustomToolParams
}

// NewCustomTool creates a custom tool; marking must be a SpecialMarking.
func NewCustomTool(marking, standard string) (*CustomTool, error) {
	t := &CustomTool{c: &CustomToolParams{}}
	if err := t.bind(enum.GroupTool, t.c, marking, standard); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *CustomTool) SpecialMarking() enum.SpecialMarking { return t.c.Marking }

var (
	_ Schema = (*Tool)(nil)
	_ Schema = (*CustomTool)(nil)
	_ Schema = (*MillingCutter)(nil)
	_ Schema = (*Drill)(nil)
	_ Schema = (*Countersink)(nil)
	_ Schema = (*Reamer)(nil)
	_ Schema = (*TurningCutter)(nil)
	_ Schema = (*BroachingCutter)(nil)
)
