// Package naming rebuilds a tool's display name from its fields according to
// the rule its standard prescribes.
package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

// ErrUnsupportedStandard is returned for standards absent from the rule table.
var ErrUnsupportedStandard = errors.New("unsupported standard")

// Field names the engine reads.
const (
	FieldGroup         = "_group"
	FieldMarking       = "marking"
	FieldStandard      = "standard"
	FieldTolerance     = "tolerance"
	FieldAccuracyClass = "accuracy_class"
	FieldMaterial      = "mat_of_cutting_part"
	FieldCutterNumber  = "cutter_number"
	FieldModule        = "module"
)

// Fields is the read side of a schema.
type Fields interface {
	Get(field string) (any, bool)
}

// Rule is a closed set of naming layouts.
type Rule int

const (
	// RuleNone keeps the synthesized "group marking standard" name.
	RuleNone Rule = iota
	RulePlain
	RuleTolerance
	RuleAccuracyClass
	RuleMaterial
	RuleNumber
	RuleModuleAccuracyClass
)

var ruleNames = map[Rule]string{
	RuleNone:                "none",
	RulePlain:               "plain",
	RuleTolerance:           "tolerance",
	RuleAccuracyClass:       "accuracy_class",
	RuleMaterial:            "material",
	RuleNumber:              "number",
	RuleModuleAccuracyClass: "module_accuracy_class",
}

func (r Rule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}
	return "rule(" + strconv.Itoa(int(r)) + ")"
}

// middle lists the fields placed between marking and standard.
func (r Rule) middle() []string {
	switch r {
	case RuleTolerance:
		return []string{FieldTolerance}
	case RuleAccuracyClass:
		return []string{FieldAccuracyClass}
	case RuleMaterial:
		return []string{FieldMaterial}
	case RuleNumber:
		return []string{FieldCutterNumber}
	case RuleModuleAccuracyClass:
		return []string{FieldModule, FieldAccuracyClass}
	default:
		return nil
	}
}

// Engine maps standard codes to rules.
type Engine struct {
	mu     sync.RWMutex
	rules  map[string]Rule
	logger *zap.Logger
}

// NewEngine creates an engine over a copy of rules.
func NewEngine(rules map[string]Rule, logger *zap.Logger) *Engine {
	e := &Engine{rules: make(map[string]Rule, len(rules)), logger: logger}
	for k, v := range rules {
		e.rules[k] = v
	}
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process engine loaded with the built-in standards table.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = NewEngine(DefaultRules(), nil)
	})
	return defaultEngine
}

// Register sets the rule for a standard code.
func (e *Engine) Register(standard string, rule Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules[standard] = rule
}

// RuleFor looks up the rule of a standard code.
func (e *Engine) RuleFor(standard string) (Rule, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.rules[standard]
	return r, ok
}

// DefaultName is "group marking standard" with empty parts dropped.
func DefaultName(f Fields) string {
	return join(text(f, FieldGroup), text(f, FieldMarking), text(f, FieldStandard))
}

// Compose returns the display name of f. An unknown standard yields
// ErrUnsupportedStandard together with the default name; a missing field is
// logged and the default name is kept.
func (e *Engine) Compose(f Fields) (string, error) {
	fallback := DefaultName(f)
	standard := text(f, FieldStandard)

	rule, ok := e.RuleFor(standard)
	if !ok {
		return fallback, fmt.Errorf("%w: %q", ErrUnsupportedStandard, standard)
	}
	if rule == RuleNone {
		return fallback, nil
	}

	parts := []string{text(f, FieldGroup), text(f, FieldMarking)}
	for _, field := range rule.middle() {
		v := text(f, field)
		if v == "" {
			logging.OrGlobal(e.logger).Error("naming field missing, keeping default name",
				zap.String("standard", standard),
				zap.String("rule", rule.String()),
				zap.String("field", field),
				zap.String("name", fallback),
			)
			return fallback, nil
		}
		parts = append(parts, v)
	}
	parts = append(parts, standard)
	return join(parts...), nil
}

// text renders a field for display; zero numbers count as missing.
func text(f Fields, field string) string {
	v, ok := f.Get(field)
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		if x == 0 {
			return ""
		}
		return strconv.Itoa(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
