package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fields map[string]any

func (f fields) Get(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

type stringer string

func (s stringer) String() string { return string(s) }

func newObservedEngine(rules map[string]Rule) (*Engine, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewEngine(rules, zap.New(core)), logs
}

func TestComposeRules(t *testing.T) {
	e, _ := newObservedEngine(map[string]Rule{
		"ГОСТ 1-01": RulePlain,
		"ГОСТ 2-02": RuleTolerance,
		"ГОСТ 3-03": RuleAccuracyClass,
		"ГОСТ 4-04": RuleMaterial,
		"ГОСТ 5-05": RuleNumber,
		"ГОСТ 6-06": RuleModuleAccuracyClass,
	})

	base := func(standard string) fields {
		return fields{
			FieldGroup:         "Фреза",
			FieldMarking:       "2510-0001",
			FieldStandard:      standard,
			FieldTolerance:     stringer("H9"),
			FieldAccuracyClass: stringer("AA"),
			FieldMaterial:      stringer("Р6М5"),
			FieldCutterNumber:  3,
			FieldModule:        2.5,
		}
	}

	cases := map[string]string{
		"ГОСТ 1-01": "Фреза 2510-0001 ГОСТ 1-01",
		"ГОСТ 2-02": "Фреза 2510-0001 H9 ГОСТ 2-02",
		"ГОСТ 3-03": "Фреза 2510-0001 AA ГОСТ 3-03",
		"ГОСТ 4-04": "Фреза 2510-0001 Р6М5 ГОСТ 4-04",
		"ГОСТ 5-05": "Фреза 2510-0001 3 ГОСТ 5-05",
		"ГОСТ 6-06": "Фреза 2510-0001 2.5 AA ГОСТ 6-06",
	}
	for standard, want := range cases {
		got, err := e.Compose(base(standard))
		require.NoError(t, err, standard)
		assert.Equal(t, want, got, standard)
	}
}

func TestComposeUnsupportedStandard(t *testing.T) {
	e, _ := newObservedEngine(map[string]Rule{})
	name, err := e.Compose(fields{FieldGroup: "Сверло", FieldMarking: "2300-0041", FieldStandard: "ГОСТ 0-00"})
	assert.ErrorIs(t, err, ErrUnsupportedStandard)
	assert.Equal(t, "Сверло 2300-0041 ГОСТ 0-00", name)
}

func TestComposeMissingFieldKeepsDefault(t *testing.T) {
	e, logs := newObservedEngine(map[string]Rule{"ГОСТ 886-77": RuleTolerance})
	name, err := e.Compose(fields{
		FieldGroup:     "Сверло",
		FieldMarking:   "2300-0041",
		FieldStandard:  "ГОСТ 886-77",
		FieldTolerance: stringer(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Сверло 2300-0041 ГОСТ 886-77", name)

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tolerance", entries[0].ContextMap()["field"])
}

func TestComposeNoneRuleKeepsDefault(t *testing.T) {
	e, logs := newObservedEngine(map[string]Rule{"ГОСТ 26595-85": RuleNone})
	name, err := e.Compose(fields{FieldGroup: "Фреза", FieldMarking: "2214-0001", FieldStandard: "ГОСТ 26595-85"})
	require.NoError(t, err)
	assert.Equal(t, "Фреза 2214-0001 ГОСТ 26595-85", name)
	assert.Zero(t, logs.Len())
}

func TestDefaultNameDropsEmptyStandard(t *testing.T) {
	assert.Equal(t, "Протяжка специальная",
		DefaultName(fields{FieldGroup: "Протяжка", FieldMarking: "специальная", FieldStandard: ""}))
}

func TestRegisterAndDefaultTable(t *testing.T) {
	e := NewEngine(DefaultRules(), zap.NewNop())
	r, ok := e.RuleFor("ГОСТ 886-77")
	require.True(t, ok)
	assert.Equal(t, RuleTolerance, r)

	_, ok = e.RuleFor("ГОСТ 99999-99")
	assert.False(t, ok)
	e.Register("ГОСТ 99999-99", RuleMaterial)
	r, ok = e.RuleFor("ГОСТ 99999-99")
	require.True(t, ok)
	assert.Equal(t, "material", r.String())

	assert.Same(t, Default(), Default())
}
