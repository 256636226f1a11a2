package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
	"github.com/bitfantasy/toolcat/internal/catalog/strategy"
	"github.com/bitfantasy/toolcat/internal/shared/cache"
)

func ptr[T any](v T) *T { return &v }

func TestSchemaFactory(t *testing.T) {
	f := NewSchemaFactory()
	assert.Equal(t, len(enum.Groups.Values()), f.Len())

	s, err := f.CreateSchema(&entity.Tool{Marking: "2300-0041", Group: "Сверло", Standard: "ГОСТ 886-77"})
	require.NoError(t, err)
	assert.IsType(t, &schema.Drill{}, s)

	_, err = f.CreateSchema(&entity.Tool{Marking: "1", Group: "Метчик", Standard: "ГОСТ 3266-81"})
	assert.ErrorIs(t, err, ErrGroupNotSupported)
	var gerr *GroupNotSupportedError
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Supported, "Сверло")

	assert.True(t, f.Unregister("Сверло"))
	_, err = f.CreateSchema(&entity.Tool{Marking: "2300-0041", Group: "Сверло", Standard: "ГОСТ 886-77"})
	assert.ErrorIs(t, err, ErrGroupNotSupported)
	f.ResetToDefaults()
	assert.True(t, f.Has("Сверло"))
}

func TestAssemblerEnrichesAndFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := NewAssembler(nil, nil, zap.New(core))
	ctx := context.Background()

	drill := &entity.Tool{
		ID: 1, Marking: "2300-0041", Group: "Сверло", Standard: "ГОСТ 886-77",
		Drill: &entity.DrillGeometry{AxialColumns: entity.AxialColumns{D: ptr(10.0), Tolerance: ptr("H9")}},
	}
	s, ok := a.Assemble(ctx, drill)
	require.True(t, ok)
	assert.Equal(t, "Сверло 2300-0041 H9 ГОСТ 886-77", s.Name())
	assert.Equal(t, 10.0, s.(*schema.Drill).DiaMM())

	tap := &entity.Tool{ID: 2, Marking: "2620-1001", Group: "Метчик", Standard: "ГОСТ 3266-81"}
	s, ok = a.Assemble(ctx, tap)
	require.True(t, ok)
	assert.Equal(t, enum.GroupTool, s.Group())
	assert.Equal(t, 1, logs.FilterMessage("falling back to base tool schema").Len())

	broken := &entity.Tool{ID: 3, Marking: "2300-0042", Group: "Сверло", Standard: "без стандарта"}
	s, ok = a.Assemble(ctx, broken)
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.Equal(t, 1, logs.FilterMessage("skipping tool row").Len())

	all := a.AssembleAll(ctx, []entity.Tool{*drill, *broken, *tap})
	require.Len(t, all, 2)
	assert.Equal(t, "2300-0041", all[0].Marking())
	assert.Equal(t, "2620-1001", all[1].Marking())
}

func mustDrill(t *testing.T, marking string) schema.Schema {
	t.Helper()
	d, err := schema.NewDrill(marking, "ГОСТ 886-77")
	require.NoError(t, err)
	return d
}

func TestFormatters(t *testing.T) {
	a := mustDrill(t, "2300-0001")
	b := mustDrill(t, "2300-0002")
	c := mustDrill(t, "2300-0001")
	require.NoError(t, c.SetName("duplicate"))
	list := []schema.Schema{a, b, c}

	assert.Equal(t, list, ListFormatter{}.Format(list))
	assert.NotNil(t, ListFormatter{}.Format(nil))

	byMarking := MarkingFormatter{}.Format(list)
	require.Len(t, byMarking, 2)
	assert.Equal(t, "duplicate", byMarking["2300-0001"].Name())

	ordinal := OrdinalFormatter{}.Format(list)
	require.Len(t, ordinal, 3)
	assert.Same(t, a, ordinal[1])
	assert.Same(t, c, ordinal[3])
}

func TestFinderUnknownStrategy(t *testing.T) {
	f := NewListFinder(nil, WithLogger(zap.NewNop()))
	_, err := f.Find(context.Background(), "by_colour", 0, strategy.Args{})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "by_marking_and_group")
	assert.Contains(t, err.Error(), "all")
}

func TestFinderMissingArgument(t *testing.T) {
	f := NewListFinder(nil, WithLogger(zap.NewNop()))
	_, err := f.FindByGroup(context.Background())
	assert.ErrorIs(t, err, strategy.ErrMissingArgument)
}

func TestFinderWithLimitCopies(t *testing.T) {
	f := NewFinder[map[int]schema.Schema](nil, OrdinalFormatter{}, WithDefaultLimit(10))
	g := f.WithLimit(3)
	assert.Equal(t, 10, f.limit)
	assert.Equal(t, 3, g.limit)
	assert.Same(t, f.Strategies(), g.Strategies())
}

func TestFinderWithCaseInsensitiveCopies(t *testing.T) {
	f := NewListFinder(nil, WithDefaultLimit(10))
	g := f.WithCaseInsensitive(true).WithLimit(2)

	assert.False(t, f.with(strategy.Args{Groups: []string{"сверло"}}).CaseInsensitive)
	args := g.with(strategy.Args{Groups: []string{"сверло"}})
	assert.True(t, args.CaseInsensitive)
	assert.Equal(t, []string{"сверло"}, args.Groups)
	assert.Equal(t, 2, g.limit)
	assert.Equal(t, 10, f.limit)
}

func TestValueLookupServesFromCache(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemory(16, time.Minute)
	require.NoError(t, mem.Set(ctx, valuesKey("standard", nil), []byte(`["ГОСТ 886-77","ГОСТ 9324-80"]`)))

	lookup := NewValueLookup(nil, mem, zap.NewNop())
	values, err := lookup.Values(ctx, "standard")
	require.NoError(t, err)
	assert.Equal(t, []string{"ГОСТ 886-77", "ГОСТ 9324-80"}, values)

	require.NoError(t, lookup.Invalidate(ctx))
	_, ok, err := mem.Get(ctx, valuesKey("standard", nil))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValuesKeyIncludesGroups(t *testing.T) {
	assert.NotEqual(t, valuesKey("standard", nil), valuesKey("standard", []string{"Сверло"}))
}

func TestExportXLSX(t *testing.T) {
	d := mustDrill(t, "2300-0041")
	require.NoError(t, d.Set("tolerance", "H9"))
	m, err := schema.NewMillingCutter("2200-0001", "ГОСТ 29092-91")
	require.NoError(t, err)
	require.NoError(t, m.Set("module", 2.0))

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX([]schema.Schema{d, m}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "name", header[0])
	assert.Contains(t, header, "taper")
	assert.Contains(t, header, "module")
	assert.Equal(t, "Сверло 2300-0041 H9 ГОСТ 886-77", rows[1][0])
	assert.Equal(t, "Фреза 2200-0001 ГОСТ 29092-91", rows[2][0])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExportXLSXStylesHeaderAndReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX([]schema.Schema{mustDrill(t, "2300-0041")}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	style, err := f.GetCellStyle(ExportSheet, "A1")
	require.NoError(t, err)
	assert.NotZero(t, style)
	width, err := f.GetColWidth(ExportSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 40.0, width)

	err = ExportXLSX([]schema.Schema{mustDrill(t, "2300-0042")}, failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write xlsx")
}
