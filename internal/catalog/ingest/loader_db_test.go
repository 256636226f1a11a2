package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
	"github.com/bitfantasy/toolcat/internal/catalog/service"
	"github.com/bitfantasy/toolcat/internal/catalog/testutil"
	"github.com/bitfantasy/toolcat/internal/shared/cache"
)

func TestLoadThenFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	mem := cache.NewMemory(16, time.Minute)
	require.NoError(t, mem.Set(ctx, "values:standard:", []byte(`[]`)))

	table := sampleTable(t)
	report, err := NewLoader(db, mem, zap.NewNop()).Load(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Tools.Loaded)
	assert.Equal(t, 1, report.Tools.Skipped)

	_, ok, err := mem.Get(ctx, "values:standard:")
	require.NoError(t, err)
	assert.False(t, ok)

	finder := service.NewListFinder(db, service.WithLogger(zap.NewNop()))
	got, err := finder.FindByID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, table.Rows[1][table.Index(LabelMarking)], got[0].Marking())

	mill, ok := got[0].(*schema.MillingCutter)
	require.True(t, ok)
	assert.Equal(t, 63.0, mill.DiaMM())
	assert.Equal(t, 12, mill.NumOfCuttingBlades())
	assert.Equal(t, 2.5, mill.Module())

	var stored entity.Tool
	require.NoError(t, db.First(&stored, 2).Error)
	assert.Equal(t, "из архива", stored.Extra["Примечание"])
}

func TestLoadIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	loader := NewLoader(db, nil, zap.NewNop())

	_, err := loader.Load(ctx, sampleTable(t))
	require.NoError(t, err)

	changed := strings.Replace(sample, "2300-0041", "2300-0041М", 1)
	table, err := ReadCSV(strings.NewReader(changed), Options{})
	require.NoError(t, err)
	_, err = loader.Load(ctx, table)
	require.NoError(t, err)

	var tools []entity.Tool
	require.NoError(t, db.Preload(entity.RelationDrill).Order("id").Find(&tools).Error)
	require.Len(t, tools, 3)
	assert.Equal(t, "2300-0041М", tools[0].Marking)

	var drills int64
	require.NoError(t, db.Model(&entity.DrillGeometry{}).Count(&drills).Error)
	assert.Equal(t, int64(1), drills)
}

func TestVerifyRejectsGroupMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedTools(t, db, entity.Tool{ID: 10, Marking: "2510-0002", Group: "Фреза", Standard: "ГОСТ 9324-80"})

	drills := NewGeometryLoader(db, familyOf(enum.GroupDrill), zap.NewNop())
	kept, dropped, err := drills.Verify(context.Background(), []GeometryRow{
		{ToolID: 10, Values: map[string]any{"D": 5.0}},
		{ToolID: 11, Values: map[string]any{"D": 6.0}},
	})
	require.NoError(t, err)
	assert.Empty(t, kept)
	assert.Equal(t, 2, dropped)
}

func TestWriteReportsForeignKeyViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	drills := NewGeometryLoader(db, familyOf(enum.GroupDrill), zap.NewNop())
	err := drills.Write(context.Background(),
		[]GeometryRow{{ToolID: 404, Values: map[string]any{"D": 5.0}}},
		[]Column{{"D", Number}})
	assert.ErrorIs(t, err, ErrIntegrity)
}
