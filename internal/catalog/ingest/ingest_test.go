package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/charmap"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/enum"
	"github.com/bitfantasy/toolcat/internal/config"
)

const sample = `,Обозначение,Тип_инструмента,Стандарт,D,L,z,Допуск,Материал,Тип_фрезы,Модуль,Примечание
1,2300-0041,Сверло,ГОСТ 886-77,"10,5",120,2.0,H9,Р6М5,,,
2,2510-0001,Фреза,ГОСТ 9324-80,63,40,12,,Р6М5,Червячная,"2,5",из архива
x,2300-0099,Сверло,ГОСТ 886-77,8,80,2,,,,,
3,2300-0042,Сверло,ГОСТ 886-77,abc,80,2,,,,,
`

func sampleTable(t *testing.T) *Table {
	t.Helper()
	table, err := ReadCSV(strings.NewReader(sample), Options{Comma: ','})
	require.NoError(t, err)
	return table
}

func familyOf(group enum.Group) Family {
	for _, f := range Families() {
		if f.Group == group {
			return f
		}
	}
	panic("no family for " + group)
}

func TestReadCSV(t *testing.T) {
	table := sampleTable(t)
	assert.Equal(t, "", table.Header[0])
	assert.Equal(t, 1, table.Index(LabelMarking))
	assert.Equal(t, -1, table.Index("Шаг"))
	require.Len(t, table.Rows, 4)
	assert.Equal(t, "10,5", table.Rows[0][4])
}

func TestReadCSVWindows1251(t *testing.T) {
	src := "index;Обозначение;Тип_инструмента;Стандарт\n7;2620-1001;Метчик;ГОСТ 3266-81\n"
	encoded, err := charmap.Windows1251.NewEncoder().String(src)
	require.NoError(t, err)

	table, err := ReadCSV(strings.NewReader(encoded), Options{Comma: ';', Encoding: "cp1251"})
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "Обозначение", "Тип_инструмента", "Стандарт"}, table.Header)
	assert.Equal(t, "Метчик", table.Rows[0][2])
}

func TestReadCSVStripsBOMAndPads(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\ufeffindex,Обозначение,Стандарт\n1,A\n\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Index("index"))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"1", "A", ""}, table.Rows[0])
}

func TestReadCSVRejectsUnknownEncoding(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a\n"), Options{Encoding: "koi8-r"})
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"index", "Обозначение", "Тип_инструмента"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{1, "2300-0041", "Сверло"}))
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	table, err := ReadXLSX(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "Обозначение", "Тип_инструмента"}, table.Header)
	assert.Equal(t, []string{"1", "2300-0041", "Сверло"}, table.Rows[0])
}

func TestOptionsFromConfig(t *testing.T) {
	assert.Equal(t, Options{Comma: ','}, OptionsFromConfig(config.IngestConfig{}))
	assert.Equal(t, Options{Comma: ';', Encoding: "cp1251"}, OptionsFromConfig(config.IngestConfig{Comma: ";", Encoding: "cp1251"}))
	assert.Equal(t, '\t', OptionsFromConfig(config.IngestConfig{Comma: `\t`}).Comma)
}

func TestParseCell(t *testing.T) {
	cases := []struct {
		raw  string
		kind Kind
		want any
		err  bool
	}{
		{"", Number, nil, false},
		{"nan", Integer, nil, false},
		{"10,5", Number, 10.5, false},
		{"12", Number, 12.0, false},
		{"2.0", Integer, 2, false},
		{"2.5", Integer, nil, true},
		{"abc", Number, nil, true},
		{"да", Flag, true, false},
		{"false", Flag, false, false},
		{"может быть", Flag, nil, true},
		{" H9 ", Text, "H9", false},
	}
	for _, tc := range cases {
		got, err := parseCell(tc.raw, tc.kind)
		if tc.err {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestToolLoaderParse(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tools, skipped, err := NewToolLoader(nil, zap.New(core)).Parse(sampleTable(t))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, logs.FilterMessage("skipping source row").Len())
	require.Len(t, tools, 3)

	drill := tools[0]
	assert.Equal(t, int64(1), drill.ID)
	assert.Equal(t, "Сверло", drill.Group)
	assert.Equal(t, "ГОСТ 886-77", drill.Standard)
	assert.Nil(t, drill.Extra)

	mill := tools[1]
	assert.Equal(t, "из архива", mill.Extra["Примечание"])
	assert.NotContains(t, mill.Extra, "Модуль")
}

func TestToolLoaderRequiresHeader(t *testing.T) {
	_, _, err := NewToolLoader(nil, zap.NewNop()).Parse(NewTable([]string{"index", "Стандарт"}, nil))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestGeometryLoaderParse(t *testing.T) {
	table := sampleTable(t)
	tools, _, err := NewToolLoader(nil, zap.NewNop()).Parse(table)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	drills := NewGeometryLoader(nil, familyOf(enum.GroupDrill), zap.New(core))
	assert.Equal(t, "geometry_drills", drills.Family().Table())

	cols := drills.Columns(table)
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{"D", "L", "Допуск", "Материал", "z"}, labels)

	rows, skipped := drills.Parse(table, tools)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, logs.FilterMessage("skipping geometry row with malformed cell").Len())
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ToolID)
	assert.Equal(t, 10.5, rows[0].Values["D"])
	assert.Equal(t, 2, rows[0].Values["z"])
	assert.Equal(t, "H9", rows[0].Values["Допуск"])

	mills, _ := NewGeometryLoader(nil, familyOf(enum.GroupMillingCutter), zap.NewNop()).Parse(table, tools)
	require.Len(t, mills, 1)
	assert.Equal(t, 2.5, mills[0].Values["Модуль"])
	assert.Equal(t, "Червячная", mills[0].Values["Тип_фрезы"])
	assert.Nil(t, mills[0].Values["Допуск"])
}

func TestFamiliesCoverGeometryTables(t *testing.T) {
	var tables []string
	for _, f := range Families() {
		_, ok := entity.RelationFor(f.Group)
		assert.True(t, ok, f.Group)
		tables = append(tables, f.Table())
	}
	assert.ElementsMatch(t, entity.TableNames()[1:], tables)
}

func TestReportLoaded(t *testing.T) {
	r := Report{
		Tools:    TableStats{Loaded: 3},
		Geometry: []TableStats{{Loaded: 2}, {Loaded: 1, Skipped: 4}},
	}
	assert.Equal(t, 6, r.Loaded())
}

const duplicated = `index,Обозначение,Тип_инструмента,Стандарт,D,L,z
1,2300-0041,Сверло,ГОСТ 886-77,10,120,2
1,2300-0042,Сверло,ГОСТ 886-77,12,130,2
2,2510-0001,Фреза,ГОСТ 9324-80,63,40,12
2,2300-0043,Сверло,ГОСТ 886-77,8,80,2
`

func TestParseKeepsLastRowForRepeatedID(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(duplicated), Options{})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	tools, skipped, err := NewToolLoader(nil, zap.New(core)).Parse(table)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 2, logs.FilterMessage("duplicate tool id, keeping the later row").Len())
	require.Len(t, tools, 2)
	assert.Equal(t, int64(1), tools[0].ID)
	assert.Equal(t, "2300-0042", tools[0].Marking)
	assert.Equal(t, "Сверло", tools[1].Group)

	drills, skipped := NewGeometryLoader(nil, familyOf(enum.GroupDrill), zap.NewNop()).Parse(table, tools)
	assert.Equal(t, 1, skipped)
	require.Len(t, drills, 2)
	assert.Equal(t, 12.0, drills[0].Values["D"])
	assert.Equal(t, int64(2), drills[1].ToolID)
	assert.Equal(t, 8.0, drills[1].Values["D"])

	core, logs = observer.New(zapcore.WarnLevel)
	mills, skipped := NewGeometryLoader(nil, familyOf(enum.GroupMillingCutter), zap.New(core)).Parse(table, tools)
	assert.Empty(t, mills)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, logs.FilterMessage("skipping geometry row without a matching tool").Len())
}

func TestGeometryParseSkipsRowsWithoutTool(t *testing.T) {
	table := sampleTable(t)
	core, logs := observer.New(zapcore.WarnLevel)
	rows, skipped := NewGeometryLoader(nil, familyOf(enum.GroupDrill), zap.New(core)).
		Parse(table, []entity.Tool{{ID: 3, Group: "Сверло"}})

	assert.Empty(t, rows)
	assert.Equal(t, 2, skipped)
	missing := logs.FilterMessage("skipping geometry row without a matching tool").All()
	require.Len(t, missing, 1)
	assert.Equal(t, int64(1), missing[0].ContextMap()["tool_id"])
}
