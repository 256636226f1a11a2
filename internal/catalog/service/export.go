package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/bitfantasy/toolcat/internal/catalog/schema"
)

// ExportSheet is the sheet written by ExportXLSX.
const ExportSheet = "Инструмент"

// ExportColumns is "name" followed by the union of schema fields in first-seen order.
func ExportColumns(schemas []schema.Schema) []string {
	columns := []string{"name"}
	seen := map[string]bool{"name": true}
	for _, s := range schemas {
		for _, f := range s.Fields() {
			if !seen[f] {
				seen[f] = true
				columns = append(columns, f)
			}
		}
	}
	return columns
}

// ExportXLSX writes one row per schema. The name column holds the composed
// display name; cells of fields a family lacks stay empty.
func ExportXLSX(schemas []schema.Schema, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	columns := ExportColumns(schemas)
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(ExportSheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, s := range schemas {
		values := s.ToMap()
		row := make([]any, len(columns))
		row[0] = s.Name()
		for j, c := range columns[1:] {
			if v, ok := values[c]; ok {
				row[j+1] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ExportSheet, "A", "A", 40); err != nil {
		return fmt.Errorf("set name column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
