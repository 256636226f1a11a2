// Package ingest loads the wide normative table into the catalog.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/bitfantasy/toolcat/internal/config"
)

// Supported source encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1251 = "windows-1251"
)

// Table is a header plus rows of raw cells. Rows are padded to the header width.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable normalizes the header and pads every row.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for _, r := range rows {
		if isBlank(r) {
			continue
		}
		row := make([]string, len(header))
		copy(row, r)
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Index returns the position of a header label, or -1.
func (t *Table) Index(label string) int {
	if i, ok := t.index[label]; ok {
		return i
	}
	return -1
}

func (t *Table) Has(label string) bool { return t.Index(label) >= 0 }

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Options control CSV decoding.
type Options struct {
	Comma    rune
	Encoding string
}

// OptionsFromConfig maps the ingest settings; an empty comma means ','.
func OptionsFromConfig(cfg config.IngestConfig) Options {
	o := Options{Comma: ',', Encoding: cfg.Encoding}
	if r, _ := utf8.DecodeRuneInString(cfg.Comma); cfg.Comma != "" && r != utf8.RuneError {
		o.Comma = r
	}
	if cfg.Comma == `\t` {
		o.Comma = '\t'
	}
	return o
}

// ReadCSV reads a delimited table whose first record is the header.
func ReadCSV(r io.Reader, opts Options) (*Table, error) {
	switch strings.ToLower(opts.Encoding) {
	case "", EncodingUTF8, "utf8":
	case EncodingWindows1251, "cp1251":
		r = transform.NewReader(r, charmap.Windows1251.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding %q", opts.Encoding)
	}

	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: empty input")
	}
	return NewTable(records[0], records[1:]), nil
}

// ReadXLSX reads a sheet whose first row is the header. An empty sheet name
// selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read sheet %q: empty", sheet)
	}
	return NewTable(rows[0], rows[1:]), nil
}
