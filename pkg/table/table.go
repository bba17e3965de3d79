// Package table provides the in-memory table snapshot the engine works
// on, plus readers for the supported upload formats (CSV, XLSX).
//
// A Table is a private copy of the caller's data: ordered column names
// and ordered rows of raw string scalars. Column order is part of the
// engine contract - it breaks ties in resolver and extractor rules.
package table

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for files the reader cannot handle.
	ErrUnsupportedFormat = errors.New("table: unsupported format")

	// ErrEmptyTable is returned when a file has no header row.
	ErrEmptyTable = errors.New("table: empty table")
)

// Row holds one row's cells aligned with the owning table's columns.
// A row shorter than the column list has its trailing cells absent.
type Row []string

// Table is a named, ordered snapshot of one uploaded table.
type Table struct {
	// Name is the logical table name (file base name without extension).
	Name string

	// File is the originating file name, kept for provenance.
	File string

	// Columns is the declared column order.
	Columns []string

	// Rows holds the data rows in file order.
	Rows []Row
}

// ColumnIndex returns the position of a column by exact name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// RowView is a read-only capability over one row. All heuristic access
// to row values goes through it, keeping the substring matching in the
// resolver and extractor explicit instead of scattered.
type RowView struct {
	table *Table
	row   int
}

// View returns the RowView for row i.
func (t *Table) View(i int) RowView {
	return RowView{table: t, row: i}
}

// Get returns the trimmed cell value for a column. Absent columns,
// absent cells and blank values all report false.
func (v RowView) Get(column string) (string, bool) {
	idx, ok := v.table.ColumnIndex(column)
	if !ok {
		return "", false
	}
	return v.cell(idx)
}

// Cell returns the trimmed value at a column position.
func (v RowView) Cell(idx int) (string, bool) {
	if idx < 0 || idx >= len(v.table.Columns) {
		return "", false
	}
	return v.cell(idx)
}

func (v RowView) cell(idx int) (string, bool) {
	row := v.table.Rows[v.row]
	if idx >= len(row) {
		return "", false
	}
	s := strings.TrimSpace(row[idx])
	if s == "" {
		return "", false
	}
	return s, true
}

// Ordinal returns the zero-based row position within the table.
func (v RowView) Ordinal() int { return v.row }

// Width returns the number of declared columns.
func (v RowView) Width() int { return len(v.table.Columns) }

// Snapshot returns a string-normalized copy of the row keyed by column
// name. Absent cells are omitted.
func (v RowView) Snapshot() map[string]string {
	snap := make(map[string]string, len(v.table.Columns))
	for i, col := range v.table.Columns {
		if val, ok := v.cell(i); ok {
			snap[col] = val
		}
	}
	return snap
}

// Format represents a supported input format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// DetectFormat guesses the format from a file name.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// ReadFile loads a table from disk, dispatching on the detected format.
func ReadFile(path string) (*Table, error) {
	switch DetectFormat(path) {
	case FormatCSV:
		return ReadCSV(path)
	case FormatXLSX:
		return ReadXLSX(path)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// tableName derives the logical table name from a file path.
func tableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
