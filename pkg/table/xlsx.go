package table

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads the first sheet of an Excel workbook into a table.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("table: open xlsx: %w", err)
	}
	defer f.Close()

	return readWorkbook(tableName(path), filepath.Base(path), f)
}

// ParseXLSX reads an Excel workbook from a stream.
func ParseXLSX(name, file string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("table: open xlsx: %w", err)
	}
	defer f.Close()

	return readWorkbook(name, file, f)
}

func readWorkbook(name, file string, f *excelize.File) (*Table, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyTable
		}
		sheetName = sheets[0]
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("table: read rows: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrEmptyTable
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("table: read header: %w", err)
	}
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		Name:    name,
		File:    file,
		Columns: header,
	}

	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("table: read row: %w", err)
		}
		if len(cells) == 0 {
			continue
		}
		t.Rows = append(t.Rows, Row(cells))
	}

	return t, nil
}
