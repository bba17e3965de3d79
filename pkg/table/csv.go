package table

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadCSV loads a CSV file into a table snapshot. TSV files are handled
// by delimiter sniffing on the header line.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ParseCSV(tableName(path), filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ParseCSV reads CSV content into a table. Quoted fields with embedded
// delimiters and escaped quotes are handled; ragged rows are kept as-is
// (missing trailing cells stay absent).
func ParseCSV(name, file string, r io.Reader) (*Table, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	headerLine, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	headerLine = trimLineEnding(headerLine)
	if headerLine == "" {
		return nil, ErrEmptyTable
	}

	delim := sniffDelimiter(headerLine)
	columns := splitCSVLine(headerLine, delim)
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}

	t := &Table{
		Name:    name,
		File:    file,
		Columns: columns,
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" && err == io.EOF {
			break
		}

		line = trimLineEnding(line)
		if line != "" {
			t.Rows = append(t.Rows, Row(splitCSVLine(line, delim)))
		}

		if err == io.EOF {
			break
		}
	}

	return t, nil
}

// sniffDelimiter picks the delimiter yielding the most header fields.
func sniffDelimiter(header string) byte {
	best := byte(',')
	bestCount := strings.Count(header, ",")
	for _, d := range []byte{';', '\t', '|'} {
		if c := strings.Count(header, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

// splitCSVLine splits a line on delim, honoring quoted fields.
func splitCSVLine(line string, delim byte) []string {
	fields := make([]string, 0, 16)
	start := 0
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '"' {
			if !inQuotes {
				inQuotes = true
			} else if i+1 < len(line) && line[i+1] == '"' {
				i++
			} else {
				inQuotes = false
			}
		} else if c == delim && !inQuotes {
			fields = append(fields, unquoteField(line[start:i]))
			start = i + 1
		}
	}
	fields = append(fields, unquoteField(line[start:]))

	return fields
}

// unquoteField removes surrounding quotes and unescapes embedded quotes.
func unquoteField(field string) string {
	if len(field) < 2 || field[0] != '"' || field[len(field)-1] != '"' {
		return field
	}
	field = field[1 : len(field)-1]
	if !strings.Contains(field, `""`) {
		return field
	}
	return strings.ReplaceAll(field, `""`, `"`)
}

// trimLineEnding removes trailing \n and \r characters.
func trimLineEnding(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
