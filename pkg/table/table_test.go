package table

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	csv := "customer_id,event_name,created_at\n" +
		"C1,Order Placed,2024-01-01\n" +
		"C2,\"Payment, Success\",2024-01-02\n" +
		"C3,\"He said \"\"hi\"\"\",2024-01-03\n"

	tbl, err := ParseCSV("orders", "orders.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	wantCols := []string{"customer_id", "event_name", "created_at"}
	if len(tbl.Columns) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", tbl.Columns, wantCols)
	}
	for i, c := range wantCols {
		if tbl.Columns[i] != c {
			t.Errorf("column %d = %q, want %q", i, tbl.Columns[i], c)
		}
	}

	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tbl.Rows))
	}
	if got := tbl.Rows[1][1]; got != "Payment, Success" {
		t.Errorf("quoted field = %q", got)
	}
	if got := tbl.Rows[2][1]; got != `He said "hi"` {
		t.Errorf("escaped quote field = %q", got)
	}
}

func TestParseCSV_Semicolon(t *testing.T) {
	csv := "a;b;c\n1;2;3\n"
	tbl, err := ParseCSV("t", "t.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(tbl.Columns) != 3 || tbl.Columns[1] != "b" {
		t.Errorf("columns = %v", tbl.Columns)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	if _, err := ParseCSV("t", "t.csv", strings.NewReader("")); err != ErrEmptyTable {
		t.Errorf("err = %v, want ErrEmptyTable", err)
	}
}

func TestRowView(t *testing.T) {
	tbl := &Table{
		Name:    "t",
		Columns: []string{"id", "status", "note"},
		Rows: []Row{
			{"1", "  active  "},       // ragged: note absent
			{"2", "", "has note"},     // status blank
		},
	}

	v := tbl.View(0)
	if got, ok := v.Get("status"); !ok || got != "active" {
		t.Errorf("Get(status) = %q, %v", got, ok)
	}
	if _, ok := v.Get("note"); ok {
		t.Error("Get(note) on ragged row reported present")
	}
	if _, ok := v.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}

	v1 := tbl.View(1)
	if _, ok := v1.Get("status"); ok {
		t.Error("Get on blank cell reported present")
	}

	snap := v1.Snapshot()
	if len(snap) != 2 {
		t.Errorf("Snapshot = %v, want 2 entries", snap)
	}
	if snap["note"] != "has note" {
		t.Errorf("Snapshot[note] = %q", snap["note"])
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data.csv", FormatCSV},
		{"DATA.CSV", FormatCSV},
		{"data.tsv", FormatCSV},
		{"book.xlsx", FormatXLSX},
		{"notes.txt", FormatUnknown},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.path); got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
