package resolve

import (
	"testing"
	"time"

	"github.com/caseflow/caseflow/pkg/table"
	"github.com/caseflow/caseflow/pkg/vocab"
)

func bankingVocab() *vocab.Vocabulary { return vocab.Banking() }

func TestResolve_KeywordColumn(t *testing.T) {
	tbl := &table.Table{
		Name:    "transactions",
		Columns: []string{"customer_id", "amount", "txn_date"},
		Rows: []table.Row{
			{"C1", "100", "2024-01-05"},
			{"C2", "250", "2024-01-06"},
		},
	}

	r, ok := Resolve(tbl, bankingVocab())
	if !ok {
		t.Fatal("Resolve failed")
	}
	if r.DateColumn != "txn_date" {
		t.Errorf("DateColumn = %q, want txn_date", r.DateColumn)
	}
}

func TestResolve_ExclusionSkipsBirthDate(t *testing.T) {
	tbl := &table.Table{
		Name:    "customers",
		Columns: []string{"customer_id", "birth_date", "created_at"},
		Rows: []table.Row{
			{"C1", "1990-04-01", "2024-01-05"},
			{"C2", "1985-11-20", "2024-01-06"},
		},
	}

	r, ok := Resolve(tbl, bankingVocab())
	if !ok {
		t.Fatal("Resolve failed")
	}
	if r.DateColumn != "created_at" {
		t.Errorf("DateColumn = %q, want created_at", r.DateColumn)
	}
}

func TestResolve_TieGoesToEarlierColumn(t *testing.T) {
	tbl := &table.Table{
		Name:    "logins",
		Columns: []string{"login_date", "logout_date", "customer_id"},
		Rows: []table.Row{
			{"2024-01-05", "2024-01-05", "C1"},
		},
	}

	r, ok := Resolve(tbl, bankingVocab())
	if !ok {
		t.Fatal("Resolve failed")
	}
	if r.DateColumn != "login_date" {
		t.Errorf("DateColumn = %q, want login_date", r.DateColumn)
	}
}

func TestResolve_FirstParseableFallback(t *testing.T) {
	tbl := &table.Table{
		Name:    "odd",
		Columns: []string{"code", "when_it_happened"},
		Rows: []table.Row{
			{"A-1", "2024-01-05 10:00:00"},
			{"A-2", "2024-01-06 11:30:00"},
		},
	}

	r, ok := Resolve(tbl, bankingVocab())
	if !ok {
		t.Fatal("Resolve failed")
	}
	if r.DateColumn != "when_it_happened" {
		t.Errorf("DateColumn = %q, want when_it_happened", r.DateColumn)
	}
}

func TestResolve_NoCandidate(t *testing.T) {
	tbl := &table.Table{
		Name:    "lookup",
		Columns: []string{"code", "label"},
		Rows: []table.Row{
			{"A", "Alpha"},
			{"B", "Beta"},
		},
	}

	if _, ok := Resolve(tbl, bankingVocab()); ok {
		t.Error("Resolve succeeded on a table with no parseable column")
	}
}

func TestResolve_TimeColumnPairing(t *testing.T) {
	tbl := &table.Table{
		Name:    "visits",
		Columns: []string{"customer_id", "visit_date", "visit_time"},
		Rows: []table.Row{
			{"C1", "2024-01-05", "14:30:00"},
			{"C2", "2024-01-06", "bad-clock"},
		},
	}

	r, ok := Resolve(tbl, bankingVocab())
	if !ok {
		t.Fatal("Resolve failed")
	}
	if r.TimeColumn != "visit_time" {
		t.Fatalf("TimeColumn = %q, want visit_time", r.TimeColumn)
	}

	got, ok := r.Instant(0)
	if !ok {
		t.Fatal("Instant(0) failed")
	}
	want := time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Instant(0) = %v, want %v", got, want)
	}

	// Bad clock value falls back to implicit midnight.
	got, ok = r.Instant(1)
	if !ok {
		t.Fatal("Instant(1) failed")
	}
	want = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Instant(1) = %v, want %v", got, want)
	}
}

func TestInstant_DropsUnparsableRows(t *testing.T) {
	tbl := &table.Table{
		Name:    "mixed",
		Columns: []string{"customer_id", "created_at"},
		Rows: []table.Row{
			{"C1", "2024-01-05"},
			{"C2", "not a date"},
			{"C3"},
		},
	}

	r, ok := Resolve(tbl, bankingVocab())
	if !ok {
		t.Fatal("Resolve failed")
	}

	if _, ok := r.Instant(0); !ok {
		t.Error("Instant(0) dropped a parseable row")
	}
	if _, ok := r.Instant(1); ok {
		t.Error("Instant(1) kept an unparsable row")
	}
	if _, ok := r.Instant(2); ok {
		t.Error("Instant(2) kept a row with an absent cell")
	}
}

func TestResolve_DayFirstDetection(t *testing.T) {
	tbl := &table.Table{
		Name:    "eu_orders",
		Columns: []string{"customer_id", "order_date"},
		Rows: []table.Row{
			{"C1", "25/01/2024"},
			{"C2", "03/02/2024"},
		},
	}

	r, ok := Resolve(tbl, bankingVocab())
	if !ok {
		t.Fatal("Resolve failed")
	}

	got, ok := r.Instant(1)
	if !ok {
		t.Fatal("Instant failed")
	}
	if got.Day() != 3 || got.Month() != time.February {
		t.Errorf("Instant = %v, want 2024-02-03 (day-first)", got)
	}
}
