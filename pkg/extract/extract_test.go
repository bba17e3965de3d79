package extract

import (
	"testing"

	"github.com/caseflow/caseflow/pkg/resolve"
	"github.com/caseflow/caseflow/pkg/table"
	"github.com/caseflow/caseflow/pkg/vocab"
)

func mustResolve(t *testing.T, tbl *table.Table, v *vocab.Vocabulary) *resolve.Resolution {
	t.Helper()
	r, ok := resolve.Resolve(tbl, v)
	if !ok {
		t.Fatalf("resolve failed for table %s", tbl.Name)
	}
	return r
}

func TestEvents_DeclaredEventColumn(t *testing.T) {
	v := vocab.Ecommerce()
	tbl := &table.Table{
		Name:    "events",
		File:    "events.csv",
		Columns: []string{"customer_id", "event_name", "created_at"},
		Rows: []table.Row{
			{"C1", "order_placed", "2024-01-05"},
			{"C1", "payment success", "2024-01-06"},
		},
	}

	events := New(v).Events(tbl, mustResolve(t, tbl, v))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].EventType != "Order Placed" {
		t.Errorf("event 0 type = %q, want Order Placed", events[0].EventType)
	}
	if events[1].EventType != "Payment Success" {
		t.Errorf("event 1 type = %q, want Payment Success", events[1].EventType)
	}
	if events[0].EntityID != "C1" {
		t.Errorf("entity = %q, want C1", events[0].EntityID)
	}
}

func TestEvents_RowValueScan(t *testing.T) {
	v := vocab.Banking()
	tbl := &table.Table{
		Name:    "transactions",
		File:    "transactions.csv",
		Columns: []string{"customer_id", "narration", "txn_date"},
		Rows: []table.Row{
			{"C1", "ATM withdrawal at branch", "2024-01-05"},
			{"C2", "UPI to grocer", "2024-01-06"},
		},
	}

	events := New(v).Events(tbl, mustResolve(t, tbl, v))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].EventType != "Withdrawal Made" {
		t.Errorf("event 0 type = %q, want Withdrawal Made", events[0].EventType)
	}
	if events[1].EventType != "UPI Payment" {
		t.Errorf("event 1 type = %q, want UPI Payment", events[1].EventType)
	}
}

func TestEvents_TimestampColumnDerivation(t *testing.T) {
	v := vocab.Insurance()
	// Schema is literally one column per event: the timestamp column's
	// own name carries the semantics.
	tbl := &table.Table{
		Name:    "claims",
		File:    "claims.xlsx",
		Columns: []string{"policyholder_id", "claim_paid_date"},
		Rows: []table.Row{
			{"P1", "2024-02-10"},
		},
	}

	events := New(v).Events(tbl, mustResolve(t, tbl, v))
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].EventType != "Claim Paid" {
		t.Errorf("type = %q, want Claim Paid", events[0].EventType)
	}
}

func TestEvents_DefaultLabel(t *testing.T) {
	v := vocab.Banking()
	tbl := &table.Table{
		Name:    "logins",
		File:    "logins.csv",
		Columns: []string{"customer_id", "when_seen"},
		Rows: []table.Row{
			{"C1", "2024-01-05"},
		},
	}

	// "when_seen" resolves as the timestamp column (first parseable) but
	// derives no label; nothing else matches, so the default applies.
	events := New(v).Events(tbl, mustResolve(t, tbl, v))
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].EventType != v.DefaultLabel {
		t.Errorf("type = %q, want default %q", events[0].EventType, v.DefaultLabel)
	}
}

func TestEvents_EntityFallbackUnknown(t *testing.T) {
	v := vocab.Banking()
	tbl := &table.Table{
		Name:    "anon",
		File:    "anon.csv",
		Columns: []string{"narration", "created_at"},
		Rows: []table.Row{
			{"deposit via branch", "2024-01-05"},
		},
	}

	events := New(v).Events(tbl, mustResolve(t, tbl, v))
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].EntityID != EntityUnknown {
		t.Errorf("entity = %q, want %q", events[0].EntityID, EntityUnknown)
	}
}

func TestEvents_CaseHint(t *testing.T) {
	v := vocab.Ecommerce()
	tbl := &table.Table{
		Name:    "orders",
		File:    "orders.csv",
		Columns: []string{"customer_id", "order_id", "status", "created_at"},
		Rows: []table.Row{
			{"C1", "O-100", "order placed", "2024-01-05"},
			{"C1", "", "payment success", "2024-01-06"},
		},
	}

	events := New(v).Events(tbl, mustResolve(t, tbl, v))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].CaseHint != "O-100" {
		t.Errorf("hint = %q, want O-100", events[0].CaseHint)
	}
	if events[1].CaseHint != "" {
		t.Errorf("hint = %q, want empty", events[1].CaseHint)
	}
}

func TestEvents_DropsUnresolvableRows(t *testing.T) {
	v := vocab.Banking()
	tbl := &table.Table{
		Name:    "mixed",
		File:    "mixed.csv",
		Columns: []string{"customer_id", "created_at"},
		Rows: []table.Row{
			{"C1", "2024-01-05"},
			{"C2", "garbage"},
		},
	}

	events := New(v).Events(tbl, mustResolve(t, tbl, v))
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Source.Row != 0 {
		t.Errorf("source row = %d, want 0", events[0].Source.Row)
	}
	if events[0].RawRow["customer_id"] != "C1" {
		t.Errorf("raw row = %v", events[0].RawRow)
	}
}
