package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/caseflow/caseflow/pkg/table"
	"github.com/caseflow/caseflow/pkg/vocab"
)

func ordersTable() *table.Table {
	return &table.Table{
		Name:    "orders",
		File:    "orders.csv",
		Columns: []string{"customer_id", "status", "created_at"},
		Rows: []table.Row{
			{"A", "order placed", "2024-01-01 10:00:00"},
			{"A", "payment success", "2024-01-01 11:00:00"},
			{"A", "order placed", "2024-01-01 12:00:00"},
		},
	}
}

func TestAnalyze_ReconstructsCases(t *testing.T) {
	e := New(vocab.Ecommerce())
	result, err := e.Analyze(context.Background(), "shop", []*table.Table{ordersTable()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !result.Success {
		t.Fatalf("success = false, reason %q", result.Reason)
	}
	if result.RunID == "" {
		t.Error("run id is empty")
	}
	if len(result.TablesChecked) != 1 || result.TablesChecked[0] != "orders" {
		t.Errorf("tables checked = %v", result.TablesChecked)
	}

	// A second case-start while a case is open splits the journey.
	if len(result.CaseDetails) != 2 {
		t.Fatalf("cases = %d, want 2", len(result.CaseDetails))
	}
	first := result.CaseDetails[0]
	if first.CaseID != 1 || len(first.EventSequence) != 2 {
		t.Errorf("case 1 = %+v", first)
	}
	if first.EventSequence[0] != "Order Placed" || first.EventSequence[1] != "Payment Success" {
		t.Errorf("case 1 sequence = %v", first.EventSequence)
	}
	if first.Summary == "" || first.Activities[0].Explanation == "" {
		t.Error("summary or explanation missing")
	}

	g := result.FlowGraph
	if g == nil || !g.HasTransitions {
		t.Fatalf("flow graph = %+v", g)
	}
	if g.Metadata.TotalCases != 2 || g.Metadata.TotalTransitions != 1 {
		t.Errorf("metadata = %+v", g.Metadata)
	}
}

func TestAnalyze_MergesTablesInDeclaredOrder(t *testing.T) {
	// Both rows share one instant; discovery order must follow table
	// declaration order, not goroutine completion order.
	a := &table.Table{
		Name:    "first",
		File:    "first.csv",
		Columns: []string{"customer_id", "status", "created_at"},
		Rows:    []table.Row{{"X", "order placed", "2024-01-01 10:00:00"}},
	}
	b := &table.Table{
		Name:    "second",
		File:    "second.csv",
		Columns: []string{"customer_id", "status", "created_at"},
		Rows:    []table.Row{{"X", "payment success", "2024-01-01 10:00:00"}},
	}

	e := New(vocab.Ecommerce())
	for i := 0; i < 10; i++ {
		result, err := e.Analyze(context.Background(), "shop", []*table.Table{a, b})
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if len(result.CaseDetails) != 1 {
			t.Fatalf("cases = %d, want 1", len(result.CaseDetails))
		}
		seq := result.CaseDetails[0].EventSequence
		if len(seq) != 2 || seq[0] != "Order Placed" || seq[1] != "Payment Success" {
			t.Fatalf("sequence = %v, want declared table order", seq)
		}
	}
}

func TestAnalyze_NoUsableData(t *testing.T) {
	junk := &table.Table{
		Name:    "notes",
		File:    "notes.csv",
		Columns: []string{"customer_id", "note"},
		Rows: []table.Row{
			{"A", "called support"},
			{"B", "asked for invoice"},
		},
	}

	e := New(vocab.Ecommerce())
	result, err := e.Analyze(context.Background(), "shop", []*table.Table{junk})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Success {
		t.Error("success = true, want structured failure")
	}
	if result.Reason == "" {
		t.Error("reason is empty")
	}
	if len(result.TablesChecked) != 1 || result.TablesChecked[0] != "notes" {
		t.Errorf("tables checked = %v", result.TablesChecked)
	}
	if len(result.CaseDetails) != 0 || result.FlowGraph != nil {
		t.Errorf("failure result carries cases or graph: %+v", result)
	}
}

func TestAnalyze_EmptyDataset(t *testing.T) {
	e := New(vocab.Banking())
	result, err := e.Analyze(context.Background(), "empty", nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Success {
		t.Error("success = true for empty dataset")
	}
}

func TestAnalyze_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(vocab.Ecommerce())
	if _, err := e.Analyze(ctx, "shop", []*table.Table{ordersTable()}); err == nil {
		t.Error("err = nil, want context error")
	}
}

// Identical input must produce byte-identical case details and graph.
func TestAnalyze_Deterministic(t *testing.T) {
	e := New(vocab.Ecommerce())

	run := func() ([]byte, []byte) {
		result, err := e.Analyze(context.Background(), "shop", []*table.Table{ordersTable()})
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		details, err := json.Marshal(result.CaseDetails)
		if err != nil {
			t.Fatalf("marshal details: %v", err)
		}
		graph, err := json.Marshal(result.FlowGraph)
		if err != nil {
			t.Fatalf("marshal graph: %v", err)
		}
		return details, graph
	}

	d1, g1 := run()
	for i := 0; i < 5; i++ {
		d2, g2 := run()
		if string(d1) != string(d2) {
			t.Fatal("case details vary across runs")
		}
		if string(g1) != string(g2) {
			t.Fatal("flow graph varies across runs")
		}
	}
}
