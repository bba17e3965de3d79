package flow

import (
	"testing"
	"time"

	"github.com/caseflow/caseflow/internal/model"
)

func caseOf(id int, entity string, types ...string) *model.Case {
	c := &model.Case{ID: id, EntityID: entity}
	for i, et := range types {
		e := &model.Event{
			EntityID:  entity,
			EventType: et,
			Timestamp: time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
		}
		e.SetSeq(id*100 + i)
		c.Events = append(c.Events, e)
	}
	return c
}

func nodeByName(t *testing.T, g *model.FlowGraph, name string) model.FlowNode {
	t.Helper()
	for _, n := range g.Nodes {
		if n.Name == name {
			return n
		}
	}
	t.Fatalf("node %q not in graph", name)
	return model.FlowNode{}
}

func TestBuild_CountsAndPositions(t *testing.T) {
	g := Build([]*model.Case{
		caseOf(1, "A", "checkout_started", "payment_success", "order_shipped"),
		caseOf(2, "B", "checkout_started", "payment_success"),
	})

	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(g.Edges))
	}

	x := nodeByName(t, g, "checkout_started")
	y := nodeByName(t, g, "payment_success")
	z := nodeByName(t, g, "order_shipped")
	if x.Position != 0 || y.Position != 1 || z.Position != 2 {
		t.Errorf("positions = %v/%v/%v, want 0/1/2", x.Position, y.Position, z.Position)
	}
	if x.Frequency != 2 || y.Frequency != 2 || z.Frequency != 1 {
		t.Errorf("frequencies = %d/%d/%d, want 2/2/1", x.Frequency, y.Frequency, z.Frequency)
	}
	if x.DisplayLabel != "Checkout Started" {
		t.Errorf("display label = %q", x.DisplayLabel)
	}

	xy := g.Edges[0]
	if xy.Source != x.ID || xy.Target != y.ID || xy.Count != 2 {
		t.Errorf("edge 0 = %d→%d count %d, want %d→%d count 2", xy.Source, xy.Target, xy.Count, x.ID, y.ID)
	}
	if len(xy.CaseIDs) != 2 || xy.CaseIDs[0] != 1 || xy.CaseIDs[1] != 2 {
		t.Errorf("edge 0 case ids = %v, want [1 2]", xy.CaseIDs)
	}

	yz := g.Edges[1]
	if yz.Source != y.ID || yz.Target != z.ID || yz.Count != 1 {
		t.Errorf("edge 1 = %d→%d count %d, want %d→%d count 1", yz.Source, yz.Target, yz.Count, y.ID, z.ID)
	}

	if !g.HasTransitions {
		t.Error("HasTransitions = false, want true")
	}
}

func TestBuild_Metadata(t *testing.T) {
	g := Build([]*model.Case{
		caseOf(1, "A", "login", "order_placed"),
		caseOf(2, "A", "login", "order_placed"),
		caseOf(3, "B", "login"),
	})

	m := g.Metadata
	if m.TotalCases != 3 {
		t.Errorf("TotalCases = %d, want 3", m.TotalCases)
	}
	if m.TotalTransitions != 2 {
		t.Errorf("TotalTransitions = %d, want 2", m.TotalTransitions)
	}
	if m.UniquePaths != 2 {
		t.Errorf("UniquePaths = %d, want 2", m.UniquePaths)
	}
	if m.UniqueEntities != 2 {
		t.Errorf("UniqueEntities = %d, want 2", m.UniqueEntities)
	}
}

// Every edge endpoint must index an existing node, and edge counts must
// sum to the number of adjacent pairs across all cases.
func TestBuild_EdgeConservation(t *testing.T) {
	cases := []*model.Case{
		caseOf(1, "A", "a", "b", "c", "b"),
		caseOf(2, "B", "a", "b"),
		caseOf(3, "C", "c"),
	}
	g := Build(cases)

	pairs := 0
	for _, c := range cases {
		if len(c.Events) > 1 {
			pairs += len(c.Events) - 1
		}
	}

	sum := 0
	for _, e := range g.Edges {
		if e.Source < 0 || e.Source >= len(g.Nodes) || e.Target < 0 || e.Target >= len(g.Nodes) {
			t.Fatalf("dangling edge %d→%d with %d nodes", e.Source, e.Target, len(g.Nodes))
		}
		sum += e.Count
	}
	if sum != pairs {
		t.Errorf("edge counts sum = %d, want %d", sum, pairs)
	}
	if g.Metadata.TotalTransitions != pairs {
		t.Errorf("TotalTransitions = %d, want %d", g.Metadata.TotalTransitions, pairs)
	}
}

// Single-event cases produce nodes but no transitions.
func TestBuild_NoTransitions(t *testing.T) {
	g := Build([]*model.Case{
		caseOf(1, "A", "login"),
		caseOf(2, "B", "signup"),
	})

	if g.HasTransitions {
		t.Error("HasTransitions = true, want false")
	}
	if len(g.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(g.Edges))
	}
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(g.Nodes))
	}
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil)
	if g.HasTransitions || len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("empty graph = %+v", g)
	}
	if g.Metadata.TotalCases != 0 || g.Metadata.UniquePaths != 0 {
		t.Errorf("metadata = %+v", g.Metadata)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	build := func() *model.FlowGraph {
		return Build([]*model.Case{
			caseOf(1, "A", "a", "b", "c"),
			caseOf(2, "B", "b", "a"),
			caseOf(3, "C", "c", "a"),
		})
	}

	first := build()
	for i := 0; i < 5; i++ {
		g := build()
		for j, n := range g.Nodes {
			if n != first.Nodes[j] {
				t.Fatalf("node order varies: %v vs %v", g.Nodes, first.Nodes)
			}
		}
		for j, e := range g.Edges {
			if e.Source != first.Edges[j].Source || e.Target != first.Edges[j].Target {
				t.Fatalf("edge order varies")
			}
		}
	}
}
