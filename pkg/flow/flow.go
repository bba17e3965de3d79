// Package flow aggregates finalized cases into the node/edge graph
// consumed by Sankey-style renderers.
//
// The graph is a simple weighted digraph: parallel same-direction edges
// between a pair collapse into one weighted edge; reverse-direction
// edges are kept apart. Every edge endpoint indexes into the node list.
package flow

import (
	"sort"

	"github.com/caseflow/caseflow/internal/model"
	"github.com/caseflow/caseflow/pkg/display"
)

// Build aggregates all cases into a flow graph. HasTransitions is false
// when no case contributed an adjacent pair, so callers can distinguish
// "nothing to draw" from a drawn-but-sparse graph.
func Build(cases []*model.Case) *model.FlowGraph {
	g := &model.FlowGraph{}

	type nodeStats struct {
		label       string
		positionSum int
		occurrences int
		cases       map[int]bool
	}

	stats := make(map[string]*nodeStats)
	paths := make(map[string]bool)
	entities := make(map[string]bool)

	for _, c := range cases {
		entities[c.EntityID] = true

		path := ""
		for i, e := range c.Events {
			st, ok := stats[e.EventType]
			if !ok {
				st = &nodeStats{label: e.EventType, cases: make(map[int]bool)}
				stats[e.EventType] = st
			}
			st.positionSum += i
			st.occurrences++
			st.cases[c.ID] = true

			if i > 0 {
				path += "\x00"
			}
			path += e.EventType
		}
		paths[path] = true
	}

	// Deterministic node order: position ascending, frequency
	// descending, label ascending.
	ordered := make([]*nodeStats, 0, len(stats))
	for _, st := range stats {
		ordered = append(ordered, st)
	}
	sort.Slice(ordered, func(i, j int) bool {
		pi := float64(ordered[i].positionSum) / float64(ordered[i].occurrences)
		pj := float64(ordered[j].positionSum) / float64(ordered[j].occurrences)
		if pi != pj {
			return pi < pj
		}
		fi, fj := len(ordered[i].cases), len(ordered[j].cases)
		if fi != fj {
			return fi > fj
		}
		return ordered[i].label < ordered[j].label
	})

	index := make(map[string]int, len(ordered))
	for i, st := range ordered {
		index[st.label] = i
		g.Nodes = append(g.Nodes, model.FlowNode{
			ID:           i,
			Name:         st.label,
			DisplayLabel: display.Format(st.label),
			Position:     float64(st.positionSum) / float64(st.occurrences),
			Frequency:    len(st.cases),
		})
	}

	// Transition counting: adjacent pairs per case, collapsed per
	// (from, to) with deduplicated contributing case ids.
	type edgeKey struct{ from, to string }
	type edgeStats struct {
		count int
		cases map[int]bool
	}
	edges := make(map[edgeKey]*edgeStats)

	for _, c := range cases {
		for i := 0; i+1 < len(c.Events); i++ {
			key := edgeKey{c.Events[i].EventType, c.Events[i+1].EventType}
			st, ok := edges[key]
			if !ok {
				st = &edgeStats{cases: make(map[int]bool)}
				edges[key] = st
			}
			st.count++
			st.cases[c.ID] = true
		}
	}

	keys := make([]edgeKey, 0, len(edges))
	for key := range edges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := index[keys[i].from], index[keys[j].from]
		if si != sj {
			return si < sj
		}
		return index[keys[i].to] < index[keys[j].to]
	})

	total := 0
	for _, key := range keys {
		st := edges[key]
		caseIDs := make([]int, 0, len(st.cases))
		for id := range st.cases {
			caseIDs = append(caseIDs, id)
		}
		sort.Ints(caseIDs)

		g.Edges = append(g.Edges, model.FlowEdge{
			Source:    index[key.from],
			Target:    index[key.to],
			Count:     st.count,
			FromLabel: display.Format(key.from),
			ToLabel:   display.Format(key.to),
			CaseIDs:   caseIDs,
		})
		total += st.count
	}

	g.Metadata = model.FlowMetadata{
		TotalCases:       len(cases),
		TotalTransitions: total,
		UniquePaths:      len(paths),
		UniqueEntities:   len(entities),
	}
	g.HasTransitions = total > 0

	return g
}
