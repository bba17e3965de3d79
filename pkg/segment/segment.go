// Package segment groups the global event stream into Cases: discrete
// lifecycle instances per entity (one order, one policy term, one
// claim).
//
// Two modes, chosen once per dataset: explicit (any event carries a
// case id hint) groups by that hint; implicit reconstructs case
// boundaries from vocabulary case-start labels and event repetition.
//
// Known heuristic limitation, kept deliberately: inside an open case a
// repeated event type always starts a new case, even when the repeat
// could belong to the same real lifecycle (two genuine logins during
// one order journey will split it).
package segment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caseflow/caseflow/internal/model"
	"github.com/caseflow/caseflow/pkg/vocab"
)

// Segmenter reconstructs cases from a time-ordered event stream.
type Segmenter struct {
	vocab *vocab.Vocabulary
}

// New creates a segmenter for the given vocabulary.
func New(v *vocab.Vocabulary) *Segmenter {
	return &Segmenter{vocab: v}
}

// Segment merges the given events into one time-ordered stream, groups
// it into cases and assigns dense ascending case ids by global
// first-timestamp rank. The input slice is not modified.
func (s *Segmenter) Segment(events []*model.Event) []*model.Case {
	if len(events) == 0 {
		return nil
	}

	stream := make([]*model.Event, len(events))
	copy(stream, events)
	sortByTime(stream)

	var cases []*model.Case
	if hasHints(stream) {
		cases = s.explicit(stream)
	} else {
		cases = s.implicit(stream)
	}

	// Dataset-wide reorder: case id is the 1-based rank of the case's
	// first event timestamp, independent of per-entity processing order.
	sort.SliceStable(cases, func(i, j int) bool {
		ti, tj := cases[i].First().Timestamp, cases[j].First().Timestamp
		if ti.Equal(tj) {
			return cases[i].First().Seq() < cases[j].First().Seq()
		}
		return ti.Before(tj)
	})
	for i, c := range cases {
		c.ID = i + 1
	}

	return cases
}

// explicit groups events by their case id hint, falling back to the
// entity id for events without one. Each group is one case.
func (s *Segmenter) explicit(stream []*model.Event) []*model.Case {
	groups := make(map[string][]*model.Event)
	var order []string // first-appearance order keeps output deterministic

	for _, e := range stream {
		key := e.CaseHint
		if key == "" {
			key = e.EntityID
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	cases := make([]*model.Case, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sortByTime(group)
		cases = append(cases, &model.Case{
			EntityID: group[0].EntityID,
			Events:   group,
		})
	}
	return cases
}

// implicit reconstructs case boundaries per entity.
func (s *Segmenter) implicit(stream []*model.Event) []*model.Case {
	byEntity := make(map[string][]*model.Event)
	var entities []string

	for _, e := range stream {
		if _, seen := byEntity[e.EntityID]; !seen {
			entities = append(entities, e.EntityID)
		}
		byEntity[e.EntityID] = append(byEntity[e.EntityID], e)
	}

	var cases []*model.Case
	for _, entity := range entities {
		cases = append(cases, s.entityCases(entity, byEntity[entity])...)
	}
	return cases
}

// entityCases runs the open-case algorithm over one entity's
// time-ordered events.
func (s *Segmenter) entityCases(entity string, events []*model.Event) []*model.Case {
	var (
		cases   []*model.Case
		open    []*model.Event
		buffer  []*model.Event // events seen before the first case-start
		started bool           // a case-start has ever been seen
	)

	closeOpen := func() {
		if len(open) > 0 {
			cases = append(cases, &model.Case{EntityID: entity, Events: open})
			open = nil
		}
	}

	for _, e := range events {
		switch {
		case s.vocab.IsCaseStart(e.EventType):
			if containsCaseStart(open, s.vocab) {
				closeOpen()
			}
			if !started {
				// The pre-case buffer belongs to the entity's first case.
				open = append(buffer, open...)
				buffer = nil
				started = true
			}
			open = append(open, e)

		case containsType(open, e.EventType):
			// Repetition signals a second independent lifecycle.
			closeOpen()
			open = []*model.Event{e}

		default:
			if started || len(open) > 0 {
				open = append(open, e)
			} else {
				buffer = append(buffer, e)
			}
		}
	}

	closeOpen()

	// No case-start ever seen: the whole buffer is one case.
	if len(cases) == 0 && len(buffer) > 0 {
		cases = append(cases, &model.Case{EntityID: entity, Events: buffer})
	}

	return cases
}

// Summary renders the one-line natural-language view of a case:
// entity, event chain, and the start/end timestamps.
func (s *Segmenter) Summary(c *model.Case) string {
	const layout = "2006-01-02 15:04"
	return fmt.Sprintf("%s · %s · %s → %s",
		c.EntityID,
		strings.Join(c.Sequence(), " → "),
		c.First().Timestamp.Format(layout),
		c.Last().Timestamp.Format(layout),
	)
}

// Explain renders the per-activity explanation: the vocabulary phrase
// plus the originating table, file and row.
func (s *Segmenter) Explain(e *model.Event) string {
	return fmt.Sprintf("%s (table %s, file %s, row %d)",
		s.vocab.Explain(e.EventType), e.Source.Table, e.Source.File, e.Source.Row)
}

// sortByTime sorts ascending by timestamp, stable on the discovery
// sequence for equal instants.
func sortByTime(events []*model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Seq() < events[j].Seq()
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}

func hasHints(events []*model.Event) bool {
	for _, e := range events {
		if e.CaseHint != "" {
			return true
		}
	}
	return false
}

func containsCaseStart(events []*model.Event, v *vocab.Vocabulary) bool {
	for _, e := range events {
		if v.IsCaseStart(e.EventType) {
			return true
		}
	}
	return false
}

func containsType(events []*model.Event, eventType string) bool {
	for _, e := range events {
		if e.EventType == eventType {
			return true
		}
	}
	return false
}
