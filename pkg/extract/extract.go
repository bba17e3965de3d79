// Package extract turns table rows into events: an entity id, an
// optional explicit case hint, and a canonical event-type label.
//
// Event-type inference is a total function - the priority chain ends in
// the vocabulary's default label, so every surviving row produces a
// non-empty event type.
package extract

import (
	"sort"
	"strings"

	"github.com/caseflow/caseflow/internal/model"
	"github.com/caseflow/caseflow/pkg/resolve"
	"github.com/caseflow/caseflow/pkg/table"
	"github.com/caseflow/caseflow/pkg/vocab"
)

// sampleSize caps how many values are inspected when deciding whether a
// declared event column speaks the vocabulary.
const sampleSize = 10

// EntityUnknown is the entity id assigned to rows with no identifier.
const EntityUnknown = "unknown"

// Suffixes stripped from a timestamp column name before the
// column-name -> event-label lookup.
var timestampSuffixes = []string{
	"_timestamp", "_datetime", "_date", "_time", "_at", "_on",
	"timestamp", "datetime", "date", "time",
}

// Extractor derives events for one table using a fixed vocabulary.
type Extractor struct {
	vocab *vocab.Vocabulary
}

// New creates an extractor for the given vocabulary.
func New(v *vocab.Vocabulary) *Extractor {
	return &Extractor{vocab: v}
}

// tablePlan holds the per-table column decisions, made once.
type tablePlan struct {
	entityColumns []int // ranked identifier column candidates
	caseColumn    int   // explicit case id column, -1 if none
	eventColumn   int   // declared event column, -1 if not usable
	derivedLabel  string
}

// Events extracts one event per surviving row of the table. Rows whose
// timestamp does not resolve are dropped, not errors.
func (x *Extractor) Events(t *table.Table, res *resolve.Resolution) []*model.Event {
	plan := x.plan(t, res)

	events := make([]*model.Event, 0, len(t.Rows))
	for i := range t.Rows {
		ts, ok := res.Instant(i)
		if !ok {
			continue
		}
		view := t.View(i)

		events = append(events, &model.Event{
			EntityID:  x.entityID(view, plan),
			CaseHint:  x.caseHint(view, plan),
			EventType: x.eventType(view, plan),
			Timestamp: ts,
			Source: model.Source{
				Table: t.Name,
				File:  t.File,
				Row:   i,
			},
			RawRow: view.Snapshot(),
		})
	}

	return events
}

// plan makes the once-per-table column decisions.
func (x *Extractor) plan(t *table.Table, res *resolve.Resolution) tablePlan {
	p := tablePlan{caseColumn: -1, eventColumn: -1}

	// Ranked identifier candidates: pattern list order first, exact
	// name match before substring match within each pattern.
	seen := make(map[int]bool)
	for _, pattern := range x.vocab.EntityIDPatterns {
		pat := strings.ToLower(pattern)
		for i, col := range t.Columns {
			if !seen[i] && strings.ToLower(col) == pat {
				p.entityColumns = append(p.entityColumns, i)
				seen[i] = true
			}
		}
		for i, col := range t.Columns {
			if !seen[i] && strings.Contains(strings.ToLower(col), pat) {
				p.entityColumns = append(p.entityColumns, i)
				seen[i] = true
			}
		}
	}

	// Explicit case/session/journey id column, by name.
	for _, pattern := range x.vocab.CaseIDPatterns {
		pat := strings.ToLower(pattern)
		for i, col := range t.Columns {
			name := strings.ToLower(col)
			if name == pat || strings.Contains(name, pat) {
				p.caseColumn = i
				break
			}
		}
		if p.caseColumn >= 0 {
			break
		}
	}

	// Declared event column, accepted only when its sampled values speak
	// the vocabulary (>=2 trigger-token hits) or look like multi-word
	// labels.
	for i, col := range t.Columns {
		if i == res.DateIndex || !x.isEventColumnName(col) {
			continue
		}
		if x.columnSpeaksVocabulary(t, i) {
			p.eventColumn = i
			break
		}
	}

	p.derivedLabel = x.deriveFromColumnName(res.DateColumn)

	return p
}

func (x *Extractor) isEventColumnName(col string) bool {
	name := strings.ToLower(col)
	for _, candidate := range x.vocab.EventColumnNames {
		c := strings.ToLower(candidate)
		if name == c || strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// columnSpeaksVocabulary samples the column's values and counts
// distinct trigger-token hits and separator-bearing values.
func (x *Extractor) columnSpeaksVocabulary(t *table.Table, idx int) bool {
	tokens := x.vocab.TriggerTokens()
	hits := make(map[string]bool)
	separators := 0
	sampled := 0

	for row := 0; row < len(t.Rows) && sampled < sampleSize; row++ {
		val, ok := t.View(row).Cell(idx)
		if !ok {
			continue
		}
		sampled++
		lower := strings.ToLower(val)
		for _, tok := range tokens {
			if tok != "" && strings.Contains(lower, strings.ToLower(tok)) {
				hits[tok] = true
			}
		}
		if strings.ContainsAny(val, "_- ") {
			separators++
		}
	}

	if sampled == 0 {
		return false
	}
	return len(hits) >= 2 || separators > 0
}

// entityID probes the ranked identifier columns for the first non-empty
// value; rows with none belong to the "unknown" entity.
func (x *Extractor) entityID(view table.RowView, plan tablePlan) string {
	for _, idx := range plan.entityColumns {
		if val, ok := view.Cell(idx); ok {
			return val
		}
	}
	return EntityUnknown
}

// caseHint captures the explicit case id value when the table has one.
func (x *Extractor) caseHint(view table.RowView, plan tablePlan) string {
	if plan.caseColumn < 0 {
		return ""
	}
	val, _ := view.Cell(plan.caseColumn)
	return val
}

// eventType runs the inference chain: declared event column, row value
// scan, timestamp-column-name derivation, vocabulary default.
func (x *Extractor) eventType(view table.RowView, plan tablePlan) string {
	// Rule 1: declared event column value, normalized and mapped to the
	// nearest canonical label.
	if plan.eventColumn >= 0 {
		if val, ok := view.Cell(plan.eventColumn); ok {
			return x.vocab.Canonical(normalizeLabel(val))
		}
	}

	// Rule 2: first row value containing a vocabulary trigger, in
	// declared column order.
	for i := 0; i < view.Width(); i++ {
		val, ok := view.Cell(i)
		if !ok {
			continue
		}
		if label, hit := x.vocab.TriggerFor(val); hit {
			return label
		}
	}

	// Rule 3: label derived from the timestamp column's own name.
	if plan.derivedLabel != "" {
		return plan.derivedLabel
	}

	// Rule 4: the vocabulary default. Never fails.
	return x.vocab.DefaultLabel
}

// deriveFromColumnName strips date/time suffixes from a timestamp
// column name and looks the stem up in the vocabulary's column-name
// table, exact match first, then substring.
func (x *Extractor) deriveFromColumnName(column string) string {
	stem := strings.ToLower(strings.TrimSpace(column))
	for _, suffix := range timestampSuffixes {
		stem = strings.TrimSuffix(stem, suffix)
	}
	stem = strings.Trim(stem, "_- ")
	if stem == "" {
		return ""
	}

	names := make([]string, 0, len(x.vocab.ColumnEvents))
	for name := range x.vocab.ColumnEvents {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.ToLower(name) == stem {
			return x.vocab.ColumnEvents[name]
		}
	}
	for _, name := range names {
		n := strings.ToLower(name)
		if strings.Contains(stem, n) || strings.Contains(n, stem) {
			return x.vocab.ColumnEvents[name]
		}
	}
	return ""
}

// normalizeLabel converts separators to spaces and title-cases words.
func normalizeLabel(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(s)
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
