// Package resolve picks the timestamp-bearing column pair for a table
// and turns rows into instants. Column choice happens once per table;
// per-row parsing is a total function over surviving rows - a row either
// yields exactly one instant or is dropped, never an error.
package resolve

import (
	"strings"
	"time"

	"github.com/caseflow/caseflow/internal/timeparse"
	"github.com/caseflow/caseflow/pkg/table"
	"github.com/caseflow/caseflow/pkg/vocab"
)

const (
	// sampleSize caps how many non-null values are parsed when probing a
	// candidate column.
	sampleSize = 10

	// minParseRate is the fraction of sampled values that must parse for
	// a column to count as timestamp-bearing.
	minParseRate = 0.5
)

// Generic column names accepted verbatim when no vocabulary keyword
// matches.
var genericNames = []string{
	"date", "timestamp", "datetime", "created_at", "updated_at",
	"event_date", "event_time", "time",
}

// Resolution is the per-table outcome: the chosen date column, an
// optional paired time-of-day column, and the detected day/month order.
type Resolution struct {
	Table      *table.Table
	DateColumn string
	DateIndex  int
	TimeColumn string
	TimeIndex  int
	Order      timeparse.Order
}

// Resolve chooses the timestamp column pair for a table. It reports
// false when no column qualifies; the table then contributes no events.
//
// Priority, first success wins:
//  1. column name contains a vocabulary timestamp keyword, is not
//     excluded, and a value sample parses
//  2. column name exactly equals a generic timestamp name
//  3. column name contains date/time/timestamp and a value sample parses
//  4. first column whose value sample parses, regardless of name
//
// Ties at every step go to the earlier declared column.
func Resolve(t *table.Table, v *vocab.Vocabulary) (*Resolution, bool) {
	// Rule 1: vocabulary keyword match.
	for i, col := range t.Columns {
		name := normalize(col)
		if !containsAny(name, v.TimestampKeywords) {
			continue
		}
		if containsAny(name, v.TimestampExclusions) {
			continue
		}
		if order, ok := sampleParses(t, i); ok {
			return pairTime(t, i, order), true
		}
	}

	// Rule 2: exact generic name.
	for i, col := range t.Columns {
		name := normalize(col)
		for _, g := range genericNames {
			if name == g {
				order, _ := sampleParses(t, i)
				return pairTime(t, i, order), true
			}
		}
	}

	// Rule 3: date/time substring, still parseable.
	for i, col := range t.Columns {
		name := normalize(col)
		if !strings.Contains(name, "date") && !strings.Contains(name, "time") {
			continue
		}
		if order, ok := sampleParses(t, i); ok {
			return pairTime(t, i, order), true
		}
	}

	// Rule 4: first parseable column of any name.
	for i := range t.Columns {
		if order, ok := sampleParses(t, i); ok {
			return pairTime(t, i, order), true
		}
	}

	return nil, false
}

// Instant resolves row i to a single instant. If a time column is
// paired, the date's calendar part is combined with the time value,
// falling back to the date-only parse (implicit midnight) when the
// combination fails. Rows whose date value does not parse are dropped.
func (r *Resolution) Instant(row int) (time.Time, bool) {
	view := r.Table.View(row)

	raw, ok := view.Cell(r.DateIndex)
	if !ok {
		return time.Time{}, false
	}
	t, ok := timeparse.ParseOrdered(raw, r.Order)
	if !ok {
		return time.Time{}, false
	}

	if r.TimeColumn != "" {
		if clock, ok := view.Cell(r.TimeIndex); ok {
			if combined, ok := timeparse.Combine(t, clock); ok {
				return combined, true
			}
		}
	}

	return t, true
}

// pairTime looks for a separate time-only column to pair with the
// chosen date column: name contains "time", not "timestamp", and it is
// a different column.
func pairTime(t *table.Table, dateIdx int, order timeparse.Order) *Resolution {
	r := &Resolution{
		Table:      t,
		DateColumn: t.Columns[dateIdx],
		DateIndex:  dateIdx,
		TimeIndex:  -1,
		Order:      order,
	}

	for i, col := range t.Columns {
		if i == dateIdx {
			continue
		}
		name := normalize(col)
		if strings.Contains(name, "time") && !strings.Contains(name, "timestamp") {
			r.TimeColumn = t.Columns[i]
			r.TimeIndex = i
			break
		}
	}

	return r
}

// sampleParses probes up to sampleSize non-null values of column idx.
// It returns the detected day/month order and whether at least half of
// the sampled values parse as instants.
func sampleParses(t *table.Table, idx int) (timeparse.Order, bool) {
	detector := timeparse.NewOrderDetector(sampleSize)
	var samples []string

	for row := 0; row < len(t.Rows) && len(samples) < sampleSize; row++ {
		if val, ok := t.View(row).Cell(idx); ok {
			samples = append(samples, val)
			detector.Add(val)
		}
	}
	if len(samples) == 0 {
		return timeparse.OrderYMD, false
	}

	order := detector.Detect()
	parsed := 0
	for _, s := range samples {
		if _, ok := timeparse.ParseOrdered(s, order); ok {
			parsed++
		}
	}

	return order, float64(parsed) >= minParseRate*float64(len(samples))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func containsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(name, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
