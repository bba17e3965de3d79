// Package engine orchestrates a full analysis run: per-table timestamp
// resolution and event extraction, stream merge, case segmentation and
// flow graph aggregation.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/caseflow/caseflow/internal/model"
	"github.com/caseflow/caseflow/pkg/extract"
	"github.com/caseflow/caseflow/pkg/flow"
	"github.com/caseflow/caseflow/pkg/resolve"
	"github.com/caseflow/caseflow/pkg/segment"
	"github.com/caseflow/caseflow/pkg/table"
	"github.com/caseflow/caseflow/pkg/telemetry"
	"github.com/caseflow/caseflow/pkg/vocab"
)

// Engine runs analyses for one vocabulary. It holds no per-run state,
// so a single engine can serve concurrent runs.
type Engine struct {
	vocab     *vocab.Vocabulary
	extractor *extract.Extractor
	segmenter *segment.Segmenter
}

// New creates an engine. The vocabulary must already be validated.
func New(v *vocab.Vocabulary) *Engine {
	return &Engine{
		vocab:     v,
		extractor: extract.New(v),
		segmenter: segment.New(v),
	}
}

// Analyze reconstructs cases and the flow graph from the dataset's
// tables. Tables that yield no timestamp column or whose rows all fail
// to parse contribute nothing; when no table contributes any event the
// result is the structured failure outcome, not an error. The only
// error returned is context cancellation.
func (e *Engine) Analyze(ctx context.Context, dataset string, tables []*table.Table) (*model.AnalysisResult, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "engine.analyze")
	defer span.End()

	result := &model.AnalysisResult{
		RunID:   uuid.NewString(),
		Dataset: dataset,
	}
	for _, t := range tables {
		result.TablesChecked = append(result.TablesChecked, t.Name)
	}
	span.SetAttributes(
		attribute.String("run.id", result.RunID),
		attribute.Int("tables.count", len(tables)),
	)

	events, err := e.extractAll(ctx, tables)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	if len(events) == 0 {
		result.Reason = fmt.Sprintf("no events could be extracted from %d table(s)", len(tables))
		result.Elapsed = time.Since(start)
		telemetry.AddEvent(ctx, "no usable events")
		return result, nil
	}

	_, segSpan := telemetry.StartSpan(ctx, "engine.segment")
	cases := e.segmenter.Segment(events)
	segSpan.SetAttributes(attribute.Int("cases.count", len(cases)))
	segSpan.End()

	_, flowSpan := telemetry.StartSpan(ctx, "engine.flow")
	graph := flow.Build(cases)
	flowSpan.SetAttributes(attribute.Int("transitions.count", graph.Metadata.TotalTransitions))
	flowSpan.End()

	result.Success = true
	result.CaseDetails = e.caseDetails(cases)
	result.FlowGraph = graph
	result.Elapsed = time.Since(start)
	return result, nil
}

// extractAll resolves and extracts each table concurrently, then merges
// the per-table streams in declared table order and numbers events with
// a global discovery sequence. The merge order, not goroutine timing,
// decides all downstream tie-breaks.
func (e *Engine) extractAll(ctx context.Context, tables []*table.Table) ([]*model.Event, error) {
	perTable := make([][]*model.Event, len(tables))

	g, ctx := errgroup.WithContext(ctx)
	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, span := telemetry.StartSpan(ctx, "engine.extract")
			defer span.End()
			span.SetAttributes(attribute.String("table.name", t.Name))

			res, ok := resolve.Resolve(t, e.vocab)
			if !ok {
				telemetry.AddEvent(ctx, "no timestamp column",
					attribute.String("table.name", t.Name))
				return nil
			}
			perTable[i] = e.extractor.Events(t, res)
			span.SetAttributes(attribute.Int("events.count", len(perTable[i])))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []*model.Event
	for _, te := range perTable {
		events = append(events, te...)
	}
	for i, ev := range events {
		ev.SetSeq(i)
	}
	return events, nil
}

// caseDetails shapes finalized cases for consumers, attaching the
// natural-language summary and per-activity explanations.
func (e *Engine) caseDetails(cases []*model.Case) []model.CaseDetail {
	details := make([]model.CaseDetail, 0, len(cases))
	for _, c := range cases {
		d := model.CaseDetail{
			CaseID:         c.ID,
			EntityID:       c.EntityID,
			FirstTimestamp: c.First().Timestamp,
			LastTimestamp:  c.Last().Timestamp,
			Summary:        e.segmenter.Summary(c),
			EventSequence:  c.Sequence(),
		}
		for _, ev := range c.Events {
			d.Activities = append(d.Activities, model.Activity{
				EventType:   ev.EventType,
				Timestamp:   ev.Timestamp,
				Source:      ev.Source,
				Explanation: e.segmenter.Explain(ev),
				RawRow:      ev.RawRow,
			})
		}
		details = append(details, d)
	}
	return details
}
