package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/caseflow/caseflow/internal/model"
)

// Warehouse writes analysis results into a DuckDB database so BI tools
// can query cases and transitions with SQL.
type Warehouse struct {
	db *sql.DB
}

// OpenWarehouse opens (or creates) the DuckDB database at path and
// ensures the schema exists.
func OpenWarehouse(path string) (*Warehouse, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("export: open duckdb: %w", err)
	}

	w := &Warehouse{db: db}
	if err := w.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Warehouse) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cases (
			run_id VARCHAR NOT NULL,
			case_id INTEGER NOT NULL,
			entity_id VARCHAR NOT NULL,
			first_timestamp TIMESTAMP NOT NULL,
			last_timestamp TIMESTAMP NOT NULL,
			summary VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS case_activities (
			run_id VARCHAR NOT NULL,
			case_id INTEGER NOT NULL,
			ordinal INTEGER NOT NULL,
			event_type VARCHAR NOT NULL,
			ts TIMESTAMP NOT NULL,
			source_table VARCHAR NOT NULL,
			source_file VARCHAR NOT NULL,
			source_row INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS flow_nodes (
			run_id VARCHAR NOT NULL,
			node_id INTEGER NOT NULL,
			name VARCHAR NOT NULL,
			display_label VARCHAR NOT NULL,
			position DOUBLE NOT NULL,
			frequency INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS flow_edges (
			run_id VARCHAR NOT NULL,
			source INTEGER NOT NULL,
			target INTEGER NOT NULL,
			transition_count INTEGER NOT NULL,
			from_label VARCHAR NOT NULL,
			to_label VARCHAR NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := w.db.Exec(stmt); err != nil {
			return fmt.Errorf("export: create schema: %w", err)
		}
	}
	return nil
}

// Store writes one run's cases and graph. All inserts happen in a
// single transaction keyed by the run id.
func (w *Warehouse) Store(ctx context.Context, result *model.AnalysisResult) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, d := range result.CaseDetails {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cases VALUES (?, ?, ?, ?, ?, ?)`,
			result.RunID, d.CaseID, d.EntityID, d.FirstTimestamp, d.LastTimestamp, d.Summary,
		); err != nil {
			return fmt.Errorf("export: insert case %d: %w", d.CaseID, err)
		}
		for i, a := range d.Activities {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO case_activities VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				result.RunID, d.CaseID, i, a.EventType, a.Timestamp,
				a.Source.Table, a.Source.File, a.Source.Row,
			); err != nil {
				return fmt.Errorf("export: insert activity: %w", err)
			}
		}
	}

	if g := result.FlowGraph; g != nil {
		for _, n := range g.Nodes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO flow_nodes VALUES (?, ?, ?, ?, ?, ?)`,
				result.RunID, n.ID, n.Name, n.DisplayLabel, n.Position, n.Frequency,
			); err != nil {
				return fmt.Errorf("export: insert node: %w", err)
			}
		}
		for _, e := range g.Edges {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO flow_edges VALUES (?, ?, ?, ?, ?, ?)`,
				result.RunID, e.Source, e.Target, e.Count, e.FromLabel, e.ToLabel,
			); err != nil {
				return fmt.Errorf("export: insert edge: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (w *Warehouse) Close() error {
	return w.db.Close()
}
