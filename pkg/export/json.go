// Package export materializes analysis results as downstream
// artifacts: canonical JSON files, a Parquet activity table, a DuckDB
// warehouse and optional S3 uploads.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caseflow/caseflow/internal/model"
)

// Artifacts lists the files produced by one JSON export.
type Artifacts struct {
	ResultPath      string
	CaseDetailsPath string
	FlowGraphPath   string
}

// Paths returns all artifact paths in a fixed order.
func (a *Artifacts) Paths() []string {
	return []string{a.ResultPath, a.CaseDetailsPath, a.FlowGraphPath}
}

// WriteJSON writes the result and its two consumer views into dir.
// Output is byte-stable for identical results: slice orders are fixed
// upstream and map keys are sorted by the encoder.
func WriteJSON(dir string, result *model.AnalysisResult) (*Artifacts, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("export: create output dir: %w", err)
	}

	a := &Artifacts{
		ResultPath:      filepath.Join(dir, "result.json"),
		CaseDetailsPath: filepath.Join(dir, "case_details.json"),
		FlowGraphPath:   filepath.Join(dir, "flow_graph.json"),
	}

	if err := writeJSONFile(a.ResultPath, result); err != nil {
		return nil, err
	}
	if err := writeJSONFile(a.CaseDetailsPath, result.CaseDetails); err != nil {
		return nil, err
	}
	if err := writeJSONFile(a.FlowGraphPath, result.FlowGraph); err != nil {
		return nil, err
	}
	return a, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("export: rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
