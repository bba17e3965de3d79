package model

import "time"

// FlowNode is one event type aggregated across all cases.
type FlowNode struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	DisplayLabel string  `json:"display_label"`
	Position     float64 `json:"position"`
	Frequency    int     `json:"frequency"`
}

// FlowEdge is one observed transition between two event types.
// Source and Target index into the owning graph's node list.
type FlowEdge struct {
	Source    int    `json:"source"`
	Target    int    `json:"target"`
	Count     int    `json:"count"`
	FromLabel string `json:"from_label"`
	ToLabel   string `json:"to_label"`
	CaseIDs   []int  `json:"case_ids"`
}

// FlowMetadata summarizes a flow graph.
type FlowMetadata struct {
	TotalCases       int `json:"total_cases"`
	TotalTransitions int `json:"total_transitions"`
	UniquePaths      int `json:"unique_paths"`
	UniqueEntities   int `json:"unique_entities"`
}

// FlowGraph is the aggregated node/edge view of all cases.
// HasTransitions distinguishes "drawn but empty" from "nothing to draw":
// it is false when no case contributed at least one adjacent pair.
type FlowGraph struct {
	Nodes          []FlowNode   `json:"nodes"`
	Edges          []FlowEdge   `json:"edges"`
	Metadata       FlowMetadata `json:"metadata"`
	HasTransitions bool         `json:"has_transitions"`
}

// Activity is one event inside a CaseDetail, shaped for consumers.
type Activity struct {
	EventType   string            `json:"event_type"`
	Timestamp   time.Time         `json:"timestamp"`
	Source      Source            `json:"source"`
	Explanation string            `json:"explanation"`
	RawRow      map[string]string `json:"raw_row"`
}

// CaseDetail is the downstream-facing view of one Case.
type CaseDetail struct {
	CaseID         int        `json:"case_id"`
	EntityID       string     `json:"entity_id"`
	FirstTimestamp time.Time  `json:"first_timestamp"`
	LastTimestamp  time.Time  `json:"last_timestamp"`
	Summary        string     `json:"summary"`
	Activities     []Activity `json:"activities"`
	EventSequence  []string   `json:"event_sequence"`
}

// AnalysisResult is the full outcome of one engine run.
// Success is false only for the structured "no usable data" outcome;
// TablesChecked then lists every table that was examined.
type AnalysisResult struct {
	Success       bool          `json:"success"`
	RunID         string        `json:"run_id"`
	Dataset       string        `json:"dataset"`
	Reason        string        `json:"reason,omitempty"`
	TablesChecked []string      `json:"tables_checked"`
	CaseDetails   []CaseDetail  `json:"case_details"`
	FlowGraph     *FlowGraph    `json:"flow_graph,omitempty"`
	Elapsed       time.Duration `json:"elapsed_ns"`
}
