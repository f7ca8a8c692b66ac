package types

// Execution statuses. StatusSkipped is reserved for operations whose
// if_exists policy explicitly requested no-op behavior; every other
// non-error completion is StatusSuccess.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// ResultSet is the ordered output of a select operation. Limit is the limit
// actually applied, nil when the select was unbounded.
type ResultSet struct {
	Columns  []string `json:"columns"`
	Rows     []Row    `json:"rows"`
	RowCount int      `json:"row_count"`
	Limit    *int     `json:"limit,omitempty"`
}

// ExecutionResult is the structured outcome of one attempted operation.
// Category is derived from Type, never set independently.
type ExecutionResult struct {
	ID           string     `json:"id"`
	Type         OpType     `json:"type"`
	Category     Category   `json:"category"`
	Status       Status     `json:"status"`
	Detail       string     `json:"detail"`
	RowsAffected int        `json:"rows_affected,omitempty"`
	Result       *ResultSet `json:"result,omitempty"`
}

// Plan is an ordered batch of operations, optionally annotated by the
// external planner that produced it.
type Plan struct {
	ID         string      `json:"id,omitempty"`
	Rationale  string      `json:"rationale,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
	Operations []Operation `json:"operations"`
}

// PlanResult aggregates the per-operation results of one plan run. Results
// preserves plan order and has one entry per operation regardless of
// individual failures. Summary reflects the cumulative effect of the
// operations that succeeded.
type PlanResult struct {
	PlanID   string            `json:"plan_id"`
	Results  []ExecutionResult `json:"results"`
	Warnings []string          `json:"warnings,omitempty"`
	Summary  DocumentSummary   `json:"summary"`
}
