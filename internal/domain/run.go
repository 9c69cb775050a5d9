package domain

import "time"

// ProcessingRun is the audit record of one pipeline execution. It is
// created when a run starts, filled in stage by stage, and written to
// storage at most once when the run completes.
type ProcessingRun struct {
	RunID            string         `json:"run_id"`
	InputImagePath   string         `json:"input_image_path"`
	FilterResult     *bool          `json:"filter_result"`
	SummaryResult    *string        `json:"summary_result"`
	StructuredResult *EventInfo     `json:"structured_result"`
	Timestamp        time.Time      `json:"timestamp"`
	Config           map[string]any `json:"config"`
}

// PartitionKey is the date-only storage partition the run belongs to.
func (r ProcessingRun) PartitionKey() string {
	return r.Timestamp.Format(dateLayout)
}

// RunSummary is a lightweight view of a persisted run, served from the
// run index rather than the on-disk run tree.
type RunSummary struct {
	RunID     string    `json:"run_id"`
	ImagePath string    `json:"image_path"`
	HasResult bool      `json:"has_result"`
	CreatedAt time.Time `json:"created_at"`
}
