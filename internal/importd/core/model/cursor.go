package model

import "time"

// batchSizes is the fixed set of batch sizes operators may select.
var batchSizes = []int{10, 20, 30, 50}

// ValidBatchSize reports whether size is one of the allowed batch sizes.
func ValidBatchSize(size int) bool {
	for _, s := range batchSizes {
		if s == size {
			return true
		}
	}
	return false
}

// BatchSizes returns the allowed batch sizes.
func BatchSizes() []int {
	out := make([]int, len(batchSizes))
	copy(out, batchSizes)
	return out
}

// ImportCursor is the persisted position of the incremental import.
//
// Offset only ever grows, except for an explicit reset to 0. The page the
// next batch reads is derived for the current batch size; changing the batch
// size changes which page comes next, there is no offset migration.
type ImportCursor struct {
	Offset    int  `json:"offset"`
	BatchSize int  `json:"batch_size"`
	Paused    bool `json:"paused"`
}

// Page returns the 1-based upstream page the next batch run reads.
func (c ImportCursor) Page() int {
	if c.BatchSize <= 0 {
		return 1
	}
	return c.Offset/c.BatchSize + 1
}

// LogLine is one appended operator log entry.
type LogLine struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// ImportEvent is published after each vehicle import attempt.
type ImportEvent struct {
	VIN    string    `json:"vin"`
	Action string    `json:"action"` // "created" or "skipped"
	Title  string    `json:"title,omitempty"`
	Time   time.Time `json:"time"`
}

const (
	// ActionCreated marks a newly created catalog entry.
	ActionCreated = "created"
	// ActionSkipped marks an idempotent duplicate skip.
	ActionSkipped = "skipped"
)
