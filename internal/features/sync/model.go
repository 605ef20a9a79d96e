package sync

import "time"

// State is the resumable position carried between invocations by the
// hosting runtime. At most one field is set: a cursor continues the current
// page sequence, a watermark starts the next incremental cycle, and neither
// means a true first run. The orchestrator creates and consumes it; it is
// never persisted here.
type State struct {
	Cursor       *string    `json:"cursor,omitempty"`
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`
}

// Record is one relational-bound row, constructed fresh per cycle iteration
// and written once via upsert.
type Record struct {
	ID       string
	Content  string
	SyncedAt time.Time
	Values   map[string]interface{}
}

// CycleResult is what one invocation reports back to its host.
type CycleResult struct {
	Processed     int      `json:"processed"`
	Errors        int      `json:"errors"`
	ErrorMessages []string `json:"error_messages,omitempty"`
	NextState     *State   `json:"next_state,omitempty"`
	HasMore       bool     `json:"has_more"`
}
