package audit

import "time"

// Action describes what the visitor did.
type Action string

const (
	ActionCounterIncremented Action = "counter_incremented"
	ActionCounterDecremented Action = "counter_decremented"
	ActionCounterReset       Action = "counter_reset"
	ActionSumComputed        Action = "sum_computed"
	ActionContactSubmitted   Action = "contact_submitted"
	ActionContactRejected    Action = "contact_rejected"
	ActionFileUploaded       Action = "file_uploaded"
	ActionParamsUpdated      Action = "params_updated"
	ActionParamsCleared      Action = "params_cleared"
	ActionSessionEnded       Action = "session_ended"
)

// Entry is a single audit trail record.
type Entry struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	Action        Action    `json:"action"`
	Section       string    `json:"section"`
	Summary       string    `json:"summary"`
	PreviousValue string    `json:"previous_value,omitempty"`
	NewValue      string    `json:"new_value,omitempty"`
}
