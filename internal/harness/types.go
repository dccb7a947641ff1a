package harness

// TraceEvent is one entry of a scenario run's trace: a dispatched call or
// the teardown check. Args and Result hold canonical JSON so golden
// comparison is byte-stable.
type TraceEvent struct {
	Type    string `json:"type"` // "call" or "teardown"
	Seq     int64  `json:"seq"`
	Call    string `json:"call,omitempty"`
	Args    string `json:"args,omitempty"`
	Outcome string `json:"outcome"`
	Matched string `json:"matched,omitempty"`
	Result  string `json:"result,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every call step and the teardown produced its
	// wanted outcome and all assertions held.
	Pass bool `json:"pass"`

	// Trace contains every dispatched call and the teardown, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// SessionID is the journal session the run recorded into.
	SessionID string `json:"session_id"`
}

// NewResult creates a passing result to accumulate into.
func NewResult(sessionID string) *Result {
	return &Result{
		Pass:      true,
		Trace:     []TraceEvent{},
		Errors:    []string{},
		SessionID: sessionID,
	}
}

// AddError records a validation error and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
