package domain

import "time"

// AuditRecord captures one evaluation attempt for later comparison between
// modes. It lives outside the engine.
type AuditRecord struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Mode      Mode        `json:"mode"`
	Prompt    string      `json:"prompt"`
	Outcome   string      `json:"outcome"`
	Error     string      `json:"error,omitempty"`
	Result    *Evaluation `json:"result,omitempty"`
}

const (
	OutcomeDecided  = "decided"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)
