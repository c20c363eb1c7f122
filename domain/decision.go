package domain

import (
	"fmt"
	"strings"
)

type DecisionStatus string

const (
	StatusApproved DecisionStatus = "Approved"
	StatusDenied   DecisionStatus = "Denied"
)

// ParseDecisionStatus accepts the two statuses in any letter case.
func ParseDecisionStatus(s string) (DecisionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return StatusApproved, nil
	case "denied":
		return StatusDenied, nil
	}
	return "", fmt.Errorf("unknown decision status %q", s)
}

type Decision struct {
	Status DecisionStatus `json:"status"`
	// Reason is the model's own rationale, empty when it withheld one.
	Reason string `json:"reason,omitempty"`
	// UIReason is the short message shown to the applicant.
	UIReason string `json:"uiReason"`
}
