package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"loan-evaluator/domain"
)

type modelDecision struct {
	Status *string `json:"status"`
	Reason *string `json:"reason"`
}

// Reconcile decodes the model's reply and replaces its user-facing message
// with the one mandated for mode.
func Reconcile(mode domain.Mode, content string) (domain.Decision, error) {
	policy, ok := PolicyFor(mode)
	if !ok {
		return domain.Decision{}, fmt.Errorf("no policy for mode %q", mode)
	}

	clean := stripCodeFences(content)
	if clean == "" {
		return domain.Decision{}, &ResponseFormatError{Content: content, Err: errors.New("empty content")}
	}

	var reply modelDecision
	if err := json.Unmarshal([]byte(clean), &reply); err != nil {
		return domain.Decision{}, &ResponseFormatError{Content: content, Err: err}
	}
	if reply.Status == nil {
		return domain.Decision{}, &ResponseFormatError{Content: content, Err: errors.New("status field missing")}
	}
	// A withheld reason arrives as "", never as an absent key.
	if reply.Reason == nil {
		return domain.Decision{}, &ResponseFormatError{Content: content, Err: errors.New("reason field missing")}
	}
	status, err := domain.ParseDecisionStatus(*reply.Status)
	if err != nil {
		return domain.Decision{}, &ResponseFormatError{Content: content, Err: err}
	}

	return domain.Decision{
		Status:   status,
		Reason:   strings.TrimSpace(*reply.Reason),
		UIReason: policy.UIReason,
	}, nil
}

// stripCodeFences removes a surrounding markdown fence and its language tag,
// whether or not the fence sits on its own line.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	body, fenced := strings.CutPrefix(s, "```")
	if !fenced {
		return s
	}
	// The language tag runs up to the first newline, space or the JSON itself.
	if i := strings.IndexAny(body, "\r\n \t{["); i >= 0 {
		body = body[i:]
	} else {
		body = ""
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
