package service

import (
	"fmt"
	"strings"
)

// ValidationError reports required parameters that are missing or unusable.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// TemplateError is raised while building a prompt composer whose template
// cannot be rendered safely.
type TemplateError struct {
	Slot string
	Err  error
}

func (e *TemplateError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("prompt template: slot %q not found", e.Slot)
	}
	return fmt.Sprintf("prompt template: %v", e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// TransportError wraps a failed call to the completion service.
type TransportError struct {
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion service returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseFormatError means the completion reply did not carry a usable
// decision.
type ResponseFormatError struct {
	Content string
	Err     error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("unexpected completion reply: %v", e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }
