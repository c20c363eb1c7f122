package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects the evaluator persona.
type Mode string

const (
	ModeUnbiased Mode = "unbiased"
	ModeBiased   Mode = "biased"
)

// ParseMode accepts the canonical names as well as the "good"/"bad" bot aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unbiased", "good", "goodbot", "good-bot":
		return ModeUnbiased, nil
	case "biased", "bad", "badbot", "bad-bot":
		return ModeBiased, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

func (m Mode) Valid() bool {
	return m == ModeUnbiased || m == ModeBiased
}

func (m Mode) String() string { return string(m) }

// UnmarshalText leaves an empty mode empty so callers can apply their default.
func (m *Mode) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*m = ""
		return nil
	}
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// YesNo is a boolean that also decodes from the "yes"/"no" strings used by
// the evaluator form.
type YesNo bool

func (y *YesNo) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*y = YesNo(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("bankruptcies must be a boolean or yes/no: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true":
		*y = true
	case "no", "false", "":
		*y = false
	default:
		return fmt.Errorf("bankruptcies must be yes or no, got %q", s)
	}
	return nil
}
