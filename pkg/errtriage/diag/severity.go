package diag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSeverity is returned by ParseSeverity for values outside the four tiers.
var ErrInvalidSeverity = errors.New("invalid severity")

// Severity is a coarse urgency tier attached to every Record.
type Severity string

// Severity tiers, lowest to highest.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities returns all tiers in ascending order.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Valid reports whether s is one of the four defined tiers.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a tier name case-insensitively.
func ParseSeverity(v string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q (want low, medium, high or critical)", ErrInvalidSeverity, v)
	}
	return s, nil
}
