package model

import (
	"fmt"
	"strings"
)

// Severity represents how strongly a rule violation blocks publication.
//
// Only two levels exist: a WARNING should be reviewed before publishing,
// an ERROR must be fixed. The zero value is SeverityWarning so that a rule
// declared without an explicit severity never escalates a run.
type Severity int

const (
	// SeverityWarning marks violations that should be reviewed.
	// Examples: extra entries in the managed metadata directory,
	// undocumented features, camera metadata in images.
	SeverityWarning Severity = iota

	// SeverityError marks violations that must be fixed before publishing.
	// Examples: incomplete .gitignore, unmasked home paths, private keys.
	SeverityError
)

// String returns the upper-case label used in console output.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the severity as the lower-case label stored in
// report artifacts ("warning" or "error").
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityWarning, SeverityError:
		return []byte(strings.ToLower(s.String())), nil
	default:
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
}

// UnmarshalText decodes a severity label, case-insensitively.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a label such as "warning" or "ERROR" to a Severity.
func ParseSeverity(label string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityWarning, fmt.Errorf("unknown severity %q", label)
	}
}
