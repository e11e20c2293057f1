package triage

import "strings"

// Severity is the authoritative classification of a triage verdict.
type Severity string

const (
	SeverityLow       Severity = "LOW"
	SeverityModerate  Severity = "MODERATE"
	SeverityEmergency Severity = "EMERGENCY"
)

// IsEmergency reports whether a verdict severity escalates the session.
// The comparison ignores surrounding whitespace and letter case; the stored
// value keeps whatever casing the model produced.
func IsEmergency(severity string) bool {
	return strings.EqualFold(strings.TrimSpace(severity), string(SeverityEmergency))
}
