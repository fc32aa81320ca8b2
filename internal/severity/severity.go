// ABOUTME: Severity levels and per-category policy configuration.
// ABOUTME: Severity codes double as the Nagios process exit codes.

package severity

import "fmt"

// Severity is an ordered status level. The numeric value is the process
// exit code reported to the monitoring framework.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical
	Unknown
)

// String returns the label used in detail lines and the summary prefix.
func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	case Unknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// Code returns the process exit code for this severity.
func (s Severity) Code() int {
	return int(s)
}

// Max returns the higher of two severities under OK < WARNING < CRITICAL < UNKNOWN.
// UNKNOWN sorts above CRITICAL so a collection failure always dominates the
// overall result.
func Max(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}

// ParseLetter maps a configured policy letter to a severity:
// "w" means WARNING, "c" means CRITICAL. Anything else is rejected.
func ParseLetter(letter string) (Severity, error) {
	switch letter {
	case "w":
		return Warning, nil
	case "c":
		return Critical, nil
	default:
		return Unknown, fmt.Errorf("invalid severity letter %q: must be 'w' or 'c'", letter)
	}
}

// CorePolicy maps WordPress core update types to severities.
type CorePolicy struct {
	Major Severity
	Minor Severity
}

// DefaultCorePolicy returns the stock policy: major updates are CRITICAL,
// minor updates are WARNING.
func DefaultCorePolicy() CorePolicy {
	return CorePolicy{Major: Critical, Minor: Warning}
}

// ForUpdateType returns the configured severity for a core update type.
// Update types other than "major" and "minor" do not occur in wp-cli
// output; they fall back to the major severity.
func (p CorePolicy) ForUpdateType(updateType string) Severity {
	if updateType == "minor" {
		return p.Minor
	}
	return p.Major
}
