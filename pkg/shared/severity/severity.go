// Package severity provides unified severity level definitions and mappings
// for disclosure findings and environmental events across SDK and Backend.
//
// IMPORTANT: This package is shared between greenlens-sdk and greenlens-api.
// Any changes must be backward compatible or coordinated across both projects.
package severity

import "strings"

// Level represents the severity of a validation finding.
type Level string

const (
	// Critical - a hard credibility or compliance problem that must be addressed.
	Critical Level = "critical"

	// Warning - a gap or inconsistency that weakens the disclosure.
	Warning Level = "warning"

	// Info - informational note, no direct score impact.
	Info Level = "info"

	// Unknown - severity could not be determined.
	Unknown Level = "unknown"
)

// AllLevels returns all finding severity levels in order of priority (highest first).
func AllLevels() []Level {
	return []Level{Critical, Warning, Info, Unknown}
}

// String returns the string representation of the severity level.
func (l Level) String() string {
	return string(l)
}

// Priority returns the numeric priority of the severity level.
// Higher numbers = higher priority.
func (l Level) Priority() int {
	switch l {
	case Critical:
		return 3
	case Warning:
		return 2
	case Info:
		return 1
	default:
		return 0
	}
}

// IsHigherThan returns true if this severity is higher than the other.
func (l Level) IsHigherThan(other Level) bool {
	return l.Priority() > other.Priority()
}

// IsAtLeast returns true if this severity is at least as high as the other.
func (l Level) IsAtLeast(other Level) bool {
	return l.Priority() >= other.Priority()
}

// FromString normalizes severity strings from external data to a standard Level.
func FromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL", "CRIT", "SEVERE":
		return Critical
	case "WARNING", "WARN", "MEDIUM", "MODERATE":
		return Warning
	case "INFO", "INFORMATIONAL", "NOTE", "LOW", "NONE":
		return Info
	default:
		return Unknown
	}
}

// EventLevel represents the severity of an environmental event extracted
// from news coverage. The scale follows common incident tiers rather than
// the finding scale.
type EventLevel string

const (
	EventCritical EventLevel = "critical"
	EventHigh     EventLevel = "high"
	EventMedium   EventLevel = "medium"
	EventLow      EventLevel = "low"
)

// String returns the string representation of the event severity.
func (l EventLevel) String() string {
	return string(l)
}

// Priority returns the numeric priority of the event severity.
func (l EventLevel) Priority() int {
	switch l {
	case EventCritical:
		return 4
	case EventHigh:
		return 3
	case EventMedium:
		return 2
	case EventLow:
		return 1
	default:
		return 0
	}
}

// EventFromString normalizes event severity strings from extraction output.
// Unknown values default to EventMedium so a sloppy extraction never drops
// an event on the floor.
func EventFromString(s string) EventLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return EventCritical
	case "high":
		return EventHigh
	case "medium":
		return EventMedium
	case "low":
		return EventLow
	default:
		return EventMedium
	}
}

// Finding maps an event severity tier to the finding severity used for
// contradictions derived from that event: critical events stay critical,
// high and medium events become warnings, low events are informational.
func (l EventLevel) Finding() Level {
	switch l {
	case EventCritical:
		return Critical
	case EventHigh, EventMedium:
		return Warning
	case EventLow:
		return Info
	default:
		return Warning
	}
}
