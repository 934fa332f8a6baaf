package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from EventType, never from request data.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap maps event types to their severity levels
var EventSeverityMap = map[EventType]Severity{
	// Bots and stale pages, expected background noise
	EventHoneypotTriggered: SeverityINFO,
	EventUnknownForm:       SeverityINFO,

	// A client skipped or bypassed the form's own checks
	EventValidationFailed:   SeverityMEDIUM,
	EventRateLimitTriggered: SeverityMEDIUM,

	// Accepted submission that was lost
	EventDispatchFailed: SeverityHIGH,
}

// GetSeverity returns the severity for an event type.
// Unmapped event types default to MEDIUM.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove returns true if the event needs operator attention
func IsHighOrAbove(eventType EventType) bool {
	return GetSeverity(eventType) == SeverityHIGH
}

// level maps a severity onto the zap level it is written at
func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
