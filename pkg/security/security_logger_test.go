package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@x.com", MaskEmail("jane@x.com"))
	assert.Equal(t, "***@x.com", MaskEmail("j@x.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "***", MaskEmail("noemail"))
	assert.Equal(t, "***@x.com", MaskEmail("@x.com"))
}

func TestHashValueIsStable(t *testing.T) {
	assert.Equal(t, HashValue("1.2.3.4"), HashValue("1.2.3.4"))
	assert.Len(t, HashValue("1.2.3.4"), 16)
}

func TestLogSubmissionRejected(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "svc", "test")

	sl.LogSubmissionRejected(context.Background(), EventValidationFailed, "jane@x.com", "10.0.0.1", "req-1", "missing_fields")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "validation_failed", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "j***@x.com", ctx["subject_value"])
	assert.Equal(t, "missing_fields", ctx["detail.reason"])
	assert.Equal(t, "req-1", ctx["request_id"])
}

func TestLogLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "svc", "test")

	sl.Log(context.Background(), SecurityEvent{Event: EventDispatchFailed})
	sl.Log(context.Background(), SecurityEvent{Event: EventHoneypotTriggered})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeverityHIGH, GetSeverity(EventDispatchFailed))
	assert.Equal(t, SeverityINFO, GetSeverity(EventUnknownForm))
	assert.Equal(t, SeverityMEDIUM, GetSeverity(EventType("something_new")))
	assert.True(t, IsHighOrAbove(EventDispatchFailed))
	assert.False(t, IsHighOrAbove(EventRateLimitTriggered))

	core, logs := observer.New(zapcore.DebugLevel)
	NewSecurityLogger(zap.New(core), "svc", "test").LogRateLimitTriggered(context.Background(), "10.0.0.1", "curl", "req-2", "/api/send-email")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "MEDIUM", logs.All()[0].ContextMap()["severity"])
}
