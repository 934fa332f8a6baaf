package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventValidationFailed   EventType = "validation_failed"
	EventHoneypotTriggered  EventType = "honeypot_triggered"
	EventUnknownForm        EventType = "unknown_form"
	EventDispatchFailed     EventType = "dispatch_failed"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "email", "ip"
	SubjectValue string // masked or hashed, never raw PII
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]string
}

// SecurityLogger writes security events as structured zap entries
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *SecurityLogger
	defaultMu     sync.Mutex
)

// InitSecurityLogger builds the zap production logger and makes it the default
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	sl := NewSecurityLogger(logger, serviceName, environment)

	defaultMu.Lock()
	defaultLogger = sl
	defaultMu.Unlock()
	return sl
}

// NewSecurityLogger wraps an existing zap logger (tests use zaptest/observer)
func NewSecurityLogger(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// DefaultLogger returns the default security logger, creating one on first use
func DefaultLogger() *SecurityLogger {
	defaultMu.Lock()
	sl := defaultLogger
	defaultMu.Unlock()
	if sl == nil {
		return InitSecurityLogger("quantumworks-backend", getEnvironment())
	}
	return sl
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	severity := GetSeverity(event.Event)

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
		zap.Time("event_time", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail."+k, v))
	}

	sl.zapLogger.Log(severity.level(), string(event.Event), fields...)
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]string{"endpoint": endpoint},
	})
}

// LogSubmissionRejected records a contact submission refused before dispatch
func (sl *SecurityLogger) LogSubmissionRejected(ctx context.Context, event EventType, email, ip, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        event,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]string{"reason": reason},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail keeps the first character and the domain: "jane@x.com" -> "j***@x.com"
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := strings.IndexByte(email, '@')
	if atIndex < 0 {
		return "***"
	}
	if atIndex <= 1 {
		return "***" + email[atIndex:]
	}
	return email[:1] + "***" + email[atIndex:]
}

// HashValue creates a short SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
