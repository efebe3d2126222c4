package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventInvalidToken       EventType = "invalid_token"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUploadRejected     EventType = "upload_rejected"
	EventInfectedUpload     EventType = "infected_upload"
	EventRoleModified       EventType = "role_modified"
	EventUserDisabled       EventType = "user_disabled"
	EventDataExport         EventType = "data_export"
)

// Severity is derived from EventType, never user-provided
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityMEDIUM   Severity = "MEDIUM"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

var EventSeverityMap = map[EventType]Severity{
	EventDataExport:         SeverityMEDIUM,
	EventInvalidToken:       SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventUploadRejected:     SeverityWARN,
	EventUnauthorizedAccess: SeverityHIGH,
	EventRoleModified:       SeverityHIGH,
	EventUserDisabled:       SeverityHIGH,
	EventInfectedUpload:     SeverityCRITICAL,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Severity     Severity               `json:"severity"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "user_id"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SecurityLogger provides structured logging for security events
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	// Optional: DB persistence function
	persistFunc func(ctx context.Context, event SecurityEvent) error
}

var defaultLogger *SecurityLogger

// InitSecurityLogger initializes the default security logger with Zap
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	defaultLogger = NewSecurityLogger(logger, serviceName, environment)
	return defaultLogger
}

// NewSecurityLogger wraps an existing zap logger.
func NewSecurityLogger(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// NopLogger discards every event.
func NopLogger() *SecurityLogger {
	return NewSecurityLogger(zap.NewNop(), "test", "test")
}

// DefaultLogger returns the default security logger instance
func DefaultLogger() *SecurityLogger {
	if defaultLogger == nil {
		return InitSecurityLogger("staffing-backend", getEnvironment())
	}
	return defaultLogger
}

// SetPersistFunc sets the function to persist events to database
func (sl *SecurityLogger) SetPersistFunc(f func(ctx context.Context, event SecurityEvent) error) {
	sl.persistFunc = f
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment
	event.Severity = GetSeverity(event.Event)

	level := zapcore.WarnLevel
	switch event.Severity {
	case SeverityINFO, SeverityMEDIUM:
		level = zapcore.InfoLevel
	case SeverityHIGH, SeverityCRITICAL:
		level = zapcore.ErrorLevel
	}
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(event.Severity)),
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
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)

	if sl.persistFunc != nil {
		go func(e SecurityEvent) {
			// Request context may already be canceled
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := sl.persistFunc(ctx, e); err != nil {
				sl.zapLogger.Error("Failed to persist security event", zap.Error(err))
			}
		}(event)
	}
}

// LogUnauthorizedAccess records a denied read or write on a protected resource
func (sl *SecurityLogger) LogUnauthorizedAccess(ctx context.Context, userID, role, resource, resourceID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventUnauthorizedAccess,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		Details: map[string]interface{}{
			"role":        role,
			"resource":    resource,
			"resource_id": resourceID,
		},
	})
}

// LogInvalidToken logs a rejected bearer token
func (sl *SecurityLogger) LogInvalidToken(ctx context.Context, ip, userAgent, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventInvalidToken,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]interface{}{"reason": reason},
	})
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
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogUploadRejected logs an upload refused by validation or scanning
func (sl *SecurityLogger) LogUploadRejected(ctx context.Context, userID, filename, reason string, infected bool) {
	event := EventUploadRejected
	if infected {
		event = EventInfectedUpload
	}
	sl.Log(ctx, SecurityEvent{
		Event:        event,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		Details:      map[string]interface{}{"filename": filename, "reason": reason},
	})
}

// LogRoleModified logs an admin role or disable change
func (sl *SecurityLogger) LogRoleModified(ctx context.Context, actorID, targetID, from, to string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRoleModified,
		SubjectType:  "user_id",
		SubjectValue: HashValue(targetID),
		Details:      map[string]interface{}{"actor": HashValue(actorID), "from": from, "to": to},
	})
}

func (sl *SecurityLogger) LogUserDisabled(ctx context.Context, actorID, targetID string, disabled bool) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventUserDisabled,
		SubjectType:  "user_id",
		SubjectValue: HashValue(targetID),
		Details:      map[string]interface{}{"actor": HashValue(actorID), "disabled": disabled},
	})
}

// LogDataExport logs an applicant sheet download
func (sl *SecurityLogger) LogDataExport(ctx context.Context, actorID string, jobID int64, rows int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventDataExport,
		SubjectType:  "user_id",
		SubjectValue: HashValue(actorID),
		Details:      map[string]interface{}{"job_id": jobID, "rows": rows},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
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
