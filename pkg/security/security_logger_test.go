package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSecurityLogger_UnauthorizedAccessIsError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "svc", "test")

	sl.LogUnauthorizedAccess(context.Background(), "user-1", "CANDIDATE", "resume", "cand-2")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, string(EventUnauthorizedAccess), entries[0].Message)
		fields := entries[0].ContextMap()
		assert.Equal(t, "HIGH", fields["severity"])
		assert.NotEqual(t, "user-1", fields["subject_value"])
	}
}

func TestGetSeverity(t *testing.T) {
	assert.Equal(t, SeverityCRITICAL, GetSeverity(EventInfectedUpload))
	assert.Equal(t, SeverityMEDIUM, GetSeverity(EventType("something_else")))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("a@"))
}
