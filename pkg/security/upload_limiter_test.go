package security

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestUploadLimiter_FailsOpenWithoutRedis(t *testing.T) {
	ul := NewUploadLimiterWithClient(1, 1, func() *goredis.Client { return nil })

	allowed, retry, err := ul.AllowUpload(context.Background(), "10.0.0.1", "user-1")

	assert.True(t, allowed)
	assert.Zero(t, retry)
	assert.ErrorIs(t, err, ErrLimiterUnavailable)
}
