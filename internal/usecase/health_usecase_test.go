package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-staffing-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("refused") })

	tests := []struct {
		name    string
		db      usecase.Pinger
		redis   func(context.Context) error
		status  string
		healthy bool
	}{
		{"all up", ok, ok, "ok", true},
		{"redis not configured", ok, nil, "ok", true},
		{"redis down degrades", ok, down, "degraded", true},
		{"database down", down, ok, "down", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, healthy := usecase.NewHealthUsecase(tt.db, tt.redis).Check(context.Background())
			assert.Equal(t, tt.status, out["status"])
			assert.Equal(t, tt.healthy, healthy)
		})
	}
}
