package usecase

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool and by the storage client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	db    Pinger
	redis func(ctx context.Context) error
}

// NewHealthUsecase reports database health and, when configured, Redis health.
// Redis is optional so its failure degrades but does not fail the check.
func NewHealthUsecase(db Pinger, redis func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{db: db, redis: redis}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out := map[string]string{"status": "ok", "database": "ok"}
	healthy := true

	if u.db == nil {
		out["database"] = "not configured"
		healthy = false
	} else if err := u.db.Ping(ctx); err != nil {
		out["database"] = "unreachable"
		healthy = false
	}

	switch {
	case u.redis == nil:
		out["redis"] = "not configured"
	case u.redis(ctx) != nil:
		out["redis"] = "unreachable"
		out["status"] = "degraded"
	default:
		out["redis"] = "ok"
	}

	if !healthy {
		out["status"] = "down"
	}
	return out, healthy
}
