package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger checks whether a dependency is reachable
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	redisPing Pinger
}

// NewHealthUsecase reports Redis as "disabled" when redisPing is nil
func NewHealthUsecase(redisPing Pinger) HealthUsecase {
	return &healthUsecase{redisPing: redisPing}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"redis":  "disabled",
	}
	if u.redisPing == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := u.redisPing(ctx); err != nil {
		status["redis"] = "unavailable"
		status["status"] = "degraded"
	} else {
		status["redis"] = "ok"
	}
	return status
}
