package usecase

import (
	"context"
	"sort"
	"time"
)

// Pinger is anything the readiness probe can ping, such as a pgx pool or a
// redis client adapter.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	deps map[string]Pinger
}

// NewHealthUsecase checks every configured dependency; nil entries are
// reported as disabled.
func NewHealthUsecase(deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.deps))
	for name := range u.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		ping := u.deps[name]
		switch {
		case ping == nil:
			status[name] = "disabled"
		case ping(ctx) != nil:
			status[name] = "down"
			healthy = false
		default:
			status[name] = "up"
		}
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
