package schedule

import (
	"context"
	"errors"
	"time"

	domain "emi-schedule/internal/domain/schedule"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("schedule cache miss")

// Cache stores encoded schedules for a limited time. It is a read-through
// cache only; nothing depends on an entry being present.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type ScheduleDTO struct {
	Terms        domain.RawTerms `json:"terms"`
	Installments domain.Schedule `json:"installments"`
	Summary      domain.Summary  `json:"summary"`
}
