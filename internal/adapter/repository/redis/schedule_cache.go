package redis

import (
	"context"
	"errors"
	"time"

	ucSchedule "emi-schedule/internal/usecase/schedule"

	goredis "github.com/redis/go-redis/v9"
)

var _ ucSchedule.Cache = (*ScheduleCache)(nil)

type ScheduleCache struct{ rdb *goredis.Client }

func NewScheduleCache(rdb *goredis.Client) *ScheduleCache { return &ScheduleCache{rdb: rdb} }

func (c *ScheduleCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ucSchedule.ErrCacheMiss
	}
	return b, err
}

func (c *ScheduleCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}
