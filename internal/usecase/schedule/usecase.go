package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	domain "emi-schedule/internal/domain/schedule"
	"emi-schedule/pkg/id"

	"go.uber.org/zap"
)

const cacheKeyPrefix = "schedule:v1:"

type Usecase struct {
	gen   *domain.Generator
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewUsecase wires the generator with an optional cache; a nil cache or a
// non-positive ttl disables caching.
func NewUsecase(gen *domain.Generator, cache Cache, ttl time.Duration, log *zap.Logger) *Usecase {
	if gen == nil {
		gen = domain.NewGenerator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		cache = nil
	}
	return &Usecase{gen: gen, cache: cache, ttl: ttl, log: log}
}

// GenerateRaw parses ISO date strings before generating.
func (u *Usecase) GenerateRaw(ctx context.Context, raw domain.RawTerms) (*ScheduleDTO, error) {
	terms, err := raw.Parse()
	if err != nil {
		return nil, err
	}
	return u.Generate(ctx, terms)
}

func (u *Usecase) Generate(ctx context.Context, terms domain.LoanTerms) (*ScheduleDTO, error) {
	key := u.cacheKey(terms)
	if dto, ok := u.lookup(ctx, key); ok {
		return dto, nil
	}

	rows, err := u.gen.Generate(terms)
	if err != nil {
		u.log.Info("schedule rejected", zap.String("terms", terms.Key()), zap.Error(err))
		return nil, err
	}
	dto := &ScheduleDTO{Terms: terms.Raw(), Installments: rows, Summary: rows.Summary()}
	u.log.Debug("schedule generated",
		zap.String("terms", terms.Key()),
		zap.Int("installments", dto.Summary.Installments),
		zap.Int64("total_emi", dto.Summary.TotalEMI))

	u.store(ctx, key, dto)
	return dto, nil
}

func (u *Usecase) cacheKey(terms domain.LoanTerms) string {
	return cacheKeyPrefix + id.Digest32(terms.Key(), strconv.Itoa(u.gen.MaxInstallments))
}

// lookup and store never fail the request; cache trouble is only logged.
func (u *Usecase) lookup(ctx context.Context, key string) (*ScheduleDTO, bool) {
	if u.cache == nil {
		return nil, false
	}
	b, err := u.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			u.log.Warn("schedule cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var dto ScheduleDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		u.log.Warn("schedule cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &dto, true
}

func (u *Usecase) store(ctx context.Context, key string, dto *ScheduleDTO) {
	if u.cache == nil {
		return
	}
	b, err := json.Marshal(dto)
	if err != nil {
		u.log.Warn("schedule encode failed", zap.Error(err))
		return
	}
	if err := u.cache.Set(ctx, key, b, u.ttl); err != nil {
		u.log.Warn("schedule cache set failed", zap.String("key", key), zap.Error(err))
	}
}
