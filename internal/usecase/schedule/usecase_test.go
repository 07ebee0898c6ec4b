package schedule_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	domain "emi-schedule/internal/domain/schedule"
	"emi-schedule/internal/testutil/cachemock"
	uc "emi-schedule/internal/usecase/schedule"

	"go.uber.org/zap/zaptest"
)

func TestGenerate_NoCache(t *testing.T) {
	u := uc.NewUsecase(nil, nil, time.Minute, zaptest.NewLogger(t))

	dto, err := u.Generate(context.Background(), domain.DefaultTerms())
	if err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if dto.Summary.Installments != 23 || dto.Summary.TotalEMI != 111286 || dto.Summary.TotalInterest != 11286 {
		t.Fatalf("summary = %+v", dto.Summary)
	}
	if dto.Terms != domain.DefaultTerms().Raw() {
		t.Fatalf("terms echo = %+v", dto.Terms)
	}
	if len(dto.Installments) != dto.Summary.Installments {
		t.Fatalf("rows %d vs summary %d", len(dto.Installments), dto.Summary.Installments)
	}
}

func TestGenerate_CachesAndServesFromCache(t *testing.T) {
	cache := cachemock.New()
	u := uc.NewUsecase(domain.NewGenerator(), cache, 10*time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	first, err := u.Generate(ctx, domain.DefaultTerms())
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if cache.Sets != 1 || cache.Len() != 1 || cache.LastTTL != 10*time.Minute {
		t.Fatalf("sets=%d len=%d ttl=%v", cache.Sets, cache.Len(), cache.LastTTL)
	}

	second, err := u.Generate(ctx, domain.DefaultTerms())
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if cache.Sets != 1 {
		t.Fatalf("cache hit should not write again, sets=%d", cache.Sets)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("cached schedule differs from computed one")
	}
}

func TestGenerate_CacheFailuresAreIgnored(t *testing.T) {
	cache := cachemock.New()
	cache.GetErr = errors.New("redis down")
	cache.SetErr = errors.New("redis down")
	u := uc.NewUsecase(nil, cache, time.Minute, zaptest.NewLogger(t))

	dto, err := u.Generate(context.Background(), domain.DefaultTerms())
	if err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if dto.Summary.Installments != 23 {
		t.Fatalf("installments = %d", dto.Summary.Installments)
	}
}

func TestGenerate_CorruptEntryIsRecomputed(t *testing.T) {
	cache := cachemock.New()
	u := uc.NewUsecase(nil, cache, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	if _, err := u.Generate(ctx, domain.DefaultTerms()); err != nil {
		t.Fatal(err)
	}
	keys := cache.Keys()
	if len(keys) != 1 {
		t.Fatalf("cached keys = %v", keys)
	}
	cache.Put(keys[0], []byte("{not json"))
	dto, err := u.Generate(ctx, domain.DefaultTerms())
	if err != nil || dto.Summary.Installments != 23 {
		t.Fatalf("dto=%+v err=%v", dto, err)
	}
	if cache.Sets != 2 {
		t.Fatalf("corrupt entry should be rewritten, sets=%d", cache.Sets)
	}
}

func TestGenerate_ZeroTTLDisablesCache(t *testing.T) {
	cache := cachemock.New()
	u := uc.NewUsecase(nil, cache, 0, zaptest.NewLogger(t))
	if _, err := u.Generate(context.Background(), domain.DefaultTerms()); err != nil {
		t.Fatal(err)
	}
	if cache.Gets != 0 || cache.Sets != 0 {
		t.Fatalf("cache touched: gets=%d sets=%d", cache.Gets, cache.Sets)
	}
}

func TestGenerate_ErrorsAreNotCached(t *testing.T) {
	cache := cachemock.New()
	u := uc.NewUsecase(domain.NewGenerator(domain.WithMaxInstallments(24)), cache, time.Minute, zaptest.NewLogger(t))

	terms := domain.DefaultTerms()
	terms.MoratoriumEMI, terms.PostMoratoriumEMI = 100, 100
	if _, err := u.Generate(context.Background(), terms); !errors.Is(err, domain.ErrNonTerminating) {
		t.Fatalf("err = %v, want ErrNonTerminating", err)
	}
	if cache.Sets != 0 {
		t.Fatalf("failed generation was cached")
	}
}

func TestGenerateRaw(t *testing.T) {
	u := uc.NewUsecase(nil, nil, 0, zaptest.NewLogger(t))
	ctx := context.Background()

	raw := domain.DefaultTerms().Raw()
	dto, err := u.GenerateRaw(ctx, raw)
	if err != nil {
		t.Fatalf("GenerateRaw err: %v", err)
	}
	if got := dto.Installments[0].DueDate.String(); got != "2025-07-01" {
		t.Fatalf("first due date = %s", got)
	}

	raw.DisbursalDate = "22/05/2025"
	if _, err := u.GenerateRaw(ctx, raw); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
