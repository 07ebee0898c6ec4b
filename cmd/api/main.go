package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "emi-schedule/internal/adapter/http"
	idem "emi-schedule/internal/adapter/middleware"
	mysqlrepo "emi-schedule/internal/adapter/repository/mysql"
	redisrepo "emi-schedule/internal/adapter/repository/redis"
	"emi-schedule/internal/config"
	"emi-schedule/internal/domain/schedule"
	"emi-schedule/internal/infrastructure/cache"
	"emi-schedule/internal/infrastructure/db"
	ucLoan "emi-schedule/internal/usecase/loan"
	ucSchedule "emi-schedule/internal/usecase/schedule"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	gen := schedule.NewGenerator(schedule.WithMaxInstallments(cfg.MaxInstallments))
	schedules := ucSchedule.NewUsecase(gen, redisrepo.NewScheduleCache(rdb), cfg.ScheduleCacheTTL(), log.Named("schedule"))
	loans := ucLoan.NewUsecase(mysqlrepo.NewLoanRepository(gdb), schedules, log.Named("loan"))

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("mysql pool", zap.Error(err))
	}
	h := httpadp.NewHandler(
		httpadp.Check{Name: "mysql", Ping: sqlDB.PingContext},
		httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	sh := httpadp.NewScheduleHandler(schedules)
	lh := httpadp.NewLoanHandler(loans)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	// routes
	e.GET("/health", h.Health)
	e.POST("/schedules", sh.GenerateSchedule)

	e.POST("/loans", lh.CreateLoan, idem.Idempotency(idem.NewStore(rdb), cfg.IdempotencyTTL(), log.Named("idempotency")))
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.GET("/loans/:loan_id/schedule", lh.GetLoanSchedule)
	e.GET("/borrowers/:borrower_id/loans", lh.ListBorrowerLoans)

	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
