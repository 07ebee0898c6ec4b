package db

import (
	"time"

	"emi-schedule/internal/domain/loan"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

// zapWriter feeds gorm's logger into zap.
type zapWriter struct{ s *zap.SugaredLogger }

func (w zapWriter) Printf(format string, args ...any) { w.s.Warnf(format, args...) }

// NewGormLogger reports failed and slow statements through log.
func NewGormLogger(log *zap.Logger) logger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return logger.New(zapWriter{s: log.WithOptions(zap.AddCallerSkip(2)).Sugar()}, logger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// OpenGorm connects to MySQL using dsn.
func OpenGorm(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := OpenGormWithDialector(mysql.Open(dsn), log)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Info("gorm: connected")
	}
	return db, nil
}

// OpenGormWithDialector opens, tunes the pool and pings.
func OpenGormWithDialector(dial gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: NewGormLogger(log),
		// pinged explicitly below, after the pool is tuned
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the saved-loan table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&loan.Loan{})
}
