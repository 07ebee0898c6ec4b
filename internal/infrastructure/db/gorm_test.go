package db

import (
	"errors"
	"testing"

	"emi-schedule/internal/domain/loan"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing()

	// mysql dialector on top of the mocked *sql.DB
	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial, zaptest.NewLogger(t))
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMigrate_CreatesLoansTable(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// one connection, one :memory: database
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !gdb.Migrator().HasTable(&loan.Loan{}) {
		t.Fatal("loans table missing after Migrate")
	}
	for _, col := range []string{"emi_start_date", "moratorium_emi", "post_moratorium_emi", "annual_rate"} {
		if !gdb.Migrator().HasColumn(&loan.Loan{}, col) {
			t.Fatalf("column %s missing", col)
		}
	}
}

func TestOpenGormWithDialector_LogsFailedSQLThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gdb, err := OpenGormWithDialector(sqlite.Open(":memory:"), zap.New(core))
	if err != nil {
		t.Fatalf("OpenGormWithDialector: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := gdb.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatal("expected sql error")
	}
	entries := logs.FilterMessageSnippet("no_such_table").All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("logged entries = %+v", logs.All())
	}

	// not-found lookups are routine and stay quiet
	var l loan.Loan
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := gdb.Where("loan_id = ?", "missing").First(&l).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v", err)
	}
	if n := logs.FilterMessageSnippet("record not found").Len(); n != 0 {
		t.Fatalf("record-not-found logged %d times", n)
	}
}
