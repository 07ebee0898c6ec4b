package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdempTTLSecs         int
	ScheduleCacheTTLSecs int
	MaxInstallments      int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment. Values from a .env file in the working
// directory are used only for variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "emi"),
		MySQLUser: getenv("MYSQL_USER", "emi"),
		MySQLPass: getenv("MYSQL_PASS", "emi"),

		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),

		IdempTTLSecs:         getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		ScheduleCacheTTLSecs: getenvInt("SCHEDULE_CACHE_TTL_SECONDS", 600),
		MaxInstallments:      getenvInt("SCHEDULE_MAX_INSTALLMENTS", 2400),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.MaxInstallments <= 0 {
		return fmt.Errorf("SCHEDULE_MAX_INSTALLMENTS must be positive, got %d", c.MaxInstallments)
	}
	if c.ScheduleCacheTTLSecs < 0 || c.IdempTTLSecs <= 0 {
		return errors.New("TTL settings must not be negative (IDEMPOTENCY_TTL_SECONDS must be positive)")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

// ScheduleCacheTTL of zero disables the schedule cache.
func (c *Config) ScheduleCacheTTL() time.Duration {
	return time.Duration(c.ScheduleCacheTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime is needed for DATE/DATETIME; loc=UTC keeps DATE columns on the stored day
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
