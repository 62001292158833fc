package config

import (
	"strings"
	"testing"
	"time"
)

func validLocal() Config {
	return Config{
		App:  AppConfig{Env: "local", Port: 8080},
		DB:   DBConfig{Driver: DriverPostgres, Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "click2dial"},
		Auth: AuthConfig{JWTSecret: "secret"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "click2dial"
	c.Auth.JWTAudience = "click2dial-api"
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "DB_SSLMODE") {
		t.Fatalf("expected DB_SSLMODE error, got %v", err)
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := validLocal()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.AMI.ConnectTimeout != 5*time.Second || c.AMI.WriteTimeout != 5*time.Second {
		t.Fatalf("expected 5s AMI timeouts, got %v/%v", c.AMI.ConnectTimeout, c.AMI.WriteTimeout)
	}
	if c.Dial.SwitchCacheTTL != time.Minute {
		t.Fatalf("expected 1m switch cache ttl, got %v", c.Dial.SwitchCacheTTL)
	}
	if c.RedisEnabled() {
		t.Fatalf("redis must be optional")
	}
}

func TestValidate_SQLiteRejectedInProduction(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.DB = DBConfig{Driver: DriverSQLite}
	c.Auth.JWTIssuer = "i"
	c.Auth.JWTAudience = "a"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected sqlite to be rejected in production")
	}
}

func TestValidate_SQLiteDefaultsPath(t *testing.T) {
	c := validLocal()
	c.DB = DBConfig{Driver: DriverSQLite}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DSN() != "click2dial.db" || c.SQLDriverName() != "sqlite" {
		t.Fatalf("unexpected sqlite dsn/driver: %q %q", c.DSN(), c.SQLDriverName())
	}
}

func TestValidate_AMITimeoutBounded(t *testing.T) {
	c := validLocal()
	c.AMI.WriteTimeout = 2 * time.Minute
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for oversized AMI timeout")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AMI_CONNECT_TIMEOUT", "2s")
	t.Setenv("DIAL_USER_CONCURRENCY", "0")
	t.Setenv("REDIS_HOST", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.App.Port != 8081 || c.DB.SQLitePath != ":memory:" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.AMI.ConnectTimeout != 2*time.Second {
		t.Fatalf("expected 2s connect timeout, got %v", c.AMI.ConnectTimeout)
	}
	if c.Dial.UserConcurrency != 0 {
		t.Fatalf("expected guard disabled, got %d", c.Dial.UserConcurrency)
	}
}

func TestLoad_ReportsEveryParseError(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "eighty")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AMI_WRITE_TIMEOUT", "soon")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "APP_PORT") || !strings.Contains(err.Error(), "AMI_WRITE_TIMEOUT") {
		t.Fatalf("expected both parse errors, got %v", err)
	}
}
