package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration required by the API process.
// Values come from the environment; a .env file in the working directory is
// loaded first when present (existing variables are not overridden).
//
// Per-tenant switch settings and prefix rules are NOT here: they live in
// storage (internal/switchcfg) and are passed explicitly to each dial.
type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
	AMI   AMIConfig
	Dial  DialConfig
}

type AppConfig struct {
	Env      string
	Port     int
	LogLevel string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	// Driver is postgres (default) or sqlite.
	Driver string

	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode accepts: disable, require, verify-ca, verify-full
	SSLMode string

	// SQLitePath is used when Driver is sqlite.
	SQLitePath string
}

// RedisConfig is optional. Without a host the switch settings cache and the
// per-user dial guard are disabled.
type RedisConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AMIConfig bounds client-side I/O with the switch. The originate Timeout
// field (ring time) is per-tenant and unrelated.
type AMIConfig struct {
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
}

type DialConfig struct {
	// UserConcurrency caps in-flight dials per user. 0 disables the guard.
	UserConcurrency int
	// GuardTTL expires a guard slot if the process dies mid-dial.
	GuardTTL time.Duration
	// SwitchCacheTTL is how long resolved switch settings stay in Redis.
	SwitchCacheTTL time.Duration
}

func Load() (Config, error) {
	_ = godotenv.Load()

	c := Config{}
	var parseErrs errList

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	c.App.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	c.App.Port = parseErrs.int(mustInt("APP_PORT"))

	c.DB.Driver = strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if c.DB.Driver == "" {
		c.DB.Driver = DriverPostgres
	}
	if c.DB.Driver == DriverPostgres {
		c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
		c.DB.Port = parseErrs.int(mustInt("DB_PORT"))
		c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
		c.DB.Password = os.Getenv("DB_PASSWORD")
		c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
		c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))
	}
	c.DB.SQLitePath = strings.TrimSpace(os.Getenv("SQLITE_PATH"))

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if c.Redis.Host != "" {
		c.Redis.Port = parseErrs.int(mustInt("REDIS_PORT"))
	}

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	// Duration env vars are optional; defaults applied in Validate().
	c.Auth.AccessTokenTTL = parseErrs.duration(optDuration("JWT_ACCESS_TTL"))
	c.Auth.RefreshTokenTTL = parseErrs.duration(optDuration("JWT_REFRESH_TTL"))

	c.AMI.ConnectTimeout = parseErrs.duration(optDuration("AMI_CONNECT_TIMEOUT"))
	c.AMI.WriteTimeout = parseErrs.duration(optDuration("AMI_WRITE_TIMEOUT"))

	c.Dial.UserConcurrency = parseErrs.int(optInt("DIAL_USER_CONCURRENCY", 1))
	c.Dial.GuardTTL = parseErrs.duration(optDuration("DIAL_GUARD_TTL"))
	c.Dial.SwitchCacheTTL = parseErrs.duration(optDuration("SWITCH_CACHE_TTL"))

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks required values and fills defaults in place.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	switch c.DB.Driver {
	case DriverPostgres:
		errs = append(errs, c.validatePostgres()...)
	case DriverSQLite:
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_DRIVER=sqlite is not allowed in production"))
		}
		if c.DB.SQLitePath == "" {
			c.DB.SQLitePath = "click2dial.db"
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be one of postgres, sqlite, got %q", c.DB.Driver))
	}

	if c.Redis.Host != "" && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
	}
	if c.Auth.AccessTokenTTL <= 0 {
		c.Auth.AccessTokenTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		c.Auth.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		errs = append(errs, errors.New("JWT_REFRESH_TTL must be greater than JWT_ACCESS_TTL"))
	}

	if c.AMI.ConnectTimeout <= 0 {
		c.AMI.ConnectTimeout = 5 * time.Second
	}
	if c.AMI.WriteTimeout <= 0 {
		c.AMI.WriteTimeout = 5 * time.Second
	}
	if c.AMI.ConnectTimeout > time.Minute || c.AMI.WriteTimeout > time.Minute {
		errs = append(errs, errors.New("AMI_CONNECT_TIMEOUT and AMI_WRITE_TIMEOUT must not exceed 1m"))
	}

	if c.Dial.UserConcurrency < 0 {
		errs = append(errs, fmt.Errorf("DIAL_USER_CONCURRENCY must be >= 0, got %d", c.Dial.UserConcurrency))
	}
	if c.Dial.GuardTTL <= 0 {
		c.Dial.GuardTTL = 30 * time.Second
	}
	if c.Dial.SwitchCacheTTL <= 0 {
		c.Dial.SwitchCacheTTL = time.Minute
	}

	return joinErrors(errs)
}

func (c *Config) validatePostgres() []error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.DB.SSLMode == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}
	return errs
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// DSN returns the database/sql data source name for the configured driver.
// Avoid logging it; it contains secrets.
func (c Config) DSN() string {
	if c.DB.Driver == DriverSQLite {
		return c.DB.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

// SQLDriverName is the database/sql driver registered for DB.Driver.
func (c Config) SQLDriverName() string {
	if c.DB.Driver == DriverSQLite {
		return "sqlite"
	}
	return "pgx"
}

func (c Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optDuration(key string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	return d, nil
}

// errList accumulates parse errors so every bad variable is reported at once.
type errList []error

func (l *errList) int(n int, err error) int {
	if err != nil {
		*l = append(*l, err)
	}
	return n
}

func (l *errList) duration(d time.Duration, err error) time.Duration {
	if err != nil {
		*l = append(*l, err)
	}
	return d
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
