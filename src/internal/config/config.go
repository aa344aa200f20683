package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=swift_payments_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"

const minJWTSecretLength = 32

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"production"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseDSN   string `env:"DATABASE_DSN"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"swift_payments.db"`

	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"30"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"20"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"15m"`

	JWTSecret           string `env:"JWT_SECRET"`
	BcryptCost          int    `env:"BCRYPT_COST" envDefault:"12"`
	MaxConcurrentHashes int64  `env:"MAX_CONCURRENT_HASHES" envDefault:"4"`
	CookieSecure        bool   `env:"COOKIE_SECURE" envDefault:"true"`
	CORSOrigin          string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`

	AdminChannelID  string `env:"ADMIN_CHANNEL_ID"`
	AdminChannelKey string `env:"ADMIN_CHANNEL_KEY"`

	SeedEmployeeUsername string `env:"SEED_EMPLOYEE_USERNAME"`
	SeedEmployeePassword string `env:"SEED_EMPLOYEE_PASSWORD"`

	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitGeneral int           `env:"RATE_LIMIT_GENERAL" envDefault:"100"`
	RateLimitAuth    int           `env:"RATE_LIMIT_AUTH" envDefault:"5"`
	RequestBodyLimit int64         `env:"REQUEST_BODY_LIMIT" envDefault:"10240"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	conn := strings.TrimSpace(cfg.DatabaseDSN)
	if conn == "" {
		conn = defaultConnectionString
	}
	cfg.DatabaseDSN = normalizeConnectionString(conn)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// IsDevelopment gates diagnostic detail in error responses.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c Config) AdminEnabled() bool {
	return strings.TrimSpace(c.AdminChannelID) != "" && strings.TrimSpace(c.AdminChannelKey) != ""
}

func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func (c Config) validate() error {
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverSQLite:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverSQLite)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be greater than zero")
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS")
	}
	if c.MaxConcurrentHashes <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_HASHES must be greater than zero")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if (c.SeedEmployeeUsername == "") != (c.SeedEmployeePassword == "") {
		return fmt.Errorf("SEED_EMPLOYEE_USERNAME and SEED_EMPLOYEE_PASSWORD must be set together")
	}
	if c.RequestBodyLimit <= 0 {
		return fmt.Errorf("REQUEST_BODY_LIMIT must be greater than zero")
	}
	return nil
}

func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
