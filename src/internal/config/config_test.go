package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("expected postgres driver, got %q", cfg.StorageDriver)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Fatalf("expected 15m rate limit window, got %s", cfg.RateLimitWindow)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected secure cookies by default")
	}
	if cfg.IsDevelopment() {
		t.Fatal("expected production mode by default")
	}
	if cfg.DBMaxOpenConns != 30 || cfg.DBMaxIdleConns != 20 || cfg.DBConnMaxLifetime != 15*time.Minute {
		t.Fatalf("unexpected pool defaults %d/%d/%s", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
	}
	if !strings.Contains(cfg.DatabaseDSN, "dbname=swift_payments_db") || !strings.Contains(cfg.DatabaseDSN, "sslmode=disable") {
		t.Fatalf("unexpected normalized dsn %q", cfg.DatabaseDSN)
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short JWT secret")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORAGE_DRIVER", "mongo")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestLoadRejectsIdlePoolLargerThanOpen(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DB_MAX_IDLE_CONNS") {
		t.Fatalf("expected idle pool error, got %v", err)
	}
}

func TestLoadRequiresSeedPair(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SEED_EMPLOYEE_USERNAME", "admin")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when seed password is missing")
	}
}

func TestNormalizeConnectionString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "ado style",
			raw:  "Host=db;Port=5432;Database=pay;Username=u;Password=p;CommandTimeout=10",
			want: "host=db port=5432 dbname=pay user=u password=p statement_timeout=10s sslmode=disable",
		},
		{
			name: "explicit sslmode kept",
			raw:  "Host=db;SSLMode=require",
			want: "host=db sslmode=require",
		},
		{
			name: "url passthrough",
			raw:  "postgres://u:p@db:5432/pay",
			want: "postgres://u:p@db:5432/pay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeConnectionString(tt.raw); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
