package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUniqueViolation(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMigrationFilesAreSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_second.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_first.sql":  {Data: []byte("SELECT 1;")},
		"migrations/README.md":      {Data: []byte("notes")},
	}

	files, err := migrationFiles(fsys, "migrations")
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	if len(files) != 2 || files[0] != "001_first.sql" || files[1] != "002_second.sql" {
		t.Fatalf("unexpected migration order %v", files)
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	files, err := migrationFiles(migrationFS, "migrations")
	if err != nil {
		t.Fatalf("list embedded migrations: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
}

func TestPoolOptionsWithDefaults(t *testing.T) {
	cases := []struct {
		name string
		in   PoolOptions
		want PoolOptions
	}{
		{
			name: "zero values",
			want: PoolOptions{MaxOpenConns: 30, MaxIdleConns: 20, ConnMaxIdleTime: 5 * time.Minute, ConnMaxLifetime: 15 * time.Minute},
		},
		{
			name: "configured",
			in:   PoolOptions{MaxOpenConns: 8, MaxIdleConns: 4, ConnMaxIdleTime: time.Minute, ConnMaxLifetime: time.Hour},
			want: PoolOptions{MaxOpenConns: 8, MaxIdleConns: 4, ConnMaxIdleTime: time.Minute, ConnMaxLifetime: time.Hour},
		},
		{
			name: "idle capped at open",
			in:   PoolOptions{MaxOpenConns: 5},
			want: PoolOptions{MaxOpenConns: 5, MaxIdleConns: 5, ConnMaxIdleTime: 5 * time.Minute, ConnMaxLifetime: 15 * time.Minute},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.withDefaults(); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestPoolOptionsApply(t *testing.T) {
	// sql.Open does not dial, so the pool settings can be checked offline.
	db, err := sql.Open("postgres", "host=localhost dbname=unused sslmode=disable")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	PoolOptions{MaxOpenConns: 7, MaxIdleConns: 3}.apply(db)

	if got := db.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("expected 7 max open connections, got %d", got)
	}
}
