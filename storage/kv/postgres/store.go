package pgkv

import (
	"context"
	"database/sql"
	"embed"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/trezcool/studytrack/core"
)

// Migrations holds the goose migrations of the kv_store table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"

const (
	getQuery    = `SELECT value FROM kv_store WHERE key = $1`
	setQuery    = `INSERT INTO kv_store (key, value) VALUES ($1, $2::jsonb) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	deleteQuery = `DELETE FROM kv_store WHERE key = $1`
	scanQuery   = `SELECT value FROM kv_store WHERE key LIKE $1 ORDER BY key COLLATE "C"`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Store is a KVStore backed by a postgres `kv_store(key, value jsonb)` table.
type Store struct {
	db *sqlx.DB
}

var _ core.KVStore = (*Store)(nil)

// Open connects to `dsn`, waits for the database to be ready and applies pending migrations.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = Migrate(db.DB, "up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Migrate runs the goose `command` (up, down, status, version...) over the kv_store migrations.
func Migrate(db *sql.DB, command string, args ...string) error {
	if err := goose.RunFS(command, db, Migrations, MigrationsDir, args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	return errors.Wrap(err, "DB ping timeout")
}

// DB exposes the underlying connection pool, for migrations.
func (s *Store) DB() *sql.DB { return s.db.DB }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := s.db.GetContext(ctx, &value, getQuery, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	// as text: lib/pq would send a []byte as bytea
	_, err := s.db.ExecContext(ctx, setQuery, key, string(value))
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, deleteQuery, key)
	return err
}

func (s *Store) Scan(ctx context.Context, prefix string) ([][]byte, error) {
	vals := make([][]byte, 0)
	if err := s.db.SelectContext(ctx, &vals, scanQuery, likeEscaper.Replace(prefix)+"%"); err != nil {
		return nil, err
	}
	return vals, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
