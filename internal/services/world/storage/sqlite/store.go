package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/worldforge/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/louisbranch/worldforge/internal/services/world/storage"
	"github.com/louisbranch/worldforge/internal/services/world/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const (
	timeFormat = time.RFC3339Nano

	// DefaultRetention is how many revisions survive each save.
	DefaultRetention = 100
)

// Revision describes one saved snapshot.
type Revision struct {
	Number  int64
	SavedAt time.Time
}

// Store provides a SQLite-backed world store.
type Store struct {
	sqlDB     *sql.DB
	retention int
	now       func() time.Time
}

var _ storage.WorldStore = (*Store)(nil)

// Option customizes a Store.
type Option func(*Store)

// WithRetention sets how many revisions to keep. Values below one keep all.
func WithRetention(n int) Option {
	return func(s *Store) {
		s.retention = n
	}
}

// WithClock overrides the revision timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens a SQLite store at the provided path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{
		sqlDB:     sqlDB,
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}

	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the newest revision, or an empty state when none exist.
func (s *Store) Load(ctx context.Context) (*world.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrNotConfigured
	}

	var document string
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT document FROM world_revisions ORDER BY revision DESC LIMIT 1")
	if err := row.Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &world.State{}, nil
		}
		return nil, fmt.Errorf("load world revision: %w", err)
	}

	var state world.State
	if err := json.Unmarshal([]byte(document), &state); err != nil {
		return nil, fmt.Errorf("decode world revision: %w", err)
	}
	return &state, nil
}

// Save appends a revision and prunes those past the retention limit.
func (s *Store) Save(ctx context.Context, state *world.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ErrNotConfigured
	}
	if state == nil {
		state = &world.State{}
	}

	document, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode world: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO world_revisions (document, saved_at) VALUES (?, ?)",
		string(document), s.now().UTC().Format(timeFormat),
	); err != nil {
		return fmt.Errorf("insert world revision: %w", err)
	}

	if s.retention > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM world_revisions WHERE revision NOT IN (
				SELECT revision FROM world_revisions ORDER BY revision DESC LIMIT ?
			)`, s.retention,
		); err != nil {
			return fmt.Errorf("prune world revisions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit world revision: %w", err)
	}
	return nil
}

// Revisions lists retained revisions, newest first.
func (s *Store) Revisions(ctx context.Context) ([]Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrNotConfigured
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT revision, saved_at FROM world_revisions ORDER BY revision DESC")
	if err != nil {
		return nil, fmt.Errorf("list world revisions: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var (
			rev     Revision
			savedAt string
		)
		if err := rows.Scan(&rev.Number, &savedAt); err != nil {
			return nil, fmt.Errorf("scan world revision: %w", err)
		}
		parsed, err := time.Parse(timeFormat, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parse saved_at: %w", err)
		}
		rev.SavedAt = parsed
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate world revisions: %w", err)
	}
	return revisions, nil
}
