// Package store persists analysis sessions and their messages in sqlite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/Zuo-Peng/chat-analyzer/internal/metrics"
	"github.com/Zuo-Peng/chat-analyzer/migrations"
)

// timeLayout is fixed width so created_at sorts as text.
const (
	timeLayout          = "2006-01-02T15:04:05.000000Z"
	timeLayoutPrecision = time.Microsecond
)

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// sqlite has a single writer
	db.SetMaxOpenConns(1)

	if err := migrateUp(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return err
	}
	// m.Close would also close db, so the migrator is left for GC
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if v, dirty, err := m.Version(); err == nil {
		log.Debug().Uint("version", v).Bool("dirty", dirty).Msg("schema ready")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Raw() *sqlx.DB {
	return s.db
}

type Session struct {
	ID        int64                   `json:"id"`
	Filename  string                  `json:"filename"`
	CreatedAt time.Time               `json:"createdAt"`
	Metrics   metrics.AnalysisMetrics `json:"-"`
}

// SessionSummary is the metadata shown in session listings.
type SessionSummary struct {
	ID            int64     `json:"id"`
	Filename      string    `json:"filename"`
	CreatedAt     time.Time `json:"createdAt"`
	TotalMessages int       `json:"totalMessages"`
	Participants  int       `json:"participants"`
}

type sessionRow struct {
	ID            int64  `db:"id"`
	Filename      string `db:"filename"`
	CreatedAt     string `db:"created_at"`
	TotalMessages int    `db:"total_messages"`
	Participants  int    `db:"participants"`
	Metrics       string `db:"metrics"`
}

func (r sessionRow) summary() SessionSummary {
	created, _ := time.Parse(timeLayout, r.CreatedAt)
	return SessionSummary{
		ID:            r.ID,
		Filename:      r.Filename,
		CreatedAt:     created,
		TotalMessages: r.TotalMessages,
		Participants:  r.Participants,
	}
}

// GetSession returns nil, nil when no session has the id.
func (s *Store) GetSession(ctx context.Context, id int64) (*Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, filename, created_at, total_messages, participants, metrics FROM sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess := &Session{ID: row.ID, Filename: row.Filename}
	sess.CreatedAt = row.summary().CreatedAt
	if err := json.Unmarshal([]byte(row.Metrics), &sess.Metrics); err != nil {
		return nil, fmt.Errorf("decode metrics for session %d: %w", id, err)
	}
	return sess, nil
}

// RecentSessions lists session metadata, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	var rows []sessionRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, filename, created_at, total_messages, participants
		 FROM sessions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	out := make([]SessionSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.summary())
	}
	return out, nil
}

func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE session_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// PruneBefore deletes every session created before t and reports how many
// went away.
func (s *Store) PruneBefore(ctx context.Context, t time.Time) (int, error) {
	cutoff := t.UTC().Format(timeLayout)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM messages WHERE session_id IN (SELECT id FROM sessions WHERE created_at < ?)", cutoff); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), tx.Commit()
}

func (s *Store) SessionCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM sessions")
	return n, err
}

func (s *Store) MessageCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM messages")
	return n, err
}

func (s *Store) FTSCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM messages_fts")
	return n, err
}

// CheckFTS runs the FTS5 integrity check; a nil error means the index
// matches the messages table.
func (s *Store) CheckFTS(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO messages_fts(messages_fts) VALUES('integrity-check')")
	return err
}
