/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists calendar profiles and sessions. In production, the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  session.Store: Session persistence

KEY TABLES:
  profiles:  Named JSON calendar configurations (versioned)
  sessions:  Live widget state (view, anchor, focused, selection)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/calendar.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  manager := session.NewManager(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - session/session.go: Store interface definition
  - session/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/session"
)

// Store implements profile and session persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Profiles (named JSON calendar configurations)
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Sessions (live widget state)
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL,
		profile_json TEXT NOT NULL,
		view TEXT NOT NULL,
		anchor TEXT NOT NULL,
		focused TEXT NOT NULL,
		selection_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Sweeper scans by idle time
	CREATE INDEX IF NOT EXISTS idx_sessions_updated_at
		ON sessions(updated_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_profile
		ON sessions(profile_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILE STORE
// =============================================================================

// ProfileRecord is a stored profile with its JSON config.
type ProfileRecord struct {
	ID         string
	Name       string
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaveProfile saves a profile record. Re-saving an ID bumps its version.
func (s *Store) SaveProfile(ctx context.Context, p ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO profiles (id, name, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			version = profiles.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.ConfigJSON, p.Version, now, now,
	)
	return err
}

// GetProfile retrieves a profile by ID. Returns nil when unknown.
func (s *Store) GetProfile(ctx context.Context, id string) (*ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p ProfileRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM profiles WHERE id = ?",
		id,
	).Scan(&p.ID, &p.Name, &p.ConfigJSON, &p.Version, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// ListProfiles returns all profiles.
func (s *Store) ListProfiles(ctx context.Context) ([]ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM profiles ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []ProfileRecord
	for rows.Next() {
		var p ProfileRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.ConfigJSON, &p.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a profile.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	return err
}

// =============================================================================
// SESSION STORE (session.Store interface)
// =============================================================================

// SaveSession inserts or replaces a session.
func (s *Store) SaveSession(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profileJSON, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	selectionJSON, err := json.Marshal(encodeDates(sess.Selection))
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}

	query := `
		INSERT INTO sessions
		(id, profile_id, profile_json, view, anchor, focused, selection_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			view = excluded.view,
			anchor = excluded.anchor,
			focused = excluded.focused,
			selection_json = excluded.selection_json,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		sess.ID,
		sess.ProfileID,
		string(profileJSON),
		sess.View,
		encodeDate(sess.Anchor),
		encodeDate(sess.Focused),
		string(selectionJSON),
		sess.CreatedAt.UTC().Format(time.RFC3339),
		sess.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetSession retrieves a session by ID. Returns nil when unknown.
func (s *Store) GetSession(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, profile_id, profile_json, view, anchor, focused, selection_json, created_at, updated_at
		FROM sessions WHERE id = ?
	`

	var (
		sess                   session.Session
		profileJSON            string
		anchor, focused        string
		selectionJSON          string
		createdAt, updatedAt   string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sess.ID, &sess.ProfileID, &profileJSON, &sess.View,
		&anchor, &focused, &selectionJSON, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(profileJSON), &sess.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	var selection []string
	if err := json.Unmarshal([]byte(selectionJSON), &selection); err != nil {
		return nil, fmt.Errorf("failed to decode selection: %w", err)
	}
	sess.Selection, err = decodeDates(selection)
	if err != nil {
		return nil, err
	}
	sess.Anchor, err = decodeDate(anchor)
	if err != nil {
		return nil, err
	}
	sess.Focused, err = decodeDate(focused)
	if err != nil {
		return nil, err
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &sess, nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	return err
}

// PurgeSessionsBefore deletes sessions not updated since the cutoff.
func (s *Store) PurgeSessionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE updated_at < ?",
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"sessions", "profiles"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// ParseProfileRecord decodes a stored profile's JSON config.
func ParseProfileRecord(p ProfileRecord) (factory.ProfileJSON, error) {
	var pj factory.ProfileJSON
	if err := json.Unmarshal([]byte(p.ConfigJSON), &pj); err != nil {
		return pj, fmt.Errorf("corrupt profile %s: %w", p.ID, err)
	}
	return pj, nil
}

// Dates are stored as calendar days; the zero Date maps to the empty string.

func encodeDate(d calendar.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func decodeDate(s string) (calendar.Date, error) {
	if strings.TrimSpace(s) == "" {
		return calendar.Date{}, nil
	}
	return calendar.ParseDate(s)
}

func encodeDates(dates []calendar.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, encodeDate(d))
	}
	return out
}

func decodeDates(raw []string) ([]calendar.Date, error) {
	var out []calendar.Date
	for _, s := range raw {
		d, err := decodeDate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
