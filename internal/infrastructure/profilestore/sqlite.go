package profilestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/productgoat/backend/internal/domain"
)

// profileKey is the fixed storage key for the single local profile. Keying by
// an explicit profile identifier would make this multi-profile; today one
// record per client is all the application supports.
const profileKey = "userProfileData"

// Store is a sqlite-backed key-value store holding the onboarding profile.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates or opens the profile database.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted profile, or ErrProfileNotFound if onboarding has
// never completed.
func (s *Store) Load(ctx context.Context) (*domain.Profile, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, profileKey)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(value, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// Save writes the full profile record under the fixed key.
func (s *Store) Save(ctx context.Context, profile *domain.Profile) error {
	value, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		profileKey, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Exists reports whether a profile has been persisted.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, profileKey)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check profile: %w", err)
	}
	return count > 0, nil
}
