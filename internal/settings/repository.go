// Package settings persists small key-value client state in a local sqlite
// database: the bearer token and the backend URL. Values stored here take
// precedence over environment variables, so both can be changed from the
// login screen without restarting.
package settings

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Keys used by the admin client.
const (
	KeyToken  = "token"
	KeyAPIURL = "api_url"
)

// Repository handles settings database operations. Settings are stored as
// strings in a single key/value table.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates the repository and ensures the settings table exists.
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	r := &Repository{
		db:  db,
		log: log.With().Str("repository", "settings").Logger(),
	}
	if err := r.migrate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}

// Get retrieves a setting value by key. Returns "" if the setting doesn't
// exist; absence is not an error.
func (r *Repository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Set stores a setting value, inserting or replacing in one statement.
func (r *Repository) Set(key, value string) error {
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	r.log.Debug().Str("key", key).Msg("setting saved")
	return nil
}

// Delete removes a setting. Deleting a missing key is a no-op.
func (r *Repository) Delete(key string) error {
	_, err := r.db.Exec("DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// Token returns the stored bearer token, "" when the user has never logged in.
func (r *Repository) Token() (string, error) {
	return r.Get(KeyToken)
}

// SetToken persists the bearer token.
func (r *Repository) SetToken(token string) error {
	return r.Set(KeyToken, token)
}

// ClearToken logs the user out.
func (r *Repository) ClearToken() error {
	return r.Delete(KeyToken)
}

// APIURL returns the backend URL saved from the login screen, "" when unset.
func (r *Repository) APIURL() (string, error) {
	return r.Get(KeyAPIURL)
}

// SetAPIURL persists the backend URL.
func (r *Repository) SetAPIURL(apiURL string) error {
	return r.Set(KeyAPIURL, apiURL)
}
