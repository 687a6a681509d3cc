// Package settings provides a key-value store for runtime state.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Keys for well-known settings.
const (
	KeyLastNewsFetch = "last_news_fetch"
	KeySendTimes     = "send_times"
)

// SettingsRepository defines operations for reading and writing settings.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// DBSettingsRepository implements SettingsRepository using SQLite.
type DBSettingsRepository struct {
	db *sqlx.DB
}

// NewDBSettingsRepository creates a new DBSettingsRepository.
func NewDBSettingsRepository(db *sqlx.DB) *DBSettingsRepository {
	return &DBSettingsRepository{db: db}
}

// Get returns the value for a key, or an empty string when the key is absent.
func (r *DBSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("db.GetContext(setting %s) > %w", key, err)
	}
	return value, nil
}

// Set writes a key-value pair, replacing any previous value.
func (r *DBSettingsRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value); err != nil {
		return fmt.Errorf("db.ExecContext(set setting %s) > %w", key, err)
	}
	return nil
}
