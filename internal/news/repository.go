// Package news provides news article domain models and repository interfaces.
package news

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Article represents a curated news article.
type Article struct {
	ID           int64  `db:"id"`
	Date         string `db:"date"`
	Title        string `db:"title"`
	Summary      string `db:"summary"`
	URL          string `db:"url"`
	Category     string `db:"category"`
	IsSaved      bool   `db:"is_saved"`
	UserNote     string `db:"user_note"`
	TelegramSent bool   `db:"telegram_sent"`
}

// Filter narrows article queries. Zero values mean no restriction.
type Filter struct {
	Category string
	Date     string
	Limit    int
}

// NewsRepository defines operations for managing news articles.
type NewsRepository interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	SaveBulk(ctx context.Context, articles []Article) (int, error)
	Find(ctx context.Context, filter Filter) ([]Article, error)
	FindUnsent(ctx context.Context, date string, limit int) ([]Article, error)
	FindSaved(ctx context.Context) ([]Article, error)
	MarkSent(ctx context.Context, ids []int64) error
	SetSaved(ctx context.Context, id int64, saved bool) error
	UpdateNote(ctx context.Context, id int64, note string) error
	Dates(ctx context.Context) ([]string, error)
}

// DBNewsRepository implements NewsRepository using SQLite.
type DBNewsRepository struct {
	db *sqlx.DB
}

// NewDBNewsRepository creates a new DBNewsRepository.
func NewDBNewsRepository(db *sqlx.DB) *DBNewsRepository {
	return &DBNewsRepository{db: db}
}

// ExistsByURL reports whether an article with the given URL is already stored.
func (r *DBNewsRepository) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, "SELECT id FROM news WHERE url = ?", url)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db.GetContext(news by url) > %w", err)
	}
	return true, nil
}

// SaveBulk inserts articles, skipping URLs already stored, and returns the
// number of newly inserted rows.
func (r *DBNewsRepository) SaveBulk(ctx context.Context, articles []Article) (int, error) {
	inserted := 0
	for _, article := range articles {
		result, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO news (date, title, summary, url, category)
			VALUES (?, ?, ?, ?, ?)`,
			article.Date, article.Title, article.Summary, article.URL, article.Category)
		if err != nil {
			return inserted, fmt.Errorf("db.ExecContext(insert news) > %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("result.RowsAffected() > %w", err)
		}
		inserted += int(affected)
	}
	return inserted, nil
}

// Find returns articles matching the filter, newest first.
func (r *DBNewsRepository) Find(ctx context.Context, filter Filter) ([]Article, error) {
	query := "SELECT * FROM news WHERE 1 = 1"
	args := []any{}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Date != "" {
		query += " AND date = ?"
		args = append(args, filter.Date)
	}
	query += " ORDER BY id DESC LIMIT ?"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	var articles []Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(news) > %w", err)
	}
	return articles, nil
}

// FindUnsent returns articles from the given date not yet delivered to
// Telegram, oldest first. Older unsent rows stay out of scheduled sends.
func (r *DBNewsRepository) FindUnsent(ctx context.Context, date string, limit int) ([]Article, error) {
	var articles []Article
	if err := r.db.SelectContext(ctx, &articles,
		"SELECT * FROM news WHERE date = ? AND telegram_sent = 0 ORDER BY id ASC LIMIT ?",
		date, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(unsent news) > %w", err)
	}
	return articles, nil
}

// FindSaved returns articles the user bookmarked, newest first.
func (r *DBNewsRepository) FindSaved(ctx context.Context) ([]Article, error) {
	var articles []Article
	if err := r.db.SelectContext(ctx, &articles,
		"SELECT * FROM news WHERE is_saved = 1 ORDER BY id DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(saved news) > %w", err)
	}
	return articles, nil
}

// MarkSent flags the given articles as delivered to Telegram.
func (r *DBNewsRepository) MarkSent(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := r.db.ExecContext(ctx,
			"UPDATE news SET telegram_sent = 1 WHERE id = ?", id); err != nil {
			return fmt.Errorf("db.ExecContext(mark news sent) > %w", err)
		}
	}
	return nil
}

// SetSaved toggles the bookmark flag on an article.
func (r *DBNewsRepository) SetSaved(ctx context.Context, id int64, saved bool) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE news SET is_saved = ? WHERE id = ?", saved, id); err != nil {
		return fmt.Errorf("db.ExecContext(set news saved) > %w", err)
	}
	return nil
}

// UpdateNote replaces the user note on an article.
func (r *DBNewsRepository) UpdateNote(ctx context.Context, id int64, note string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE news SET user_note = ? WHERE id = ?", note, id); err != nil {
		return fmt.Errorf("db.ExecContext(update news note) > %w", err)
	}
	return nil
}

// Dates returns the distinct dates that have stored articles, newest first.
func (r *DBNewsRepository) Dates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := r.db.SelectContext(ctx, &dates,
		"SELECT DISTINCT date FROM news ORDER BY date DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(news dates) > %w", err)
	}
	return dates, nil
}
