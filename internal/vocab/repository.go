// Package vocab provides vocabulary domain models and repository interfaces.
package vocab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	// StatusActive marks a word still being learned.
	StatusActive = "active"
	// StatusMemorized marks a word the user has learned.
	StatusMemorized = "memorized"
)

// Word represents a vocabulary entry in a wordbook.
type Word struct {
	ID         int64  `db:"id"`
	Book       string `db:"book"`
	Word       string `db:"word"`
	Meaning    string `db:"meaning"`
	Grammar    string `db:"grammar"`
	Sentence   string `db:"sentence"`
	Example    string `db:"example"`
	AddedDate  string `db:"added_date"`
	Status     string `db:"status"`
	UsageCount int    `db:"usage_count"`
}

// Filter narrows word queries. Zero values mean no restriction.
type Filter struct {
	Book   string
	Status string
	Search string
}

// QuizStats aggregates quiz answer history.
type QuizStats struct {
	Total        int     `db:"total"`
	TotalCorrect int     `db:"total_correct"`
	Today        int     `db:"today"`
	TodayCorrect int     `db:"today_correct"`
	Week         int     `db:"week"`
	WeekCorrect  int     `db:"week_correct"`
	Accuracy     float64 `db:"-"`
}

// VocabRepository defines operations for managing vocabulary words and quiz logs.
type VocabRepository interface {
	AddBulk(ctx context.Context, words []Word) (int, error)
	Find(ctx context.Context, filter Filter) ([]Word, error)
	Books(ctx context.Context) ([]string, error)
	RenameBook(ctx context.Context, from, to string) error
	DeleteBook(ctx context.Context, book string) error
	UpdateStatusBulk(ctx context.Context, ids []int64, status string) error
	DeleteBulk(ctx context.Context, ids []int64) error
	RandomUnlearned(ctx context.Context, count int) ([]Word, error)
	IncrementUsage(ctx context.Context, ids []int64) error
	RandomQuizWord(ctx context.Context) (*Word, error)
	LogQuizResult(ctx context.Context, wordID int64, correct bool) error
	Stats(ctx context.Context) (*QuizStats, error)
}

// DBVocabRepository implements VocabRepository using SQLite.
type DBVocabRepository struct {
	db *sqlx.DB
}

// NewDBVocabRepository creates a new DBVocabRepository.
func NewDBVocabRepository(db *sqlx.DB) *DBVocabRepository {
	return &DBVocabRepository{db: db}
}

// AddBulk inserts words, skipping duplicates within the same book, and
// returns the number of newly inserted rows.
func (r *DBVocabRepository) AddBulk(ctx context.Context, words []Word) (int, error) {
	inserted := 0
	for _, word := range words {
		status := word.Status
		if status == "" {
			status = StatusActive
		}
		result, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO vocab (book, word, meaning, grammar, sentence, example, added_date, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			word.Book, word.Word, word.Meaning, word.Grammar, word.Sentence,
			word.Example, word.AddedDate, status)
		if err != nil {
			return inserted, fmt.Errorf("db.ExecContext(insert vocab) > %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("result.RowsAffected() > %w", err)
		}
		inserted += int(affected)
	}
	return inserted, nil
}

// Find returns words matching the filter, newest first.
func (r *DBVocabRepository) Find(ctx context.Context, filter Filter) ([]Word, error) {
	query := "SELECT * FROM vocab WHERE 1 = 1"
	args := []any{}
	if filter.Book != "" {
		query += " AND book = ?"
		args = append(args, filter.Book)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		query += " AND (word LIKE ? OR meaning LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY id DESC"

	var words []Word
	if err := r.db.SelectContext(ctx, &words, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(vocab) > %w", err)
	}
	return words, nil
}

// Books returns the distinct wordbook names.
func (r *DBVocabRepository) Books(ctx context.Context) ([]string, error) {
	var books []string
	if err := r.db.SelectContext(ctx, &books,
		"SELECT DISTINCT book FROM vocab ORDER BY book"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(vocab books) > %w", err)
	}
	return books, nil
}

// RenameBook moves every word in a book to a new book name.
func (r *DBVocabRepository) RenameBook(ctx context.Context, from, to string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE vocab SET book = ? WHERE book = ?", to, from); err != nil {
		return fmt.Errorf("db.ExecContext(rename vocab book) > %w", err)
	}
	return nil
}

// DeleteBook removes every word in a book.
func (r *DBVocabRepository) DeleteBook(ctx context.Context, book string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM vocab WHERE book = ?", book); err != nil {
		return fmt.Errorf("db.ExecContext(delete vocab book) > %w", err)
	}
	return nil
}

// UpdateStatusBulk sets the learning status on the given words.
func (r *DBVocabRepository) UpdateStatusBulk(ctx context.Context, ids []int64, status string) error {
	for _, id := range ids {
		if _, err := r.db.ExecContext(ctx,
			"UPDATE vocab SET status = ? WHERE id = ?", status, id); err != nil {
			return fmt.Errorf("db.ExecContext(update vocab status) > %w", err)
		}
	}
	return nil
}

// DeleteBulk removes the given words.
func (r *DBVocabRepository) DeleteBulk(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := r.db.ExecContext(ctx,
			"DELETE FROM vocab WHERE id = ?", id); err != nil {
			return fmt.Errorf("db.ExecContext(delete vocab) > %w", err)
		}
	}
	return nil
}

// RandomUnlearned returns up to count random words still being learned.
func (r *DBVocabRepository) RandomUnlearned(ctx context.Context, count int) ([]Word, error) {
	var words []Word
	if err := r.db.SelectContext(ctx, &words,
		"SELECT * FROM vocab WHERE status = ? ORDER BY RANDOM() LIMIT ?",
		StatusActive, count); err != nil {
		return nil, fmt.Errorf("db.SelectContext(random vocab) > %w", err)
	}
	return words, nil
}

// IncrementUsage bumps the delivery counter on the given words.
func (r *DBVocabRepository) IncrementUsage(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := r.db.ExecContext(ctx,
			"UPDATE vocab SET usage_count = usage_count + 1 WHERE id = ?", id); err != nil {
			return fmt.Errorf("db.ExecContext(increment vocab usage) > %w", err)
		}
	}
	return nil
}

// RandomQuizWord returns one random word still being learned, or nil if none remain.
func (r *DBVocabRepository) RandomQuizWord(ctx context.Context) (*Word, error) {
	var word Word
	err := r.db.GetContext(ctx, &word,
		"SELECT * FROM vocab WHERE status = ? ORDER BY RANDOM() LIMIT 1", StatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(random quiz word) > %w", err)
	}
	return &word, nil
}

// LogQuizResult records a quiz answer for a word.
func (r *DBVocabRepository) LogQuizResult(ctx context.Context, wordID int64, correct bool) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO quiz_logs (word_id, is_correct) VALUES (?, ?)", wordID, correct); err != nil {
		return fmt.Errorf("db.ExecContext(insert quiz_log) > %w", err)
	}
	return nil
}

// Stats aggregates quiz answer counts for all time, today, and the last 7 days.
func (r *DBVocabRepository) Stats(ctx context.Context) (*QuizStats, error) {
	var stats QuizStats
	err := r.db.GetContext(ctx, &stats,
		`SELECT
			COUNT(*) AS total,
			COALESCE(SUM(is_correct), 0) AS total_correct,
			COALESCE(SUM(CASE WHEN DATE(created_at) = DATE('now') THEN 1 ELSE 0 END), 0) AS today,
			COALESCE(SUM(CASE WHEN DATE(created_at) = DATE('now') THEN is_correct ELSE 0 END), 0) AS today_correct,
			COALESCE(SUM(CASE WHEN created_at >= DATETIME('now', '-7 days') THEN 1 ELSE 0 END), 0) AS week,
			COALESCE(SUM(CASE WHEN created_at >= DATETIME('now', '-7 days') THEN is_correct ELSE 0 END), 0) AS week_correct
		FROM quiz_logs`)
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(quiz stats) > %w", err)
	}
	if stats.Total > 0 {
		stats.Accuracy = float64(stats.TotalCorrect) / float64(stats.Total) * 100
	}
	return &stats, nil
}
