package news

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsColumns() []string {
	return []string{
		"id", "date", "title", "summary", "url", "category",
		"is_saved", "user_note", "telegram_sent",
	}
}

func TestDBNewsRepository_ExistsByURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		setupMock func(mock sqlmock.Sqlmock)
		want      bool
		wantErr   bool
	}{
		{
			name: "exists",
			url:  "https://example.com/a",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id FROM news WHERE url = \\?").
					WithArgs("https://example.com/a").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			want: true,
		},
		{
			name: "not found",
			url:  "https://example.com/b",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id FROM news WHERE url = \\?").
					WithArgs("https://example.com/b").
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			want: false,
		},
		{
			name: "db error",
			url:  "https://example.com/c",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id FROM news WHERE url = \\?").
					WithArgs("https://example.com/c").
					WillReturnError(fmt.Errorf("database is locked"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			got, err := repo.ExistsByURL(context.Background(), tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBNewsRepository_SaveBulk(t *testing.T) {
	articles := []Article{
		{Date: "2025-06-01", Title: "Rates hold", Summary: "Summary A", URL: "https://example.com/a", Category: "Economy"},
		{Date: "2025-06-01", Title: "Election recap", Summary: "Summary B", URL: "https://example.com/b", Category: "World"},
	}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      int
		wantErr   bool
	}{
		{
			name: "inserts all",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT OR IGNORE INTO news").
					WithArgs("2025-06-01", "Rates hold", "Summary A", "https://example.com/a", "Economy").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("INSERT OR IGNORE INTO news").
					WithArgs("2025-06-01", "Election recap", "Summary B", "https://example.com/b", "World").
					WillReturnResult(sqlmock.NewResult(2, 1))
			},
			want: 2,
		},
		{
			name: "skips duplicate url",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT OR IGNORE INTO news").
					WithArgs("2025-06-01", "Rates hold", "Summary A", "https://example.com/a", "Economy").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT OR IGNORE INTO news").
					WithArgs("2025-06-01", "Election recap", "Summary B", "https://example.com/b", "World").
					WillReturnResult(sqlmock.NewResult(2, 1))
			},
			want: 1,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT OR IGNORE INTO news").
					WithArgs("2025-06-01", "Rates hold", "Summary A", "https://example.com/a", "Economy").
					WillReturnError(fmt.Errorf("database is locked"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			got, err := repo.SaveBulk(context.Background(), articles)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBNewsRepository_Find(t *testing.T) {
	tests := []struct {
		name      string
		filter    Filter
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name:   "no filter uses default limit",
			filter: Filter{},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(newsColumns()).
					AddRow(2, "2025-06-02", "B", "sb", "https://example.com/b", "World", false, "", true).
					AddRow(1, "2025-06-01", "A", "sa", "https://example.com/a", "Economy", true, "note", false)
				mock.ExpectQuery("SELECT \\* FROM news WHERE 1 = 1 ORDER BY id DESC LIMIT \\?").
					WithArgs(50).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name:   "category and date filter",
			filter: Filter{Category: "Economy", Date: "2025-06-01", Limit: 10},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(newsColumns()).
					AddRow(1, "2025-06-01", "A", "sa", "https://example.com/a", "Economy", true, "note", false)
				mock.ExpectQuery("SELECT \\* FROM news WHERE 1 = 1 AND category = \\? AND date = \\? ORDER BY id DESC LIMIT \\?").
					WithArgs("Economy", "2025-06-01", 10).
					WillReturnRows(rows)
			},
			wantLen: 1,
		},
		{
			name:   "db error",
			filter: Filter{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM news WHERE 1 = 1 ORDER BY id DESC LIMIT \\?").
					WithArgs(50).
					WillReturnError(fmt.Errorf("database is locked"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			got, err := repo.Find(context.Background(), tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBNewsRepository_FindUnsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))

	rows := sqlmock.NewRows(newsColumns()).
		AddRow(1, "2025-06-01", "A", "sa", "https://example.com/a", "Economy", false, "", false).
		AddRow(2, "2025-06-01", "B", "sb", "https://example.com/b", "World", false, "", false)
	mock.ExpectQuery("SELECT \\* FROM news WHERE date = \\? AND telegram_sent = 0 ORDER BY id ASC LIMIT \\?").
		WithArgs("2025-06-01", 10).
		WillReturnRows(rows)

	got, err := repo.FindUnsent(context.Background(), "2025-06-01", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.False(t, got[0].TelegramSent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBNewsRepository_FindSaved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))

	rows := sqlmock.NewRows(newsColumns()).
		AddRow(3, "2025-06-02", "C", "sc", "https://example.com/c", "Society", true, "read later", true)
	mock.ExpectQuery("SELECT \\* FROM news WHERE is_saved = 1 ORDER BY id DESC").
		WillReturnRows(rows)

	got, err := repo.FindSaved(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsSaved)
	assert.Equal(t, "read later", got[0].UserNote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBNewsRepository_MarkSent(t *testing.T) {
	tests := []struct {
		name      string
		ids       []int64
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:      "no ids",
			ids:       nil,
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "marks each id",
			ids:  []int64{1, 2},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE news SET telegram_sent = 1 WHERE id = \\?").
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE news SET telegram_sent = 1 WHERE id = \\?").
					WithArgs(int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			ids:  []int64{1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE news SET telegram_sent = 1 WHERE id = \\?").
					WithArgs(int64(1)).
					WillReturnError(fmt.Errorf("database is locked"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			err = repo.MarkSent(context.Background(), tt.ids)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBNewsRepository_SetSaved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))

	mock.ExpectExec("UPDATE news SET is_saved = \\? WHERE id = \\?").
		WithArgs(true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetSaved(context.Background(), 5, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBNewsRepository_UpdateNote(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))

	mock.ExpectExec("UPDATE news SET user_note = \\? WHERE id = \\?").
		WithArgs("follow up", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateNote(context.Background(), 5, "follow up"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBNewsRepository_Dates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBNewsRepository(sqlx.NewDb(db, "sqlite"))

	mock.ExpectQuery("SELECT DISTINCT date FROM news ORDER BY date DESC").
		WillReturnRows(sqlmock.NewRows([]string{"date"}).AddRow("2025-06-02").AddRow("2025-06-01"))

	got, err := repo.Dates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-02", "2025-06-01"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
