package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSettingsRepository_Get(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		wantErr   bool
	}{
		{
			name: "found",
			key:  KeyLastNewsFetch,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM settings WHERE key = \\?").
					WithArgs(KeyLastNewsFetch).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("2025-06-01 06:00"))
			},
			want: "2025-06-01 06:00",
		},
		{
			name: "absent key returns empty string",
			key:  "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM settings WHERE key = \\?").
					WithArgs("missing").
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
			want: "",
		},
		{
			name: "db error",
			key:  KeyLastNewsFetch,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM settings WHERE key = \\?").
					WithArgs(KeyLastNewsFetch).
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

			repo := NewDBSettingsRepository(sqlx.NewDb(db, "sqlite"))
			tt.setupMock(mock)

			got, err := repo.Get(context.Background(), tt.key)
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

func TestDBSettingsRepository_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBSettingsRepository(sqlx.NewDb(db, "sqlite"))

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(KeySendTimes, "06:00,12:00,18:00").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), KeySendTimes, "06:00,12:00,18:00"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
