package repository

import (
	"context"
	"testing"
	"time"

	"github.com/andreypavlenko/jobmatch/modules/ingestion"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestSavedSearchRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, text, area").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewSavedSearchRepository(mock)
	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ingestion.ErrSavedSearchNotFound)
}

func TestSavedSearchRepository_ListActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, text, area").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "text", "area", "schedule", "experience", "salary_from", "salary_to", "currency",
			"filters_json", "per_page", "pages_limit", "cursor_page", "is_active",
			"last_sync_at", "last_seen_published_at", "created_at", "updated_at",
		}).AddRow(
			"s-1", "golang", "1", "remote", "between1And3", nil, nil, "RUR",
			[]byte(`{}`), 20, 3, 0, true,
			(*time.Time)(nil), (*time.Time)(nil), now, now,
		))

	repo := NewSavedSearchRepository(mock)
	out, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "golang", out[0].Text)
}

func TestSavedSearchRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, text, area").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "text", "area", "schedule", "experience", "salary_from", "salary_to", "currency",
			"filters_json", "per_page", "pages_limit", "cursor_page", "is_active",
			"last_sync_at", "last_seen_published_at", "created_at", "updated_at",
		}).AddRow(
			"s-1", "golang", "1", "remote", "between1And3", nil, nil, "RUR",
			[]byte(`{}`), 20, 3, 0, false,
			(*time.Time)(nil), (*time.Time)(nil), now, now,
		))

	repo := NewSavedSearchRepository(mock)
	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.False(t, out[0].IsActive)
}

func TestSavedSearchRepository_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO saved_searches").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewSavedSearchRepository(mock)
	err = repo.Update(context.Background(), &ingestion.SavedSearch{ID: "s-1", Text: "golang", PerPage: 20})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
