package vectorstore

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/require"
)

func TestStore_UpsertVacancyEmbedding(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vec := []float32{0.1, 0.2, 0.3}
	mock.ExpectExec("INSERT INTO vacancy_embeddings").
		WithArgs("vac-1", pgvector.NewVector(vec), "localhash-v1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewStore(mock)
	err = store.UpsertVacancyEmbedding(context.Background(), VacancyEmbedding{
		VacancyID: "vac-1", Embedding: vec, ModelName: "localhash-v1",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetProfileEmbedding_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT embedding, model_name").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := NewStore(mock)
	_, err = store.GetProfileEmbedding(context.Background(), "missing")
	require.ErrorIs(t, err, ErrEmbeddingNotFound)
}

func TestStore_NearestVacancies(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vec := []float32{0.1, 0.2, 0.3}
	mock.ExpectQuery("SELECT v.vacancy_id, v.embedding").
		WithArgs(pgvector.NewVector(vec), 5).
		WillReturnRows(pgxmock.NewRows([]string{"vacancy_id", "distance"}).
			AddRow("vac-1", 0.1).
			AddRow("vac-2", 0.3))

	store := NewStore(mock)
	candidates, err := store.NearestVacancies(context.Background(), vec, 5)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "vac-1", candidates[0].EntityID)
}
