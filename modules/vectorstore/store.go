package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// ErrEmbeddingNotFound is returned when an entity has no embedding row yet.
var ErrEmbeddingNotFound = errors.New("embedding not found")

// Store implements UPSERT and cosine k-NN retrieval against pgvector.
type Store struct {
	pool pgxPool
}

// NewStore creates a store bound to a pool.
func NewStore(pool pgxPool) *Store {
	return &Store{pool: pool}
}

// UpsertVacancyEmbedding UPSERTs the embedding row for a vacancy, keyed by
// vacancy_id (§4.8 "build_vacancy_embedding ... UPSERT embedding row").
func (s *Store) UpsertVacancyEmbedding(ctx context.Context, e VacancyEmbedding) error {
	query := `
		INSERT INTO vacancy_embeddings (vacancy_id, embedding, model_name, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (vacancy_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			model_name = EXCLUDED.model_name,
			updated_at = now()
	`
	_, err := s.pool.Exec(ctx, query, e.VacancyID, pgvector.NewVector(e.Embedding), e.ModelName)
	if err != nil {
		return fmt.Errorf("upsert vacancy_embedding: %w", err)
	}
	return nil
}

// UpsertProfileEmbedding UPSERTs the embedding row for a profile.
func (s *Store) UpsertProfileEmbedding(ctx context.Context, e ProfileEmbedding) error {
	query := `
		INSERT INTO profile_embeddings (profile_id, embedding, model_name, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (profile_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			model_name = EXCLUDED.model_name,
			updated_at = now()
	`
	_, err := s.pool.Exec(ctx, query, e.ProfileID, pgvector.NewVector(e.Embedding), e.ModelName)
	if err != nil {
		return fmt.Errorf("upsert profile_embedding: %w", err)
	}
	return nil
}

// GetProfileEmbedding retrieves a profile's embedding.
func (s *Store) GetProfileEmbedding(ctx context.Context, profileID string) (*ProfileEmbedding, error) {
	var vec pgvector.Vector
	e := &ProfileEmbedding{ProfileID: profileID}
	err := s.pool.QueryRow(ctx, `
		SELECT embedding, model_name, updated_at FROM profile_embeddings WHERE profile_id = $1
	`, profileID).Scan(&vec, &e.ModelName, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmbeddingNotFound
		}
		return nil, fmt.Errorf("get profile_embedding: %w", err)
	}
	e.Embedding = vec.Slice()
	return e, nil
}

// GetVacancyEmbedding retrieves a vacancy's embedding.
func (s *Store) GetVacancyEmbedding(ctx context.Context, vacancyID string) (*VacancyEmbedding, error) {
	var vec pgvector.Vector
	e := &VacancyEmbedding{VacancyID: vacancyID}
	err := s.pool.QueryRow(ctx, `
		SELECT embedding, model_name, updated_at FROM vacancy_embeddings WHERE vacancy_id = $1
	`, vacancyID).Scan(&vec, &e.ModelName, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmbeddingNotFound
		}
		return nil, fmt.Errorf("get vacancy_embedding: %w", err)
	}
	e.Embedding = vec.Slice()
	return e, nil
}

// NearestVacancies implements §4.6 step 1: candidate vacancies ordered by
// cosine distance to the profile's embedding, ascending. Only open
// vacancies with an embedding are returned; vacancies without one are not
// in the result (VacancyIDsWithoutEmbedding lists them separately).
func (s *Store) NearestVacancies(ctx context.Context, profileVector []float32, limit int) ([]Candidate, error) {
	query := `
		SELECT v.vacancy_id, v.embedding <=> $1 AS distance
		FROM vacancy_embeddings v
		JOIN vacancies ON vacancies.id = v.vacancy_id
		WHERE vacancies.status = 'open'
		ORDER BY distance ASC
		LIMIT $2
	`
	rows, err := s.pool.Query(ctx, query, pgvector.NewVector(profileVector), limit)
	if err != nil {
		return nil, fmt.Errorf("query nearest vacancies: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.EntityID, &c.Distance); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// VacancyIDsWithoutEmbedding returns open vacancy ids that have no
// embedding row yet, used to pad the candidate list per §4.6 step 1.
func (s *Store) VacancyIDsWithoutEmbedding(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT vacancies.id FROM vacancies
		LEFT JOIN vacancy_embeddings v ON v.vacancy_id = vacancies.id
		WHERE vacancies.status = 'open' AND v.vacancy_id IS NULL
		LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query vacancies without embedding: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan vacancy id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
