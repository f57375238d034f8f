// Package vectorstore persists and queries the unit-norm embedding vectors
// of vacancies and profiles (component C): UPSERT keyed by entity id, and
// cosine nearest-neighbor retrieval via pgvector's `<=>` operator.
package vectorstore

import "time"

// VacancyEmbedding is one row per vacancy (§3 "Embeddings").
type VacancyEmbedding struct {
	VacancyID string
	Embedding []float32
	ModelName string
	UpdatedAt time.Time
}

// ProfileEmbedding is one row per profile.
type ProfileEmbedding struct {
	ProfileID string
	Embedding []float32
	ModelName string
	UpdatedAt time.Time
}

// Candidate is one result row of a nearest-neighbor query: the entity id
// and its cosine distance to the query vector (ascending; rows without an
// embedding are never returned by the query itself — callers needing the
// "rows without an embedding come last" semantics of §4.6 step 1 append
// those separately).
type Candidate struct {
	EntityID string
	Distance float64
}
