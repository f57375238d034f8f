package ports

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/matchstore/model"
)

// ScoreRepository defines data access for matching-engine output
// (component I persistence, component J reads).
type ScoreRepository interface {
	// SaveScore implements §4.5 "Persistence": in one transaction, delete
	// prior evidence for (profileID, vacancyID), insert the fresh set, and
	// UPSERT the VacancyScore row.
	SaveScore(ctx context.Context, score *model.VacancyScore, evidence []*model.ResumeEvidence) error

	GetScore(ctx context.Context, profileID, vacancyID string) (*model.VacancyScore, error)
	ListEvidence(ctx context.Context, profileID, vacancyID string) ([]*model.ResumeEvidence, error)

	// ListTopRecommendations returns stored scores for a profile ordered
	// by final_score desc, vacancy_id asc (§4.6 step 3, §6 listing order).
	ListTopRecommendations(ctx context.Context, profileID string, limit int) ([]*model.RecommendationItem, error)
}
