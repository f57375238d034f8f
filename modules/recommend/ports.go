package recommend

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	matchstoremodel "github.com/andreypavlenko/jobmatch/modules/matchstore/model"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	vacancymodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"
)

// ProfileReader is the slice of modules/profiles the driver needs to
// assemble a matching.ProfileInput.
type ProfileReader interface {
	GetByID(ctx context.Context, profileID string) (*profilemodel.Profile, error)
	ListSkills(ctx context.Context, profileID string) ([]profilemodel.Skill, error)
}

// VacancyReader is the slice of modules/vacancies the driver needs to
// assemble a matching.VacancyInput.
type VacancyReader interface {
	GetByID(ctx context.Context, vacancyID string) (*vacancymodel.Vacancy, error)
	GetParsed(ctx context.Context, vacancyID string) (*vacancymodel.VacancyParsed, error)
	ListSkillRequirements(ctx context.Context, vacancyID string) ([]*vacancymodel.VacancyRequirement, error)
}

// EmbeddingReader is the slice of modules/vectorstore the driver needs
// (§4.6 step 1's candidate retrieval plus both embedding lookups).
type EmbeddingReader interface {
	GetProfileEmbedding(ctx context.Context, profileID string) (*vectorstore.ProfileEmbedding, error)
	GetVacancyEmbedding(ctx context.Context, vacancyID string) (*vectorstore.VacancyEmbedding, error)
	NearestVacancies(ctx context.Context, profileVector []float32, limit int) ([]vectorstore.Candidate, error)
}

// Scorer runs §4.5 over an assembled Input and persists the Result
// (modules/matchstore/service.Service satisfies this).
type Scorer interface {
	ScoreAndSave(ctx context.Context, profileID, vacancyID string, in matching.Input) (*matching.Result, error)
}

// ScoreLister exposes the recommendation read path (§6 "GET
// /profiles/{id}/recommendations").
type ScoreLister interface {
	ListTopRecommendations(ctx context.Context, profileID string, limit int) ([]*matchstoremodel.RecommendationItem, error)
}
