package tailoring

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	matchstoremodel "github.com/andreypavlenko/jobmatch/modules/matchstore/model"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	vacancymodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"
)

// ProfileReader is the slice of modules/profiles the bundler needs.
type ProfileReader interface {
	GetByID(ctx context.Context, profileID string) (*profilemodel.Profile, error)
	ListSkills(ctx context.Context, profileID string) ([]profilemodel.Skill, error)
}

// VacancyReader is the slice of modules/vacancies the bundler needs.
type VacancyReader interface {
	GetByID(ctx context.Context, vacancyID string) (*vacancymodel.Vacancy, error)
	GetParsed(ctx context.Context, vacancyID string) (*vacancymodel.VacancyParsed, error)
	ListSkillRequirements(ctx context.Context, vacancyID string) ([]*vacancymodel.VacancyRequirement, error)
}

// EmbeddingReader is the slice of modules/vectorstore the bundler needs to
// build a matching.Input when no score is stored yet.
type EmbeddingReader interface {
	GetProfileEmbedding(ctx context.Context, profileID string) (*vectorstore.ProfileEmbedding, error)
	GetVacancyEmbedding(ctx context.Context, vacancyID string) (*vectorstore.VacancyEmbedding, error)
}

// ScoreStore is the matchstore surface the bundler reads/writes through.
type ScoreStore interface {
	GetOrCompute(ctx context.Context, profileID, vacancyID string, buildInput func() (matching.Input, error)) (*matchstoremodel.VacancyScore, []*matchstoremodel.ResumeEvidence, error)
}
