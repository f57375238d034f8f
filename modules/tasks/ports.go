package tasks

import (
	"context"

	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	"github.com/andreypavlenko/jobmatch/modules/ingestion"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/andreypavlenko/jobmatch/modules/recommend"
	vacancymodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"
)

// Importer runs a one-off import not tied to a stored saved search
// (ingestion.Service.Import), for import_hh.
type Importer interface {
	Import(ctx context.Context, opts ingestion.ImportOptions) (*ingestion.ImportResult, error)
}

// SavedSearchGetter is the slice of ingestion's repository this package
// needs to resolve a sync_saved_search task's argument into a SavedSearch.
type SavedSearchGetter interface {
	GetByID(ctx context.Context, id string) (*ingestion.SavedSearch, error)
}

// Syncer runs one saved-search sync (ingestion.Service.Sync).
type Syncer interface {
	Sync(ctx context.Context, search *ingestion.SavedSearch) (*ingestion.ImportResult, error)
}

// SavedSearchLister is what the beat scheduler needs to enumerate active
// saved searches on each tick (§4.4 "A scheduled beat tick enumerates
// active saved searches").
type SavedSearchLister interface {
	ListActive(ctx context.Context) ([]*ingestion.SavedSearch, error)
}

// TaskScheduler is the slice of queue.Client the beat scheduler needs.
type TaskScheduler interface {
	Enqueue(ctx context.Context, name string, args any) (string, error)
}

// VacancyDocumentReader is the slice of vacancy reads
// build_vacancy_embedding needs to compose an embedding document (§4.8).
type VacancyDocumentReader interface {
	GetByID(ctx context.Context, vacancyID string) (*vacancymodel.Vacancy, error)
	GetParsed(ctx context.Context, vacancyID string) (*vacancymodel.VacancyParsed, error)
	ListSkillRequirements(ctx context.Context, vacancyID string) ([]*vacancymodel.VacancyRequirement, error)
}

// ProfileDocumentReader is the slice of profile reads
// build_profile_embedding needs.
type ProfileDocumentReader interface {
	GetByID(ctx context.Context, profileID string) (*profilemodel.Profile, error)
	ListSkills(ctx context.Context, profileID string) ([]profilemodel.Skill, error)
}

// EmbeddingStore upserts the vectors both embedding tasks produce.
type EmbeddingStore interface {
	UpsertVacancyEmbedding(ctx context.Context, e vectorstore.VacancyEmbedding) error
	UpsertProfileEmbedding(ctx context.Context, e vectorstore.ProfileEmbedding) error
}

// EmbeddingProvider is the slice of embeddings.Provider the tasks need.
type EmbeddingProvider interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Recomputer runs the recommendation driver (modules/recommend.Driver.Recompute).
type Recomputer interface {
	Recompute(ctx context.Context, profileID string, limit int) ([]recommend.Item, error)
}

// TaskResultReader reads back a chain predecessor's stored result, the way
// notify recovers recompute_recommendations' output.
type TaskResultReader interface {
	AsyncResult(ctx context.Context, taskID string) (*queue.Result, error)
}

// EmailSender is the capability notify needs from a Resend client, narrowed
// so tests substitute a fake instead of calling the real API.
type EmailSender interface {
	Send(ctx context.Context, fromEmail string, toEmail string, subject, html string) error
}
