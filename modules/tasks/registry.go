package tasks

import (
	"time"

	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
)

// Deps wires every handler in this package to the concrete ports it needs.
// Fields are grouped by the task(s) that use them, not by module, since a
// handler's dependency set is the unit of testing here (see
// registry_test.go's fakes).
type Deps struct {
	// import_hh
	Importer Importer

	// sync_saved_search
	SavedSearches SavedSearchGetter
	Syncer        Syncer

	// build_vacancy_embedding / build_profile_embedding
	Vacancies  VacancyDocumentReader
	Profiles   ProfileDocumentReader
	Embeddings EmbeddingStore
	Embedder   EmbeddingProvider

	// recompute_recommendations
	Recomputer Recomputer

	// notify
	Mailer      EmailSender
	FromEmail   string
	TaskResults TaskResultReader

	// Now abstracts time.Now for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// BuildRegistry wires every task name this package owns to its handler, for
// internal/platform/queue.NewWorker.
func (d *Deps) BuildRegistry() queue.Registry {
	return queue.Registry{
		ImportHHTask:                 d.handleImportHH,
		SyncSavedSearchTask:          d.handleSyncSavedSearch,
		BuildVacancyEmbeddingTask:    d.handleBuildVacancyEmbedding,
		BuildProfileEmbeddingTask:    d.handleBuildProfileEmbedding,
		RecomputeRecommendationsTask: d.handleRecomputeRecommendations,
		NotifyTask:                   d.handleNotify,
	}
}
