package ingestion

import (
	"context"
	"time"

	"github.com/andreypavlenko/jobmatch/modules/jobboard"
	vacports "github.com/andreypavlenko/jobmatch/modules/vacancies/ports"
)

// JobBoardClient is the slice of jobboard.Client's method set this package
// needs, so tests can substitute a fake without an HTTP server.
type JobBoardClient interface {
	Search(ctx context.Context, f jobboard.SearchFilters) (*jobboard.SearchPage, error)
	GetDetails(ctx context.Context, externalID string) (*jobboard.VacancyItem, error)
}

// Transactor runs one vacancy write (UpsertVacancy + UpsertParsed +
// ReplaceRequirements) inside a single Postgres transaction per item
// (§4.4). Optional: a nil Transactor makes Import write each call against
// the repository directly, which is what unit tests do.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(vacports.VacancyRepository) error) error
}

// TaskEnqueuer schedules follow-on work (embedding builds) without this
// package depending on internal/platform/queue directly.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, name string, args any) (string, error)
}

// SavedSearchRepository defines data access for saved searches.
type SavedSearchRepository interface {
	GetByID(ctx context.Context, id string) (*SavedSearch, error)
	ListActive(ctx context.Context) ([]*SavedSearch, error)
	List(ctx context.Context) ([]*SavedSearch, error)
	Update(ctx context.Context, s *SavedSearch) error
}

// Clock abstracts time.Now for deterministic tests.
type Clock func() time.Time
