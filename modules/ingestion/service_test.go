package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/andreypavlenko/jobmatch/modules/jobboard"
	vacmodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/stretchr/testify/require"
)

type fakeJobBoard struct {
	pages map[int]*jobboard.SearchPage
}

func (f *fakeJobBoard) Search(ctx context.Context, filters jobboard.SearchFilters) (*jobboard.SearchPage, error) {
	p, ok := f.pages[filters.Page]
	if !ok {
		return &jobboard.SearchPage{}, nil
	}
	return p, nil
}

func (f *fakeJobBoard) GetDetails(ctx context.Context, externalID string) (*jobboard.VacancyItem, error) {
	return &jobboard.VacancyItem{ExternalID: externalID, Description: "детали вакансии"}, nil
}

type fakeVacancyRepo struct {
	seen map[string]bool
}

func newFakeVacancyRepo() *fakeVacancyRepo { return &fakeVacancyRepo{seen: map[string]bool{}} }

func (f *fakeVacancyRepo) UpsertVacancy(ctx context.Context, v *vacmodel.Vacancy) (string, bool, error) {
	key := v.Source + ":" + v.ExternalID
	created := !f.seen[key]
	f.seen[key] = true
	v.ID = key
	return key, created, nil
}
func (f *fakeVacancyRepo) UpsertParsed(ctx context.Context, p *vacmodel.VacancyParsed) error { return nil }
func (f *fakeVacancyRepo) ReplaceRequirements(ctx context.Context, vacancyID string, reqs []*vacmodel.VacancyRequirement) error {
	return nil
}
func (f *fakeVacancyRepo) GetByID(ctx context.Context, vacancyID string) (*vacmodel.Vacancy, error) {
	return nil, vacmodel.ErrVacancyNotFound
}
func (f *fakeVacancyRepo) GetParsed(ctx context.Context, vacancyID string) (*vacmodel.VacancyParsed, error) {
	return nil, vacmodel.ErrVacancyNotFound
}
func (f *fakeVacancyRepo) ListSkillRequirements(ctx context.Context, vacancyID string) ([]*vacmodel.VacancyRequirement, error) {
	return nil, nil
}
func (f *fakeVacancyRepo) List(ctx context.Context, limit, offset int) ([]*vacmodel.VacancyDTO, int, error) {
	return nil, 0, nil
}

type fakeTaskEnqueuer struct {
	enqueued int
}

func (f *fakeTaskEnqueuer) Enqueue(ctx context.Context, name string, args any) (string, error) {
	f.enqueued++
	return "task-1", nil
}

type fakeSavedSearchRepo struct {
	updated *SavedSearch
}

func (f *fakeSavedSearchRepo) GetByID(ctx context.Context, id string) (*SavedSearch, error) {
	return nil, ErrSavedSearchNotFound
}
func (f *fakeSavedSearchRepo) ListActive(ctx context.Context) ([]*SavedSearch, error) { return nil, nil }
func (f *fakeSavedSearchRepo) List(ctx context.Context) ([]*SavedSearch, error) { return nil, nil }
func (f *fakeSavedSearchRepo) Update(ctx context.Context, s *SavedSearch) error {
	f.updated = s
	return nil
}

func TestService_Import_SavesNewVacanciesAndEnqueuesEmbeddings(t *testing.T) {
	published := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	board := &fakeJobBoard{pages: map[int]*jobboard.SearchPage{
		0: {Items: []jobboard.VacancyItem{
			{ExternalID: "1", Title: "Go Developer", PublishedAt: &published, Description: "<p>Требования: Go, PostgreSQL</p>"},
		}},
	}}
	vacancies := newFakeVacancyRepo()
	tasks := &fakeTaskEnqueuer{}
	svc := NewService(board, vacancies, nil, &fakeSavedSearchRepo{}, tasks, "hh", nil)

	result, err := svc.Import(context.Background(), ImportOptions{StartPage: 0, PagesLimit: 1, Filters: SearchFiltersInput{PerPage: 20}})
	require.NoError(t, err)
	require.Equal(t, 1, result.Saved)
	require.Equal(t, 0, result.Updated)
	require.Equal(t, 0, result.Errors)
	require.Equal(t, 1, tasks.enqueued)
	require.NotNil(t, result.MaxPublishedAt)
}

func TestService_Import_StopsAtCutoff(t *testing.T) {
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	board := &fakeJobBoard{pages: map[int]*jobboard.SearchPage{
		0: {Items: []jobboard.VacancyItem{
			{ExternalID: "1", Title: "Stale", PublishedAt: &old, Description: "n/a"},
		}},
	}}
	svc := NewService(board, newFakeVacancyRepo(), nil, &fakeSavedSearchRepo{}, &fakeTaskEnqueuer{}, "hh", nil)

	result, err := svc.Import(context.Background(), ImportOptions{StartPage: 0, PagesLimit: 3, Cutoff: &cutoff})
	require.NoError(t, err)
	require.True(t, result.StopByCutoff)
	require.Equal(t, 0, result.Saved)
}

func TestService_Sync_AdvancesCursorAndWatermark(t *testing.T) {
	published := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	board := &fakeJobBoard{pages: map[int]*jobboard.SearchPage{
		0: {Items: []jobboard.VacancyItem{
			{ExternalID: "1", Title: "Go Developer", PublishedAt: &published, Description: "desc"},
		}},
	}}
	searches := &fakeSavedSearchRepo{}
	fixedNow := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	svc := NewService(board, newFakeVacancyRepo(), nil, searches, &fakeTaskEnqueuer{}, "hh", func() time.Time { return fixedNow })

	search := &SavedSearch{ID: "s-1", PagesLimit: 1, PerPage: 20}
	result, err := svc.Sync(context.Background(), search)
	require.NoError(t, err)
	require.Equal(t, 1, result.Saved)
	require.NotNil(t, searches.updated)
	require.Equal(t, fixedNow, *searches.updated.LastSyncAt)
	require.Equal(t, 1, searches.updated.CursorPage)
	require.NotNil(t, searches.updated.LastSeenPublishedAt)
}
