package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	"github.com/andreypavlenko/jobmatch/modules/ingestion"
	"github.com/andreypavlenko/jobmatch/modules/matching"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/andreypavlenko/jobmatch/modules/recommend"
	vacmodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"
	"github.com/stretchr/testify/require"
)

type fakeSavedSearches struct {
	byID map[string]*ingestion.SavedSearch
}

func (f *fakeSavedSearches) GetByID(ctx context.Context, id string) (*ingestion.SavedSearch, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, ingestion.ErrSavedSearchNotFound
	}
	return s, nil
}

func (f *fakeSavedSearches) ListActive(ctx context.Context) ([]*ingestion.SavedSearch, error) {
	var out []*ingestion.SavedSearch
	for _, s := range f.byID {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeImporter struct {
	result *ingestion.ImportResult
	calls  int
}

func (f *fakeImporter) Import(ctx context.Context, opts ingestion.ImportOptions) (*ingestion.ImportResult, error) {
	f.calls++
	return f.result, nil
}

type fakeSyncer struct {
	result *ingestion.ImportResult
	err    error
	calls  []string
}

func (f *fakeSyncer) Sync(ctx context.Context, search *ingestion.SavedSearch) (*ingestion.ImportResult, error) {
	f.calls = append(f.calls, search.ID)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeScheduler struct {
	enqueued []string
}

func (f *fakeScheduler) Enqueue(ctx context.Context, name string, args any) (string, error) {
	f.enqueued = append(f.enqueued, name)
	return "task-" + name, nil
}

type fakeVacancies struct {
	vacancy *vacmodel.Vacancy
	parsed  *vacmodel.VacancyParsed
	reqs    []*vacmodel.VacancyRequirement
}

func (f *fakeVacancies) GetByID(ctx context.Context, id string) (*vacmodel.Vacancy, error) {
	return f.vacancy, nil
}
func (f *fakeVacancies) GetParsed(ctx context.Context, id string) (*vacmodel.VacancyParsed, error) {
	if f.parsed == nil {
		return nil, vacmodel.ErrVacancyNotFound
	}
	return f.parsed, nil
}
func (f *fakeVacancies) ListSkillRequirements(ctx context.Context, id string) ([]*vacmodel.VacancyRequirement, error) {
	return f.reqs, nil
}

type fakeProfiles struct {
	profile *profilemodel.Profile
}

func (f *fakeProfiles) GetByID(ctx context.Context, id string) (*profilemodel.Profile, error) {
	return f.profile, nil
}
func (f *fakeProfiles) ListSkills(ctx context.Context, id string) ([]profilemodel.Skill, error) {
	return nil, nil
}

type fakeEmbeddingStore struct {
	vacancyUpserts int
	profileUpserts int
}

func (f *fakeEmbeddingStore) UpsertVacancyEmbedding(ctx context.Context, e vectorstore.VacancyEmbedding) error {
	f.vacancyUpserts++
	return nil
}
func (f *fakeEmbeddingStore) UpsertProfileEmbedding(ctx context.Context, e vectorstore.ProfileEmbedding) error {
	f.profileUpserts++
	return nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) Name() string      { return "fake-embedder" }
func (fakeEmbedder) Dimension() int    { return 3 }
func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeRecomputer struct {
	items []recommend.Item
}

func (f *fakeRecomputer) Recompute(ctx context.Context, profileID string, limit int) ([]recommend.Item, error) {
	return f.items, nil
}

type fakeTaskResults struct {
	byID map[string]*queue.Result
}

func (f *fakeTaskResults) AsyncResult(ctx context.Context, taskID string) (*queue.Result, error) {
	r, ok := f.byID[taskID]
	if !ok {
		return nil, queue.ErrTaskNotFound
	}
	return r, nil
}

type fakeMailer struct {
	sent bool
	to   string
}

func (f *fakeMailer) Send(ctx context.Context, fromEmail, toEmail, subject, html string) error {
	f.sent = true
	f.to = toEmail
	return nil
}

func TestHandleImportHH(t *testing.T) {
	importer := &fakeImporter{result: &ingestion.ImportResult{PagesProcessed: 1, Saved: 3}}
	d := &Deps{Importer: importer}

	raw, _ := json.Marshal(ImportHHArgs{Text: "golang", Area: "1"})
	out, err := d.handleImportHH(context.Background(), raw)
	require.NoError(t, err)
	result, ok := out.(syncResult)
	require.True(t, ok)
	require.Equal(t, 3, result.Saved)
	require.Equal(t, 1, importer.calls)
}

func TestHandleSyncSavedSearch(t *testing.T) {
	search := &ingestion.SavedSearch{ID: "s-1", IsActive: true}
	syncer := &fakeSyncer{result: &ingestion.ImportResult{PagesProcessed: 2, Saved: 5, Updated: 1}}
	d := &Deps{
		SavedSearches: &fakeSavedSearches{byID: map[string]*ingestion.SavedSearch{"s-1": search}},
		Syncer:        syncer,
	}

	raw, _ := json.Marshal(SyncSavedSearchArgs{SavedSearchID: "s-1"})
	out, err := d.handleSyncSavedSearch(context.Background(), raw)
	require.NoError(t, err)
	result, ok := out.(syncResult)
	require.True(t, ok)
	require.Equal(t, 5, result.Saved)
	require.Equal(t, []string{"s-1"}, syncer.calls)
}

func TestHandleBuildVacancyEmbedding(t *testing.T) {
	d := &Deps{
		Vacancies: &fakeVacancies{
			vacancy: &vacmodel.Vacancy{ID: "v-1", Title: "Go Developer", Description: "<p>Go, SQL</p>"},
			reqs: []*vacmodel.VacancyRequirement{
				{Kind: vacmodel.RequirementKindSkill, RawText: "Go"},
				{Kind: vacmodel.RequirementKindConstraint, RawText: "On-site"},
			},
		},
		Embeddings: &fakeEmbeddingStore{},
		Embedder:   fakeEmbedder{},
	}

	raw, _ := json.Marshal(BuildVacancyEmbeddingArgs{VacancyID: "v-1"})
	out, err := d.handleBuildVacancyEmbedding(context.Background(), raw)
	require.NoError(t, err)
	result, ok := out.(embeddingResult)
	require.True(t, ok)
	require.Equal(t, "v-1", result.EntityID)
	require.Equal(t, "fake-embedder", result.Provider)
	require.Equal(t, 1, d.Embeddings.(*fakeEmbeddingStore).vacancyUpserts)
}

func TestHandleBuildProfileEmbedding(t *testing.T) {
	skills := "Go, PostgreSQL"
	d := &Deps{
		Profiles:   &fakeProfiles{profile: &profilemodel.Profile{ID: "p-1", ResumeText: "Senior Go engineer", SkillsText: &skills}},
		Embeddings: &fakeEmbeddingStore{},
		Embedder:   fakeEmbedder{},
	}

	raw, _ := json.Marshal(BuildProfileEmbeddingArgs{ProfileID: "p-1"})
	out, err := d.handleBuildProfileEmbedding(context.Background(), raw)
	require.NoError(t, err)
	result, ok := out.(embeddingResult)
	require.True(t, ok)
	require.Equal(t, "p-1", result.EntityID)
	require.Equal(t, 1, d.Embeddings.(*fakeEmbeddingStore).profileUpserts)
}

func TestHandleRecomputeRecommendations(t *testing.T) {
	d := &Deps{
		Recomputer: &fakeRecomputer{items: []recommend.Item{
			{VacancyID: "v-1", Score: matching.Result{FinalScore: 0.91, Verdict: matching.VerdictStrong}},
			{VacancyID: "v-2", Score: matching.Result{FinalScore: 0.4, Verdict: matching.VerdictWeak}},
		}},
		Now: func() time.Time { return time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC) },
	}

	raw, _ := json.Marshal(RecomputeRecommendationsArgs{ProfileID: "p-1"})
	out, err := d.handleRecomputeRecommendations(context.Background(), raw)
	require.NoError(t, err)
	result, ok := out.(recomputeResult)
	require.True(t, ok)
	require.Len(t, result.Items, 2)
	require.Equal(t, "strong", result.Items[0].Verdict)
}

func TestHandleNotify_SendsOnStrongMatchWithContactEmail(t *testing.T) {
	email := "candidate@example.com"
	parentResult, _ := json.Marshal(recomputeResult{
		ProfileID: "p-1",
		Items: []recomputeItem{
			{VacancyID: "v-1", FinalScore: 0.95, Verdict: "strong"},
			{VacancyID: "v-2", FinalScore: 0.5, Verdict: "weak"},
		},
	})
	mailer := &fakeMailer{}
	d := &Deps{
		Mailer:    mailer,
		FromEmail: "noreply@jobmatch.example",
		Profiles:  &fakeProfiles{profile: &profilemodel.Profile{ID: "p-1", ContactEmail: &email}},
		TaskResults: &fakeTaskResults{byID: map[string]*queue.Result{
			"parent-1": {TaskID: "parent-1", State: queue.StateSuccess, Result: parentResult},
		}},
	}

	ctx := queue.ContextWithParentID(context.Background(), "parent-1")
	raw, _ := json.Marshal(NotifyArgs{ProfileID: "p-1"})
	out, err := d.handleNotify(ctx, raw)
	require.NoError(t, err)
	result, ok := out.(notifyResult)
	require.True(t, ok)
	require.True(t, result.Sent)
	require.Equal(t, 1, result.RecommendCount)
	require.True(t, mailer.sent)
	require.Equal(t, email, mailer.to)
}

func TestHandleNotify_SkipsWithoutContactEmail(t *testing.T) {
	parentResult, _ := json.Marshal(recomputeResult{
		ProfileID: "p-1",
		Items:     []recomputeItem{{VacancyID: "v-1", FinalScore: 0.95, Verdict: "strong"}},
	})
	mailer := &fakeMailer{}
	d := &Deps{
		Mailer:    mailer,
		FromEmail: "noreply@jobmatch.example",
		Profiles:  &fakeProfiles{profile: &profilemodel.Profile{ID: "p-1"}},
		TaskResults: &fakeTaskResults{byID: map[string]*queue.Result{
			"parent-1": {TaskID: "parent-1", State: queue.StateSuccess, Result: parentResult},
		}},
	}

	ctx := queue.ContextWithParentID(context.Background(), "parent-1")
	raw, _ := json.Marshal(NotifyArgs{ProfileID: "p-1"})
	out, err := d.handleNotify(ctx, raw)
	require.NoError(t, err)
	result := out.(notifyResult)
	require.False(t, result.Sent)
	require.Equal(t, "no contact email", result.SkippedReason)
	require.False(t, mailer.sent)
}

func TestHandleNotify_SkipsWithoutStrongMatches(t *testing.T) {
	email := "candidate@example.com"
	parentResult, _ := json.Marshal(recomputeResult{
		ProfileID: "p-1",
		Items:     []recomputeItem{{VacancyID: "v-1", FinalScore: 0.5, Verdict: "ok"}},
	})
	mailer := &fakeMailer{}
	d := &Deps{
		Mailer:    mailer,
		FromEmail: "noreply@jobmatch.example",
		Profiles:  &fakeProfiles{profile: &profilemodel.Profile{ID: "p-1", ContactEmail: &email}},
		TaskResults: &fakeTaskResults{byID: map[string]*queue.Result{
			"parent-1": {TaskID: "parent-1", State: queue.StateSuccess, Result: parentResult},
		}},
	}

	ctx := queue.ContextWithParentID(context.Background(), "parent-1")
	raw, _ := json.Marshal(NotifyArgs{ProfileID: "p-1"})
	out, err := d.handleNotify(ctx, raw)
	require.NoError(t, err)
	result := out.(notifyResult)
	require.False(t, result.Sent)
	require.Equal(t, "no strong recommendations", result.SkippedReason)
}

func TestHandleNotify_SkipsWhenMailerNotConfigured(t *testing.T) {
	d := &Deps{}
	raw, _ := json.Marshal(NotifyArgs{ProfileID: "p-1"})
	out, err := d.handleNotify(context.Background(), raw)
	require.NoError(t, err)
	result := out.(notifyResult)
	require.False(t, result.Sent)
	require.Equal(t, "resend not configured", result.SkippedReason)
}

func TestBuildRegistry_RegistersAllTasks(t *testing.T) {
	d := &Deps{}
	reg := d.BuildRegistry()
	for _, name := range []string{
		ImportHHTask,
		SyncSavedSearchTask,
		BuildVacancyEmbeddingTask,
		BuildProfileEmbeddingTask,
		RecomputeRecommendationsTask,
		NotifyTask,
	} {
		require.Contains(t, reg, name)
	}
}
