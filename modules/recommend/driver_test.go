package recommend

import (
	"context"
	"testing"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	vacancymodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	profile *profilemodel.Profile
	skills  []profilemodel.Skill
}

func (f *fakeProfiles) GetByID(ctx context.Context, profileID string) (*profilemodel.Profile, error) {
	return f.profile, nil
}
func (f *fakeProfiles) ListSkills(ctx context.Context, profileID string) ([]profilemodel.Skill, error) {
	return f.skills, nil
}

type fakeVacancy struct {
	vacancy *vacancymodel.Vacancy
	parsed  *vacancymodel.VacancyParsed
	reqs    []*vacancymodel.VacancyRequirement
}

type fakeVacancies struct {
	byID map[string]*fakeVacancy
}

func (f *fakeVacancies) GetByID(ctx context.Context, vacancyID string) (*vacancymodel.Vacancy, error) {
	return f.byID[vacancyID].vacancy, nil
}
func (f *fakeVacancies) GetParsed(ctx context.Context, vacancyID string) (*vacancymodel.VacancyParsed, error) {
	v := f.byID[vacancyID]
	if v.parsed == nil {
		return nil, vacancymodel.ErrVacancyNotFound
	}
	return v.parsed, nil
}
func (f *fakeVacancies) ListSkillRequirements(ctx context.Context, vacancyID string) ([]*vacancymodel.VacancyRequirement, error) {
	return f.byID[vacancyID].reqs, nil
}

type fakeEmbeddings struct {
	profileVector []float32
	vacancyVector map[string][]float32
	candidates    []vectorstore.Candidate
}

func (f *fakeEmbeddings) GetProfileEmbedding(ctx context.Context, profileID string) (*vectorstore.ProfileEmbedding, error) {
	return &vectorstore.ProfileEmbedding{ProfileID: profileID, Embedding: f.profileVector}, nil
}
func (f *fakeEmbeddings) GetVacancyEmbedding(ctx context.Context, vacancyID string) (*vectorstore.VacancyEmbedding, error) {
	vec, ok := f.vacancyVector[vacancyID]
	if !ok {
		return nil, vectorstore.ErrEmbeddingNotFound
	}
	return &vectorstore.VacancyEmbedding{VacancyID: vacancyID, Embedding: vec}, nil
}
func (f *fakeEmbeddings) NearestVacancies(ctx context.Context, profileVector []float32, limit int) ([]vectorstore.Candidate, error) {
	if len(f.candidates) > limit {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

type fakeScorer struct{}

func (f *fakeScorer) ScoreAndSave(ctx context.Context, profileID, vacancyID string, in matching.Input) (*matching.Result, error) {
	result := matching.Score(in)
	return &result, nil
}

func TestDriver_Recompute_OrdersByFinalScoreDescending(t *testing.T) {
	profiles := &fakeProfiles{
		profile: &profilemodel.Profile{ID: "p-1", ResumeText: "Go разработчик, PostgreSQL, Docker", RelocationOK: true},
		skills:  []profilemodel.Skill{{NameRaw: "Go", NormalizedKey: "go"}},
	}
	vacancies := &fakeVacancies{byID: map[string]*fakeVacancy{
		"v-strong": {
			vacancy: &vacancymodel.Vacancy{ID: "v-strong", Title: "Go Developer"},
			parsed:  &vacancymodel.VacancyParsed{PlainText: "Требования: Go, PostgreSQL, Docker"},
			reqs: []*vacancymodel.VacancyRequirement{
				{ID: "r1", RawText: "Go", NormalizedKey: "go", IsHard: true, Weight: 3},
				{ID: "r2", RawText: "PostgreSQL", NormalizedKey: "postgresql", IsHard: true, Weight: 3},
			},
		},
		"v-weak": {
			vacancy: &vacancymodel.Vacancy{ID: "v-weak", Title: "Python Developer"},
			parsed:  &vacancymodel.VacancyParsed{PlainText: "Требования: Python, Django"},
			reqs: []*vacancymodel.VacancyRequirement{
				{ID: "r3", RawText: "Python", NormalizedKey: "python", IsHard: true, Weight: 3},
			},
		},
	}}
	embeddings := &fakeEmbeddings{
		profileVector: []float32{1, 0, 0},
		vacancyVector: map[string][]float32{
			"v-strong": {1, 0, 0},
			"v-weak":   {0, 1, 0},
		},
		candidates: []vectorstore.Candidate{
			{EntityID: "v-strong", Distance: 0.0},
			{EntityID: "v-weak", Distance: 0.5},
		},
	}

	driver := New(profiles, vacancies, embeddings, &fakeScorer{}, 2, 10)
	items, err := driver.Recompute(context.Background(), "p-1", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "v-strong", items[0].VacancyID)
	require.GreaterOrEqual(t, items[0].Score.FinalScore, items[1].Score.FinalScore)
}

func TestDriver_Recompute_FailsWhenProfileEmbeddingMissing(t *testing.T) {
	profiles := &fakeProfiles{profile: &profilemodel.Profile{ID: "p-1"}}
	vacancies := &fakeVacancies{byID: map[string]*fakeVacancy{}}
	embeddings := &missingProfileEmbeddings{}

	driver := New(profiles, vacancies, embeddings, &fakeScorer{}, 2, 10)
	_, err := driver.Recompute(context.Background(), "p-1", 2)
	require.ErrorIs(t, err, ErrProfileEmbeddingMissing)
}

type missingProfileEmbeddings struct{}

func (m *missingProfileEmbeddings) GetProfileEmbedding(ctx context.Context, profileID string) (*vectorstore.ProfileEmbedding, error) {
	return nil, vectorstore.ErrEmbeddingNotFound
}
func (m *missingProfileEmbeddings) GetVacancyEmbedding(ctx context.Context, vacancyID string) (*vectorstore.VacancyEmbedding, error) {
	return nil, vectorstore.ErrEmbeddingNotFound
}
func (m *missingProfileEmbeddings) NearestVacancies(ctx context.Context, profileVector []float32, limit int) ([]vectorstore.Candidate, error) {
	return nil, nil
}
