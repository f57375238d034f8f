package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	"github.com/andreypavlenko/jobmatch/modules/matchinput"
	"golang.org/x/sync/errgroup"
)

// Driver implements §4.6: candidate retrieval from the vector index
// followed by bounded-concurrency scoring through modules/matching.
type Driver struct {
	profiles    ProfileReader
	vacancies   VacancyReader
	embeddings  EmbeddingReader
	scorer      Scorer
	concurrency int
	poolSize    int
}

// New creates a Driver. concurrency bounds the number of simultaneous
// matching-engine invocations (errgroup.SetLimit); poolSize bounds how
// many nearest candidates are fetched from the vector index before
// scoring stops at limit.
func New(profiles ProfileReader, vacancies VacancyReader, embeddings EmbeddingReader, scorer Scorer, concurrency, poolSize int) *Driver {
	if concurrency < 1 {
		concurrency = 1
	}
	if poolSize < 1 {
		poolSize = 1
	}
	return &Driver{
		profiles:    profiles,
		vacancies:   vacancies,
		embeddings:  embeddings,
		scorer:      scorer,
		concurrency: concurrency,
		poolSize:    poolSize,
	}
}

// Recompute implements §4.6 end to end: it queries the candidate pool
// ordered by cosine distance ascending, scores up to limit of them with
// bounded fan-out, and returns them sorted by final_score descending,
// vacancy_id ascending (ties broken on id, matching the persisted listing
// order in modules/matchstore).
func (d *Driver) Recompute(ctx context.Context, profileID string, limit int) ([]Item, error) {
	profileEmbedding, err := d.embeddings.GetProfileEmbedding(ctx, profileID)
	if err != nil {
		return nil, ErrProfileEmbeddingMissing
	}

	poolSize := d.poolSize
	if poolSize < limit {
		poolSize = limit
	}
	candidates, err := d.embeddings.NearestVacancies(ctx, profileEmbedding.Embedding, poolSize)
	if err != nil {
		return nil, fmt.Errorf("query nearest vacancies: %w", err)
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	profile, err := d.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	skills, err := d.profiles.ListSkills(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load profile skills: %w", err)
	}
	profileInput := matchinput.Profile(profile, skills)

	items := make([]Item, len(candidates))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	var mu sync.Mutex
	var firstErr error

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			in, err := d.buildInput(gCtx, profileInput, profileEmbedding.Embedding, c.EntityID)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return nil
			}
			result, err := d.scorer.ScoreAndSave(gCtx, profileID, c.EntityID, in)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return nil
			}
			items[i] = Item{VacancyID: c.EntityID, Score: *result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, fmt.Errorf("score candidate: %w", firstErr)
	}

	sort.Slice(items, func(a, b int) bool {
		if items[a].Score.FinalScore != items[b].Score.FinalScore {
			return items[a].Score.FinalScore > items[b].Score.FinalScore
		}
		return items[a].VacancyID < items[b].VacancyID
	})
	return items, nil
}

func (d *Driver) buildInput(ctx context.Context, profileInput matching.ProfileInput, profileVector []float32, vacancyID string) (matching.Input, error) {
	vacancy, err := d.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return matching.Input{}, fmt.Errorf("load vacancy %s: %w", vacancyID, err)
	}
	parsed, err := d.vacancies.GetParsed(ctx, vacancyID)
	plainText := ""
	if err == nil {
		plainText = parsed.PlainText
	}
	reqs, err := d.vacancies.ListSkillRequirements(ctx, vacancyID)
	if err != nil {
		return matching.Input{}, fmt.Errorf("load requirements for %s: %w", vacancyID, err)
	}
	vacancyInput, reqInputs := matchinput.Vacancy(vacancy, plainText, reqs)

	vacancyEmbedding, err := d.embeddings.GetVacancyEmbedding(ctx, vacancyID)
	var vacancyVector []float32
	if err == nil {
		vacancyVector = vacancyEmbedding.Embedding
	}

	return matching.Input{
		Profile:          profileInput,
		Vacancy:          vacancyInput,
		Requirements:     reqInputs,
		ProfileEmbedding: profileVector,
		VacancyEmbedding: vacancyVector,
	}, nil
}
