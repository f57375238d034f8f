package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/andreypavlenko/jobmatch/modules/descparse"
	"github.com/andreypavlenko/jobmatch/modules/jobboard"
	"github.com/andreypavlenko/jobmatch/modules/requirements"
	"github.com/andreypavlenko/jobmatch/modules/textclean"
	vacmodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	vacports "github.com/andreypavlenko/jobmatch/modules/vacancies/ports"
)

// EmbedVacancyTask is the task name enqueued after a successful ingest
// (§4.4 step 7, §4.8 "build_vacancy_embedding").
const EmbedVacancyTask = "build_vacancy_embedding"

// Service orchestrates E→A/F/G→D for one vacancy source (§4.4).
type Service struct {
	client        JobBoardClient
	vacancies     vacports.VacancyRepository
	tx            Transactor
	savedSearches SavedSearchRepository
	tasks         TaskEnqueuer
	now           Clock
	source        string
}

// NewService creates an ingestion service bound to a job-board client,
// the vacancy repository, the saved-search repository, and the task
// enqueuer used to schedule embedding builds. tx may be nil, in which
// case each write goes straight to vacancies without a wrapping
// transaction (what unit tests do with a fake repository).
func NewService(client JobBoardClient, vacancies vacports.VacancyRepository, tx Transactor, savedSearches SavedSearchRepository, tasks TaskEnqueuer, source string, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{client: client, vacancies: vacancies, tx: tx, savedSearches: savedSearches, tasks: tasks, now: now, source: source}
}

// Import implements the §4.4 contract: pages
// [start_page, start_page+pages_limit) of the search endpoint, ingesting
// each item with per-item error isolation.
func (s *Service) Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	for page := opts.StartPage; page < opts.StartPage+opts.PagesLimit; page++ {
		searchPage, err := s.client.Search(ctx, jobboard.SearchFilters{
			Text: opts.Filters.Text, Area: opts.Filters.Area, Schedule: opts.Filters.Schedule,
			Experience: opts.Filters.Experience, SalaryFrom: opts.Filters.SalaryFrom, SalaryTo: opts.Filters.SalaryTo,
			Currency: opts.Filters.Currency, Page: page, PerPage: opts.Filters.PerPage,
		})
		if err != nil {
			return result, fmt.Errorf("search page %d: %w", page, err)
		}
		result.PagesProcessed++

		stop := false
		for _, item := range searchPage.Items {
			result.VacanciesSeen++

			if opts.Cutoff != nil && item.PublishedAt != nil && !item.PublishedAt.After(*opts.Cutoff) {
				stop = true
				continue
			}

			if opts.IncludeDetails {
				details, err := s.client.GetDetails(ctx, item.ExternalID)
				if err != nil {
					result.Errors++
					continue
				}
				item.Description = details.Description
				if len(details.KeySkills) > 0 {
					item.KeySkills = details.KeySkills
				}
			}

			created, err := s.ingestItem(ctx, item)
			if err != nil {
				result.Errors++
				continue
			}
			if created {
				result.Saved++
			} else {
				result.Updated++
			}

			if item.PublishedAt != nil && (result.MaxPublishedAt == nil || item.PublishedAt.After(*result.MaxPublishedAt)) {
				result.MaxPublishedAt = item.PublishedAt
			}

			time.Sleep(jobboard.PoliteDelay())
		}

		if stop {
			result.StopByCutoff = true
			break
		}
	}

	return result, nil
}

// ingestItem implements §4.4 steps 3-7 for one item. Returns true if the
// vacancy was newly created (vs. updated).
func (s *Service) ingestItem(ctx context.Context, item jobboard.VacancyItem) (bool, error) {
	plain := textclean.Clean(item.Description)
	parsed := descparse.Parse(item.Description)

	v := &vacmodel.Vacancy{
		Source:      s.source,
		ExternalID:  item.ExternalID,
		Title:       item.Title,
		Company:     ptrOrNil(item.Company),
		Location:    ptrOrNil(item.Location),
		SalaryFrom:  item.SalaryFrom,
		SalaryTo:    item.SalaryTo,
		Currency:    ptrOrNil(item.Currency),
		Description: item.Description,
		URL:         ptrOrNil(item.URL),
		PublishedAt: item.PublishedAt,
		Experience:  ptrOrNil(item.Experience),
		Schedule:    ptrOrNil(item.Schedule),
		Employment:  ptrOrNil(item.Employment),
		Area:        ptrOrNil(item.Area),
	}

	reqs := requirements.ExtractFromSections(parsed.Sections)
	constraints := requirements.ExtractConstraints(requirements.StructuredFields{
		Experience:  item.Experience,
		Schedule:    item.Schedule,
		Employment:  item.Employment,
		Area:        item.Area,
		Description: plain,
	})
	reqs = append(reqs, constraints...)

	var id string
	var created bool
	write := func(repo vacports.VacancyRepository) error {
		var err error
		id, created, err = repo.UpsertVacancy(ctx, v)
		if err != nil {
			return fmt.Errorf("upsert vacancy: %w", err)
		}

		if err := repo.UpsertParsed(ctx, &vacmodel.VacancyParsed{
			VacancyID:    id,
			PlainText:    parsed.PlainText,
			SectionsJSON: parsed.Sections,
			Version:      parsed.Version,
			QualityScore: parsed.QualityScore,
		}); err != nil {
			return fmt.Errorf("upsert vacancy_parsed: %w", err)
		}

		vacReqs := make([]*vacmodel.VacancyRequirement, 0, len(reqs))
		for _, r := range reqs {
			kind := vacmodel.RequirementKindSkill
			if r.Kind == requirements.KindConstraint {
				kind = vacmodel.RequirementKindConstraint
			}
			vacReqs = append(vacReqs, &vacmodel.VacancyRequirement{
				VacancyID:     id,
				Kind:          kind,
				RawText:       r.RawText,
				NormalizedKey: r.NormalizedKey,
				Weight:        r.Weight,
				IsHard:        r.IsHard,
			})
		}
		if err := repo.ReplaceRequirements(ctx, id, vacReqs); err != nil {
			return fmt.Errorf("replace vacancy_requirements: %w", err)
		}
		return nil
	}

	if s.tx != nil {
		if err := s.tx.WithinTx(ctx, write); err != nil {
			return false, err
		}
	} else if err := write(s.vacancies); err != nil {
		return false, err
	}

	if s.tasks != nil {
		if _, err := s.tasks.Enqueue(ctx, EmbedVacancyTask, map[string]string{"vacancy_id": id}); err != nil {
			return false, fmt.Errorf("enqueue embedding task: %w", err)
		}
	}

	return created, nil
}

// Sync implements §4.4 "Saved-search sync".
func (s *Service) Sync(ctx context.Context, search *SavedSearch) (*ImportResult, error) {
	cutoff := search.LastSeenPublishedAt
	if cutoff == nil {
		cutoff = search.LastSyncAt
	}

	result, err := s.Import(ctx, ImportOptions{
		Filters: SearchFiltersInput{
			Text: search.Text, Area: search.Area, Schedule: search.Schedule, Experience: search.Experience,
			SalaryFrom: search.SalaryFrom, SalaryTo: search.SalaryTo, Currency: search.Currency, PerPage: search.PerPage,
		},
		Cutoff:         cutoff,
		StartPage:      search.CursorPage,
		PagesLimit:     search.PagesLimit,
		IncludeDetails: true,
	})
	if err != nil {
		return result, err
	}

	now := s.now()
	search.LastSyncAt = &now
	if result.MaxPublishedAt != nil {
		search.LastSeenPublishedAt = result.MaxPublishedAt
	}
	if result.StopByCutoff {
		search.CursorPage = 0
	} else {
		search.CursorPage += result.PagesProcessed
	}

	if err := s.savedSearches.Update(ctx, search); err != nil {
		return result, fmt.Errorf("update saved search: %w", err)
	}
	return result, nil
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
