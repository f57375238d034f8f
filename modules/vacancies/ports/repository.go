package ports

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/vacancies/model"
)

// VacancyRepository defines data access for vacancies, their parsed
// sections, and their extracted requirements (component D).
type VacancyRepository interface {
	// UpsertVacancy inserts or updates by (source, external_id) and
	// returns the surrogate id and whether the row was newly inserted
	// (§4.4 step 4, and step 7's saved-vs-updated count).
	UpsertVacancy(ctx context.Context, v *model.Vacancy) (id string, created bool, err error)

	// UpsertParsed replaces the VacancyParsed row for vacancyID (§4.4 step 5).
	UpsertParsed(ctx context.Context, p *model.VacancyParsed) error

	// ReplaceRequirements deletes and re-inserts every skill/constraint
	// requirement for vacancyID: one DELETE, then one INSERT per
	// requirement (§4.4 step 6).
	ReplaceRequirements(ctx context.Context, vacancyID string, reqs []*model.VacancyRequirement) error

	GetByID(ctx context.Context, vacancyID string) (*model.Vacancy, error)
	GetParsed(ctx context.Context, vacancyID string) (*model.VacancyParsed, error)
	ListSkillRequirements(ctx context.Context, vacancyID string) ([]*model.VacancyRequirement, error)

	// List returns vacancies with status="open" for simple browsing; the
	// matching/recommendation path goes through modules/vectorstore
	// instead.
	List(ctx context.Context, limit, offset int) ([]*model.VacancyDTO, int, error)
}
