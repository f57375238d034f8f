package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/vacancies/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VacancyRepository implements ports.VacancyRepository against pgx.
type VacancyRepository struct {
	pool pgxPool
}

// NewVacancyRepository creates a repository bound to a pool (or, inside an
// ingestion transaction, to a pgx.Tx — both satisfy pgxPool).
func NewVacancyRepository(pool pgxPool) *VacancyRepository {
	return &VacancyRepository{pool: pool}
}

// UpsertVacancy implements §4.4 step 4: UPSERT by (source, external_id),
// all mutable fields overwrite, the natural key never changes. The
// returned bool reports whether the row was newly inserted, using the
// standard xmax=0 trick to distinguish INSERT from DO UPDATE in one
// round trip.
func (r *VacancyRepository) UpsertVacancy(ctx context.Context, v *model.Vacancy) (string, bool, error) {
	if v.ExternalID == "" {
		return "", false, model.ErrVacancyExternalIDRequired
	}
	if v.Title == "" {
		return "", false, model.ErrVacancyTitleRequired
	}

	if v.Status == "" {
		v.Status = "open"
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}

	query := `
		INSERT INTO vacancies (
			id, source, external_id, title, company, location,
			salary_from, salary_to, currency, description, url,
			published_at, status, experience, schedule, employment, area,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now(), now()
		)
		ON CONFLICT (source, external_id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			salary_from = EXCLUDED.salary_from,
			salary_to = EXCLUDED.salary_to,
			currency = EXCLUDED.currency,
			description = EXCLUDED.description,
			url = EXCLUDED.url,
			published_at = EXCLUDED.published_at,
			status = EXCLUDED.status,
			experience = EXCLUDED.experience,
			schedule = EXCLUDED.schedule,
			employment = EXCLUDED.employment,
			area = EXCLUDED.area,
			updated_at = now()
		RETURNING id, (xmax = 0) AS inserted
	`

	var id string
	var created bool
	err := r.pool.QueryRow(ctx, query,
		v.ID, v.Source, v.ExternalID, v.Title, v.Company, v.Location,
		v.SalaryFrom, v.SalaryTo, v.Currency, v.Description, v.URL,
		v.PublishedAt, v.Status, v.Experience, v.Schedule, v.Employment, v.Area,
	).Scan(&id, &created)
	if err != nil {
		return "", false, fmt.Errorf("upsert vacancy: %w", err)
	}

	v.ID = id
	return id, created, nil
}

// UpsertParsed implements §4.4 step 5.
func (r *VacancyRepository) UpsertParsed(ctx context.Context, p *model.VacancyParsed) error {
	sectionsJSON, err := json.Marshal(p.SectionsJSON)
	if err != nil {
		return fmt.Errorf("marshal sections_json: %w", err)
	}

	query := `
		INSERT INTO vacancy_parsed (vacancy_id, plain_text, sections_json, version, quality_score, extracted_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (vacancy_id) DO UPDATE SET
			plain_text = EXCLUDED.plain_text,
			sections_json = EXCLUDED.sections_json,
			version = EXCLUDED.version,
			quality_score = EXCLUDED.quality_score,
			extracted_at = now()
	`

	_, err = r.pool.Exec(ctx, query, p.VacancyID, p.PlainText, sectionsJSON, p.Version, p.QualityScore)
	if err != nil {
		return fmt.Errorf("upsert vacancy_parsed: %w", err)
	}
	return nil
}

// ReplaceRequirements implements §4.4 step 6: delete-then-insert the whole
// requirement set for the vacancy, deduplicated on (vacancy_id, kind,
// normalized_key) by the caller (modules/requirements already dedupes).
func (r *VacancyRepository) ReplaceRequirements(ctx context.Context, vacancyID string, reqs []*model.VacancyRequirement) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM vacancy_requirements WHERE vacancy_id = $1 AND kind IN ('skill', 'constraint')`, vacancyID); err != nil {
		return fmt.Errorf("delete prior vacancy_requirements: %w", err)
	}

	for _, req := range reqs {
		id := req.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := r.pool.Exec(ctx, `
			INSERT INTO vacancy_requirements (id, vacancy_id, kind, raw_text, normalized_key, weight, is_hard)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (vacancy_id, kind, normalized_key) DO UPDATE SET
				raw_text = EXCLUDED.raw_text,
				weight = EXCLUDED.weight,
				is_hard = EXCLUDED.is_hard
		`, id, vacancyID, req.Kind, req.RawText, req.NormalizedKey, req.Weight, req.IsHard)
		if err != nil {
			return fmt.Errorf("insert vacancy_requirement %q: %w", req.NormalizedKey, err)
		}
	}

	return nil
}

// GetByID retrieves a vacancy by its surrogate id.
func (r *VacancyRepository) GetByID(ctx context.Context, vacancyID string) (*model.Vacancy, error) {
	query := `
		SELECT id, source, external_id, title, company, location,
			salary_from, salary_to, currency, description, url,
			published_at, status, experience, schedule, employment, area,
			created_at, updated_at
		FROM vacancies WHERE id = $1
	`

	v := &model.Vacancy{}
	err := r.pool.QueryRow(ctx, query, vacancyID).Scan(
		&v.ID, &v.Source, &v.ExternalID, &v.Title, &v.Company, &v.Location,
		&v.SalaryFrom, &v.SalaryTo, &v.Currency, &v.Description, &v.URL,
		&v.PublishedAt, &v.Status, &v.Experience, &v.Schedule, &v.Employment, &v.Area,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVacancyNotFound
		}
		return nil, fmt.Errorf("get vacancy: %w", err)
	}
	return v, nil
}

// GetParsed retrieves the parsed row for a vacancy, if present.
func (r *VacancyRepository) GetParsed(ctx context.Context, vacancyID string) (*model.VacancyParsed, error) {
	query := `
		SELECT vacancy_id, plain_text, sections_json, version, quality_score, extracted_at
		FROM vacancy_parsed WHERE vacancy_id = $1
	`

	var sectionsRaw []byte
	p := &model.VacancyParsed{}
	err := r.pool.QueryRow(ctx, query, vacancyID).Scan(
		&p.VacancyID, &p.PlainText, &sectionsRaw, &p.Version, &p.QualityScore, &p.ExtractedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVacancyNotFound
		}
		return nil, fmt.Errorf("get vacancy_parsed: %w", err)
	}

	if err := json.Unmarshal(sectionsRaw, &p.SectionsJSON); err != nil {
		return nil, fmt.Errorf("unmarshal sections_json: %w", err)
	}
	return p, nil
}

// ListSkillRequirements returns the kind=skill rows used as matching-engine
// inputs (§4.5).
func (r *VacancyRepository) ListSkillRequirements(ctx context.Context, vacancyID string) ([]*model.VacancyRequirement, error) {
	query := `
		SELECT id, vacancy_id, kind, raw_text, normalized_key, weight, is_hard
		FROM vacancy_requirements WHERE vacancy_id = $1 AND kind = 'skill'
		ORDER BY normalized_key
	`

	rows, err := r.pool.Query(ctx, query, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("list vacancy_requirements: %w", err)
	}
	defer rows.Close()

	var out []*model.VacancyRequirement
	for rows.Next() {
		req := &model.VacancyRequirement{}
		if err := rows.Scan(&req.ID, &req.VacancyID, &req.Kind, &req.RawText, &req.NormalizedKey, &req.Weight, &req.IsHard); err != nil {
			return nil, fmt.Errorf("scan vacancy_requirement: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// List returns open vacancies for plain browsing (not the matching path).
func (r *VacancyRepository) List(ctx context.Context, limit, offset int) ([]*model.VacancyDTO, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vacancies WHERE status = 'open'`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vacancies: %w", err)
	}

	query := `
		SELECT id, source, external_id, title, company, location,
			salary_from, salary_to, currency, url, published_at, status,
			created_at, updated_at
		FROM vacancies WHERE status = 'open'
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list vacancies: %w", err)
	}
	defer rows.Close()

	var out []*model.VacancyDTO
	for rows.Next() {
		dto := &model.VacancyDTO{}
		if err := rows.Scan(
			&dto.ID, &dto.Source, &dto.ExternalID, &dto.Title, &dto.Company, &dto.Location,
			&dto.SalaryFrom, &dto.SalaryTo, &dto.Currency, &dto.URL, &dto.PublishedAt, &dto.Status,
			&dto.CreatedAt, &dto.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan vacancy: %w", err)
		}
		out = append(out, dto)
	}
	return out, total, rows.Err()
}
