package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileRepository implements ports.ProfileRepository against pgx.
type ProfileRepository struct {
	pool pgxPool
}

// NewProfileRepository creates a repository bound to a pool (or, inside a
// caller-managed transaction, to a pgx.Tx — both satisfy pgxPool).
func NewProfileRepository(pool pgxPool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create inserts a new profile (§3 "Profile": created by REST).
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) (string, error) {
	if p.ResumeText == "" {
		return "", model.ErrResumeTextRequired
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO profiles (
			id, resume_text, skills_text, location, remote_ok, relocation_ok, salary_min, contact_email,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`
	_, err := r.pool.Exec(ctx, query, p.ID, p.ResumeText, p.SkillsText, p.Location, p.RemoteOK, p.RelocationOK, p.SalaryMin, p.ContactEmail)
	if err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}
	return p.ID, nil
}

// Update overwrites the mutable fields of a profile (embedding recompute is
// triggered by the caller after a successful update, not by the repository).
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	if p.ResumeText == "" {
		return model.ErrResumeTextRequired
	}

	query := `
		UPDATE profiles SET
			resume_text = $2, skills_text = $3, location = $4,
			remote_ok = $5, relocation_ok = $6, salary_min = $7, contact_email = $8, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, p.ID, p.ResumeText, p.SkillsText, p.Location, p.RemoteOK, p.RelocationOK, p.SalaryMin, p.ContactEmail)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

// GetByID retrieves a profile by its surrogate id.
func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (*model.Profile, error) {
	query := `
		SELECT id, resume_text, skills_text, location, remote_ok, relocation_ok, salary_min, contact_email,
			created_at, updated_at
		FROM profiles WHERE id = $1
	`
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx, query, profileID).Scan(
		&p.ID, &p.ResumeText, &p.SkillsText, &p.Location, &p.RemoteOK, &p.RelocationOK, &p.SalaryMin, &p.ContactEmail,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetSubEntities loads every cascade-owned child collection for a profile.
func (r *ProfileRepository) GetSubEntities(ctx context.Context, profileID string) (*model.ProfileSubEntities, error) {
	sub := &model.ProfileSubEntities{}

	experience, err := r.listExperience(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Experience = experience

	projects, err := r.listProjects(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Projects = projects

	achievements, err := r.listAchievements(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Achievements = achievements

	education, err := r.listEducation(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Education = education

	certificates, err := r.listCertificates(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Certificates = certificates

	skills, err := r.ListSkills(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Skills = skills

	languages, err := r.listLanguages(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Languages = languages

	links, err := r.listLinks(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub.Links = links

	return sub, nil
}

// ReplaceSubEntities deletes and re-inserts every child row for a profile
// in one transaction, matching the wholesale-replace convention used for
// vacancy requirements (§3 "cascade delete").
func (r *ProfileRepository) ReplaceSubEntities(ctx context.Context, profileID string, sub *model.ProfileSubEntities) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace sub-entities: %w", err)
	}
	defer tx.Rollback(ctx)

	tables := []string{"experiences", "projects", "achievements", "educations", "certificates", "skills", "languages", "links"}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE profile_id = $1", table), profileID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	for i := range sub.Experience {
		e := &sub.Experience[i]
		e.ProfileID = profileID
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO experiences (id, profile_id, company, title, start_date, end_date, is_current, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, e.ID, e.ProfileID, e.Company, e.Title, e.StartDate, e.EndDate, e.IsCurrent, e.Description); err != nil {
			return fmt.Errorf("insert experience: %w", err)
		}
	}

	for i := range sub.Projects {
		p := &sub.Projects[i]
		p.ProfileID = profileID
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO projects (id, profile_id, name, description, url)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID, p.ProfileID, p.Name, p.Description, p.URL); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
	}

	for i := range sub.Achievements {
		a := &sub.Achievements[i]
		a.ProfileID = profileID
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO achievements (id, profile_id, description)
			VALUES ($1, $2, $3)
		`, a.ID, a.ProfileID, a.Description); err != nil {
			return fmt.Errorf("insert achievement: %w", err)
		}
	}

	for i := range sub.Education {
		e := &sub.Education[i]
		e.ProfileID = profileID
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO educations (id, profile_id, institution, degree, field_of_study, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.ID, e.ProfileID, e.Institution, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate); err != nil {
			return fmt.Errorf("insert education: %w", err)
		}
	}

	for i := range sub.Certificates {
		c := &sub.Certificates[i]
		c.ProfileID = profileID
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO certificates (id, profile_id, name, issuer, issued_at)
			VALUES ($1, $2, $3, $4, $5)
		`, c.ID, c.ProfileID, c.Name, c.Issuer, c.IssuedAt); err != nil {
			return fmt.Errorf("insert certificate: %w", err)
		}
	}

	for i := range sub.Skills {
		s := &sub.Skills[i]
		s.ProfileID = profileID
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO skills (id, profile_id, name_raw, normalized_key, category, level, years, last_used_year, is_primary, evidence_text)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, s.ID, s.ProfileID, s.NameRaw, s.NormalizedKey, s.Category, s.Level, s.Years, s.LastUsedYear, s.IsPrimary, s.EvidenceText); err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}

	for i := range sub.Languages {
		l := &sub.Languages[i]
		l.ProfileID = profileID
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO languages (id, profile_id, name, level)
			VALUES ($1, $2, $3, $4)
		`, l.ID, l.ProfileID, l.Name, l.Level); err != nil {
			return fmt.Errorf("insert language: %w", err)
		}
	}

	for i := range sub.Links {
		l := &sub.Links[i]
		l.ProfileID = profileID
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO links (id, profile_id, label, url)
			VALUES ($1, $2, $3, $4)
		`, l.ID, l.ProfileID, l.Label, l.URL); err != nil {
			return fmt.Errorf("insert link: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace sub-entities: %w", err)
	}
	return nil
}

// ListSkills returns the profile's declared skills (matching engine input).
func (r *ProfileRepository) ListSkills(ctx context.Context, profileID string) ([]model.Skill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, name_raw, normalized_key, category, level, years, last_used_year, is_primary, evidence_text
		FROM skills WHERE profile_id = $1 ORDER BY normalized_key
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var out []model.Skill
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.NameRaw, &s.NormalizedKey, &s.Category, &s.Level, &s.Years, &s.LastUsedYear, &s.IsPrimary, &s.EvidenceText); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a profile; sub-entities cascade at the schema level.
func (r *ProfileRepository) Delete(ctx context.Context, profileID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

// List returns profiles for browsing/backfill enumeration.
func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]*model.Profile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, resume_text, skills_text, location, remote_ok, relocation_ok, salary_min, contact_email, created_at, updated_at
		FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*model.Profile
	for rows.Next() {
		p := &model.Profile{}
		if err := rows.Scan(&p.ID, &p.ResumeText, &p.SkillsText, &p.Location, &p.RemoteOK, &p.RelocationOK, &p.SalaryMin, &p.ContactEmail, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *ProfileRepository) listExperience(ctx context.Context, profileID string) ([]model.Experience, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, company, title, start_date, end_date, is_current, description
		FROM experiences WHERE profile_id = $1 ORDER BY start_date DESC NULLS LAST
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	var out []model.Experience
	for rows.Next() {
		var e model.Experience
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Company, &e.Title, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.Description); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) listProjects(ctx context.Context, profileID string) ([]model.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, profile_id, name, description, url FROM projects WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.Name, &p.Description, &p.URL); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) listAchievements(ctx context.Context, profileID string) ([]model.Achievement, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, profile_id, description FROM achievements WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var out []model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.Description); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) listEducation(ctx context.Context, profileID string) ([]model.Education, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, institution, degree, field_of_study, start_date, end_date
		FROM educations WHERE profile_id = $1 ORDER BY start_date DESC NULLS LAST
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list educations: %w", err)
	}
	defer rows.Close()

	var out []model.Education
	for rows.Next() {
		var e model.Education
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartDate, &e.EndDate); err != nil {
			return nil, fmt.Errorf("scan education: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) listCertificates(ctx context.Context, profileID string) ([]model.Certificate, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, profile_id, name, issuer, issued_at FROM certificates WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	var out []model.Certificate
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Issuer, &c.IssuedAt); err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) listLanguages(ctx context.Context, profileID string) ([]model.Language, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, profile_id, name, level FROM languages WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var out []model.Language
	for rows.Next() {
		var l model.Language
		if err := rows.Scan(&l.ID, &l.ProfileID, &l.Name, &l.Level); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) listLinks(ctx context.Context, profileID string) ([]model.Link, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, profile_id, label, url FROM links WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var out []model.Link
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.ID, &l.ProfileID, &l.Label, &l.URL); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
