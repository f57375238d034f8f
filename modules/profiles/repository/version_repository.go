package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ResumeVersionRepository implements ports.ResumeVersionRepository.
type ResumeVersionRepository struct {
	pool pgxPool
}

// NewResumeVersionRepository creates a new resume version repository.
func NewResumeVersionRepository(pool pgxPool) *ResumeVersionRepository {
	return &ResumeVersionRepository{pool: pool}
}

// Create inserts an immutable resume draft (§3 "ResumeVersion ... immutable
// drafts"); versions are never updated in place, only approved.
func (r *ResumeVersionRepository) Create(ctx context.Context, v *model.ResumeVersion) (string, error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Status == "" {
		v.Status = model.VersionStatusDraft
	}

	query := `
		INSERT INTO resume_versions (id, profile_id, vacancy_id, content_text, source, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`
	_, err := r.pool.Exec(ctx, query, v.ID, v.ProfileID, v.VacancyID, v.ContentText, v.Source, v.Status)
	if err != nil {
		return "", fmt.Errorf("create resume version: %w", err)
	}
	return v.ID, nil
}

// GetByID retrieves a resume version by id.
func (r *ResumeVersionRepository) GetByID(ctx context.Context, versionID string) (*model.ResumeVersion, error) {
	query := `
		SELECT id, profile_id, vacancy_id, content_text, source, status, created_at, approved_at
		FROM resume_versions WHERE id = $1
	`
	v := &model.ResumeVersion{}
	err := r.pool.QueryRow(ctx, query, versionID).Scan(
		&v.ID, &v.ProfileID, &v.VacancyID, &v.ContentText, &v.Source, &v.Status, &v.CreatedAt, &v.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrResumeVersionNotFound
		}
		return nil, fmt.Errorf("get resume version: %w", err)
	}
	return v, nil
}

// ListByProfile returns every resume draft for a profile, newest first.
func (r *ResumeVersionRepository) ListByProfile(ctx context.Context, profileID string) ([]*model.ResumeVersion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, vacancy_id, content_text, source, status, created_at, approved_at
		FROM resume_versions WHERE profile_id = $1 ORDER BY created_at DESC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list resume versions: %w", err)
	}
	defer rows.Close()

	var out []*model.ResumeVersion
	for rows.Next() {
		v := &model.ResumeVersion{}
		if err := rows.Scan(&v.ID, &v.ProfileID, &v.VacancyID, &v.ContentText, &v.Source, &v.Status, &v.CreatedAt, &v.ApprovedAt); err != nil {
			return nil, fmt.Errorf("scan resume version: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Approve marks a resume version approved; approval is the only mutation a
// version ever undergoes.
func (r *ResumeVersionRepository) Approve(ctx context.Context, versionID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE resume_versions SET status = $2, approved_at = now() WHERE id = $1
	`, versionID, model.VersionStatusApproved)
	if err != nil {
		return fmt.Errorf("approve resume version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrResumeVersionNotFound
	}
	return nil
}

// CoverLetterVersionRepository implements ports.CoverLetterVersionRepository.
type CoverLetterVersionRepository struct {
	pool pgxPool
}

// NewCoverLetterVersionRepository creates a new cover letter version repository.
func NewCoverLetterVersionRepository(pool pgxPool) *CoverLetterVersionRepository {
	return &CoverLetterVersionRepository{pool: pool}
}

// Create inserts an immutable cover letter draft.
func (r *CoverLetterVersionRepository) Create(ctx context.Context, v *model.CoverLetterVersion) (string, error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Status == "" {
		v.Status = model.VersionStatusDraft
	}

	query := `
		INSERT INTO cover_letter_versions (id, profile_id, vacancy_id, content_text, source, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`
	_, err := r.pool.Exec(ctx, query, v.ID, v.ProfileID, v.VacancyID, v.ContentText, v.Source, v.Status)
	if err != nil {
		return "", fmt.Errorf("create cover letter version: %w", err)
	}
	return v.ID, nil
}

// GetByID retrieves a cover letter version by id.
func (r *CoverLetterVersionRepository) GetByID(ctx context.Context, versionID string) (*model.CoverLetterVersion, error) {
	query := `
		SELECT id, profile_id, vacancy_id, content_text, source, status, created_at, approved_at
		FROM cover_letter_versions WHERE id = $1
	`
	v := &model.CoverLetterVersion{}
	err := r.pool.QueryRow(ctx, query, versionID).Scan(
		&v.ID, &v.ProfileID, &v.VacancyID, &v.ContentText, &v.Source, &v.Status, &v.CreatedAt, &v.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCoverLetterVersionNotFound
		}
		return nil, fmt.Errorf("get cover letter version: %w", err)
	}
	return v, nil
}

// ListByProfile returns every cover letter draft for a profile, newest first.
func (r *CoverLetterVersionRepository) ListByProfile(ctx context.Context, profileID string) ([]*model.CoverLetterVersion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, vacancy_id, content_text, source, status, created_at, approved_at
		FROM cover_letter_versions WHERE profile_id = $1 ORDER BY created_at DESC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list cover letter versions: %w", err)
	}
	defer rows.Close()

	var out []*model.CoverLetterVersion
	for rows.Next() {
		v := &model.CoverLetterVersion{}
		if err := rows.Scan(&v.ID, &v.ProfileID, &v.VacancyID, &v.ContentText, &v.Source, &v.Status, &v.CreatedAt, &v.ApprovedAt); err != nil {
			return nil, fmt.Errorf("scan cover letter version: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Approve marks a cover letter version approved.
func (r *CoverLetterVersionRepository) Approve(ctx context.Context, versionID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cover_letter_versions SET status = $2, approved_at = now() WHERE id = $1
	`, versionID, model.VersionStatusApproved)
	if err != nil {
		return fmt.Errorf("approve cover letter version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCoverLetterVersionNotFound
	}
	return nil
}
