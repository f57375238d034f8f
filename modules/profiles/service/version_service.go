package service

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/andreypavlenko/jobmatch/modules/profiles/ports"
)

// ResumeVersionService exposes draft creation/approval for the thin HTTP
// surface; the downstream document-generation service (out of scope) reads
// the latest approved version.
type ResumeVersionService struct {
	repo ports.ResumeVersionRepository
}

// NewResumeVersionService creates a new resume version service.
func NewResumeVersionService(repo ports.ResumeVersionRepository) *ResumeVersionService {
	return &ResumeVersionService{repo: repo}
}

// Create inserts a new draft.
func (s *ResumeVersionService) Create(ctx context.Context, v *model.ResumeVersion) (string, error) {
	return s.repo.Create(ctx, v)
}

// GetByID retrieves a draft by id.
func (s *ResumeVersionService) GetByID(ctx context.Context, versionID string) (*model.ResumeVersion, error) {
	return s.repo.GetByID(ctx, versionID)
}

// ListByProfile lists every draft for a profile.
func (s *ResumeVersionService) ListByProfile(ctx context.Context, profileID string) ([]*model.ResumeVersion, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Approve marks a draft approved.
func (s *ResumeVersionService) Approve(ctx context.Context, versionID string) error {
	return s.repo.Approve(ctx, versionID)
}

// CoverLetterVersionService mirrors ResumeVersionService for cover letters.
type CoverLetterVersionService struct {
	repo ports.CoverLetterVersionRepository
}

// NewCoverLetterVersionService creates a new cover letter version service.
func NewCoverLetterVersionService(repo ports.CoverLetterVersionRepository) *CoverLetterVersionService {
	return &CoverLetterVersionService{repo: repo}
}

// Create inserts a new draft.
func (s *CoverLetterVersionService) Create(ctx context.Context, v *model.CoverLetterVersion) (string, error) {
	return s.repo.Create(ctx, v)
}

// GetByID retrieves a draft by id.
func (s *CoverLetterVersionService) GetByID(ctx context.Context, versionID string) (*model.CoverLetterVersion, error) {
	return s.repo.GetByID(ctx, versionID)
}

// ListByProfile lists every draft for a profile.
func (s *CoverLetterVersionService) ListByProfile(ctx context.Context, profileID string) ([]*model.CoverLetterVersion, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Approve marks a draft approved.
func (s *CoverLetterVersionService) Approve(ctx context.Context, versionID string) error {
	return s.repo.Approve(ctx, versionID)
}
