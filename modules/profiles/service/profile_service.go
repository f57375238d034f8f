package service

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/andreypavlenko/jobmatch/modules/profiles/ports"
)

// ProfileService exposes profile reads and writes for the thin HTTP
// surface (§6); embedding recompute on update (§3 "embedding recomputed on
// update") is triggered by the caller enqueuing an embed task, not by this
// service, to keep the write path free of a hard dependency on the task
// runtime.
type ProfileService struct {
	repo ports.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo ports.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Create inserts a new profile with its initial sub-entities.
func (s *ProfileService) Create(ctx context.Context, p *model.Profile, sub *model.ProfileSubEntities) (*model.ProfileDTO, error) {
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		if err := s.repo.ReplaceSubEntities(ctx, id, sub); err != nil {
			return nil, err
		}
	} else {
		sub = &model.ProfileSubEntities{}
	}
	p.ID = id
	return p.ToDTO(*sub), nil
}

// Update overwrites a profile's mutable fields and, when sub is non-nil,
// replaces every cascade-owned child row wholesale.
func (s *ProfileService) Update(ctx context.Context, p *model.Profile, sub *model.ProfileSubEntities) (*model.ProfileDTO, error) {
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if sub != nil {
		if err := s.repo.ReplaceSubEntities(ctx, p.ID, sub); err != nil {
			return nil, err
		}
	} else {
		loaded, err := s.repo.GetSubEntities(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		sub = loaded
	}
	return p.ToDTO(*sub), nil
}

// GetByID retrieves a profile with its sub-entities.
func (s *ProfileService) GetByID(ctx context.Context, profileID string) (*model.ProfileDTO, error) {
	p, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.GetSubEntities(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return p.ToDTO(*sub), nil
}

// Delete removes a profile and its cascade-owned sub-entities.
func (s *ProfileService) Delete(ctx context.Context, profileID string) error {
	return s.repo.Delete(ctx, profileID)
}

// List retrieves profiles with pagination.
func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]*model.Profile, int, error) {
	return s.repo.List(ctx, limit, offset)
}
