package ports

import (
	"context"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
)

// ProfileRepository defines data access for profiles and their
// cascade-owned sub-entities (component D).
type ProfileRepository interface {
	// Create inserts a new profile and returns its surrogate id.
	Create(ctx context.Context, p *model.Profile) (string, error)

	// Update overwrites the mutable fields of an existing profile.
	Update(ctx context.Context, p *model.Profile) error

	GetByID(ctx context.Context, profileID string) (*model.Profile, error)

	// GetSubEntities loads every cascade-owned child collection for a
	// profile in one call, used to render a full ProfileDTO.
	GetSubEntities(ctx context.Context, profileID string) (*model.ProfileSubEntities, error)

	// ReplaceSubEntities deletes and re-inserts every child row for a
	// profile in one transaction; callers pass the full desired state.
	ReplaceSubEntities(ctx context.Context, profileID string, sub *model.ProfileSubEntities) error

	// ListSkills returns the profile's declared skills, used as matching
	// engine input alongside the extracted resume/skills_text tokens.
	ListSkills(ctx context.Context, profileID string) ([]model.Skill, error)

	Delete(ctx context.Context, profileID string) error

	// List returns profiles for simple browsing/backfill enumeration.
	List(ctx context.Context, limit, offset int) ([]*model.Profile, int, error)
}

// ResumeVersionRepository defines data access for immutable resume drafts.
type ResumeVersionRepository interface {
	Create(ctx context.Context, v *model.ResumeVersion) (string, error)
	GetByID(ctx context.Context, versionID string) (*model.ResumeVersion, error)
	ListByProfile(ctx context.Context, profileID string) ([]*model.ResumeVersion, error)
	Approve(ctx context.Context, versionID string) error
}

// CoverLetterVersionRepository defines data access for immutable cover
// letter drafts.
type CoverLetterVersionRepository interface {
	Create(ctx context.Context, v *model.CoverLetterVersion) (string, error)
	GetByID(ctx context.Context, versionID string) (*model.CoverLetterVersion, error)
	ListByProfile(ctx context.Context, profileID string) ([]*model.CoverLetterVersion, error)
	Approve(ctx context.Context, versionID string) error
}
