package model

import "time"

// Profile is the candidate record the matching engine reads from (§3
// "Profile"). ResumeText/SkillsText feed the embedding provider and the
// Layer-1 keyword matcher; Location/RemoteOK/RelocationOK/SalaryMin feed
// the eligibility gates.
type Profile struct {
	ID           string
	ResumeText   string
	SkillsText   *string
	Location     *string
	RemoteOK     bool
	RelocationOK bool
	SalaryMin    *int
	// ContactEmail is optional; when set, it is the recipient of the
	// notify task's recommendation summary (SPEC_FULL §10). Nil means
	// notify is skipped for this profile.
	ContactEmail *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Experience is a cascade-owned Profile sub-entity.
type Experience struct {
	ID         string
	ProfileID  string
	Company    string
	Title      string
	StartDate  *time.Time
	EndDate    *time.Time
	IsCurrent  bool
	Description *string
}

// Project is a cascade-owned Profile sub-entity.
type Project struct {
	ID          string
	ProfileID   string
	Name        string
	Description *string
	URL         *string
}

// Achievement is a cascade-owned Profile sub-entity.
type Achievement struct {
	ID          string
	ProfileID   string
	Description string
}

// Education is a cascade-owned Profile sub-entity.
type Education struct {
	ID           string
	ProfileID    string
	Institution  string
	Degree       *string
	FieldOfStudy *string
	StartDate    *time.Time
	EndDate      *time.Time
}

// Certificate is a cascade-owned Profile sub-entity.
type Certificate struct {
	ID        string
	ProfileID string
	Name      string
	Issuer    *string
	IssuedAt  *time.Time
}

// SkillLevel mirrors the level vocabulary the requirement extractor and
// matching engine agree on for profile-declared skills.
type SkillLevel string

const (
	SkillLevelBasic        SkillLevel = "basic"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

// Skill is a cascade-owned Profile sub-entity (§3 "Skill (name_raw,
// normalized_key, category, level, years, last_used_year, is_primary,
// evidence_text)"). NormalizedKey is what Layer-1 keyword coverage joins
// against VacancyRequirement.NormalizedKey.
type Skill struct {
	ID            string
	ProfileID     string
	NameRaw       string
	NormalizedKey string
	Category      *string
	Level         *SkillLevel
	Years         *float64
	LastUsedYear  *int
	IsPrimary     bool
	EvidenceText  *string
}

// Language is a cascade-owned Profile sub-entity.
type Language struct {
	ID        string
	ProfileID string
	Name      string
	Level     *string
}

// Link is a cascade-owned Profile sub-entity (portfolio, GitHub, LinkedIn, ...).
type Link struct {
	ID        string
	ProfileID string
	Label     string
	URL       string
}

// VersionSource mirrors §3's ResumeVersion/CoverLetterVersion "source" enum.
type VersionSource string

const (
	VersionSourceUser        VersionSource = "user"
	VersionSourceAI          VersionSource = "ai"
	VersionSourceLegacyImport VersionSource = "legacy_import"
)

// VersionStatus mirrors §3's "status" enum for drafts.
type VersionStatus string

const (
	VersionStatusDraft    VersionStatus = "draft"
	VersionStatusApproved VersionStatus = "approved"
)

// ResumeVersion is an immutable draft attached to a Profile and optionally
// a Vacancy (tailoring output, component L consumes the latest approved
// one; new drafts are inserted, never mutated).
type ResumeVersion struct {
	ID          string
	ProfileID   string
	VacancyID   *string
	ContentText string
	Source      VersionSource
	Status      VersionStatus
	CreatedAt   time.Time
	ApprovedAt  *time.Time
}

// CoverLetterVersion mirrors ResumeVersion for cover letters.
type CoverLetterVersion struct {
	ID          string
	ProfileID   string
	VacancyID   *string
	ContentText string
	Source      VersionSource
	Status      VersionStatus
	CreatedAt   time.Time
	ApprovedAt  *time.Time
}

// ProfileDTO is the read-facing shape returned by the thin HTTP surface,
// including the cascade-owned sub-entities needed to render a full profile.
type ProfileDTO struct {
	ID           string        `json:"id"`
	ResumeText   string        `json:"resume_text"`
	SkillsText   *string       `json:"skills_text,omitempty"`
	Location     *string       `json:"location,omitempty"`
	RemoteOK     bool          `json:"remote_ok"`
	RelocationOK bool          `json:"relocation_ok"`
	SalaryMin    *int          `json:"salary_min,omitempty"`
	ContactEmail *string       `json:"contact_email,omitempty"`
	Experience   []Experience  `json:"experience,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
	Achievements []Achievement `json:"achievements,omitempty"`
	Education    []Education   `json:"education,omitempty"`
	Certificates []Certificate `json:"certificates,omitempty"`
	Skills       []Skill       `json:"skills,omitempty"`
	Languages    []Language    `json:"languages,omitempty"`
	Links        []Link        `json:"links,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ToDTO builds a ProfileDTO from a Profile plus its already-loaded
// sub-entities; the repository is responsible for populating the slices.
func (p *Profile) ToDTO(sub ProfileSubEntities) *ProfileDTO {
	return &ProfileDTO{
		ID:           p.ID,
		ResumeText:   p.ResumeText,
		SkillsText:   p.SkillsText,
		Location:     p.Location,
		RemoteOK:     p.RemoteOK,
		RelocationOK: p.RelocationOK,
		SalaryMin:    p.SalaryMin,
		ContactEmail: p.ContactEmail,
		Experience:   sub.Experience,
		Projects:     sub.Projects,
		Achievements: sub.Achievements,
		Education:    sub.Education,
		Certificates: sub.Certificates,
		Skills:       sub.Skills,
		Languages:    sub.Languages,
		Links:        sub.Links,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProfileSubEntities groups every cascade-owned child collection so
// repository methods can load/replace them as one unit.
type ProfileSubEntities struct {
	Experience   []Experience
	Projects     []Project
	Achievements []Achievement
	Education    []Education
	Certificates []Certificate
	Skills       []Skill
	Languages    []Language
	Links        []Link
}
