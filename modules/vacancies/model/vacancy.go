package model

import "time"

// Vacancy is an external job posting (§3 "Vacancy"). Natural key is
// (Source, ExternalID); the surrogate ID is what every other table links
// against.
type Vacancy struct {
	ID           string
	Source       string
	ExternalID   string
	Title        string
	Company      *string
	Location     *string
	SalaryFrom   *int
	SalaryTo     *int
	Currency     *string
	Description  string // raw, may be HTML
	URL          *string
	PublishedAt  *time.Time
	Status       string
	Experience   *string
	Schedule     *string
	Employment   *string
	Area         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VacancyParsed is 1:1 with Vacancy, the component-F output persisted.
type VacancyParsed struct {
	VacancyID    string
	PlainText    string
	SectionsJSON map[string][]string
	Version      string
	QualityScore float64
	ExtractedAt  time.Time
}

// RequirementKind mirrors requirements.Kind without importing that
// package's internal classification types into the persistence layer.
type RequirementKind string

const (
	RequirementKindSkill      RequirementKind = "skill"
	RequirementKindConstraint RequirementKind = "constraint"
)

// VacancyRequirement is one extracted requirement row (component G output).
type VacancyRequirement struct {
	ID            string
	VacancyID     string
	Kind          RequirementKind
	RawText       string
	NormalizedKey string
	Weight        int
	IsHard        bool
}

// VacancyDTO is the read-facing shape returned by the thin HTTP surface.
type VacancyDTO struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	ExternalID  string     `json:"external_id"`
	Title       string     `json:"title"`
	Company     *string    `json:"company,omitempty"`
	Location    *string    `json:"location,omitempty"`
	SalaryFrom  *int       `json:"salary_from,omitempty"`
	SalaryTo    *int       `json:"salary_to,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	URL         *string    `json:"url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToDTO strips internal-only fields (raw description, structured fields
// only the ingestion/requirement pipeline needs).
func (v *Vacancy) ToDTO() *VacancyDTO {
	return &VacancyDTO{
		ID:          v.ID,
		Source:      v.Source,
		ExternalID:  v.ExternalID,
		Title:       v.Title,
		Company:     v.Company,
		Location:    v.Location,
		SalaryFrom:  v.SalaryFrom,
		SalaryTo:    v.SalaryTo,
		Currency:    v.Currency,
		URL:         v.URL,
		PublishedAt: v.PublishedAt,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
