package jobboard

import "time"

// hhSearchResponse mirrors the HH-style search endpoint's JSON shape.
type hhSearchResponse struct {
	Items   []hhVacancy `json:"items"`
	Found   int         `json:"found"`
	Pages   int         `json:"pages"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

type hhVacancy struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Employer    hhEmployer    `json:"employer"`
	Area        hhArea        `json:"area"`
	Salary      *hhSalary     `json:"salary"`
	AlternateURL string       `json:"alternate_url"`
	PublishedAt string        `json:"published_at"`
	Experience  hhNamedValue  `json:"experience"`
	Schedule    hhNamedValue  `json:"schedule"`
	Employment  hhNamedValue  `json:"employment"`
	KeySkills   []hhKeySkill  `json:"key_skills"`
}

type hhEmployer struct {
	Name string `json:"name"`
}

type hhArea struct {
	Name string `json:"name"`
}

type hhSalary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

type hhNamedValue struct {
	Name string `json:"name"`
}

type hhKeySkill struct {
	Name string `json:"name"`
}

// toVacancyItem maps the HH wire shape into the domain-neutral VacancyItem
// the ingestion service consumes.
func (v hhVacancy) toVacancyItem() VacancyItem {
	item := VacancyItem{
		ExternalID:  v.ID,
		Title:       v.Name,
		Company:     v.Employer.Name,
		Location:    v.Area.Name,
		Description: v.Description,
		URL:         v.AlternateURL,
		Experience:  v.Experience.Name,
		Schedule:    v.Schedule.Name,
		Employment:  v.Employment.Name,
		Area:        v.Area.Name,
	}
	if v.Salary != nil {
		item.SalaryFrom = v.Salary.From
		item.SalaryTo = v.Salary.To
		item.Currency = v.Salary.Currency
	}
	if v.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, v.PublishedAt); err == nil {
			item.PublishedAt = &t
		}
	}
	for _, ks := range v.KeySkills {
		item.KeySkills = append(item.KeySkills, ks.Name)
	}
	return item
}
