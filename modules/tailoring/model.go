// Package tailoring implements component L: assembling the profile facts,
// vacancy facts, scoring explanation, and evidence a downstream document
// generator needs to tailor a resume/cover letter to one vacancy (§6 "GET
// /profiles/{id}/vacancies/{id}/tailoring").
package tailoring

import (
	"github.com/andreypavlenko/jobmatch/modules/matching"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	vacancymodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
)

// ProfileFacts is the subset of a profile a tailoring bundle surfaces —
// enough for a downstream writer to ground claims, without re-exporting
// the full cascade of sub-entities.
type ProfileFacts struct {
	ResumeText   string   `json:"resume_text"`
	SkillNames   []string `json:"skill_names"`
	Location     string   `json:"location,omitempty"`
	RemoteOK     bool     `json:"remote_ok"`
	RelocationOK bool     `json:"relocation_ok"`
	SalaryMin    *int     `json:"salary_min,omitempty"`
}

// VacancyFacts is the subset of a vacancy a tailoring bundle surfaces.
type VacancyFacts struct {
	Title      string `json:"title"`
	Company    string `json:"company,omitempty"`
	Location   string `json:"location,omitempty"`
	PlainText  string `json:"plain_text,omitempty"`
	SalaryFrom *int   `json:"salary_from,omitempty"`
	SalaryTo   *int   `json:"salary_to,omitempty"`
}

// Evidence is the bundle-facing shape of one ResumeEvidence row.
type Evidence struct {
	RequirementID string  `json:"requirement_id,omitempty"`
	EvidenceText  string  `json:"evidence_text"`
	EvidenceType  string  `json:"evidence_type"`
	Confidence    float64 `json:"confidence"`
}

// Bundle is the full §6 tailoring response.
type Bundle struct {
	Profile     ProfileFacts        `json:"profile"`
	Vacancy     VacancyFacts        `json:"vacancy"`
	Explanation matching.Explanation `json:"explanation"`
	Evidence    []Evidence          `json:"evidence"`
}

func profileFacts(p *profilemodel.Profile, skills []profilemodel.Skill) ProfileFacts {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.NameRaw)
	}
	f := ProfileFacts{
		ResumeText:   p.ResumeText,
		SkillNames:   names,
		RemoteOK:     p.RemoteOK,
		RelocationOK: p.RelocationOK,
		SalaryMin:    p.SalaryMin,
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	return f
}

func vacancyFacts(v *vacancymodel.Vacancy, plainText string) VacancyFacts {
	f := VacancyFacts{
		Title:      v.Title,
		PlainText:  plainText,
		SalaryFrom: v.SalaryFrom,
		SalaryTo:   v.SalaryTo,
	}
	if v.Company != nil {
		f.Company = *v.Company
	}
	if v.Location != nil {
		f.Location = *v.Location
	}
	return f
}
