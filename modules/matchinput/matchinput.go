// Package matchinput assembles a matching.Input from the entity-store
// model types (modules/profiles, modules/vacancies), shared between
// modules/recommend (§4.6, many vacancies per profile) and
// modules/tailoring (§6, one vacancy per profile) so both build the exact
// same shape the scoring engine expects.
package matchinput

import (
	"strings"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	vacancymodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
)

// Profile assembles matching.ProfileInput, folding declared skill names
// into SkillsText so Layer-1 keyword coverage sees them alongside the
// free-text resume.
func Profile(p *profilemodel.Profile, skills []profilemodel.Skill) matching.ProfileInput {
	var skillsText strings.Builder
	if p.SkillsText != nil {
		skillsText.WriteString(*p.SkillsText)
	}
	for _, s := range skills {
		if skillsText.Len() > 0 {
			skillsText.WriteString(", ")
		}
		skillsText.WriteString(s.NameRaw)
	}

	in := matching.ProfileInput{
		ResumeText:   p.ResumeText,
		SkillsText:   skillsText.String(),
		RemoteOK:     p.RemoteOK,
		RelocationOK: p.RelocationOK,
		SalaryMin:    p.SalaryMin,
	}
	if p.Location != nil {
		in.Location = *p.Location
	}
	return in
}

// Vacancy assembles matching.VacancyInput from a Vacancy, its (possibly
// absent) parsed plain text, and its extracted skill requirements.
func Vacancy(v *vacancymodel.Vacancy, plainText string, reqs []*vacancymodel.VacancyRequirement) (matching.VacancyInput, []matching.RequirementInput) {
	in := matching.VacancyInput{
		Title:       v.Title,
		Description: v.Description,
		PlainText:   plainText,
		SalaryFrom:  v.SalaryFrom,
		SalaryTo:    v.SalaryTo,
	}
	if v.Location != nil {
		in.Location = *v.Location
	}

	reqInputs := make([]matching.RequirementInput, 0, len(reqs))
	for _, r := range reqs {
		reqInputs = append(reqInputs, matching.RequirementInput{
			ID:            r.ID,
			RawText:       r.RawText,
			NormalizedKey: r.NormalizedKey,
			IsHard:        r.IsHard,
			Weight:        r.Weight,
		})
	}
	return in, reqInputs
}
