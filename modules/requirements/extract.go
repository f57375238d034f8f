package requirements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andreypavlenko/jobmatch/modules/descparse"
)

// Kind distinguishes a skill requirement from a structured-field
// constraint.
type Kind string

const (
	KindSkill      Kind = "skill"
	KindConstraint Kind = "constraint"
)

// Requirement is one row of the ordered list §4.3 produces.
type Requirement struct {
	Kind          Kind
	RawText       string
	NormalizedKey string
	IsHard        bool
	Weight        int
	Source        string
}

// StructuredFields carries the vacancy's structured attributes used by the
// constraints extractor (§4.3 step 6).
type StructuredFields struct {
	Experience  string
	Schedule    string
	Employment  string
	Area        string
	Description string // scanned for hard markers only
}

// ExtractFromSections implements §4.3 steps 1-5 over descparse's section
// map.
func ExtractFromSections(sections map[string][]string) []Requirement {
	dedup := map[string]Requirement{}
	upsert := func(r Requirement) {
		key := r.NormalizedKey
		if key == "" {
			key = r.RawText
		}
		existing, ok := dedup[key]
		if !ok || (r.IsHard && !existing.IsHard) {
			dedup[key] = r
		}
	}

	for _, sectionName := range []string{descparse.SectionRequirements, descparse.SectionNiceToHave} {
		for _, line := range sections[sectionName] {
			class := classifyLine(line, sectionName)
			if class == classOther {
				continue
			}
			isHard := class == classMust
			source := sectionSource(sectionName, class)
			for _, req := range extractSkillsFromLine(line, isHard) {
				req.Source = source
				upsert(req)
			}
		}
	}

	if len(dedup) < 3 {
		for _, line := range sections[descparse.SectionOther] {
			class := classifyLine(line, descparse.SectionOther)
			should := class == classMust || class == classNice ||
				startsWithAny(normalizeLine(line), startsLikeRequirement)
			if !should {
				continue
			}
			for _, req := range extractSkillsFromLine(line, false) {
				req.Weight = 1
				req.IsHard = false
				req.Source = "text_other_fallback"
				upsert(req)
			}
		}
	}

	return sortedValues(dedup)
}

// ExtractConstraints implements §4.3 step 6: one constraint requirement
// per non-empty structured field, with hardness driven by whether the
// vacancy description itself uses a hard marker.
func ExtractConstraints(fields StructuredFields) []Requirement {
	descriptionIsHard := containsAny(normalizeLine(fields.Description), mustMarkers)

	var out []Requirement
	add := func(field, raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		weight := 1
		if descriptionIsHard {
			weight = 3
		}
		out = append(out, Requirement{
			Kind:          KindConstraint,
			RawText:       fmt.Sprintf("%s: %s", field, raw),
			NormalizedKey: fmt.Sprintf("%s:%s", field, NormalizeKey(raw)),
			IsHard:        descriptionIsHard,
			Weight:        weight,
			Source:        "structured_fields",
		})
	}

	add("experience", fields.Experience)
	add("schedule", fields.Schedule)
	add("employment", fields.Employment)
	add("area", fields.Area)

	return out
}

func sectionSource(section string, class lineClass) string {
	if section == descparse.SectionRequirements && class == classMust {
		return "text_requirements"
	}
	if class == classNice {
		return "text_plus"
	}
	return "text_other_fallback"
}

func extractSkillsFromLine(line string, isHard bool) []Requirement {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return nil
	}

	var out []Requirement
	for canonical, aliases := range skillAliases {
		for _, alias := range aliases {
			if containsTokenSequence(tokens, Tokenize(alias)) {
				weight := 1
				if isHard {
					weight = 3
				}
				out = append(out, Requirement{
					Kind:          KindSkill,
					RawText:       canonical,
					NormalizedKey: NormalizeKey(canonical),
					IsHard:        isHard,
					Weight:        weight,
				})
				break
			}
		}
	}
	return out
}

func sortedValues(dedup map[string]Requirement) []Requirement {
	out := make([]Requirement, 0, len(dedup))
	for _, r := range dedup {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NormalizedKey < out[j].NormalizedKey })
	return out
}
