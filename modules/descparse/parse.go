// Package descparse implements component F: turning a cleaned vacancy
// description into the section-tagged shape the requirement extractor
// (modules/requirements) and the quality score consume.
package descparse

import (
	"regexp"
	"strings"

	"github.com/andreypavlenko/jobmatch/modules/textclean"
)

// Version is the opaque parser-version tag stored on VacancyParsed; a
// stored row whose version doesn't match this constant is re-parsed on the
// next ingest.
const Version = "v1"

const (
	SectionResponsibilities = "responsibilities"
	SectionRequirements     = "requirements"
	SectionNiceToHave       = "nice_to_have"
	SectionConditions       = "conditions"
	SectionOther            = "other"
)

// Result is the §4.2 output: {plain_text, sections, quality_score, version}.
type Result struct {
	PlainText    string
	Sections     map[string][]string
	QualityScore float64
	Version      string
}

// sectionAliases lists recognized header phrases per section, Russian and
// English, the way job postings on hh.ru and similar boards phrase them.
var sectionAliases = map[string][]string{
	SectionResponsibilities: {
		"обязанности", "чем предстоит заниматься", "что нужно будет делать",
		"responsibilities", "what you'll do", "what you will do", "duties", "key responsibilities",
	},
	SectionRequirements: {
		"требования", "наши ожидания", "что мы ожидаем", "необходимые навыки", "требуется",
		"requirements", "qualifications", "what we expect", "what we're looking for", "what you need",
	},
	SectionNiceToHave: {
		"будет плюсом", "будет преимуществом", "приветствуется", "как плюс", "плюсом будет",
		"nice to have", "would be a plus", "will be a plus", "preferred", "bonus points", "a plus",
	},
	SectionConditions: {
		"условия", "мы предлагаем", "что мы предлагаем", "предлагаем",
		"conditions", "what we offer", "benefits", "perks", "we offer",
	},
}

var headerTrim = regexp.MustCompile(`[:\-–—]+\s*$`)

// bulletPrefix strips leading bullet/ordinal markers: hyphen/bullet glyphs,
// "1.", "1)", "a)", or a roman numeral followed by `.`/`)`. Letters and
// roman numerals match in either case.
var bulletPrefix = regexp.MustCompile(`(?i)^(?:[-•*●▪‣]\s+|\d+[.)]\s+|[a-z][.)]\s+|[ivxlcdm]+[.)]\s+)`)

// Parse cleans rawHTML (component A) and tokenizes it into the section
// shape §4.2 describes.
func Parse(rawHTML string) Result {
	plain := textclean.Clean(rawHTML)
	lines := tokenizeLines(plain)

	sections := map[string][]string{
		SectionResponsibilities: {},
		SectionRequirements:     {},
		SectionNiceToHave:       {},
		SectionConditions:       {},
		SectionOther:            {},
	}

	current := SectionOther
	for _, line := range lines {
		if section, remainder, ok := matchHeader(line); ok {
			current = section
			if remainder != "" {
				sections[current] = append(sections[current], remainder)
			}
			continue
		}
		sections[current] = append(sections[current], line)
	}

	return Result{
		PlainText:    plain,
		Sections:     sections,
		QualityScore: qualityScore(sections, plain, lines),
		Version:      Version,
	}
}

func tokenizeLines(plain string) []string {
	raw := strings.Split(plain, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		l = strings.TrimSpace(bulletPrefix.ReplaceAllString(l, ""))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// matchHeader reports whether line is, or begins with, a known section
// header: either the full line (case-insensitive, trailing `:`/dash
// stripped) equals an alias, or the line begins with an alias immediately
// followed by `:` or a dash and then content, which becomes remainder.
func matchHeader(line string) (section, remainder string, ok bool) {
	lower := strings.ToLower(line)
	headerOnly := strings.TrimSpace(headerTrim.ReplaceAllString(lower, ""))

	for name, aliases := range sectionAliases {
		for _, alias := range aliases {
			if headerOnly == alias {
				return name, "", true
			}
			if !strings.HasPrefix(lower, alias) {
				continue
			}
			rest := lower[len(alias):]
			trimmedRest := strings.TrimLeft(rest, ":–—- \t")
			if trimmedRest == rest {
				continue // no separator right after the alias
			}
			cut := len(rest) - len(trimmedRest)
			remainder = strings.TrimSpace(line[len(alias)+cut:])
			if remainder != "" {
				return name, remainder, true
			}
		}
	}

	return "", "", false
}

func qualityScore(sections map[string][]string, plain string, lines []string) float64 {
	score := 0.0
	if len(sections[SectionRequirements]) >= 3 {
		score += 0.45
	}
	if len(sections[SectionResponsibilities]) >= 1 {
		score += 0.15
	}
	if len(sections[SectionConditions]) >= 1 {
		score += 0.10
	}
	if len([]rune(plain)) >= 600 {
		score += 0.20
	}
	if len(lines) >= 8 {
		score += 0.20
	}

	allOther := true
	for name, ls := range sections {
		if name != SectionOther && len(ls) > 0 {
			allOther = false
			break
		}
	}
	if allOther && len(sections[SectionOther]) > 0 {
		score -= 0.25
	}

	return round4(clamp01(score))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func round4(f float64) float64 {
	return float64(int64(f*10000+0.5)) / 10000
}
