package requirements

import (
	"regexp"
	"strings"
)

// lineClass is the per-line classification of §4.3 step 1.
type lineClass string

const (
	classMust  lineClass = "must"
	classNice  lineClass = "nice"
	classOther lineClass = "other"
)

var niceMarkers = []string{
	"будет плюсом", "плюсом будет", "желательно", "приветствуется",
	"как преимущество", "будет большим плюсом", "nice to have", "preferred",
}

var mustMarkers = []string{
	"обязательно", "необходимо", "требуется", "must have", "required",
}

// startsLikeRequirement catches lines that read like a requirement even
// without an explicit hard/nice marker ("Опыт коммерческой разработки от
// 3 лет", "Знание SQL").
var startsLikeRequirement = []string{
	"опыт", "знание", "умение", "уверенное владение", "понимание",
	"навыки", "наличие", "образование", "experience", "knowledge of",
	"proficiency", "familiarity with",
}

// onlyFormatPatterns are "only format" exceptions (§4.3 step 1): a line
// carrying a must-marker is nonetheless demoted to `other` when it also
// names a restrictive-format caveat such as office-only attendance.
var onlyFormatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`только\s+(в\s+)?офис`),
	regexp.MustCompile(`только\s+очно`),
	regexp.MustCompile(`office\s+only`),
}

// classifyLine implements §4.3 step 1's precedence, which spec.md §9
// calls load-bearing: nice_to_have section wins outright; inside
// requirements a nice-marker on the line still downgrades it; outside
// both, nice-markers beat must-markers, must-markers are demoted by an
// "only format" exception, and a requirement-like opening phrase is the
// last resort before falling back to other.
func classifyLine(line, section string) lineClass {
	normalized := normalizeLine(line)
	if normalized == "" {
		return classOther
	}

	if section == "nice_to_have" {
		return classNice
	}
	if section == "requirements" {
		if containsAny(normalized, niceMarkers) {
			return classNice
		}
		return classMust
	}

	if containsAny(normalized, niceMarkers) {
		return classNice
	}
	if containsAny(normalized, mustMarkers) {
		if strings.Contains(normalized, "только") && matchesAny(normalized, onlyFormatPatterns) {
			return classOther
		}
		return classMust
	}
	if startsWithAny(normalized, startsLikeRequirement) {
		return classMust
	}
	return classOther
}

func normalizeLine(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
