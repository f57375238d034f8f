package matching

import "strings"

// relocationMarkers per GLOSSARY "Relocation marker".
var relocationMarkers = []string{
	"релокац", "переезд в", "готовность к переезду", "обязателен переезд", "relocation",
}

// negativeRelocationMarkers are patterns that negate a relocation marker
// found nearby (e.g. "переезд не требуется"). Spec.md leaves this list an
// implementer choice (§9 Open Questions); decided and pinned in DESIGN.md.
var negativeRelocationMarkers = []string{
	"без переезда", "переезд не требуется", "релокация не требуется", "релокация не нужна",
}

// remoteMarkers per GLOSSARY "Remote marker".
var remoteMarkers = []string{"удален", "remote", "дистанцион"}

// seniorMarkers is the lexical probe §4.5/§9 describe for over-qualification.
var seniorMarkers = []string{"senior", "сеньор", "6+", "7+", "8+", "9+", "10+"}

// juniorMarkers identifies a junior-level vacancy from its title/description.
var juniorMarkers = []string{"junior", "джуниор", "стажер", "intern"}

func containsAny(haystack string, needles []string) bool {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// hasRelocationMarker reports whether text names a relocation requirement
// that isn't itself negated by a "no relocation needed" phrase.
func hasRelocationMarker(text string) bool {
	return containsAny(text, relocationMarkers) && !containsAny(text, negativeRelocationMarkers)
}

func hasRemoteMarker(text string) bool {
	return containsAny(text, remoteMarkers)
}

func isJuniorVacancy(text string) bool {
	return containsAny(text, juniorMarkers)
}

func isSeniorProfile(text string) bool {
	return containsAny(text, seniorMarkers)
}
