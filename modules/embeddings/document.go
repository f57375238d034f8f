package embeddings

import (
	"strings"
)

const maxProfileDocumentChars = 10000

// BuildVacancyDocument composes the text an embedding provider should see
// for a vacancy (§4.8): title ∪ (plain text if parsed, else cleaned
// description) ∪ "Ключевые навыки: " followed by the comma-joined raw
// skill texts.
func BuildVacancyDocument(title, plainText string, hasParsed bool, cleanedDescription string, skillRawTexts []string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if hasParsed {
		b.WriteString(plainText)
	} else {
		b.WriteString(cleanedDescription)
	}
	if len(skillRawTexts) > 0 {
		b.WriteString("\nКлючевые навыки: ")
		b.WriteString(strings.Join(skillRawTexts, ", "))
	}
	return b.String()
}

// ProfileDocumentInput names the fields a profile document variant draws
// from, letting ingestion pick the terse or rich document without the
// embeddings package depending on modules/profiles' types directly (§9
// "two variants (terse and rich); pick one per deployment and keep it
// stable per model_name").
type ProfileDocumentInput struct {
	ResumeText      string
	SkillsText      string
	LatestResume    string // latest approved resume version content, rich variant only
	SkillNames      []string
	RecentHighlights []string // recent experiences/projects/achievements/education/certs/languages, rich variant only
}

// BuildProfileDocumentTerse composes the terse variant: title (unused here,
// profiles have no title field) plus resume_text and skills_text.
func BuildProfileDocumentTerse(in ProfileDocumentInput) string {
	var b strings.Builder
	b.WriteString(in.ResumeText)
	if in.SkillsText != "" {
		b.WriteString("\n")
		b.WriteString(in.SkillsText)
	}
	return truncate(b.String(), maxProfileDocumentChars)
}

// BuildProfileDocumentRich composes the richer variant: latest approved
// resume version plus skills plus recent highlights, truncated to 10,000
// characters.
func BuildProfileDocumentRich(in ProfileDocumentInput) string {
	var b strings.Builder
	if in.LatestResume != "" {
		b.WriteString(in.LatestResume)
	} else {
		b.WriteString(in.ResumeText)
	}
	if len(in.SkillNames) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(in.SkillNames, ", "))
	}
	for _, h := range in.RecentHighlights {
		b.WriteString("\n")
		b.WriteString(h)
	}
	return truncate(b.String(), maxProfileDocumentChars)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
