package matching

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/andreypavlenko/jobmatch/modules/requirements"
)

const snippetWindow = 180

// Score computes §4.5's deterministic match for one (profile, vacancy)
// pair. Input.Requirements must already be filtered to kind=skill — the
// caller (modules/matchstore or its wiring) owns that filter since it
// needs the repository's ListSkillRequirements anyway.
func Score(in Input) Result {
	combinedText := in.Profile.ResumeText
	if in.Profile.SkillsText != "" {
		combinedText += "\n" + in.Profile.SkillsText
	}
	tokens := requirements.TokenizeWithOffsets(combinedText)
	tokenTexts := make([]string, len(tokens))
	tokenSet := make(map[string]bool, len(tokens))
	for i, tok := range tokens {
		tokenTexts[i] = tok.Text
		tokenSet[tok.Text] = true
	}

	aliasesByKey := requirements.AliasesByNormalizedKey()

	var present, missingMust, missingNice, uncertain []string
	var evidence []MatchedRequirement
	var hardMatchedWeight, hardTotalWeight, niceMatchedWeight, niceTotalWeight int

	for _, req := range in.Requirements {
		if req.IsHard {
			hardTotalWeight += req.Weight
		} else {
			niceTotalWeight += req.Weight
		}

		canonicalSeq := requirements.Tokenize(req.NormalizedKey)
		matchIdx, ok := findTokenSequence(tokenTexts, canonicalSeq)
		confidence := 1.0

		if !ok {
			for _, alias := range aliasesByKey[req.NormalizedKey] {
				aliasSeq := requirements.Tokenize(alias)
				if idx, aliasOk := findTokenSequence(tokenTexts, aliasSeq); aliasOk {
					matchIdx, ok, confidence = idx, true, 0.8
					break
				}
			}
		}

		if ok {
			present = append(present, req.RawText)
			if req.IsHard {
				hardMatchedWeight += req.Weight
			} else {
				niceMatchedWeight += req.Weight
			}
			evidence = append(evidence, MatchedRequirement{
				RequirementID: req.ID,
				NormalizedKey: req.NormalizedKey,
				Confidence:    confidence,
				SnippetText:   snippetAround(combinedText, tokens, matchIdx, len(canonicalSeq)),
			})
			continue
		}

		if req.IsHard {
			missingMust = append(missingMust, req.RawText)
		} else {
			missingNice = append(missingNice, req.RawText)
		}

		candidateTokens := append([]string{}, canonicalSeq...)
		for _, alias := range aliasesByKey[req.NormalizedKey] {
			candidateTokens = append(candidateTokens, requirements.Tokenize(alias)...)
		}
		for _, t := range candidateTokens {
			if tokenSet[t] {
				uncertain = append(uncertain, req.RawText)
				break
			}
		}
	}

	hardCov := ratio(hardMatchedWeight, hardTotalWeight)
	niceCov := ratio(niceMatchedWeight, niceTotalWeight)

	keywordsToAdd := append([]string{}, missingNice...)
	keywordsToAdd = append(keywordsToAdd, uncertain...)

	ats := ATS{
		KeywordsPresent:      present,
		KeywordsMissingMust:  missingMust,
		KeywordsMissingNice:  missingNice,
		KeywordsUncertain:    uncertain,
		KeywordsToAdd:        dedupeStrings(keywordsToAdd),
		StructureSuggestions: structureSuggestions(in),
	}

	sim := 0.0
	if len(in.ProfileEmbedding) > 0 && len(in.VacancyEmbedding) > 0 {
		sim = clamp(cosineSimilarity(in.ProfileEmbedding, in.VacancyEmbedding), 0, 1)
	}

	eligibility, warnings := evaluateEligibility(in, missingMust)

	raw := 0.45*sim + 0.35*hardCov + 0.20*niceCov
	var penalties []string

	descriptionText := in.Vacancy.PlainText
	if descriptionText == "" {
		descriptionText = in.Vacancy.Description
	}
	if isSeniorProfile(in.Profile.ResumeText) && isJuniorVacancy(in.Vacancy.Title+" "+descriptionText) {
		raw *= 0.9
		penalties = append(penalties, "overqualified")
	}
	if containsWarning(warnings, salaryFloorWarning) {
		raw *= 0.95
	}
	if len(in.Requirements) == 0 {
		if raw > 0.65 {
			raw = 0.65
		}
		penalties = append(penalties, "no_skill_requirements_cap")
	}
	raw = clamp(raw, 0, 1)

	final := 0.0
	if eligibility.OK {
		final = raw
	}

	verdict := verdictFor(eligibility.OK, raw)

	result := Result{
		Layer1Score: (hardCov + niceCov) / 2,
		Layer2Score: sim,
		FinalScore:  final,
		Verdict:     verdict,
		Evidence:    evidence,
		Explanation: Explanation{
			Warnings:    warnings,
			Eligibility: eligibility,
			ATS:         ats,
			Semantic:    Semantic{Score: sim},
			Final: Final{
				Score:    final,
				RawScore: raw,
				Verdict:  verdict,
				Components: map[string]float64{
					"semantic":  sim,
					"hard_cov":  hardCov,
					"nice_cov":  niceCov,
				},
				Penalties: penalties,
			},
			CoverLetterPoints: coverLetterPoints(evidence),
		},
	}
	return result
}

const salaryFloorWarning = "Нижняя граница вилки ниже ожиданий"

func containsWarning(warnings []string, want string) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}

func verdictFor(eligible bool, raw float64) Verdict {
	if !eligible {
		return VerdictReject
	}
	switch {
	case raw >= 0.75:
		return VerdictStrong
	case raw >= 0.50:
		return VerdictOK
	case raw >= 0.30:
		return VerdictWeak
	default:
		return VerdictReject
	}
}

// evaluateEligibility implements §4.5's four gates, in the order spec.md
// lists them, returning the reason of every failing gate (all gates are
// evaluated — multiple reasons can fail at once) plus any non-fatal
// warnings.
func evaluateEligibility(in Input, missingMust []string) (Eligibility, []string) {
	var reasons, warnings []string

	if len(missingMust) > 0 {
		reasons = append(reasons, "Не закрыты обязательные требования")
	}

	descriptionText := in.Vacancy.PlainText
	if descriptionText == "" {
		descriptionText = in.Vacancy.Description
	}

	if hasRelocationMarker(descriptionText) && !in.Profile.RelocationOK {
		reasons = append(reasons, "Требуется релокация")
	}

	if in.Vacancy.Location != "" && in.Profile.Location != "" &&
		!strings.EqualFold(in.Vacancy.Location, in.Profile.Location) &&
		!hasRemoteMarker(in.Vacancy.Title+" "+in.Vacancy.Location+" "+descriptionText) {
		reasons = append(reasons, "Несовпадение локации")
	}

	if in.Profile.SalaryMin != nil {
		if in.Vacancy.SalaryTo != nil && *in.Vacancy.SalaryTo < *in.Profile.SalaryMin {
			reasons = append(reasons, "Ожидания по зарплате выше вилки")
		} else if in.Vacancy.SalaryFrom != nil && *in.Vacancy.SalaryFrom < *in.Profile.SalaryMin {
			warnings = append(warnings, salaryFloorWarning)
		}
	}

	return Eligibility{OK: len(reasons) == 0, ReasonsFailed: reasons, Warnings: warnings}, warnings
}

func structureSuggestions(in Input) []string {
	var out []string
	if in.Profile.SkillsText == "" {
		out = append(out, "Добавьте отдельный раздел с ключевыми навыками")
	}
	return out
}

func coverLetterPoints(evidence []MatchedRequirement) []string {
	sorted := append([]MatchedRequirement{}, evidence...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Confidence > sorted[j].Confidence })
	var out []string
	for _, e := range sorted {
		if len(out) >= 3 {
			break
		}
		out = append(out, "Подтвержден опыт: "+e.NormalizedKey)
	}
	return out
}

func ratio(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func findTokenSequence(tokens, sequence []string) (int, bool) {
	if len(sequence) == 0 || len(sequence) > len(tokens) {
		return 0, false
	}
	for i := 0; i <= len(tokens)-len(sequence); i++ {
		match := true
		for j, t := range sequence {
			if tokens[i+j] != t {
				match = false
				break
			}
		}
		if match {
			return i, true
		}
	}
	return 0, false
}

// snippetAround extracts a snippet_window-rune window (default 180)
// centered on the matched token span, using []rune slicing so Cyrillic
// multi-byte runes never split mid-character.
func snippetAround(text string, tokens []requirements.Token, matchIdx, matchLen int) string {
	if matchIdx >= len(tokens) {
		return ""
	}
	startByte := tokens[matchIdx].Start
	endByte := tokens[matchIdx].Start
	if matchIdx+matchLen-1 < len(tokens) {
		endByte = tokens[matchIdx+matchLen-1].End
	}

	startRune := utf8.RuneCountInString(text[:startByte])
	endRune := utf8.RuneCountInString(text[:endByte])

	runes := []rune(text)
	half := snippetWindow / 2
	from := startRune - half
	if from < 0 {
		from = 0
	}
	to := endRune + half
	if to > len(runes) {
		to = len(runes)
	}
	return strings.TrimSpace(string(runes[from:to]))
}

// cosineSimilarity is computed generally (not assuming unit-norm inputs)
// so the matching engine stays correct even if a provider's vectors drift
// from exact unit norm.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
