package matching

import "testing"

func unitVector(seed float32, dim int) []float32 {
	v := make([]float32, dim)
	v[0] = seed
	v[1] = 1
	return v
}

func TestScore_StrongMatchWhenAllHardRequirementsPresent(t *testing.T) {
	in := Input{
		Profile: ProfileInput{ResumeText: "Go разработчик, 5 лет опыта, PostgreSQL, Docker", RelocationOK: true},
		Vacancy: VacancyInput{Title: "Go Developer", PlainText: "Требования: Go, PostgreSQL, Docker"},
		Requirements: []RequirementInput{
			{ID: "r1", RawText: "Go", NormalizedKey: "go", IsHard: true, Weight: 3},
			{ID: "r2", RawText: "PostgreSQL", NormalizedKey: "postgresql", IsHard: true, Weight: 3},
			{ID: "r3", RawText: "Docker", NormalizedKey: "docker", IsHard: false, Weight: 1},
		},
		ProfileEmbedding: []float32{1, 0, 0},
		VacancyEmbedding: []float32{1, 0, 0},
	}

	result := Score(in)
	if !result.Explanation.Eligibility.OK {
		t.Fatalf("expected eligible, got reasons %v", result.Explanation.Eligibility.ReasonsFailed)
	}
	if result.Verdict != VerdictStrong {
		t.Fatalf("expected strong verdict, got %s (raw=%v)", result.Verdict, result.Explanation.Final.RawScore)
	}
	if len(result.Explanation.ATS.KeywordsMissingMust) != 0 {
		t.Fatalf("expected no missing must-haves, got %v", result.Explanation.ATS.KeywordsMissingMust)
	}
	if len(result.Evidence) != 3 {
		t.Fatalf("expected 3 evidence rows, got %d", len(result.Evidence))
	}
}

func TestScore_RejectsOnMissingHardRequirement(t *testing.T) {
	in := Input{
		Profile: ProfileInput{ResumeText: "Python разработчик", RelocationOK: true},
		Vacancy: VacancyInput{Title: "Go Developer", PlainText: "Требования: Go"},
		Requirements: []RequirementInput{
			{ID: "r1", RawText: "Go", NormalizedKey: "go", IsHard: true, Weight: 3},
		},
	}

	result := Score(in)
	if result.Explanation.Eligibility.OK {
		t.Fatalf("expected ineligible")
	}
	if result.Verdict != VerdictReject {
		t.Fatalf("expected reject verdict, got %s", result.Verdict)
	}
	if result.FinalScore != 0 {
		t.Fatalf("expected final score 0 when ineligible, got %v", result.FinalScore)
	}
}

func TestScore_RelocationGateFailsWithoutRelocationOK(t *testing.T) {
	in := Input{
		Profile: ProfileInput{ResumeText: "Go", RelocationOK: false},
		Vacancy: VacancyInput{Title: "Go Developer", PlainText: "Обязателен переезд в другой город. Требования: Go"},
		Requirements: []RequirementInput{
			{ID: "r1", RawText: "Go", NormalizedKey: "go", IsHard: true, Weight: 3},
		},
	}

	result := Score(in)
	found := false
	for _, r := range result.Explanation.Eligibility.ReasonsFailed {
		if r == "Требуется релокация" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected relocation gate to fail, got reasons %v", result.Explanation.Eligibility.ReasonsFailed)
	}
}

func TestScore_LocationMismatchIgnoredWhenRemote(t *testing.T) {
	in := Input{
		Profile: ProfileInput{ResumeText: "Go", Location: "Москва", RelocationOK: true},
		Vacancy: VacancyInput{Title: "Go Developer (remote)", Location: "Санкт-Петербург", PlainText: "Удаленная работа. Требования: Go"},
		Requirements: []RequirementInput{
			{ID: "r1", RawText: "Go", NormalizedKey: "go", IsHard: true, Weight: 3},
		},
	}

	result := Score(in)
	if !result.Explanation.Eligibility.OK {
		t.Fatalf("expected eligible for remote vacancy despite location mismatch, got %v", result.Explanation.Eligibility.ReasonsFailed)
	}
}

func TestScore_SalaryBelowMinimumRejects(t *testing.T) {
	salaryMin := 200000
	salaryTo := 150000
	in := Input{
		Profile: ProfileInput{ResumeText: "Go", RelocationOK: true, SalaryMin: &salaryMin},
		Vacancy: VacancyInput{Title: "Go Developer", PlainText: "Требования: Go", SalaryTo: &salaryTo},
		Requirements: []RequirementInput{
			{ID: "r1", RawText: "Go", NormalizedKey: "go", IsHard: true, Weight: 3},
		},
	}

	result := Score(in)
	if result.Explanation.Eligibility.OK {
		t.Fatalf("expected salary gate to reject")
	}
}

func TestScore_NoSkillRequirementsCapsRawScore(t *testing.T) {
	in := Input{
		Profile:          ProfileInput{ResumeText: "Go", RelocationOK: true},
		Vacancy:          VacancyInput{Title: "Go Developer"},
		ProfileEmbedding: []float32{1, 0},
		VacancyEmbedding: []float32{1, 0},
	}

	result := Score(in)
	if result.Explanation.Final.RawScore > 0.65 {
		t.Fatalf("expected raw score capped at 0.65, got %v", result.Explanation.Final.RawScore)
	}
	found := false
	for _, p := range result.Explanation.Final.Penalties {
		if p == "no_skill_requirements_cap" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected no_skill_requirements_cap penalty tag")
	}
}

func TestScore_SemanticSimilarityReflectsEmbeddingAlignment(t *testing.T) {
	base := Input{
		Profile: ProfileInput{ResumeText: "Go разработчик, PostgreSQL", RelocationOK: true},
		Vacancy: VacancyInput{Title: "Go Developer", PlainText: "Требования: Go"},
		Requirements: []RequirementInput{
			{ID: "r1", RawText: "Go", NormalizedKey: "go", IsHard: true, Weight: 3},
		},
	}

	aligned := base
	aligned.ProfileEmbedding = unitVector(1, 8)
	aligned.VacancyEmbedding = unitVector(1, 8)
	alignedResult := Score(aligned)

	opposed := base
	opposed.ProfileEmbedding = unitVector(1, 8)
	opposed.VacancyEmbedding = unitVector(-1, 8)
	opposedResult := Score(opposed)

	if alignedResult.Layer2Score <= opposedResult.Layer2Score {
		t.Fatalf("expected aligned embeddings to score higher semantic similarity: aligned=%v opposed=%v",
			alignedResult.Layer2Score, opposedResult.Layer2Score)
	}
}
