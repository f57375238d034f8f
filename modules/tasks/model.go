// Package tasks registers the task-runtime handlers component K dispatches
// through (§4.7), wiring the ingestion, embedding, recommendation, and
// tailoring modules to the named tasks spec.md §4.8 and §10 describe:
// sync_saved_search, build_vacancy_embedding, build_profile_embedding,
// recompute_recommendations, and the supplemented notify step.
package tasks

import "time"

// Task names, matching the vocabulary spec.md §4.7/§4.8 use directly so
// AsyncResult polling and Sentry tags read the same name an operator would
// look up in the spec.
const (
	ImportHHTask                 = "import_hh"
	SyncSavedSearchTask          = "sync_saved_search"
	BuildVacancyEmbeddingTask    = "build_vacancy_embedding"
	BuildProfileEmbeddingTask    = "build_profile_embedding"
	RecomputeRecommendationsTask = "recompute_recommendations"
	NotifyTask                  = "notify"
)

// defaultRecommendationLimit bounds recompute_recommendations when its
// args carry a zero Limit.
const defaultRecommendationLimit = 20

// ImportHHArgs is the JSON payload for import_hh (§6 "POST /import/hh"), a
// one-off import not tied to a stored SavedSearch.
type ImportHHArgs struct {
	Text           string `json:"text,omitempty"`
	Area           string `json:"area,omitempty"`
	Schedule       string `json:"schedule,omitempty"`
	Experience     string `json:"experience,omitempty"`
	SalaryFrom     *int   `json:"salary_from,omitempty"`
	SalaryTo       *int   `json:"salary_to,omitempty"`
	Currency       string `json:"currency,omitempty"`
	PerPage        int    `json:"per_page,omitempty"`
	StartPage      int    `json:"start_page,omitempty"`
	PagesLimit     int    `json:"pages_limit,omitempty"`
	IncludeDetails bool   `json:"include_details,omitempty"`
}

// SyncSavedSearchArgs is the JSON payload for sync_saved_search.
type SyncSavedSearchArgs struct {
	SavedSearchID string `json:"saved_search_id"`
}

// BuildVacancyEmbeddingArgs is the JSON payload for build_vacancy_embedding.
type BuildVacancyEmbeddingArgs struct {
	VacancyID string `json:"vacancy_id"`
}

// BuildProfileEmbeddingArgs is the JSON payload for build_profile_embedding.
type BuildProfileEmbeddingArgs struct {
	ProfileID string `json:"profile_id"`
}

// RecomputeRecommendationsArgs is the JSON payload for
// recompute_recommendations; Limit falls back to defaultRecommendationLimit
// when zero.
type RecomputeRecommendationsArgs struct {
	ProfileID string `json:"profile_id"`
	Limit     int    `json:"limit,omitempty"`
}

// NotifyArgs is the JSON payload for notify. It carries no recommendation
// data itself — the handler reads its chain predecessor's result back via
// queue.ParentIDFromContext + AsyncResult, per Chain's contract.
type NotifyArgs struct {
	ProfileID string `json:"profile_id"`
}

// recomputeResult is what recompute_recommendations stores as its task
// result, and what notify reads back to find strong verdicts.
type recomputeResult struct {
	ProfileID string           `json:"profile_id"`
	Items     []recomputeItem  `json:"items"`
	ComputedAt time.Time       `json:"computed_at"`
}

type recomputeItem struct {
	VacancyID  string  `json:"vacancy_id"`
	FinalScore float64 `json:"final_score"`
	Verdict    string  `json:"verdict"`
}

// syncResult is the sync_saved_search task result (§4.4 "import ... returns
// {pages_processed, vacancies_seen, saved, updated, errors, stop_by_cutoff}").
type syncResult struct {
	PagesProcessed int  `json:"pages_processed"`
	VacanciesSeen  int  `json:"vacancies_seen"`
	Saved          int  `json:"saved"`
	Updated        int  `json:"updated"`
	Errors         int  `json:"errors"`
	StopByCutoff   bool `json:"stop_by_cutoff"`
}

// embeddingResult is the shared result shape for both embedding tasks.
type embeddingResult struct {
	EntityID string `json:"entity_id"`
	Provider string `json:"provider"`
	Dim      int    `json:"dim"`
}

// notifyResult is the notify task result; Sent is false whenever the step
// was skipped (no contact email, no recipient strong match, no Resend key).
type notifyResult struct {
	Sent           bool   `json:"sent"`
	SkippedReason  string `json:"skipped_reason,omitempty"`
	RecommendCount int    `json:"recommend_count"`
}
