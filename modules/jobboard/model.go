// Package jobboard is the polite, rate-limited HTTP client for the
// external job board (component E): paginated search, per-item detail
// fetch, retry/backoff on 5xx, Retry-After on 429.
package jobboard

import "time"

// SearchFilters carries the recognized saved-search query fields (§6
// "Saved-search filters_json") plus paging.
type SearchFilters struct {
	Text       string
	Area       string
	Schedule   string
	Experience string
	SalaryFrom *int
	SalaryTo   *int
	Currency   string
	Page       int
	PerPage    int
}

// VacancyItem is one row of a search-results page, possibly merged with
// detail-endpoint fields when filters.include_details is set.
type VacancyItem struct {
	ExternalID  string
	Title       string
	Company     string
	Location    string
	SalaryFrom  *int
	SalaryTo    *int
	Currency    string
	Description string
	URL         string
	PublishedAt *time.Time
	Experience  string
	Schedule    string
	Employment  string
	Area        string
	KeySkills   []string
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items      []VacancyItem
	Page       int
	Pages      int
	PerPage    int
	TotalFound int
}

// HHAPIError is a permanent (non-retryable) job-board failure: any 4xx
// other than 429 (§7 "permanent HTTP... raised as a domain error").
type HHAPIError struct {
	StatusCode int
	Body       string
}

func (e *HHAPIError) Error() string {
	return "job board API error"
}
