// Package ingestion orchestrates component E (job-board client) through
// A/F/G (clean/parse/extract) into component D (entity store) with UPSERT
// semantics and saved-search cursor/watermark tracking (§4.4).
package ingestion

import (
	"errors"
	"time"
)

// ErrSavedSearchNotFound is returned when a saved search id has no row.
var ErrSavedSearchNotFound = errors.New("ingestion: saved search not found")

// SavedSearch is a stored query plus pagination cursor and watermark,
// synced on a beat schedule (§3 "SavedSearch").
type SavedSearch struct {
	ID                  string
	Text                string
	Area                string
	Schedule            string
	Experience          string
	SalaryFrom          *int
	SalaryTo            *int
	Currency            string
	FiltersJSON         map[string]any
	PerPage             int
	PagesLimit          int
	CursorPage          int
	IsActive            bool
	LastSyncAt          *time.Time
	LastSeenPublishedAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ImportResult is the contract's return shape (§4.4 "import... returns
// {pages_processed, vacancies_seen, saved, updated, errors, stop_by_cutoff}").
type ImportResult struct {
	PagesProcessed int
	VacanciesSeen  int
	Saved          int
	Updated        int
	Errors         int
	StopByCutoff   bool
	MaxPublishedAt *time.Time
}

// ImportOptions parameterizes one import call.
type ImportOptions struct {
	Filters        SearchFiltersInput
	Cutoff         *time.Time
	StartPage      int
	PagesLimit     int
	IncludeDetails bool
}

// SearchFiltersInput mirrors jobboard.SearchFilters, kept distinct so
// ingestion doesn't force every caller to import the jobboard package
// directly.
type SearchFiltersInput struct {
	Text       string
	Area       string
	Schedule   string
	Experience string
	SalaryFrom *int
	SalaryTo   *int
	Currency   string
	PerPage    int
}
