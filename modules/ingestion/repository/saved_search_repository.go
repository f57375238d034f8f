package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/ingestion"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SavedSearchRepository implements ingestion.SavedSearchRepository against pgx.
type SavedSearchRepository struct {
	pool pgxPool
}

// NewSavedSearchRepository creates a repository bound to a pool.
func NewSavedSearchRepository(pool pgxPool) *SavedSearchRepository {
	return &SavedSearchRepository{pool: pool}
}

// GetByID retrieves a saved search by its surrogate id.
func (r *SavedSearchRepository) GetByID(ctx context.Context, id string) (*ingestion.SavedSearch, error) {
	query := `
		SELECT id, text, area, schedule, experience, salary_from, salary_to, currency,
			filters_json, per_page, pages_limit, cursor_page, is_active,
			last_sync_at, last_seen_published_at, created_at, updated_at
		FROM saved_searches WHERE id = $1
	`
	s, err := scanSavedSearch(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ingestion.ErrSavedSearchNotFound
		}
		return nil, fmt.Errorf("get saved search: %w", err)
	}
	return s, nil
}

// ListActive returns every saved search with is_active = true, ordered so
// the beat scheduler processes the longest-idle searches first.
func (r *SavedSearchRepository) ListActive(ctx context.Context) ([]*ingestion.SavedSearch, error) {
	query := `
		SELECT id, text, area, schedule, experience, salary_from, salary_to, currency,
			filters_json, per_page, pages_limit, cursor_page, is_active,
			last_sync_at, last_seen_published_at, created_at, updated_at
		FROM saved_searches WHERE is_active = true
		ORDER BY last_sync_at ASC NULLS FIRST
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active saved searches: %w", err)
	}
	defer rows.Close()

	var out []*ingestion.SavedSearch
	for rows.Next() {
		s, err := scanSavedSearchRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// List returns every saved search regardless of is_active, newest first,
// for the §6 `GET /saved-searches` listing.
func (r *SavedSearchRepository) List(ctx context.Context) ([]*ingestion.SavedSearch, error) {
	query := `
		SELECT id, text, area, schedule, experience, salary_from, salary_to, currency,
			filters_json, per_page, pages_limit, cursor_page, is_active,
			last_sync_at, last_seen_published_at, created_at, updated_at
		FROM saved_searches ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer rows.Close()

	var out []*ingestion.SavedSearch
	for rows.Next() {
		s, err := scanSavedSearchRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update persists the cursor/watermark fields Sync mutates, plus the
// editable search criteria.
func (r *SavedSearchRepository) Update(ctx context.Context, s *ingestion.SavedSearch) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	filtersJSON, err := json.Marshal(s.FiltersJSON)
	if err != nil {
		return fmt.Errorf("marshal filters_json: %w", err)
	}

	query := `
		INSERT INTO saved_searches (
			id, text, area, schedule, experience, salary_from, salary_to, currency,
			filters_json, per_page, pages_limit, cursor_page, is_active,
			last_sync_at, last_seen_published_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now()
		)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			area = EXCLUDED.area,
			schedule = EXCLUDED.schedule,
			experience = EXCLUDED.experience,
			salary_from = EXCLUDED.salary_from,
			salary_to = EXCLUDED.salary_to,
			currency = EXCLUDED.currency,
			filters_json = EXCLUDED.filters_json,
			per_page = EXCLUDED.per_page,
			pages_limit = EXCLUDED.pages_limit,
			cursor_page = EXCLUDED.cursor_page,
			is_active = EXCLUDED.is_active,
			last_sync_at = EXCLUDED.last_sync_at,
			last_seen_published_at = EXCLUDED.last_seen_published_at,
			updated_at = now()
	`
	_, err = r.pool.Exec(ctx, query,
		s.ID, s.Text, s.Area, s.Schedule, s.Experience, s.SalaryFrom, s.SalaryTo, s.Currency,
		filtersJSON, s.PerPage, s.PagesLimit, s.CursorPage, s.IsActive,
		s.LastSyncAt, s.LastSeenPublishedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert saved search: %w", err)
	}
	return nil
}

// row is the subset of pgx.Row/pgx.Rows both Scan signatures share.
type row interface {
	Scan(dest ...any) error
}

func scanSavedSearch(r row) (*ingestion.SavedSearch, error) {
	return scanSavedSearchRow(r)
}

func scanSavedSearchRow(r row) (*ingestion.SavedSearch, error) {
	s := &ingestion.SavedSearch{}
	var filtersRaw []byte
	err := r.Scan(
		&s.ID, &s.Text, &s.Area, &s.Schedule, &s.Experience, &s.SalaryFrom, &s.SalaryTo, &s.Currency,
		&filtersRaw, &s.PerPage, &s.PagesLimit, &s.CursorPage, &s.IsActive,
		&s.LastSyncAt, &s.LastSeenPublishedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(filtersRaw) > 0 {
		if err := json.Unmarshal(filtersRaw, &s.FiltersJSON); err != nil {
			return nil, fmt.Errorf("unmarshal filters_json: %w", err)
		}
	}
	return s, nil
}
