package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/ingestion"
)

// handleImportHH implements import_hh (§6 "POST /import/hh"): run a direct
// import against the given filters, with no saved-search cursor/watermark
// bookkeeping.
func (d *Deps) handleImportHH(ctx context.Context, raw json.RawMessage) (any, error) {
	var args ImportHHArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", ImportHHTask, err)
	}

	result, err := d.Importer.Import(ctx, ingestion.ImportOptions{
		Filters: ingestion.SearchFiltersInput{
			Text:       args.Text,
			Area:       args.Area,
			Schedule:   args.Schedule,
			Experience: args.Experience,
			SalaryFrom: args.SalaryFrom,
			SalaryTo:   args.SalaryTo,
			Currency:   args.Currency,
			PerPage:    args.PerPage,
		},
		StartPage:      args.StartPage,
		PagesLimit:     args.PagesLimit,
		IncludeDetails: args.IncludeDetails,
	})
	if err != nil {
		return nil, fmt.Errorf("import hh: %w", err)
	}

	return syncResult{
		PagesProcessed: result.PagesProcessed,
		VacanciesSeen:  result.VacanciesSeen,
		Saved:          result.Saved,
		Updated:        result.Updated,
		Errors:         result.Errors,
		StopByCutoff:   result.StopByCutoff,
	}, nil
}

// handleSyncSavedSearch implements the sync_saved_search task: resolve the
// saved search, run its sync, and return the §4.4 import-result summary.
func (d *Deps) handleSyncSavedSearch(ctx context.Context, raw json.RawMessage) (any, error) {
	var args SyncSavedSearchArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", SyncSavedSearchTask, err)
	}

	search, err := d.SavedSearches.GetByID(ctx, args.SavedSearchID)
	if err != nil {
		return nil, fmt.Errorf("load saved search %s: %w", args.SavedSearchID, err)
	}

	result, err := d.Syncer.Sync(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("sync saved search %s: %w", args.SavedSearchID, err)
	}

	return syncResult{
		PagesProcessed: result.PagesProcessed,
		VacanciesSeen:  result.VacanciesSeen,
		Saved:          result.Saved,
		Updated:        result.Updated,
		Errors:         result.Errors,
		StopByCutoff:   result.StopByCutoff,
	}, nil
}
