package tasks

import (
	"context"
	"encoding/json"
	"fmt"
)

// handleRecomputeRecommendations implements recompute_recommendations
// (§4.6): run the recommendation driver and return the ranked items as the
// task result, so notify (and §6's task-polling endpoint) can read them
// back without a second scoring pass.
func (d *Deps) handleRecomputeRecommendations(ctx context.Context, raw json.RawMessage) (any, error) {
	var args RecomputeRecommendationsArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", RecomputeRecommendationsTask, err)
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	items, err := d.Recomputer.Recompute(ctx, args.ProfileID, limit)
	if err != nil {
		return nil, fmt.Errorf("recompute recommendations for %s: %w", args.ProfileID, err)
	}

	out := recomputeResult{ProfileID: args.ProfileID, Items: make([]recomputeItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, recomputeItem{
			VacancyID:  it.VacancyID,
			FinalScore: it.Score.FinalScore,
			Verdict:    string(it.Score.Verdict),
		})
	}
	out.ComputedAt = d.now()
	return out, nil
}
