package tasks

import (
	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
)

// ProfileRecommendationChain builds the "profile backfill → embed →
// recommend" workflow spec.md §2/§4.7 names, with the supplemented notify
// step appended (SPEC_FULL §10). Each step only runs once its predecessor
// reaches StateSuccess, and notify degrades to a no-op when email isn't
// configured or no strong verdict was found.
func ProfileRecommendationChain(profileID string, limit int) *queue.Chain {
	return queue.NewChain(BuildProfileEmbeddingTask, BuildProfileEmbeddingArgs{ProfileID: profileID}).
		Then(RecomputeRecommendationsTask, RecomputeRecommendationsArgs{ProfileID: profileID, Limit: limit}).
		Then(NotifyTask, NotifyArgs{ProfileID: profileID})
}
