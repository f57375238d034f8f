// Package recommend implements component J: given a profile, retrieve
// candidate vacancies from the vector index, score each against the
// profile through modules/matching, and return the top-N by final score.
package recommend

import (
	"errors"

	"github.com/andreypavlenko/jobmatch/modules/matching"
)

// ErrProfileEmbeddingMissing is returned when a profile has no embedding
// yet; §4.6 requires one as a precondition.
var ErrProfileEmbeddingMissing = errors.New("recommend: profile embedding missing")

// Item is one scored candidate, ready for the §6 recommendations listing.
type Item struct {
	VacancyID string
	Score     matching.Result
}
