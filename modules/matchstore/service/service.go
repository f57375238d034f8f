// Package service wires the pure matching engine (modules/matching) to
// persistence (modules/matchstore/ports), turning a (profile, vacancy)
// pair into a saved VacancyScore + ResumeEvidence set (§4.5's contract as
// a whole).
package service

import (
	"context"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	"github.com/andreypavlenko/jobmatch/modules/matchstore/model"
	"github.com/andreypavlenko/jobmatch/modules/matchstore/ports"
	"github.com/google/uuid"
)

// Service scores and persists matches.
type Service struct {
	scores ports.ScoreRepository
}

// New creates a matching Service.
func New(scores ports.ScoreRepository) *Service {
	return &Service{scores: scores}
}

// ScoreAndSave runs the matching engine over in, then persists the result
// under (profileID, vacancyID).
func (s *Service) ScoreAndSave(ctx context.Context, profileID, vacancyID string, in matching.Input) (*matching.Result, error) {
	result := matching.Score(in)

	evidence := make([]*model.ResumeEvidence, 0, len(result.Evidence))
	for _, e := range result.Evidence {
		reqID := e.RequirementID
		evidence = append(evidence, &model.ResumeEvidence{
			ID:            uuid.New().String(),
			ProfileID:     profileID,
			VacancyID:     vacancyID,
			RequirementID: &reqID,
			EvidenceText:  e.SnippetText,
			EvidenceType:  "skill_match",
			Confidence:    e.Confidence,
		})
	}

	score := &model.VacancyScore{
		ProfileID:   profileID,
		VacancyID:   vacancyID,
		Layer1Score: result.Layer1Score,
		Layer2Score: result.Layer2Score,
		FinalScore:  result.FinalScore,
		Verdict:     result.Verdict,
		Explanation: result.Explanation,
	}

	if err := s.scores.SaveScore(ctx, score, evidence); err != nil {
		return nil, fmt.Errorf("save vacancy score: %w", err)
	}
	return &result, nil
}

// GetOrCompute returns the stored score for (profileID, vacancyID),
// computing and saving it on the fly when absent (§6
// "GET .../tailoring ... compute on demand if absent").
func (s *Service) GetOrCompute(ctx context.Context, profileID, vacancyID string, buildInput func() (matching.Input, error)) (*model.VacancyScore, []*model.ResumeEvidence, error) {
	existing, err := s.scores.GetScore(ctx, profileID, vacancyID)
	if err == nil {
		evidence, err := s.scores.ListEvidence(ctx, profileID, vacancyID)
		if err != nil {
			return nil, nil, fmt.Errorf("list evidence: %w", err)
		}
		return existing, evidence, nil
	}
	if err != model.ErrScoreNotFound {
		return nil, nil, fmt.Errorf("get vacancy score: %w", err)
	}

	in, err := buildInput()
	if err != nil {
		return nil, nil, fmt.Errorf("build matching input: %w", err)
	}
	if _, err := s.ScoreAndSave(ctx, profileID, vacancyID, in); err != nil {
		return nil, nil, err
	}

	score, err := s.scores.GetScore(ctx, profileID, vacancyID)
	if err != nil {
		return nil, nil, fmt.Errorf("reload vacancy score: %w", err)
	}
	evidence, err := s.scores.ListEvidence(ctx, profileID, vacancyID)
	if err != nil {
		return nil, nil, fmt.Errorf("list evidence: %w", err)
	}
	return score, evidence, nil
}

// ListTopRecommendations is a thin passthrough to the repository, kept on
// Service so callers only depend on one matchstore entrypoint.
func (s *Service) ListTopRecommendations(ctx context.Context, profileID string, limit int) ([]*model.RecommendationItem, error) {
	return s.scores.ListTopRecommendations(ctx, profileID, limit)
}
