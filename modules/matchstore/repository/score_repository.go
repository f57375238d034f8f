package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/matchstore/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ScoreRepository implements ports.ScoreRepository against pgx.
type ScoreRepository struct {
	pool pgxPool
}

// NewScoreRepository creates a repository bound to a pool.
func NewScoreRepository(pool pgxPool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

// SaveScore implements §4.5's persistence contract: one transaction
// replaces ResumeEvidence wholesale and UPSERTs VacancyScore.
func (r *ScoreRepository) SaveScore(ctx context.Context, score *model.VacancyScore, evidence []*model.ResumeEvidence) error {
	explanationJSON, err := json.Marshal(score.Explanation)
	if err != nil {
		return fmt.Errorf("marshal explanation: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin score transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM resume_evidence WHERE profile_id = $1 AND vacancy_id = $2`,
		score.ProfileID, score.VacancyID); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("delete prior resume_evidence: %w", err)
	}

	for _, ev := range evidence {
		id := ev.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO resume_evidence (id, profile_id, vacancy_id, requirement_id, evidence_text, evidence_type, confidence)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, score.ProfileID, score.VacancyID, ev.RequirementID, ev.EvidenceText, ev.EvidenceType, ev.Confidence); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("insert resume_evidence: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO vacancy_scores (profile_id, vacancy_id, layer1_score, layer2_score, final_score, verdict, explanation, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (profile_id, vacancy_id) DO UPDATE SET
			layer1_score = EXCLUDED.layer1_score,
			layer2_score = EXCLUDED.layer2_score,
			final_score = EXCLUDED.final_score,
			verdict = EXCLUDED.verdict,
			explanation = EXCLUDED.explanation,
			computed_at = now()
	`, score.ProfileID, score.VacancyID, score.Layer1Score, score.Layer2Score, score.FinalScore, score.Verdict, explanationJSON)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("upsert vacancy_score: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit score transaction: %w", err)
	}
	return nil
}

// GetScore retrieves the stored score for a pair.
func (r *ScoreRepository) GetScore(ctx context.Context, profileID, vacancyID string) (*model.VacancyScore, error) {
	query := `
		SELECT profile_id, vacancy_id, layer1_score, layer2_score, final_score, verdict, explanation, computed_at
		FROM vacancy_scores WHERE profile_id = $1 AND vacancy_id = $2
	`
	s := &model.VacancyScore{}
	var explanationRaw []byte
	err := r.pool.QueryRow(ctx, query, profileID, vacancyID).Scan(
		&s.ProfileID, &s.VacancyID, &s.Layer1Score, &s.Layer2Score, &s.FinalScore, &s.Verdict, &explanationRaw, &s.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrScoreNotFound
		}
		return nil, fmt.Errorf("get vacancy_score: %w", err)
	}
	if err := json.Unmarshal(explanationRaw, &s.Explanation); err != nil {
		return nil, fmt.Errorf("unmarshal explanation: %w", err)
	}
	return s, nil
}

// ListEvidence returns every ResumeEvidence row for a pair.
func (r *ScoreRepository) ListEvidence(ctx context.Context, profileID, vacancyID string) ([]*model.ResumeEvidence, error) {
	query := `
		SELECT id, profile_id, vacancy_id, requirement_id, evidence_text, evidence_type, confidence
		FROM resume_evidence WHERE profile_id = $1 AND vacancy_id = $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("list resume_evidence: %w", err)
	}
	defer rows.Close()

	var out []*model.ResumeEvidence
	for rows.Next() {
		ev := &model.ResumeEvidence{}
		if err := rows.Scan(&ev.ID, &ev.ProfileID, &ev.VacancyID, &ev.RequirementID, &ev.EvidenceText, &ev.EvidenceType, &ev.Confidence); err != nil {
			return nil, fmt.Errorf("scan resume_evidence: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// ListTopRecommendations joins stored scores with vacancy fields, ordered
// final_score desc, vacancy_id asc (§4.6 step 3).
func (r *ScoreRepository) ListTopRecommendations(ctx context.Context, profileID string, limit int) ([]*model.RecommendationItem, error) {
	query := `
		SELECT s.vacancy_id, v.title, v.company, s.final_score, s.verdict, s.explanation, s.computed_at
		FROM vacancy_scores s
		JOIN vacancies v ON v.id = s.vacancy_id
		WHERE s.profile_id = $1
		ORDER BY s.final_score DESC, s.vacancy_id ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var out []*model.RecommendationItem
	for rows.Next() {
		item := &model.RecommendationItem{}
		var explanationRaw []byte
		if err := rows.Scan(&item.VacancyID, &item.VacancyTitle, &item.Company, &item.FinalScore, &item.Verdict, &explanationRaw, &item.ComputedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		if err := json.Unmarshal(explanationRaw, &item.Explanation); err != nil {
			return nil, fmt.Errorf("unmarshal explanation: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
