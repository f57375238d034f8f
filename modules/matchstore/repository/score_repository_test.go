package repository

import (
	"context"
	"testing"
	"time"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	"github.com/andreypavlenko/jobmatch/modules/matchstore/model"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestScoreRepository_SaveScore_CommitsEvidenceAndUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM resume_evidence").
		WithArgs("p-1", "v-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO resume_evidence").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO vacancy_scores").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewScoreRepository(mock)
	score := &model.VacancyScore{
		ProfileID:   "p-1",
		VacancyID:   "v-1",
		Layer1Score: 0.8,
		Layer2Score: 0.6,
		FinalScore:  0.7,
		Verdict:     matching.VerdictStrong,
		Explanation: matching.Explanation{},
	}
	reqID := "req-1"
	evidence := []*model.ResumeEvidence{
		{ProfileID: "p-1", VacancyID: "v-1", RequirementID: &reqID, EvidenceText: "Go", EvidenceType: "skill_match", Confidence: 1.0},
	}

	err = repo.SaveScore(context.Background(), score, evidence)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRepository_SaveScore_RollsBackOnUpsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM resume_evidence").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO vacancy_scores").
		WillReturnError(pgx.ErrTxClosed)
	mock.ExpectRollback()

	repo := NewScoreRepository(mock)
	score := &model.VacancyScore{ProfileID: "p-1", VacancyID: "v-1", Verdict: matching.VerdictWeak}
	err = repo.SaveScore(context.Background(), score, nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRepository_GetScore_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT profile_id, vacancy_id").
		WithArgs("p-1", "missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewScoreRepository(mock)
	_, err = repo.GetScore(context.Background(), "p-1", "missing")
	require.ErrorIs(t, err, model.ErrScoreNotFound)
}

func TestScoreRepository_GetScore_Found(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT profile_id, vacancy_id").
		WithArgs("p-1", "v-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"profile_id", "vacancy_id", "layer1_score", "layer2_score", "final_score", "verdict", "explanation", "computed_at",
		}).AddRow(
			"p-1", "v-1", 0.8, 0.6, 0.7, matching.VerdictStrong, []byte(`{}`), now,
		))

	repo := NewScoreRepository(mock)
	score, err := repo.GetScore(context.Background(), "p-1", "v-1")
	require.NoError(t, err)
	require.Equal(t, matching.VerdictStrong, score.Verdict)
	require.Equal(t, 0.7, score.FinalScore)
}

func TestScoreRepository_ListEvidence(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, profile_id, vacancy_id, requirement_id").
		WithArgs("p-1", "v-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "profile_id", "vacancy_id", "requirement_id", "evidence_text", "evidence_type", "confidence",
		}).AddRow(
			"e-1", "p-1", "v-1", (*string)(nil), "Go experience", "skill_match", 1.0,
		))

	repo := NewScoreRepository(mock)
	out, err := repo.ListEvidence(context.Background(), "p-1", "v-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Go experience", out[0].EvidenceText)
}

func TestScoreRepository_ListTopRecommendations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT s.vacancy_id, v.title, v.company").
		WithArgs("p-1", 5).
		WillReturnRows(pgxmock.NewRows([]string{
			"vacancy_id", "title", "company", "final_score", "verdict", "explanation", "computed_at",
		}).AddRow(
			"v-1", "Go Engineer", (*string)(nil), 0.9, matching.VerdictStrong, []byte(`{}`), now,
		))

	repo := NewScoreRepository(mock)
	out, err := repo.ListTopRecommendations(context.Background(), "p-1", 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Go Engineer", out[0].VacancyTitle)
}
