package repository

import (
	"context"
	"testing"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := &model.Profile{ResumeText: "Experienced Go developer."}

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(pgxmock.AnyArg(), p.ResumeText, p.SkillsText, p.Location, p.RemoteOK, p.RelocationOK, p.SalaryMin, p.ContactEmail).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewProfileRepository(mock)
	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Create_RejectsEmptyResumeText(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewProfileRepository(mock)
	_, err = repo.Create(context.Background(), &model.Profile{})
	require.ErrorIs(t, err, model.ErrResumeTextRequired)
}

func TestProfileRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, resume_text").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewProfileRepository(mock)
	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestProfileRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := &model.Profile{ID: "missing", ResumeText: "x"}

	mock.ExpectExec("UPDATE profiles SET").
		WithArgs(p.ID, p.ResumeText, p.SkillsText, p.Location, p.RemoteOK, p.RelocationOK, p.SalaryMin, p.ContactEmail).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewProfileRepository(mock)
	err = repo.Update(context.Background(), p)
	require.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestProfileRepository_ListSkills(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, profile_id, name_raw").
		WithArgs("profile-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "profile_id", "name_raw", "normalized_key", "category", "level",
			"years", "last_used_year", "is_primary", "evidence_text",
		}).AddRow(
			"skill-1", "profile-1", "Go", "go", nil, nil, nil, nil, true, nil,
		))

	repo := NewProfileRepository(mock)
	skills, err := repo.ListSkills(context.Background(), "profile-1")
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.Equal(t, "go", skills[0].NormalizedKey)
}

func TestProfileRepository_ReplaceSubEntities(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	for _, table := range []string{"experiences", "projects", "achievements", "educations", "certificates", "skills", "languages", "links"} {
		mock.ExpectExec("DELETE FROM " + table).
			WithArgs("profile-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	mock.ExpectExec("INSERT INTO skills").
		WithArgs(pgxmock.AnyArg(), "profile-1", "Go", "go", (*string)(nil), (*model.SkillLevel)(nil), (*float64)(nil), (*int)(nil), true, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	sub := &model.ProfileSubEntities{
		Skills: []model.Skill{{NameRaw: "Go", NormalizedKey: "go", IsPrimary: true}},
	}

	repo := NewProfileRepository(mock)
	err = repo.ReplaceSubEntities(context.Background(), "profile-1", sub)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
