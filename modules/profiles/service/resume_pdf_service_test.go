package service

import (
	"context"
	"testing"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/stretchr/testify/require"
)

type fakeResumeVersionRepo struct {
	created *model.ResumeVersion
}

func (f *fakeResumeVersionRepo) Create(ctx context.Context, v *model.ResumeVersion) (string, error) {
	f.created = v
	return v.ID, nil
}

func (f *fakeResumeVersionRepo) GetByID(ctx context.Context, versionID string) (*model.ResumeVersion, error) {
	if f.created == nil || f.created.ID != versionID {
		return nil, model.ErrResumeVersionNotFound
	}
	return f.created, nil
}

func (f *fakeResumeVersionRepo) ListByProfile(ctx context.Context, profileID string) ([]*model.ResumeVersion, error) {
	if f.created == nil {
		return nil, nil
	}
	return []*model.ResumeVersion{f.created}, nil
}

func (f *fakeResumeVersionRepo) Approve(ctx context.Context, versionID string) error {
	return nil
}

type fakeObjectStore struct {
	key  string
	body []byte
}

func (f *fakeObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	f.key = key
	f.body = body
	return nil
}

func TestResumePDFService_Import(t *testing.T) {
	repo := &fakeResumeVersionRepo{}
	store := &fakeObjectStore{}
	svc := NewResumePDFService(repo, store)
	svc.extract = func(data []byte) (string, error) { return "Senior Go Engineer, 5 years", nil }

	version, err := svc.Import(context.Background(), "profile-1", nil, []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.Equal(t, "Senior Go Engineer, 5 years", version.ContentText)
	require.Equal(t, model.VersionSourceUser, version.Source)
	require.Equal(t, model.VersionStatusDraft, version.Status)
	require.NotNil(t, repo.created)
	require.NotEmpty(t, store.key)
	require.Equal(t, []byte("%PDF-1.4 fake"), store.body)
}

func TestResumePDFService_Import_EmptyText(t *testing.T) {
	svc := NewResumePDFService(&fakeResumeVersionRepo{}, &fakeObjectStore{})
	svc.extract = func(data []byte) (string, error) { return "   ", nil }

	_, err := svc.Import(context.Background(), "profile-1", nil, []byte("whatever"))
	require.ErrorIs(t, err, model.ErrEmptyPDFText)
}

func TestResumePDFService_Import_StorageNotConfigured(t *testing.T) {
	svc := NewResumePDFService(&fakeResumeVersionRepo{}, nil)

	_, err := svc.Import(context.Background(), "profile-1", nil, []byte("whatever"))
	require.Error(t, err)
}
