package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andreypavlenko/jobmatch/modules/ingestion"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	lastName string
	taskID   string
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, name string, args any) (string, error) {
	f.lastName = name
	return f.taskID, nil
}

type fakeSavedSearchStore struct {
	byID  map[string]*ingestion.SavedSearch
	saved *ingestion.SavedSearch
}

func (f *fakeSavedSearchStore) GetByID(ctx context.Context, id string) (*ingestion.SavedSearch, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, ingestion.ErrSavedSearchNotFound
	}
	return s, nil
}

func (f *fakeSavedSearchStore) List(ctx context.Context) ([]*ingestion.SavedSearch, error) {
	var out []*ingestion.SavedSearch
	for _, s := range f.byID {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSavedSearchStore) Update(ctx context.Context, s *ingestion.SavedSearch) error {
	f.saved = s
	return nil
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_ImportHH(t *testing.T) {
	enqueuer := &fakeEnqueuer{taskID: "task-1"}
	h := New(enqueuer, &fakeSavedSearchStore{byID: map[string]*ingestion.SavedSearch{}})

	router := setupRouter()
	h.RegisterRoutes(router.Group(""))

	body := `{"text":"golang","area":"1"}`
	req, _ := http.NewRequest(http.MethodPost, "/import/hh", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "task-1", resp["task_id"])
	require.Equal(t, "import_hh", enqueuer.lastName)
}

func TestHandler_CreateAndListSavedSearches(t *testing.T) {
	store := &fakeSavedSearchStore{byID: map[string]*ingestion.SavedSearch{}}
	h := New(&fakeEnqueuer{}, store)

	router := setupRouter()
	h.RegisterRoutes(router.Group(""))

	body := `{"text":"golang","per_page":20}`
	req, _ := http.NewRequest(http.MethodPost, "/saved-searches", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.saved)
	require.Equal(t, "golang", store.saved.Text)
}

func TestHandler_SyncSavedSearch_NotFound(t *testing.T) {
	h := New(&fakeEnqueuer{}, &fakeSavedSearchStore{byID: map[string]*ingestion.SavedSearch{}})

	router := setupRouter()
	h.RegisterRoutes(router.Group(""))

	req, _ := http.NewRequest(http.MethodPost, "/saved-searches/missing/sync", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_SyncSavedSearch_Enqueues(t *testing.T) {
	enqueuer := &fakeEnqueuer{taskID: "task-2"}
	store := &fakeSavedSearchStore{byID: map[string]*ingestion.SavedSearch{"s-1": {ID: "s-1"}}}
	h := New(enqueuer, store)

	router := setupRouter()
	h.RegisterRoutes(router.Group(""))

	req, _ := http.NewRequest(http.MethodPost, "/saved-searches/s-1/sync", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, "sync_saved_search", enqueuer.lastName)
}
