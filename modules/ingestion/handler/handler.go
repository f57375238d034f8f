// Package handler exposes component H's in-scope HTTP surface (§6):
// `POST /import/hh` and saved-search CRUD + manual sync. Every other
// ingestion concern (the actual import loop, requirement extraction,
// embedding scheduling) lives in modules/ingestion and modules/tasks; this
// package only translates HTTP <-> those two.
package handler

import (
	"context"
	"net/http"

	httpPlatform "github.com/andreypavlenko/jobmatch/internal/platform/http"
	"github.com/andreypavlenko/jobmatch/modules/ingestion"
	"github.com/andreypavlenko/jobmatch/modules/tasks"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskEnqueuer is the slice of queue.Client this handler needs.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, name string, args any) (string, error)
}

// SavedSearchStore is the slice of ingestion.SavedSearchRepository this
// handler needs for CRUD (narrowed so tests don't need a pool).
type SavedSearchStore interface {
	GetByID(ctx context.Context, id string) (*ingestion.SavedSearch, error)
	List(ctx context.Context) ([]*ingestion.SavedSearch, error)
	Update(ctx context.Context, s *ingestion.SavedSearch) error
}

// Handler implements the ingestion-facing endpoints.
type Handler struct {
	enqueuer      TaskEnqueuer
	savedSearches SavedSearchStore
}

// New creates an ingestion Handler.
func New(enqueuer TaskEnqueuer, savedSearches SavedSearchStore) *Handler {
	return &Handler{enqueuer: enqueuer, savedSearches: savedSearches}
}

// ImportRequest is the body of POST /import/hh.
type ImportRequest struct {
	Text           string `json:"text"`
	Area           string `json:"area"`
	Schedule       string `json:"schedule"`
	Experience     string `json:"experience"`
	SalaryFrom     *int   `json:"salary_from"`
	SalaryTo       *int   `json:"salary_to"`
	Currency       string `json:"currency"`
	PerPage        int    `json:"per_page"`
	StartPage      int    `json:"start_page"`
	PagesLimit     int    `json:"pages_limit"`
	IncludeDetails bool   `json:"include_details"`
}

// ImportHH godoc
// @Summary Enqueue an HH import
// @Description Run a one-off vacancy import against the external job board
// @Tags ingestion
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Import filters"
// @Success 202 {object} map[string]string
// @Router /import/hh [post]
func (h *Handler) ImportHH(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}
	if req.PagesLimit <= 0 {
		req.PagesLimit = 1
	}
	if req.PerPage <= 0 {
		req.PerPage = 20
	}

	taskID, err := h.enqueuer.Enqueue(c.Request.Context(), tasks.ImportHHTask, tasks.ImportHHArgs{
		Text: req.Text, Area: req.Area, Schedule: req.Schedule, Experience: req.Experience,
		SalaryFrom: req.SalaryFrom, SalaryTo: req.SalaryTo, Currency: req.Currency,
		PerPage: req.PerPage, StartPage: req.StartPage, PagesLimit: req.PagesLimit,
		IncludeDetails: req.IncludeDetails,
	})
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to enqueue import")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusAccepted, gin.H{"task_id": taskID})
}

// SavedSearchRequest is the body of POST/PATCH /saved-searches.
type SavedSearchRequest struct {
	Text        string         `json:"text"`
	Area        string         `json:"area"`
	Schedule    string         `json:"schedule"`
	Experience  string         `json:"experience"`
	SalaryFrom  *int           `json:"salary_from"`
	SalaryTo    *int           `json:"salary_to"`
	Currency    string         `json:"currency"`
	FiltersJSON map[string]any `json:"filters_json"`
	PerPage     int            `json:"per_page"`
	PagesLimit  int            `json:"pages_limit"`
	IsActive    *bool          `json:"is_active"`
}

// CreateSavedSearch godoc
// @Summary Create a saved search
// @Tags saved-searches
// @Accept json
// @Produce json
// @Param request body SavedSearchRequest true "Saved search"
// @Success 201 {object} ingestion.SavedSearch
// @Router /saved-searches [post]
func (h *Handler) CreateSavedSearch(c *gin.Context) {
	var req SavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	search := &ingestion.SavedSearch{
		ID:          uuid.New().String(),
		Text:        req.Text,
		Area:        req.Area,
		Schedule:    req.Schedule,
		Experience:  req.Experience,
		SalaryFrom:  req.SalaryFrom,
		SalaryTo:    req.SalaryTo,
		Currency:    req.Currency,
		FiltersJSON: req.FiltersJSON,
		PerPage:     defaultInt(req.PerPage, 20),
		PagesLimit:  defaultInt(req.PagesLimit, 1),
		IsActive:    true,
	}
	if req.IsActive != nil {
		search.IsActive = *req.IsActive
	}

	if err := h.savedSearches.Update(c.Request.Context(), search); err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save search")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusCreated, search)
}

// ListSavedSearches godoc
// @Summary List saved searches
// @Tags saved-searches
// @Produce json
// @Success 200 {array} ingestion.SavedSearch
// @Router /saved-searches [get]
func (h *Handler) ListSavedSearches(c *gin.Context) {
	searches, err := h.savedSearches.List(c.Request.Context())
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list saved searches")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, searches)
}

// UpdateSavedSearch godoc
// @Summary Update a saved search
// @Tags saved-searches
// @Accept json
// @Produce json
// @Param id path string true "Saved search ID"
// @Param request body SavedSearchRequest true "Fields to update"
// @Success 200 {object} ingestion.SavedSearch
// @Router /saved-searches/{id} [patch]
func (h *Handler) UpdateSavedSearch(c *gin.Context) {
	id := c.Param("id")
	search, err := h.savedSearches.GetByID(c.Request.Context(), id)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Saved search not found")
		return
	}

	var req SavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	applySavedSearchPatch(search, req)

	if err := h.savedSearches.Update(c.Request.Context(), search); err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update saved search")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, search)
}

// SyncSavedSearch godoc
// @Summary Trigger a manual sync of a saved search
// @Tags saved-searches
// @Produce json
// @Param id path string true "Saved search ID"
// @Success 202 {object} map[string]string
// @Router /saved-searches/{id}/sync [post]
func (h *Handler) SyncSavedSearch(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.savedSearches.GetByID(c.Request.Context(), id); err != nil {
		httpPlatform.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Saved search not found")
		return
	}

	taskID, err := h.enqueuer.Enqueue(c.Request.Context(), tasks.SyncSavedSearchTask, tasks.SyncSavedSearchArgs{SavedSearchID: id})
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to enqueue sync")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusAccepted, gin.H{"task_id": taskID})
}

// RegisterRoutes registers this handler's routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/import/hh", h.ImportHH)

	searches := router.Group("/saved-searches")
	{
		searches.POST("", h.CreateSavedSearch)
		searches.GET("", h.ListSavedSearches)
		searches.PATCH("/:id", h.UpdateSavedSearch)
		searches.POST("/:id/sync", h.SyncSavedSearch)
	}
}

func defaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func applySavedSearchPatch(s *ingestion.SavedSearch, req SavedSearchRequest) {
	if req.Text != "" {
		s.Text = req.Text
	}
	if req.Area != "" {
		s.Area = req.Area
	}
	if req.Schedule != "" {
		s.Schedule = req.Schedule
	}
	if req.Experience != "" {
		s.Experience = req.Experience
	}
	if req.SalaryFrom != nil {
		s.SalaryFrom = req.SalaryFrom
	}
	if req.SalaryTo != nil {
		s.SalaryTo = req.SalaryTo
	}
	if req.Currency != "" {
		s.Currency = req.Currency
	}
	if req.FiltersJSON != nil {
		s.FiltersJSON = req.FiltersJSON
	}
	if req.PerPage > 0 {
		s.PerPage = req.PerPage
	}
	if req.PagesLimit > 0 {
		s.PagesLimit = req.PagesLimit
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
}
