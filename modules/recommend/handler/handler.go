// Package handler exposes component J's in-scope HTTP surface (§6):
// `GET /profiles/{id}/recommendations` (stored, ranked) and
// `POST /profiles/{id}/recommendations/recompute` (enqueues the task).
package handler

import (
	"context"
	"net/http"
	"strconv"

	httpPlatform "github.com/andreypavlenko/jobmatch/internal/platform/http"
	"github.com/andreypavlenko/jobmatch/modules/matchstore/model"
	"github.com/andreypavlenko/jobmatch/modules/tasks"
	"github.com/gin-gonic/gin"
)

const defaultLimit = 20

// RecommendationReader is the slice of matchstore/service.Service this
// handler needs to serve the stored listing.
type RecommendationReader interface {
	ListTopRecommendations(ctx context.Context, profileID string, limit int) ([]*model.RecommendationItem, error)
}

// TaskEnqueuer is the slice of queue.Client this handler needs.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, name string, args any) (string, error)
}

// Handler implements the recommendation-facing endpoints.
type Handler struct {
	recommendations RecommendationReader
	enqueuer        TaskEnqueuer
}

// New creates a recommendations Handler.
func New(recommendations RecommendationReader, enqueuer TaskEnqueuer) *Handler {
	return &Handler{recommendations: recommendations, enqueuer: enqueuer}
}

// List godoc
// @Summary List a profile's stored recommendations
// @Tags recommendations
// @Produce json
// @Param id path string true "Profile ID"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {array} model.RecommendationItem
// @Router /profiles/{id}/recommendations [get]
func (h *Handler) List(c *gin.Context) {
	profileID := c.Param("id")
	limit := parseLimit(c.Query("limit"))

	items, err := h.recommendations.ListTopRecommendations(c.Request.Context(), profileID, limit)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list recommendations")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, items)
}

// Recompute godoc
// @Summary Enqueue a recommendation recompute for a profile
// @Tags recommendations
// @Produce json
// @Param id path string true "Profile ID"
// @Param limit query int false "Max results (default 20)"
// @Success 202 {object} map[string]string
// @Router /profiles/{id}/recommendations/recompute [post]
func (h *Handler) Recompute(c *gin.Context) {
	profileID := c.Param("id")
	limit := parseLimit(c.Query("limit"))

	taskID, err := h.enqueuer.Enqueue(c.Request.Context(), tasks.RecomputeRecommendationsTask, tasks.RecomputeRecommendationsArgs{
		ProfileID: profileID,
		Limit:     limit,
	})
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to enqueue recompute")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusAccepted, gin.H{"task_id": taskID})
}

// RegisterRoutes registers this handler's routes under an already-scoped
// `/profiles/:id` group.
func (h *Handler) RegisterRoutes(profiles *gin.RouterGroup) {
	profiles.GET("/:id/recommendations", h.List)
	profiles.POST("/:id/recommendations/recompute", h.Recompute)
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return n
}
