// Package handler exposes component L's in-scope HTTP surface (§6):
// `GET /profiles/{profile_id}/vacancies/{vacancy_id}/tailoring`.
package handler

import (
	"context"
	"net/http"

	httpPlatform "github.com/andreypavlenko/jobmatch/internal/platform/http"
	"github.com/andreypavlenko/jobmatch/modules/tailoring"
	"github.com/gin-gonic/gin"
)

// BundleBuilder is the slice of tailoring.Service this handler needs.
type BundleBuilder interface {
	GetBundle(ctx context.Context, profileID, vacancyID string) (*tailoring.Bundle, error)
}

// Handler implements the tailoring-facing endpoint.
type Handler struct {
	bundles BundleBuilder
}

// New creates a tailoring Handler.
func New(bundles BundleBuilder) *Handler {
	return &Handler{bundles: bundles}
}

// Get godoc
// @Summary Get the tailoring bundle for a (profile, vacancy) pair
// @Tags tailoring
// @Produce json
// @Param profile_id path string true "Profile ID"
// @Param vacancy_id path string true "Vacancy ID"
// @Success 200 {object} tailoring.Bundle
// @Router /profiles/{profile_id}/vacancies/{vacancy_id}/tailoring [get]
func (h *Handler) Get(c *gin.Context) {
	profileID := c.Param("profile_id")
	vacancyID := c.Param("vacancy_id")

	bundle, err := h.bundles.GetBundle(c.Request.Context(), profileID, vacancyID)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Unable to build tailoring bundle")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, bundle)
}

// RegisterRoutes registers this handler's routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profiles/:profile_id/vacancies/:vacancy_id/tailoring", h.Get)
}
