// Package handler exposes the task-polling endpoint §6 names:
// `GET /tasks/{task_id}`, reading straight from the task result store.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	httpPlatform "github.com/andreypavlenko/jobmatch/internal/platform/http"
	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	"github.com/gin-gonic/gin"
)

// ResultReader is the slice of queue.Client this handler needs.
type ResultReader interface {
	AsyncResult(ctx context.Context, taskID string) (*queue.Result, error)
}

// Handler implements the task-polling endpoint.
type Handler struct {
	results ResultReader
}

// New creates a task-polling Handler.
func New(results ResultReader) *Handler {
	return &Handler{results: results}
}

// statusResponse is the §6 `{task_id, state, result?, error?}` shape.
type statusResponse struct {
	TaskID string          `json:"task_id"`
	State  queue.State     `json:"state"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Get godoc
// @Summary Poll a task's current state
// @Tags tasks
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} statusResponse
// @Failure 404 {object} httpPlatform.ErrorResponse
// @Router /tasks/{task_id} [get]
func (h *Handler) Get(c *gin.Context) {
	taskID := c.Param("task_id")

	result, err := h.results.AsyncResult(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, queue.ErrTaskNotFound) {
			httpPlatform.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
			return
		}
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read task state")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, statusResponse{
		TaskID: result.TaskID,
		State:  result.State,
		Result: result.Result,
		Error:  result.Error,
	})
}

// RegisterRoutes registers this handler's routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tasks/:task_id", h.Get)
}
