package http

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/runfit/internal/domain/advisor"
)

// Handler wires the HTTP transport to the advisor service.
type Handler struct {
	advisorSvc advisor.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(advisorSvc advisor.Service, logger *slog.Logger) *Handler {
	return &Handler{
		advisorSvc: advisorSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Recommend filters the catalog with the submitted survey answers.
func (h *Handler) Recommend(c *gin.Context) {
	var req advisor.Request
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
	}

	resp, err := h.advisorSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err, "recommendation_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Survey lists the questions and their accepted options.
func (h *Handler) Survey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.advisorSvc.Survey()})
}

// Catalog describes the loaded snapshot.
func (h *Handler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.advisorSvc.Catalog())
}

// Health reports liveness and the snapshot being served.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"snapshot": h.advisorSvc.Catalog().Snapshot,
	})
}
