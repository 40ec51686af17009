package handler

import (
	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

// AnalyticsHandler dashboard figures
type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler
func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Overview GET /api/v1/admin/analytics/overview
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.analyticsSvc.Overview(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}
