package handler

import (
	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

// AuditLogHandler admin audit trail
type AuditLogHandler struct {
	auditSvc service.AuditLogService
}

// NewAuditLogHandler creates an AuditLogHandler
func NewAuditLogHandler(auditSvc service.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{auditSvc: auditSvc}
}

// List GET /api/v1/admin/audit-logs
func (h *AuditLogHandler) List(c *gin.Context) {
	var req dto.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	logs, total, err := h.auditSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}
