package handler

import (
	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

// TenureHandler tenure-head assignment endpoints
type TenureHandler struct {
	tenureSvc service.TenureService
}

// NewTenureHandler creates a TenureHandler
func NewTenureHandler(tenureSvc service.TenureService) *TenureHandler {
	return &TenureHandler{tenureSvc: tenureSvc}
}

// Assign POST /api/v1/admin/colleges/:id/tenure
func (h *TenureHandler) Assign(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.AssignTenureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	head, err := h.tenureSvc.Assign(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, head)
}

// Transfer POST /api/v1/admin/colleges/:id/tenure/transfer
func (h *TenureHandler) Transfer(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.TransferTenureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	head, err := h.tenureSvc.Transfer(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, head)
}

// End POST /api/v1/admin/admins/:id/tenure/end
func (h *TenureHandler) End(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.EndTenureRequest
	// body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	if err := h.tenureSvc.End(c.Request.Context(), caller, c.Param("id"), &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// History GET /api/v1/admin/colleges/:id/tenure
func (h *TenureHandler) History(c *gin.Context) {
	heads, err := h.tenureSvc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, heads)
}
