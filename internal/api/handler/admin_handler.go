package handler

import (
	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

// AdminHandler admin account management
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// Create admin account; role=admin also assigns the tenure
// POST /api/v1/admin/admins
func (h *AdminHandler) Create(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	admin, err := h.adminSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, admin)
}

// List admins
// GET /api/v1/admin/admins
func (h *AdminHandler) List(c *gin.Context) {
	var req dto.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	admins, total, err := h.adminSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, admins, total, req.GetPage(), req.GetPageSize())
}

// Get admin detail
// GET /api/v1/admin/admins/:id
func (h *AdminHandler) Get(c *gin.Context) {
	admin, err := h.adminSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, admin)
}

// Update admin
// PUT /api/v1/admin/admins/:id
func (h *AdminHandler) Update(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	admin, err := h.adminSvc.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, admin)
}

// Deactivate admin
// DELETE /api/v1/admin/admins/:id
func (h *AdminHandler) Deactivate(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.adminSvc.Deactivate(c.Request.Context(), caller, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}
