package handler

import (
	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

// CollegeHandler college management
type CollegeHandler struct {
	collegeSvc service.CollegeService
}

// NewCollegeHandler creates a CollegeHandler
func NewCollegeHandler(collegeSvc service.CollegeService) *CollegeHandler {
	return &CollegeHandler{collegeSvc: collegeSvc}
}

// ListPublic active colleges for the sign-up form
// GET /api/v1/colleges
func (h *CollegeHandler) ListPublic(c *gin.Context) {
	colleges, err := h.collegeSvc.ListPublic(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, colleges)
}

// Create college
// POST /api/v1/admin/colleges
func (h *CollegeHandler) Create(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	college, err := h.collegeSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, college)
}

// List colleges
// GET /api/v1/admin/colleges
func (h *CollegeHandler) List(c *gin.Context) {
	var req dto.CollegeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	colleges, total, err := h.collegeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, colleges, total, req.GetPage(), req.GetPageSize())
}

// Get college with its current heads
// GET /api/v1/admin/colleges/:id
func (h *CollegeHandler) Get(c *gin.Context) {
	college, err := h.collegeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, college)
}

// Update college
// PUT /api/v1/admin/colleges/:id
func (h *CollegeHandler) Update(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	college, err := h.collegeSvc.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, college)
}

// Delete college
// DELETE /api/v1/admin/colleges/:id
func (h *CollegeHandler) Delete(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.collegeSvc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}
