package handler

import (
	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

// EventHandler event management and member registration
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates an EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// ────────────────────── admin ──────────────────────

// Create POST /api/v1/admin/events
func (h *EventHandler) Create(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, event)
}

// AdminList GET /api/v1/admin/events
func (h *EventHandler) AdminList(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	events, total, err := h.eventSvc.ListForAdmin(c.Request.Context(), caller, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, events, total, req.GetPage(), req.GetPageSize())
}

// AdminGet GET /api/v1/admin/events/:id
func (h *EventHandler) AdminGet(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.GetForAdmin(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, event)
}

// Update PUT /api/v1/admin/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, event)
}

// Delete DELETE /api/v1/admin/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// Registrations GET /api/v1/admin/events/:id/registrations
func (h *EventHandler) Registrations(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	regs, err := h.eventSvc.ListRegistrations(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, regs)
}

// ExportRegistrations GET /api/v1/admin/events/:id/registrations/export
func (h *EventHandler) ExportRegistrations(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	file, err := h.eventSvc.ExportRegistrations(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.File(c, file.ContentType, file.Filename, file.Data)
}

// ────────────────────── member ──────────────────────

// List events visible to the member
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	events, total, err := h.eventSvc.ListForMember(c.Request.Context(), caller.SubjectID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, events, total, req.GetPage(), req.GetPageSize())
}

// Get GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.GetForMember(c.Request.Context(), caller.SubjectID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, event)
}

// Register POST /api/v1/events/:id/register
func (h *EventHandler) Register(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.eventSvc.Register(c.Request.Context(), caller.SubjectID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// Unregister DELETE /api/v1/events/:id/register
func (h *EventHandler) Unregister(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.eventSvc.Unregister(c.Request.Context(), caller.SubjectID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}
