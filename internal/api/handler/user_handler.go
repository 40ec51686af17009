package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

const (
	pngContentType      = "image/png"
	calendarContentType = "text/calendar; charset=utf-8"
)

// UserHandler member self-service and admin-side member management
type UserHandler struct {
	userSvc  service.UserService
	eventSvc service.EventService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService, eventSvc service.EventService) *UserHandler {
	return &UserHandler{userSvc: userSvc, eventSvc: eventSvc}
}

// ────────────────────── member ──────────────────────

// GetMe current member profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetProfile(c.Request.Context(), caller.SubjectID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateMe edits the member's own profile
// PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), caller.SubjectID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user)
}

// MemberCard PNG QR code of the member id; ?size= in pixels
// GET /api/v1/users/me/qr
func (h *UserHandler) MemberCard(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	size := 0
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(c, response.CodeValidation, "size must be a positive integer")
			return
		}
		size = n
	}

	png, err := h.userSvc.MemberCard(c.Request.Context(), caller.SubjectID, size)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Data(http.StatusOK, pngContentType, png)
}

// MyEvents events the member holds a live registration for
// GET /api/v1/users/me/events
func (h *UserHandler) MyEvents(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.MyEvents(c.Request.Context(), caller.SubjectID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, events)
}

// MyCalendar iCalendar feed of the member's registered events
// GET /api/v1/users/me/events.ics
func (h *UserHandler) MyCalendar(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	ics, err := h.eventSvc.MyCalendar(c.Request.Context(), caller.SubjectID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.File(c, calendarContentType, "my-events.ics", ics)
}

// ────────────────────── admin ──────────────────────

// List members, scoped to the caller's college for college admins
// GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// Get member detail
// GET /api/v1/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateStatus activates or deactivates a member
// PUT /api/v1/admin/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userSvc.UpdateStatus(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user)
}

// Export members as xlsx with the list filters
// GET /api/v1/admin/users/export
func (h *UserHandler) Export(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	file, err := h.userSvc.Export(c.Request.Context(), caller, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.File(c, file.ContentType, file.Filename, file.Data)
}
