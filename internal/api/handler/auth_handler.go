package handler

import (
	"github.com/gin-gonic/gin"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

// AuthHandler member and admin authentication
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register member sign-up
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.authSvc.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// Login member login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.authSvc.LoginUser(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// AdminLogin admin login by username or email
// POST /api/v1/admin/auth/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.authSvc.LoginAdmin(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the bearer token of the request. Shared by members and admins.
// POST /api/v1/auth/logout
// POST /api/v1/admin/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := MustGetIdentity(c); !ok {
		return
	}

	jti, exp := tokenMeta(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// AdminMe current admin profile
// GET /api/v1/admin/auth/me
func (h *AuthHandler) AdminMe(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.authSvc.CurrentAdmin(c.Request.Context(), caller.SubjectID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}
