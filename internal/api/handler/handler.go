package handler

import "devs-society/backend/internal/service"

// Handler aggregates every HTTP handler
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Admin     *AdminHandler
	College   *CollegeHandler
	Tenure    *TenureHandler
	Event     *EventHandler
	Analytics *AnalyticsHandler
	AuditLog  *AuditLogHandler
	Settings  *SettingsHandler
}

// NewHandler creates the handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User, svc.Event),
		Admin:     NewAdminHandler(svc.Admin),
		College:   NewCollegeHandler(svc.College),
		Tenure:    NewTenureHandler(svc.Tenure),
		Event:     NewEventHandler(svc.Event),
		Analytics: NewAnalyticsHandler(svc.Analytics),
		AuditLog:  NewAuditLogHandler(svc.AuditLog),
		Settings:  NewSettingsHandler(svc.Settings),
	}
}
