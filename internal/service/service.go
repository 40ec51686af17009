package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"devs-society/backend/config"
	"devs-society/backend/internal/repository"
	"devs-society/backend/pkg/jwt"
)

// TokenBlacklist revokes token ids until they expire
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Service entry point aggregating every service
type Service struct {
	Auth      AuthService
	User      UserService
	Admin     AdminService
	College   CollegeService
	Tenure    TenureService
	Event     EventService
	Analytics AnalyticsService
	AuditLog  AuditLogService
	Settings  SettingsService
}

// NewService wires every service. blacklist may be nil when Redis is not configured.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	loc := cfg.Society.Location()
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:      NewUserService(repo, logger),
		Admin:     NewAdminService(repo, logger),
		College:   NewCollegeService(repo, logger),
		Tenure:    NewTenureService(repo, logger),
		Event:     NewEventService(repo, notifier, loc, logger),
		Analytics: NewAnalyticsService(repo, loc, logger),
		AuditLog:  NewAuditLogService(repo, logger),
		Settings:  NewSettingsService(repo, logger),
	}
}

// ── formatting helpers shared by the services ──

const dateLayout = "2006-01-02"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func strPtr(s string) *string {
	return &s
}
