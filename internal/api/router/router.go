package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"devs-society/backend/config"
	"devs-society/backend/internal/access"
	"devs-society/backend/internal/api/handler"
	"devs-society/backend/internal/api/middleware"
	"devs-society/backend/internal/dto"
	"devs-society/backend/pkg/jwt"
)

// Cache token revocation and rate limiting backend. *redis.Client satisfies it;
// pass a nil interface to run without Redis.
type Cache interface {
	middleware.TokenChecker
	middleware.RateLimiter
}

// Setup builds the gin engine with every route
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, cache Cache, logger *zap.Logger) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	var (
		blacklist middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	if cache != nil {
		blacklist, limiter = cache, cache
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(middleware.DefaultBodyLimit))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.Logger(logger, "/health"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loginLimit := middleware.RateLimit(limiter, cfg.Society.RateLimitPerMinute, time.Minute)
	userAuth := middleware.UserAuth(jwtMgr, blacklist)
	adminAuth := middleware.AdminAuth(jwtMgr, blacklist)
	perm := middleware.RequirePermission

	v1 := r.Group("/api/v1")
	{
		// ── public ──
		auth := v1.Group("/auth")
		{
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/logout", userAuth, h.Auth.Logout)
		}
		v1.GET("/colleges", h.College.ListPublic)

		// ── members ──
		member := v1.Group("")
		member.Use(userAuth)
		{
			me := member.Group("/users/me")
			{
				me.GET("", h.User.GetMe)
				me.PUT("", h.User.UpdateMe)
				me.GET("/qr", h.User.MemberCard)
				me.GET("/events", h.User.MyEvents)
				me.GET("/events.ics", h.User.MyCalendar)
			}

			events := member.Group("/events")
			{
				events.GET("", h.Event.List)
				events.GET("/:id", h.Event.Get)
				events.POST("/:id/register", h.Event.Register)
				events.DELETE("/:id/register", h.Event.Unregister)
			}
		}

		// ── admins ──
		v1.POST("/admin/auth/login", loginLimit, h.Auth.AdminLogin)

		admin := v1.Group("/admin")
		admin.Use(adminAuth)
		{
			admin.POST("/auth/logout", h.Auth.Logout)
			admin.GET("/auth/me", h.Auth.AdminMe)

			users := admin.Group("/users")
			{
				users.GET("", perm(access.UsersRead), h.User.List)
				users.GET("/export", perm(access.UsersRead), h.User.Export)
				users.GET("/:id", perm(access.UsersRead), h.User.Get)
				users.PUT("/:id/status", perm(access.UsersWrite), h.User.UpdateStatus)
			}

			admins := admin.Group("/admins")
			{
				admins.POST("", perm(access.AdminsWrite), h.Admin.Create)
				admins.GET("", perm(access.AdminsRead), h.Admin.List)
				admins.GET("/:id", perm(access.AdminsRead), h.Admin.Get)
				admins.PUT("/:id", perm(access.AdminsWrite), h.Admin.Update)
				admins.DELETE("/:id", perm(access.AdminsDelete), h.Admin.Deactivate)
				admins.POST("/:id/tenure/end", perm(access.AdminsWrite, access.CollegesWrite), h.Tenure.End)
			}

			colleges := admin.Group("/colleges")
			{
				colleges.POST("", perm(access.CollegesWrite), h.College.Create)
				colleges.GET("", perm(access.CollegesRead), h.College.List)
				colleges.GET("/:id", perm(access.CollegesRead), h.College.Get)
				colleges.PUT("/:id", perm(access.CollegesWrite), h.College.Update)
				colleges.DELETE("/:id", perm(access.CollegesDelete), h.College.Delete)
				colleges.GET("/:id/tenure", perm(access.CollegesRead), h.Tenure.History)
				colleges.POST("/:id/tenure", perm(access.CollegesWrite, access.AdminsWrite), h.Tenure.Assign)
				colleges.POST("/:id/tenure/transfer", perm(access.CollegesWrite, access.AdminsWrite), h.Tenure.Transfer)
			}

			events := admin.Group("/events")
			{
				events.POST("", perm(access.EventsWrite), h.Event.Create)
				events.GET("", perm(access.EventsRead), h.Event.AdminList)
				events.GET("/:id", perm(access.EventsRead), h.Event.AdminGet)
				events.PUT("/:id", perm(access.EventsWrite), h.Event.Update)
				events.DELETE("/:id", perm(access.EventsDelete), h.Event.Delete)
				events.GET("/:id/registrations", perm(access.EventsRead), h.Event.Registrations)
				events.GET("/:id/registrations/export", perm(access.EventsRead), h.Event.ExportRegistrations)
			}

			admin.GET("/analytics/overview", perm(access.AnalyticsRead), h.Analytics.Overview)
			admin.GET("/audit-logs", perm(access.SystemAdmin), h.AuditLog.List)
			admin.GET("/settings", perm(access.SettingsRead), h.Settings.Get)
			admin.PUT("/settings", perm(access.SettingsWrite), h.Settings.Update)
		}
	}

	return r, nil
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := dto.RegisterValidations(v); err != nil {
		return fmt.Errorf("register validations: %w", err)
	}
	return nil
}
