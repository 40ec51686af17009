package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devs-society/backend/config"
	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
	pkgerrors "devs-society/backend/pkg/errors"
	"devs-society/backend/pkg/jwt"
	"devs-society/backend/pkg/password"
)

// AuthService sign-up, login and logout for members and admins
type AuthService interface {
	RegisterUser(ctx context.Context, req *dto.UserRegisterRequest) (*dto.TokenResponse, error)
	LoginUser(ctx context.Context, req *dto.UserLoginRequest) (*dto.TokenResponse, error)
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the token id until exp. Without a blacklist it succeeds without revoking.
	Logout(ctx context.Context, jti string, exp time.Time) error
	CurrentAdmin(ctx context.Context, adminID string) (*dto.AdminResponse, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates an AuthService. blacklist may be nil.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
		now:       time.Now,
	}
}

// ────────────────────── Members ──────────────────────

func (s *authService) RegisterUser(ctx context.Context, req *dto.UserRegisterRequest) (*dto.TokenResponse, error) {
	settings, err := currentSettings(ctx, s.repo)
	if err != nil {
		s.logger.Error("load settings failed", zap.Error(err))
		return nil, err
	}
	if !settings.RegistrationOpen {
		return nil, ErrSignUpClosed
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, err
	}

	if req.CollegeID != nil {
		college, err := loadCollege(ctx, s.repo, *req.CollegeID)
		if err != nil {
			return nil, err
		}
		if !college.IsActive {
			return nil, ErrCollegeInactive
		}
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, pkgerrors.Validation("%s", err.Error())
		}
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.UserRoleOther
	}

	user := &model.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hash,
		CollegeName:  strings.TrimSpace(req.CollegeName),
		CollegeID:    req.CollegeID,
		BatchYear:    req.BatchYear,
		Role:         role,
		IsActive:     true,
	}

	year := s.now().In(s.cfg.Society.Location()).Year()
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		memberID, err := nextMemberID(ctx, tx, s.cfg.Society.MemberIDPrefix, year)
		if err != nil {
			return err
		}
		user.MemberID = memberID
		return tx.User.Create(ctx, user)
	})
	if err != nil {
		if repository.IsUniqueViolation(err, "uq_users_email") {
			return nil, ErrEmailTaken
		}
		s.logger.Error("create user failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("member registered", zap.String("user_id", user.UserID), zap.String("member_id", user.MemberID))
	return s.userToken(user)
}

func (s *authService) LoginUser(ctx context.Context, req *dto.UserLoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup user failed", zap.Error(err))
		return nil, err
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.userToken(user)
}

func (s *authService) userToken(user *model.User) (*dto.TokenResponse, error) {
	token, err := s.jwtMgr.GenerateUserToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("generate user token failed", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		TokenType: jwt.TypeUser,
		ExpiresIn: int(s.cfg.Auth.UserTokenTTL.Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// ────────────────────── Admins ──────────────────────

func (s *authService) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	var admin *model.Admin
	var err error
	if strings.Contains(identifier, "@") {
		admin, err = s.repo.Admin.GetByEmail(ctx, identifier)
	} else {
		admin, err = s.repo.Admin.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup admin failed", zap.Error(err))
		return nil, err
	}

	if !password.Verify(admin.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}

	now := s.now()
	if err := s.repo.Admin.UpdateLastLogin(ctx, admin.AdminID, now); err != nil {
		// login still succeeds
		s.logger.Warn("update last login failed", zap.String("admin_id", admin.AdminID), zap.Error(err))
	} else {
		admin.LastLogin = &now
	}

	perms := access.Strings(access.PermissionsFor(admin.Role))
	token, err := s.jwtMgr.GenerateAdminToken(admin.AdminID, admin.Role, perms, admin.ScopeCollegeID())
	if err != nil {
		s.logger.Error("generate admin token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		TokenType: jwt.TypeAdmin,
		ExpiresIn: int(s.cfg.Auth.AdminTokenTTL.Seconds()),
		Admin:     toAdminResponse(admin),
	}, nil
}

func (s *authService) CurrentAdmin(ctx context.Context, adminID string) (*dto.AdminResponse, error) {
	admin, err := loadAdmin(ctx, s.repo, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}
	return toAdminResponse(admin), nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, exp time.Time) error {
	if s.blacklist == nil || jti == "" {
		s.logger.Warn("token blacklist unavailable, logout without revocation")
		return nil
	}

	ttl := exp.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Warn("blacklist token failed, logout without revocation", zap.Error(err))
	}
	return nil
}
