package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
	pkgerrors "devs-society/backend/pkg/errors"
	"devs-society/backend/pkg/password"
)

// AdminService administrator management, super-admin only
type AdminService interface {
	Create(ctx context.Context, caller *access.Identity, req *dto.CreateAdminRequest) (*dto.AdminResponse, error)
	List(ctx context.Context, req *dto.AdminListRequest) ([]dto.AdminResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.AdminResponse, error)
	Update(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	Deactivate(ctx context.Context, caller *access.Identity, id string) error
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAdminService creates an AdminService
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger, now: time.Now}
}

// Create adds an administrator. A college admin gets its first tenure in the same transaction.
func (s *adminService) Create(ctx context.Context, caller *access.Identity, req *dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	switch req.Role {
	case model.RoleAdmin:
		if req.CollegeID == nil || req.BatchYear == nil {
			return nil, ErrTenureScopeRequired
		}
	case model.RoleSuperAdmin:
		if req.CollegeID != nil || req.BatchYear != nil {
			return nil, ErrSuperAdminScoped
		}
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := checkAdminUnique(ctx, s.repo, username, email, ""); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, pkgerrors.Validation("%s", err.Error())
		}
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	admin := &model.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		IsActive:     true,
	}
	admin.CreatedBy = &caller.SubjectID
	admin.UpdatedBy = &caller.SubjectID

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Admin.Create(ctx, admin); err != nil {
			return translateAdminUnique(err)
		}

		details := map[string]interface{}{"username": admin.Username, "role": admin.Role}
		if admin.Role == model.RoleAdmin {
			college, err := loadCollege(ctx, tx, *req.CollegeID)
			if err != nil {
				return err
			}
			if _, err := assignTenure(ctx, tx, caller.SubjectID, college, admin, *req.BatchYear, s.now()); err != nil {
				return err
			}
			details["college_id"] = college.CollegeID
			details["batch_year"] = *req.BatchYear
		}

		return recordAudit(ctx, tx, caller.SubjectID, model.AuditAdminCreate, "admin", admin.AdminID, details)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("create admin failed", zap.String("username", username), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("admin created", zap.String("admin_id", admin.AdminID), zap.String("role", admin.Role))
	return toAdminResponse(admin), nil
}

func (s *adminService) List(ctx context.Context, req *dto.AdminListRequest) ([]dto.AdminResponse, int64, error) {
	admins, total, err := s.repo.Admin.List(ctx, repository.AdminListFilters{
		Role:      req.Role,
		CollegeID: req.CollegeID,
		IsActive:  req.IsActive,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list admins failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		result = append(result, *toAdminResponse(&admins[i]))
	}
	return result, total, nil
}

func (s *adminService) GetByID(ctx context.Context, id string) (*dto.AdminResponse, error) {
	admin, err := loadAdmin(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return toAdminResponse(admin), nil
}

func (s *adminService) Update(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	var admin *model.Admin
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		admin, err = lockAdmin(ctx, tx, id)
		if err != nil {
			return err
		}

		if req.IsActive != nil && !*req.IsActive && admin.IsActive {
			if err := checkDeactivatable(caller, admin); err != nil {
				return err
			}
		}

		if req.FullName != nil {
			admin.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email != admin.Email {
				if err := checkAdminUnique(ctx, tx, "", email, admin.AdminID); err != nil {
					return err
				}
				admin.Email = email
			}
		}
		if req.IsActive != nil {
			admin.IsActive = *req.IsActive
		}
		admin.UpdatedBy = &caller.SubjectID

		if err := tx.Admin.UpdateProfile(ctx, admin); err != nil {
			return translateAdminUnique(err)
		}
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update admin failed", zap.String("admin_id", id), zap.Error(err))
		}
		return nil, err
	}
	return toAdminResponse(admin), nil
}

// Deactivate disables an admin that holds no active tenure
func (s *adminService) Deactivate(ctx context.Context, caller *access.Identity, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		admin, err := lockAdmin(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := checkDeactivatable(caller, admin); err != nil {
			return err
		}
		if !admin.IsActive {
			return nil
		}

		admin.IsActive = false
		admin.UpdatedBy = &caller.SubjectID
		if err := tx.Admin.UpdateProfile(ctx, admin); err != nil {
			return err
		}
		return recordAudit(ctx, tx, caller.SubjectID, model.AuditAdminDeactivate, "admin", id, map[string]interface{}{
			"username": admin.Username,
		})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("deactivate admin failed", zap.String("admin_id", id), zap.Error(err))
		}
		return err
	}
	return nil
}

// checkAdminUnique rejects a username or email already held by an admin other than exceptID
func checkAdminUnique(ctx context.Context, repo *repository.Repository, username, email, exceptID string) error {
	if username != "" {
		existing, err := repo.Admin.GetByUsername(ctx, username)
		if err == nil && existing.AdminID != exceptID {
			return ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if email != "" {
		existing, err := repo.Admin.GetByEmail(ctx, email)
		if err == nil && existing.AdminID != exceptID {
			return ErrAdminEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func checkDeactivatable(caller *access.Identity, admin *model.Admin) error {
	if admin.AdminID == caller.SubjectID {
		return ErrCannotDeactivateSelf
	}
	if admin.TenureIsActive {
		return ErrAdminHoldsTenure
	}
	return nil
}

func translateAdminUnique(err error) error {
	switch {
	case repository.IsUniqueViolation(err, "uq_admins_username"):
		return ErrUsernameTaken
	case repository.IsUniqueViolation(err, "uq_admins_email"):
		return ErrAdminEmailTaken
	}
	return err
}

// toAdminResponse permissions are always derived from the role, never read from storage
func toAdminResponse(a *model.Admin) *dto.AdminResponse {
	resp := &dto.AdminResponse{
		ID:          a.AdminID,
		Username:    a.Username,
		Email:       a.Email,
		FullName:    a.FullName,
		Role:        a.Role,
		Permissions: access.Strings(access.PermissionsFor(a.Role)),
		LastLogin:   formatTimePtr(a.LastLogin),
		IsActive:    a.IsActive,
		CreatedAt:   formatTime(a.CreatedAt),
	}
	if a.AssignedCollegeID != nil && a.TenureBatchYear != nil {
		resp.Tenure = &dto.TenureInfoResponse{
			CollegeID: *a.AssignedCollegeID,
			BatchYear: *a.TenureBatchYear,
			StartDate: formatTimePtr(a.TenureStartDate),
			EndDate:   formatTimePtr(a.TenureEndDate),
			IsActive:  a.TenureIsActive,
		}
	}
	return resp
}
