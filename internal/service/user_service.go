package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
	"devs-society/backend/pkg/qrcode"
)

// UserService member profiles, and the admin-side member directory
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	MemberCard(ctx context.Context, userID string, size int) ([]byte, error)

	List(ctx context.Context, caller *access.Identity, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, caller *access.Identity, id string) (*dto.UserResponse, error)
	UpdateStatus(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateUserStatusRequest) (*dto.UserResponse, error)
	Export(ctx context.Context, caller *access.Identity, req *dto.UserListRequest) (*dto.ExportFile, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Own profile ──────────────────────

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateProfile edits the member's own profile. The college link can be set once;
// moving to another college afterwards is left to admins.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var user *model.User
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		user, err = lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return ErrAccountDisabled
		}

		if req.FullName != nil {
			user.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if req.CollegeName != nil {
			user.CollegeName = strings.TrimSpace(*req.CollegeName)
		}
		if req.CollegeID != nil && (user.CollegeID == nil || *user.CollegeID != *req.CollegeID) {
			if user.CollegeID != nil {
				return ErrCollegeLocked
			}
			college, err := loadCollege(ctx, tx, *req.CollegeID)
			if err != nil {
				return err
			}
			if !college.IsActive {
				return ErrCollegeInactive
			}
			user.CollegeID = &college.CollegeID
		}
		if req.BatchYear != nil {
			user.BatchYear = *req.BatchYear
		}
		user.UpdatedBy = &user.UserID

		return tx.User.UpdateProfile(ctx, user)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update profile failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// MemberCard PNG QR code of the member id
func (s *userService) MemberCard(ctx context.Context, userID string, size int) ([]byte, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		settings, err := currentSettings(ctx, s.repo)
		if err != nil {
			s.logger.Error("load settings failed", zap.Error(err))
			return nil, err
		}
		size = settings.MemberCardSize
	}
	png, err := qrcode.MemberCard(user.MemberID, size)
	if err != nil {
		s.logger.Error("encode member card failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return png, nil
}

// ────────────────────── Admin side ──────────────────────

func (s *userService) List(ctx context.Context, caller *access.Identity, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters, err := userFilters(caller, req)
	if err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) GetByID(ctx context.Context, caller *access.Identity, id string) (*dto.UserResponse, error) {
	user, err := loadUser(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if err := caller.CheckCollege(user.CollegeID); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateStatus(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	var user *model.User
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		user, err = lockUser(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := caller.CheckCollege(user.CollegeID); err != nil {
			return err
		}

		user.IsActive = *req.IsActive
		user.UpdatedBy = &caller.SubjectID
		return tx.User.UpdateStatus(ctx, id, user.IsActive, caller.SubjectID)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update user status failed", zap.String("user_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("member status changed",
		zap.String("user_id", id),
		zap.Bool("is_active", user.IsActive),
		zap.String("by", caller.SubjectID),
	)
	return toUserResponse(user), nil
}

// Export the filtered member directory as a spreadsheet
func (s *userService) Export(ctx context.Context, caller *access.Identity, req *dto.UserListRequest) (*dto.ExportFile, error) {
	filters, err := userFilters(caller, req)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.User.ListAll(ctx, filters)
	if err != nil {
		s.logger.Error("export users failed", zap.Error(err))
		return nil, err
	}

	headers := []string{"Member ID", "Full Name", "Email", "Phone", "College", "Batch Year", "Role", "Active", "Joined"}
	widths := []float64{18, 24, 30, 16, 30, 12, 16, 10, 20}
	rows := make([][]interface{}, 0, len(users))
	for i := range users {
		u := &users[i]
		active := "No"
		if u.IsActive {
			active = "Yes"
		}
		rows = append(rows, []interface{}{
			u.MemberID, u.FullName, u.Email, u.Phone, u.CollegeName,
			u.BatchYear, u.Role, active, u.CreatedAt.Format(dateLayout),
		})
	}

	data, err := buildSheet("Members", headers, widths, rows)
	if err != nil {
		s.logger.Error("build member sheet failed", zap.Error(err))
		return nil, err
	}
	name := fmt.Sprintf("members_%s.xlsx", s.now().Format("20060102"))
	return xlsxFile(name, data), nil
}

// userFilters pins college admins to their own college
func userFilters(caller *access.Identity, req *dto.UserListRequest) (repository.UserListFilters, error) {
	filters := repository.UserListFilters{
		CollegeID: req.CollegeID,
		Role:      req.Role,
		IsActive:  req.IsActive,
		Keyword:   strings.TrimSpace(req.Keyword),
	}

	scope, scoped, err := caller.CollegeScope()
	if err != nil {
		return filters, err
	}
	if scoped {
		if req.CollegeID != "" && req.CollegeID != scope {
			return filters, access.ErrOutOfScope
		}
		filters.CollegeID = scope
	}
	return filters, nil
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.UserID,
		FullName:    u.FullName,
		Email:       u.Email,
		Phone:       u.Phone,
		CollegeName: u.CollegeName,
		CollegeID:   u.CollegeID,
		BatchYear:   u.BatchYear,
		Role:        u.Role,
		MemberID:    u.MemberID,
		IsActive:    u.IsActive,
		CreatedAt:   formatTime(u.CreatedAt),
	}
}
