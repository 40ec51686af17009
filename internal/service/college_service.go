package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
)

// CollegeService college registry
type CollegeService interface {
	Create(ctx context.Context, caller *access.Identity, req *dto.CreateCollegeRequest) (*dto.CollegeResponse, error)
	Update(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateCollegeRequest) (*dto.CollegeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CollegeResponse, error)
	List(ctx context.Context, req *dto.CollegeListRequest) ([]dto.CollegeResponse, int64, error)
	ListPublic(ctx context.Context) ([]dto.CollegeOptionResponse, error)
	// Delete refuses while the college has active tenure heads or is targeted by events
	Delete(ctx context.Context, caller *access.Identity, id string) error
}

type collegeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCollegeService creates a CollegeService
func NewCollegeService(repo *repository.Repository, logger *zap.Logger) CollegeService {
	return &collegeService{repo: repo, logger: logger}
}

func (s *collegeService) Create(ctx context.Context, caller *access.Identity, req *dto.CreateCollegeRequest) (*dto.CollegeResponse, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if err := s.checkUnique(ctx, name, code, ""); err != nil {
		return nil, err
	}

	college := &model.College{
		Name:         name,
		Code:         code,
		Location:     strings.TrimSpace(req.Location),
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Website:      req.Website,
		IsActive:     true,
	}
	college.CreatedBy = &caller.SubjectID
	college.UpdatedBy = &caller.SubjectID

	if err := s.repo.College.Create(ctx, college); err != nil {
		if err := translateCollegeUnique(err); isBusinessError(err) {
			return nil, err
		}
		s.logger.Error("create college failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("college created", zap.String("college_id", college.CollegeID), zap.String("code", code))
	return toCollegeResponse(college, []dto.TenureHeadResponse{}), nil
}

func (s *collegeService) Update(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateCollegeRequest) (*dto.CollegeResponse, error) {
	college, err := loadCollege(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	var name, code string
	if req.Name != nil {
		if n := strings.TrimSpace(*req.Name); n != college.Name {
			name = n
		}
	}
	if req.Code != nil {
		if c := strings.ToUpper(strings.TrimSpace(*req.Code)); c != college.Code {
			code = c
		}
	}
	if err := s.checkUnique(ctx, name, code, college.CollegeID); err != nil {
		return nil, err
	}

	if name != "" {
		college.Name = name
	}
	if code != "" {
		college.Code = code
	}
	if req.Location != nil {
		college.Location = strings.TrimSpace(*req.Location)
	}
	if req.Address != nil {
		college.Address = *req.Address
	}
	if req.ContactEmail != nil {
		college.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		college.ContactPhone = *req.ContactPhone
	}
	if req.Website != nil {
		college.Website = *req.Website
	}
	if req.IsActive != nil {
		college.IsActive = *req.IsActive
	}
	college.UpdatedBy = &caller.SubjectID

	if err := s.repo.College.Update(ctx, college); err != nil {
		if err := translateCollegeUnique(err); isBusinessError(err) {
			return nil, err
		}
		s.logger.Error("update college failed", zap.String("college_id", id), zap.Error(err))
		return nil, err
	}

	return s.withHeads(ctx, college)
}

func (s *collegeService) GetByID(ctx context.Context, id string) (*dto.CollegeResponse, error) {
	college, err := loadCollege(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return s.withHeads(ctx, college)
}

func (s *collegeService) List(ctx context.Context, req *dto.CollegeListRequest) ([]dto.CollegeResponse, int64, error) {
	colleges, total, err := s.repo.College.List(ctx, repository.CollegeListFilters{
		IsActive: req.IsActive,
		Keyword:  strings.TrimSpace(req.Keyword),
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list colleges failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CollegeResponse, 0, len(colleges))
	for i := range colleges {
		result = append(result, *toCollegeResponse(&colleges[i], nil))
	}
	return result, total, nil
}

func (s *collegeService) ListPublic(ctx context.Context) ([]dto.CollegeOptionResponse, error) {
	colleges, err := s.repo.College.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active colleges failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CollegeOptionResponse, 0, len(colleges))
	for i := range colleges {
		result = append(result, dto.CollegeOptionResponse{
			ID:   colleges[i].CollegeID,
			Name: colleges[i].Name,
			Code: colleges[i].Code,
		})
	}
	return result, nil
}

func (s *collegeService) Delete(ctx context.Context, caller *access.Identity, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		college, err := loadCollege(ctx, tx, id)
		if err != nil {
			return err
		}

		active, err := tx.Tenure.CountActiveByCollege(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrCollegeHasActiveTenure
		}

		events, err := tx.Event.Count(ctx, repository.EventListFilters{TargetCollegeID: id})
		if err != nil {
			return err
		}
		if events > 0 {
			return ErrCollegeHasEvents
		}

		if err := tx.College.Delete(ctx, id); err != nil {
			return err
		}
		return recordAudit(ctx, tx, caller.SubjectID, model.AuditCollegeDelete, "college", id, map[string]interface{}{
			"name": college.Name,
			"code": college.Code,
		})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("delete college failed", zap.String("college_id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("college deleted", zap.String("college_id", id), zap.String("by", caller.SubjectID))
	return nil
}

func (s *collegeService) withHeads(ctx context.Context, college *model.College) (*dto.CollegeResponse, error) {
	heads, err := s.repo.Tenure.ListActiveByCollege(ctx, college.CollegeID)
	if err != nil {
		s.logger.Error("list current heads failed", zap.String("college_id", college.CollegeID), zap.Error(err))
		return nil, err
	}
	resp, err := tenureResponses(ctx, s.repo, heads)
	if err != nil {
		return nil, err
	}
	return toCollegeResponse(college, resp), nil
}

// checkUnique empty name or code skips that check
func (s *collegeService) checkUnique(ctx context.Context, name, code, exceptID string) error {
	if code != "" {
		existing, err := s.repo.College.GetByCode(ctx, code)
		if err == nil && existing.CollegeID != exceptID {
			return ErrCollegeCodeTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if name != "" {
		existing, err := s.repo.College.GetByName(ctx, name)
		if err == nil && existing.CollegeID != exceptID {
			return ErrCollegeNameTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func translateCollegeUnique(err error) error {
	switch {
	case repository.IsUniqueViolation(err, "uq_colleges_code"):
		return ErrCollegeCodeTaken
	case repository.IsUniqueViolation(err, "uq_colleges_name"):
		return ErrCollegeNameTaken
	}
	return err
}

func toCollegeResponse(c *model.College, heads []dto.TenureHeadResponse) *dto.CollegeResponse {
	return &dto.CollegeResponse{
		ID:           c.CollegeID,
		Name:         c.Name,
		Code:         c.Code,
		Location:     c.Location,
		Address:      c.Address,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Website:      c.Website,
		IsActive:     c.IsActive,
		CurrentHeads: heads,
		CreatedAt:    formatTime(c.CreatedAt),
	}
}
