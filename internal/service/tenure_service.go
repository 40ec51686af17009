package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
)

// TenureService assigns, transfers and ends college tenure heads.
// At most one active head exists per (college, batch year).
type TenureService interface {
	Assign(ctx context.Context, caller *access.Identity, collegeID string, req *dto.AssignTenureRequest) (*dto.TenureHeadResponse, error)
	Transfer(ctx context.Context, caller *access.Identity, collegeID string, req *dto.TransferTenureRequest) (*dto.TenureHeadResponse, error)
	End(ctx context.Context, caller *access.Identity, adminID string, req *dto.EndTenureRequest) error
	History(ctx context.Context, collegeID string) ([]dto.TenureHeadResponse, error)
}

type tenureService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTenureService creates a TenureService
func NewTenureService(repo *repository.Repository, logger *zap.Logger) TenureService {
	return &tenureService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Assign ──────────────────────

func (s *tenureService) Assign(ctx context.Context, caller *access.Identity, collegeID string, req *dto.AssignTenureRequest) (*dto.TenureHeadResponse, error) {
	start := s.now()
	if req.StartDate != nil {
		d, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidStartDate
		}
		start = d
	}

	var head *model.TenureHead
	var admin *model.Admin
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		college, err := loadCollege(ctx, tx, collegeID)
		if err != nil {
			return err
		}
		admin, err = lockAdmin(ctx, tx, req.AdminID)
		if err != nil {
			return err
		}

		head, err = assignTenure(ctx, tx, caller.SubjectID, college, admin, req.BatchYear, start)
		if err != nil {
			return err
		}

		return recordAudit(ctx, tx, caller.SubjectID, model.AuditTenureAssign, "college", college.CollegeID, map[string]interface{}{
			"admin_id":   admin.AdminID,
			"batch_year": req.BatchYear,
		})
	})
	if err != nil {
		s.logFailure("assign tenure", collegeID, err)
		return nil, err
	}

	resp := toTenureHeadResponse(head, admin.FullName)
	return &resp, nil
}

// ────────────────────── Transfer ──────────────────────

// Transfer ends the current head of (college, batch year), if any, and assigns the target admin.
// The target is validated before anything is written; both writes share one transaction.
func (s *tenureService) Transfer(ctx context.Context, caller *access.Identity, collegeID string, req *dto.TransferTenureRequest) (*dto.TenureHeadResponse, error) {
	now := s.now()

	var head *model.TenureHead
	var target *model.Admin
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		college, err := loadCollege(ctx, tx, collegeID)
		if err != nil {
			return err
		}
		target, err = lockAdmin(ctx, tx, req.ToAdminID)
		if err != nil {
			return err
		}

		current, err := tx.Tenure.GetActive(ctx, college.CollegeID, req.BatchYear)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err != nil {
			current = nil
		}

		if current != nil && current.AdminID == target.AdminID {
			return ErrTransferToSameAdmin
		}
		if err := checkTenureEligible(college, target); err != nil {
			return err
		}

		details := map[string]interface{}{
			"to_admin_id": target.AdminID,
			"batch_year":  req.BatchYear,
			"reason":      req.Reason,
		}

		if current != nil {
			if err := endTenure(ctx, tx, caller.SubjectID, current, now, req.Reason); err != nil {
				return err
			}
			details["from_admin_id"] = current.AdminID
		}

		head, err = assignTenure(ctx, tx, caller.SubjectID, college, target, req.BatchYear, now)
		if err != nil {
			return err
		}

		return recordAudit(ctx, tx, caller.SubjectID, model.AuditTenureTransfer, "college", college.CollegeID, details)
	})
	if err != nil {
		s.logFailure("transfer tenure", collegeID, err)
		return nil, err
	}

	resp := toTenureHeadResponse(head, target.FullName)
	return &resp, nil
}

// ────────────────────── End ──────────────────────

func (s *tenureService) End(ctx context.Context, caller *access.Identity, adminID string, req *dto.EndTenureRequest) error {
	now := s.now()

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		admin, err := lockAdmin(ctx, tx, adminID)
		if err != nil {
			return err
		}
		if !admin.TenureIsActive {
			return ErrNoActiveTenure
		}

		head, err := tx.Tenure.GetActiveByAdmin(ctx, adminID)
		switch {
		case err == nil:
			if err := endTenure(ctx, tx, caller.SubjectID, head, now, req.Reason); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// admin columns claim a tenure the history does not have; close the columns only
			admin.EndTenure(now)
			admin.UpdatedBy = &caller.SubjectID
			if err := tx.Admin.UpdateTenure(ctx, admin); err != nil {
				return err
			}
		default:
			return err
		}

		collegeID := ""
		if admin.AssignedCollegeID != nil {
			collegeID = *admin.AssignedCollegeID
		}
		return recordAudit(ctx, tx, caller.SubjectID, model.AuditTenureEnd, "admin", adminID, map[string]interface{}{
			"college_id": collegeID,
			"reason":     req.Reason,
		})
	})
	if err != nil {
		s.logFailure("end tenure", adminID, err)
		return err
	}
	return nil
}

// ────────────────────── History ──────────────────────

func (s *tenureService) History(ctx context.Context, collegeID string) ([]dto.TenureHeadResponse, error) {
	if _, err := loadCollege(ctx, s.repo, collegeID); err != nil {
		return nil, err
	}

	heads, err := s.repo.Tenure.ListByCollege(ctx, collegeID)
	if err != nil {
		s.logger.Error("list tenure history failed", zap.String("college_id", collegeID), zap.Error(err))
		return nil, err
	}
	return tenureResponses(ctx, s.repo, heads)
}

func (s *tenureService) logFailure(op, id string, err error) {
	if isBusinessError(err) {
		return
	}
	s.logger.Error(op+" failed", zap.String("id", id), zap.Error(err))
}

// ── shared tenure steps, always called inside a transaction ──

// checkTenureEligible target admin and college preconditions
func checkTenureEligible(college *model.College, admin *model.Admin) error {
	if admin.Role != model.RoleAdmin {
		return ErrAdminCannotHoldTenure
	}
	if !admin.IsActive {
		return ErrAdminInactive
	}
	if !college.IsActive {
		return ErrCollegeInactive
	}
	if admin.TenureIsActive {
		return ErrAdminHasTenure
	}
	return nil
}

// assignTenure creates the active head record and mirrors it onto the admin
func assignTenure(ctx context.Context, tx *repository.Repository, callerID string, college *model.College, admin *model.Admin, batchYear int, start time.Time) (*model.TenureHead, error) {
	if err := checkTenureEligible(college, admin); err != nil {
		return nil, err
	}

	_, err := tx.Tenure.GetActive(ctx, college.CollegeID, batchYear)
	if err == nil {
		return nil, ErrTenureExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	head := &model.TenureHead{
		CollegeID: college.CollegeID,
		AdminID:   admin.AdminID,
		BatchYear: batchYear,
		StartDate: start,
		IsActive:  true,
	}
	head.CreatedBy = &callerID
	head.UpdatedBy = &callerID

	if err := tx.Tenure.Create(ctx, head); err != nil {
		switch {
		case repository.IsUniqueViolation(err, "uq_tenure_active_college_batch"):
			return nil, ErrTenureExists
		case repository.IsUniqueViolation(err, "uq_tenure_active_admin"):
			return nil, ErrAdminHasTenure
		}
		return nil, err
	}

	admin.AssignTenure(college.CollegeID, batchYear, start)
	admin.UpdatedBy = &callerID
	if err := tx.Admin.UpdateTenure(ctx, admin); err != nil {
		return nil, err
	}
	return head, nil
}

// endTenure deactivates head and the holder's tenure columns
func endTenure(ctx context.Context, tx *repository.Repository, callerID string, head *model.TenureHead, at time.Time, reason string) error {
	head.End(at, reason)
	head.UpdatedBy = &callerID
	if err := tx.Tenure.Update(ctx, head); err != nil {
		return err
	}

	holder, err := tx.Admin.GetForUpdate(ctx, head.AdminID)
	if err != nil {
		return err
	}
	holder.EndTenure(at)
	holder.UpdatedBy = &callerID
	return tx.Admin.UpdateTenure(ctx, holder)
}

func tenureResponses(ctx context.Context, repo *repository.Repository, heads []model.TenureHead) ([]dto.TenureHeadResponse, error) {
	ids := make([]string, 0, len(heads))
	for i := range heads {
		ids = append(ids, heads[i].AdminID)
	}
	admins, err := repo.Admin.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(admins))
	for i := range admins {
		names[admins[i].AdminID] = admins[i].FullName
	}

	result := make([]dto.TenureHeadResponse, 0, len(heads))
	for i := range heads {
		result = append(result, toTenureHeadResponse(&heads[i], names[heads[i].AdminID]))
	}
	return result, nil
}

func toTenureHeadResponse(h *model.TenureHead, adminName string) dto.TenureHeadResponse {
	return dto.TenureHeadResponse{
		ID:        h.TenureHeadID,
		CollegeID: h.CollegeID,
		AdminID:   h.AdminID,
		AdminName: adminName,
		BatchYear: h.BatchYear,
		StartDate: formatTime(h.StartDate),
		EndDate:   formatTimePtr(h.EndDate),
		IsActive:  h.IsActive,
		EndReason: h.EndReason,
	}
}
