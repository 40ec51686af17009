package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
)

// AuditLogService audit log queries
type AuditLogService interface {
	List(ctx context.Context, req *dto.AuditLogListRequest) ([]dto.AuditLogResponse, int64, error)
}

type auditLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditLogService creates an AuditLogService
func NewAuditLogService(repo *repository.Repository, logger *zap.Logger) AuditLogService {
	return &auditLogService{repo: repo, logger: logger}
}

func (s *auditLogService) List(ctx context.Context, req *dto.AuditLogListRequest) ([]dto.AuditLogResponse, int64, error) {
	entries, total, err := s.repo.AuditLog.List(ctx, repository.AuditLogListFilters{
		AdminID:  req.AdminID,
		Action:   req.Action,
		Resource: req.Resource,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		details := json.RawMessage(e.Details)
		if len(details) == 0 {
			details = json.RawMessage("{}")
		}
		result = append(result, dto.AuditLogResponse{
			ID:         e.AuditLogID,
			AdminID:    e.AdminID,
			Action:     e.Action,
			Resource:   e.Resource,
			ResourceID: e.ResourceID,
			Details:    details,
			CreatedAt:  formatTime(e.CreatedAt),
		})
	}
	return result, total, nil
}

// recordAudit writes an audit row through repo, which is normally the caller's transaction
func recordAudit(ctx context.Context, repo *repository.Repository, adminID, action, resource, resourceID string, details map[string]interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return repo.AuditLog.Create(ctx, &model.AuditLog{
		AdminID:    adminID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    datatypes.JSON(raw),
	})
}
