package repository

import (
	"context"

	"gorm.io/gorm"

	"devs-society/backend/internal/model"
)

// AuditLogListFilters audit log filters
type AuditLogListFilters struct {
	AdminID  string
	Action   string
	Resource string
}

// AuditLogRepository admin audit log data access
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filters AuditLogListFilters, offset, limit int) ([]model.AuditLog, int64, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo creates an AuditLogRepository
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepo) List(ctx context.Context, filters AuditLogListFilters, offset, limit int) ([]model.AuditLog, int64, error) {
	var entries []model.AuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if filters.AdminID != "" {
		db = db.Where("admin_id = ?", filters.AdminID)
	}
	if filters.Action != "" {
		db = db.Where("action = ?", filters.Action)
	}
	if filters.Resource != "" {
		db = db.Where("resource = ?", filters.Resource)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
