package repository

import (
	"context"

	"gorm.io/gorm"

	"devs-society/backend/internal/model"
)

// TenureRepository college tenure-head data access
type TenureRepository interface {
	Create(ctx context.Context, head *model.TenureHead) error
	Update(ctx context.Context, head *model.TenureHead) error
	// GetActive returns the active head for (college, batch year)
	GetActive(ctx context.Context, collegeID string, batchYear int) (*model.TenureHead, error)
	GetActiveByAdmin(ctx context.Context, adminID string) (*model.TenureHead, error)
	ListByCollege(ctx context.Context, collegeID string) ([]model.TenureHead, error)
	ListActiveByCollege(ctx context.Context, collegeID string) ([]model.TenureHead, error)
	CountActiveByCollege(ctx context.Context, collegeID string) (int64, error)
}

type tenureRepo struct {
	db *gorm.DB
}

// NewTenureRepo creates a TenureRepository
func NewTenureRepo(db *gorm.DB) TenureRepository {
	return &tenureRepo{db: db}
}

func (r *tenureRepo) Create(ctx context.Context, head *model.TenureHead) error {
	return r.db.WithContext(ctx).Create(head).Error
}

func (r *tenureRepo) Update(ctx context.Context, head *model.TenureHead) error {
	return r.db.WithContext(ctx).Save(head).Error
}

func (r *tenureRepo) GetActive(ctx context.Context, collegeID string, batchYear int) (*model.TenureHead, error) {
	var head model.TenureHead
	err := r.db.WithContext(ctx).
		Where("college_id = ? AND batch_year = ? AND is_active = ?", collegeID, batchYear, true).
		First(&head).Error
	if err != nil {
		return nil, err
	}
	return &head, nil
}

func (r *tenureRepo) GetActiveByAdmin(ctx context.Context, adminID string) (*model.TenureHead, error) {
	var head model.TenureHead
	err := r.db.WithContext(ctx).
		Where("admin_id = ? AND is_active = ?", adminID, true).
		First(&head).Error
	if err != nil {
		return nil, err
	}
	return &head, nil
}

func (r *tenureRepo) ListByCollege(ctx context.Context, collegeID string) ([]model.TenureHead, error) {
	var heads []model.TenureHead
	err := r.db.WithContext(ctx).
		Where("college_id = ?", collegeID).
		Order("start_date DESC, created_at DESC").
		Find(&heads).Error
	return heads, err
}

func (r *tenureRepo) ListActiveByCollege(ctx context.Context, collegeID string) ([]model.TenureHead, error) {
	var heads []model.TenureHead
	err := r.db.WithContext(ctx).
		Where("college_id = ? AND is_active = ?", collegeID, true).
		Order("batch_year DESC").
		Find(&heads).Error
	return heads, err
}

func (r *tenureRepo) CountActiveByCollege(ctx context.Context, collegeID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.TenureHead{}).
		Where("college_id = ? AND is_active = ?", collegeID, true).
		Count(&total).Error
	return total, err
}
