package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devs-society/backend/internal/model"
)

// AdminListFilters admin list filters
type AdminListFilters struct {
	Role      string
	CollegeID string
	IsActive  *bool
}

// AdminRepository administrator data access
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByID(ctx context.Context, id string) (*model.Admin, error)
	// GetForUpdate loads the admin with a row lock; only meaningful inside a transaction
	GetForUpdate(ctx context.Context, id string) (*model.Admin, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Admin, error)
	// UpdateProfile writes the editable account columns only
	UpdateProfile(ctx context.Context, admin *model.Admin) error
	// UpdateTenure writes the tenure mirror columns only
	UpdateTenure(ctx context.Context, admin *model.Admin) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, filters AdminListFilters, offset, limit int) ([]model.Admin, int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepo creates an AdminRepository
func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepo) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", id).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetForUpdate(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("admin_id = ?", id).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Admin, error) {
	var admins []model.Admin
	if len(ids) == 0 {
		return admins, nil
	}
	err := r.db.WithContext(ctx).
		Where("admin_id IN ?", ids).
		Find(&admins).Error
	return admins, err
}

func (r *adminRepo) UpdateProfile(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("admin_id = ?", admin.AdminID).
		Updates(map[string]interface{}{
			"full_name":  admin.FullName,
			"email":      admin.Email,
			"is_active":  admin.IsActive,
			"updated_by": admin.UpdatedBy,
			"updated_at": time.Now(),
		}).Error
}

func (r *adminRepo) UpdateTenure(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("admin_id = ?", admin.AdminID).
		Updates(map[string]interface{}{
			"assigned_college_id": admin.AssignedCollegeID,
			"tenure_batch_year":   admin.TenureBatchYear,
			"tenure_start_date":   admin.TenureStartDate,
			"tenure_end_date":     admin.TenureEndDate,
			"tenure_is_active":    admin.TenureIsActive,
			"updated_by":          admin.UpdatedBy,
			"updated_at":          time.Now(),
		}).Error
}

func (r *adminRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("admin_id = ?", id).
		UpdateColumn("last_login", at).Error
}

func (r *adminRepo) List(ctx context.Context, filters AdminListFilters, offset, limit int) ([]model.Admin, int64, error) {
	var admins []model.Admin
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Admin{})
	if filters.Role != "" {
		db = db.Where("role = ?", filters.Role)
	}
	if filters.CollegeID != "" {
		db = db.Where("assigned_college_id = ?", filters.CollegeID)
	}
	if filters.IsActive != nil {
		db = db.Where("is_active = ?", *filters.IsActive)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&admins).Error; err != nil {
		return nil, 0, err
	}

	return admins, total, nil
}

func (r *adminRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("role = ?", role).
		Count(&total).Error
	return total, err
}
