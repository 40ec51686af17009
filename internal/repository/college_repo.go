package repository

import (
	"context"

	"gorm.io/gorm"

	"devs-society/backend/internal/model"
)

// CollegeListFilters college list filters
type CollegeListFilters struct {
	IsActive *bool
	Keyword  string
}

// CollegeRepository college data access
type CollegeRepository interface {
	Create(ctx context.Context, college *model.College) error
	GetByID(ctx context.Context, id string) (*model.College, error)
	GetByCode(ctx context.Context, code string) (*model.College, error)
	GetByName(ctx context.Context, name string) (*model.College, error)
	Update(ctx context.Context, college *model.College) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters CollegeListFilters, offset, limit int) ([]model.College, int64, error)
	ListActive(ctx context.Context) ([]model.College, error)
	Count(ctx context.Context) (int64, error)
}

type collegeRepo struct {
	db *gorm.DB
}

// NewCollegeRepo creates a CollegeRepository
func NewCollegeRepo(db *gorm.DB) CollegeRepository {
	return &collegeRepo{db: db}
}

func (r *collegeRepo) Create(ctx context.Context, college *model.College) error {
	return r.db.WithContext(ctx).Create(college).Error
}

func (r *collegeRepo) GetByID(ctx context.Context, id string) (*model.College, error) {
	var college model.College
	err := r.db.WithContext(ctx).
		Where("college_id = ?", id).
		First(&college).Error
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepo) GetByCode(ctx context.Context, code string) (*model.College, error) {
	var college model.College
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&college).Error
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepo) GetByName(ctx context.Context, name string) (*model.College, error) {
	var college model.College
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&college).Error
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepo) Update(ctx context.Context, college *model.College) error {
	return r.db.WithContext(ctx).Save(college).Error
}

func (r *collegeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("college_id = ?", id).
		Delete(&model.College{}).Error
}

func (r *collegeRepo) List(ctx context.Context, filters CollegeListFilters, offset, limit int) ([]model.College, int64, error) {
	var colleges []model.College
	var total int64

	db := r.db.WithContext(ctx).Model(&model.College{})
	if filters.IsActive != nil {
		db = db.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Keyword != "" {
		like := "%" + filters.Keyword + "%"
		db = db.Where("(name ILIKE ? OR code ILIKE ? OR location ILIKE ?)", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&colleges).Error; err != nil {
		return nil, 0, err
	}

	return colleges, total, nil
}

func (r *collegeRepo) ListActive(ctx context.Context) ([]model.College, error) {
	var colleges []model.College
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&colleges).Error
	return colleges, err
}

func (r *collegeRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.College{}).Count(&total).Error
	return total, err
}
