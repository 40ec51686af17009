package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devs-society/backend/internal/model"
)

// UserListFilters member list filters; zero values are ignored
type UserListFilters struct {
	CollegeID string
	Role      string
	IsActive  *bool
	Keyword   string // matches full name, email or member id
}

// UserRepository member data access
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetForUpdate loads the member with a row lock; only meaningful inside a transaction
	GetForUpdate(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.User, error)
	// UpdateProfile writes the self-service profile columns only
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdateStatus(ctx context.Context, id string, active bool, updatedBy string) error
	List(ctx context.Context, filters UserListFilters, offset, limit int) ([]model.User, int64, error)
	ListAll(ctx context.Context, filters UserListFilters) ([]model.User, error)
	Count(ctx context.Context, filters UserListFilters) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a UserRepository
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetForUpdate(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Find(&users).Error
	return users, err
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"full_name":    user.FullName,
			"phone":        user.Phone,
			"college_name": user.CollegeName,
			"college_id":   user.CollegeID,
			"batch_year":   user.BatchYear,
			"updated_by":   user.UpdatedBy,
			"updated_at":   time.Now(),
		}).Error
}

func (r *userRepo) UpdateStatus(ctx context.Context, id string, active bool, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		}).Error
}

func (r *userRepo) List(ctx context.Context, filters UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.filtered(ctx, filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) ListAll(ctx context.Context, filters UserListFilters) ([]model.User, error) {
	var users []model.User
	err := r.filtered(ctx, filters).
		Order("member_id ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Count(ctx context.Context, filters UserListFilters) (int64, error) {
	var total int64
	err := r.filtered(ctx, filters).Count(&total).Error
	return total, err
}

func (r *userRepo) filtered(ctx context.Context, f UserListFilters) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.User{})
	if f.CollegeID != "" {
		db = db.Where("college_id = ?", f.CollegeID)
	}
	if f.Role != "" {
		db = db.Where("role = ?", f.Role)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		db = db.Where("(full_name ILIKE ? OR email ILIKE ? OR member_id ILIKE ?)", like, like, like)
	}
	return db
}
