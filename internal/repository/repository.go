package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository entry point aggregating every repository
type Repository struct {
	db *gorm.DB

	User           UserRepository
	Admin          AdminRepository
	College        CollegeRepository
	Tenure         TenureRepository
	Event          EventRepository
	Registration   RegistrationRepository
	MemberSequence MemberSequenceRepository
	AuditLog       AuditLogRepository
	Settings       SettingsRepository
}

// NewRepository creates the aggregate bound to db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		User:           NewUserRepo(db),
		Admin:          NewAdminRepo(db),
		College:        NewCollegeRepo(db),
		Tenure:         NewTenureRepo(db),
		Event:          NewEventRepo(db),
		Registration:   NewRegistrationRepo(db),
		MemberSequence: NewMemberSequenceRepo(db),
		AuditLog:       NewAuditLogRepo(db),
		Settings:       NewSettingsRepo(db),
	}
}

// Transaction runs fn with every repository bound to one database transaction.
// Returning an error from fn rolls back. An aggregate assembled without a db
// (unit tests with in-memory repositories) runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
