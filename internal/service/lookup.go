package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
	pkgerrors "devs-society/backend/pkg/errors"
)

// Lookups that turn a missing row into the module's NotFound error.

func loadCollege(ctx context.Context, repo *repository.Repository, id string) (*model.College, error) {
	c, err := repo.College.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCollegeNotFound
	}
	return c, err
}

func loadAdmin(ctx context.Context, repo *repository.Repository, id string) (*model.Admin, error) {
	a, err := repo.Admin.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	return a, err
}

// lockAdmin loads the admin row locked for the rest of tx
func lockAdmin(ctx context.Context, tx *repository.Repository, id string) (*model.Admin, error) {
	a, err := tx.Admin.GetForUpdate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	return a, err
}

func loadUser(ctx context.Context, repo *repository.Repository, id string) (*model.User, error) {
	u, err := repo.User.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// lockUser loads the member row locked for the rest of tx
func lockUser(ctx context.Context, tx *repository.Repository, id string) (*model.User, error) {
	u, err := tx.User.GetForUpdate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func loadEvent(ctx context.Context, repo *repository.Repository, id string) (*model.Event, error) {
	e, err := repo.Event.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// isBusinessError reports whether err carries a business kind; those are returned without logging
func isBusinessError(err error) bool {
	var e *pkgerrors.Error
	return errors.As(err, &e)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
