package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"devs-society/backend/config"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
	pkgerrors "devs-society/backend/pkg/errors"
	"devs-society/backend/pkg/password"
)

// EnsureSuperAdmin creates the bootstrap super-admin unless an admin with the
// configured username or email already exists. Reports whether one was created.
func EnsureSuperAdmin(ctx context.Context, repo *repository.Repository, boot config.BootstrapConfig, logger *zap.Logger) (bool, error) {
	username := strings.TrimSpace(boot.SuperAdminUsername)
	email := strings.ToLower(strings.TrimSpace(boot.SuperAdminEmail))
	if username == "" || email == "" || boot.SuperAdminPassword == "" {
		return false, pkgerrors.Validation("bootstrap super-admin username, email and password are required")
	}

	if _, err := repo.Admin.GetByUsername(ctx, username); err == nil {
		logger.Info("bootstrap super-admin already exists", zap.String("username", username))
		return false, nil
	} else if !isNotFound(err) {
		return false, err
	}
	if _, err := repo.Admin.GetByEmail(ctx, email); err == nil {
		logger.Info("bootstrap email already used by an admin", zap.String("email", email))
		return false, nil
	} else if !isNotFound(err) {
		return false, err
	}

	hash, err := password.Hash(boot.SuperAdminPassword)
	if err != nil {
		return false, err
	}

	fullName := strings.TrimSpace(boot.SuperAdminFullName)
	if fullName == "" {
		fullName = "Super Admin"
	}
	admin := &model.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := repo.Admin.Create(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err, "") {
			// created concurrently by another seed run
			return false, nil
		}
		return false, err
	}

	logger.Info("bootstrap super-admin created",
		zap.String("admin_id", admin.AdminID),
		zap.String("username", username),
	)
	return true, nil
}
