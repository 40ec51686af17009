package service

import (
	"context"

	"go.uber.org/zap"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
)

// SettingsService society-wide runtime settings
type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, caller *access.Identity, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService creates a SettingsService
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := currentSettings(ctx, s.repo)
	if err != nil {
		s.logger.Error("load settings failed", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, caller *access.Identity, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	var result *model.Settings
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		settings, err := currentSettings(ctx, tx)
		if err != nil {
			return err
		}

		changes := map[string]interface{}{}
		if req.RegistrationOpen != nil && *req.RegistrationOpen != settings.RegistrationOpen {
			changes["registration_open"] = *req.RegistrationOpen
			settings.RegistrationOpen = *req.RegistrationOpen
		}
		if req.MemberCardSize != nil && *req.MemberCardSize != settings.MemberCardSize {
			changes["member_card_size"] = *req.MemberCardSize
			settings.MemberCardSize = *req.MemberCardSize
		}
		result = settings
		if len(changes) == 0 {
			return nil
		}

		settings.UpdatedBy = &caller.SubjectID
		if err := tx.Settings.Save(ctx, settings); err != nil {
			return err
		}
		return recordAudit(ctx, tx, caller.SubjectID, model.AuditSettingsUpdate, "settings", "system", changes)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update settings failed", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("settings updated",
		zap.Bool("registration_open", result.RegistrationOpen),
		zap.Int("member_card_size", result.MemberCardSize),
		zap.String("by", caller.SubjectID),
	)
	return toSettingsResponse(result), nil
}

// currentSettings reads the settings row, falling back to defaults when it was never written
func currentSettings(ctx context.Context, repo *repository.Repository) (*model.Settings, error) {
	settings, err := repo.Settings.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return model.DefaultSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

func toSettingsResponse(s *model.Settings) *dto.SettingsResponse {
	resp := &dto.SettingsResponse{
		RegistrationOpen: s.RegistrationOpen,
		MemberCardSize:   s.MemberCardSize,
		UpdatedAt:        formatTime(s.UpdatedAt),
	}
	if s.UpdatedBy != nil {
		resp.UpdatedBy = *s.UpdatedBy
	}
	return resp
}
