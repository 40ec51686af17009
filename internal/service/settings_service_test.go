package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
)

func setupTestSettingsService() (SettingsService, *mocks) {
	repo, m := newMocks()
	return NewSettingsService(repo, zap.NewNop()), m
}

func TestSettingsService_Get_DefaultsWhenUnset(t *testing.T) {
	svc, _ := setupTestSettingsService()

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if !got.RegistrationOpen || got.MemberCardSize != model.DefaultMemberCardSize {
		t.Errorf("unexpected defaults: %+v", got)
	}
}

func TestSettingsService_Update(t *testing.T) {
	svc, m := setupTestSettingsService()
	root := seedAdmin(m, "root", model.RoleSuperAdmin)

	got, err := svc.Update(context.Background(), superIdentity(root), &dto.UpdateSettingsRequest{
		RegistrationOpen: boolp(false),
	})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if got.RegistrationOpen || got.MemberCardSize != model.DefaultMemberCardSize {
		t.Errorf("unexpected response: %+v", got)
	}
	if got.UpdatedBy != root.AdminID {
		t.Errorf("expected updated_by %s, got %q", root.AdminID, got.UpdatedBy)
	}
	if m.settings.row == nil || m.settings.row.RegistrationOpen {
		t.Fatalf("settings row not saved: %+v", m.settings.row)
	}

	actions := m.audits.actions()
	if len(actions) != 1 || actions[0] != model.AuditSettingsUpdate {
		t.Errorf("expected one settings audit, got %v", actions)
	}
}

func TestSettingsService_Update_NoChangeWritesNothing(t *testing.T) {
	svc, m := setupTestSettingsService()
	root := seedAdmin(m, "root", model.RoleSuperAdmin)

	_, err := svc.Update(context.Background(), superIdentity(root), &dto.UpdateSettingsRequest{
		RegistrationOpen: boolp(true),
		MemberCardSize:   intp(model.DefaultMemberCardSize),
	})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if m.settings.row != nil {
		t.Error("unchanged settings must not be written")
	}
	if len(m.audits.entries) != 0 {
		t.Error("unchanged settings must not be audited")
	}
}
