package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"devs-society/backend/config"
	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/pkg/jwt"
)

type fakeBlacklist struct {
	revoked map[string]time.Duration
	err     error
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[jti] = ttl
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-unit-testing-2026",
			UserTokenTTL:  24 * time.Hour,
			AdminTokenTTL: 8 * time.Hour,
		},
		Society: config.SocietyConfig{
			Name:           "DEVS Society",
			MemberIDPrefix: "DEVS",
			Timezone:       "UTC",
		},
	}
}

func setupTestAuthService(blacklist TokenBlacklist) (*authService, *mocks, *jwt.Manager) {
	repo, m := newMocks()
	cfg := testConfig()
	mgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, mgr, blacklist, zap.NewNop()).(*authService)
	svc.now = func() time.Time { return testNow }
	return svc, m, mgr
}

func registerRequest(email string) *dto.UserRegisterRequest {
	return &dto.UserRegisterRequest{
		FullName:    "Asha Menon",
		Email:       email,
		Phone:       "+919876543210",
		Password:    "member-pass",
		CollegeName: "RIT Kottayam",
		BatchYear:   2024,
	}
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	svc, m, mgr := setupTestAuthService(nil)

	resp, err := svc.RegisterUser(context.Background(), registerRequest("Asha@Example.com"))
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if resp.User.MemberID != "DEVS-2025-0001" {
		t.Errorf("expected DEVS-2025-0001, got %s", resp.User.MemberID)
	}
	if resp.User.Email != "asha@example.com" {
		t.Errorf("expected lower-cased email, got %s", resp.User.Email)
	}
	if resp.User.Role != model.UserRoleOther {
		t.Errorf("expected default role other, got %s", resp.User.Role)
	}
	if resp.ExpiresIn != int((24 * time.Hour).Seconds()) {
		t.Errorf("unexpected expires_in %d", resp.ExpiresIn)
	}

	claims, err := mgr.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.TokenType != jwt.TypeUser || claims.SubjectID != resp.User.ID {
		t.Errorf("unexpected claims: %+v", claims)
	}

	stored := m.users.rows[resp.User.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "member-pass" {
		t.Error("password must be stored hashed")
	}

	second, err := svc.RegisterUser(context.Background(), registerRequest("second@example.com"))
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if second.User.MemberID != "DEVS-2025-0002" {
		t.Errorf("expected DEVS-2025-0002, got %s", second.User.MemberID)
	}
}

func TestAuthService_RegisterUser_EmailTaken(t *testing.T) {
	svc, _, _ := setupTestAuthService(nil)

	if _, err := svc.RegisterUser(context.Background(), registerRequest("asha@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.RegisterUser(context.Background(), registerRequest("ASHA@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestAuthService_RegisterUser_InactiveCollege(t *testing.T) {
	svc, m, _ := setupTestAuthService(nil)
	college := seedCollege(m, "OLD", false)

	req := registerRequest("asha@example.com")
	req.CollegeID = &college.CollegeID
	if _, err := svc.RegisterUser(context.Background(), req); !errors.Is(err, ErrCollegeInactive) {
		t.Fatalf("expected ErrCollegeInactive, got: %v", err)
	}
	if len(m.users.rows) != 0 {
		t.Error("no user may be created")
	}
}

func TestAuthService_RegisterUser_SignUpClosed(t *testing.T) {
	svc, m, _ := setupTestAuthService(nil)
	closed := model.DefaultSettings()
	closed.RegistrationOpen = false
	m.settings.row = closed

	if _, err := svc.RegisterUser(context.Background(), registerRequest("asha@example.com")); !errors.Is(err, ErrSignUpClosed) {
		t.Fatalf("expected ErrSignUpClosed, got: %v", err)
	}
	if len(m.users.rows) != 0 {
		t.Error("no user may be created")
	}
}

func TestAuthService_LoginUser(t *testing.T) {
	svc, m, _ := setupTestAuthService(nil)
	u := seedUser(m, "u1", nil)

	if _, err := svc.LoginUser(context.Background(), &dto.UserLoginRequest{Email: u.Email, Password: "member-pass"}); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if _, err := svc.LoginUser(context.Background(), &dto.UserLoginRequest{Email: u.Email, Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, err := svc.LoginUser(context.Background(), &dto.UserLoginRequest{Email: "nobody@mail.test", Password: "member-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}

	u.IsActive = false
	m.users.put(u)
	if _, err := svc.LoginUser(context.Background(), &dto.UserLoginRequest{Email: u.Email, Password: "member-pass"}); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("expected ErrAccountDisabled, got: %v", err)
	}
}

func TestAuthService_LoginAdmin_CollegeAdminToken(t *testing.T) {
	svc, m, mgr := setupTestAuthService(nil)
	college := seedCollege(m, "RIT", true)
	alice := seedAdmin(m, "alice", model.RoleAdmin)
	seedHead(m, college, alice, 2024)

	resp, err := svc.LoginAdmin(context.Background(), &dto.AdminLoginRequest{Identifier: "alice", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}

	claims, err := mgr.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.TokenType != jwt.TypeAdmin || claims.CollegeID != college.CollegeID {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if len(claims.Permissions) != len(access.PermissionsFor(model.RoleAdmin)) {
		t.Errorf("expected admin permission set, got %v", claims.Permissions)
	}
	if m.admins.rows[alice.AdminID].LastLogin == nil || resp.Admin.LastLogin == "" {
		t.Error("last login must be recorded")
	}
}

func TestAuthService_LoginAdmin_ByEmail(t *testing.T) {
	svc, m, mgr := setupTestAuthService(nil)
	root := seedAdmin(m, "root", model.RoleSuperAdmin)

	resp, err := svc.LoginAdmin(context.Background(), &dto.AdminLoginRequest{Identifier: root.Email, Password: "secret-pass"})
	if err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	claims, _ := mgr.ParseToken(resp.Token)
	if claims.CollegeID != "" || claims.Role != model.RoleSuperAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_LoginAdmin_Rejected(t *testing.T) {
	svc, m, _ := setupTestAuthService(nil)
	bob := seedAdmin(m, "bob", model.RoleAdmin)

	if _, err := svc.LoginAdmin(context.Background(), &dto.AdminLoginRequest{Identifier: "bob", Password: "nope-nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}

	bob.IsActive = false
	m.admins.put(bob)
	if _, err := svc.LoginAdmin(context.Background(), &dto.AdminLoginRequest{Identifier: "bob", Password: "secret-pass"}); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("expected ErrAccountDisabled, got: %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	bl := &fakeBlacklist{revoked: map[string]time.Duration{}}
	svc, _, _ := setupTestAuthService(bl)

	if err := svc.Logout(context.Background(), "jti-1", testNow.Add(time.Hour)); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
	if bl.revoked["jti-1"] != time.Hour {
		t.Errorf("expected jti revoked for the remaining hour, got %v", bl.revoked)
	}
}

func TestAuthService_Logout_Degraded(t *testing.T) {
	svc, _, _ := setupTestAuthService(nil)
	if err := svc.Logout(context.Background(), "jti-1", testNow.Add(time.Hour)); err != nil {
		t.Errorf("logout without a blacklist must succeed, got: %v", err)
	}

	failing, _, _ := setupTestAuthService(&fakeBlacklist{err: errors.New("redis down")})
	if err := failing.Logout(context.Background(), "jti-1", testNow.Add(time.Hour)); err != nil {
		t.Errorf("logout with a failing blacklist must succeed, got: %v", err)
	}
}
