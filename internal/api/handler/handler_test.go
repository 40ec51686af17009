package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/service"
	"devs-society/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidations(binding.Validator.Engine().(*validator.Validate)); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// Only the methods a test exercises are implemented; the embedded
// interface panics on anything else.
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	service.AuthService
	loginResult *dto.TokenResponse
	loginErr    error
	logoutJTI   string
	logoutExp   time.Time
	meResult    *dto.AdminResponse
	meAdminID   string
}

func (m *mockAuthService) LoginUser(_ context.Context, _ *dto.UserLoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, exp time.Time) error {
	m.logoutJTI, m.logoutExp = jti, exp
	return nil
}
func (m *mockAuthService) CurrentAdmin(_ context.Context, adminID string) (*dto.AdminResponse, error) {
	m.meAdminID = adminID
	return m.meResult, nil
}

// ── Mock UserService ──

type mockUserService struct {
	service.UserService
	cardSize   int
	exportFile *dto.ExportFile
	listCaller *access.Identity
}

func (m *mockUserService) MemberCard(_ context.Context, _ string, size int) ([]byte, error) {
	m.cardSize = size
	return []byte("\x89PNG fake"), nil
}
func (m *mockUserService) Export(_ context.Context, caller *access.Identity, _ *dto.UserListRequest) (*dto.ExportFile, error) {
	m.listCaller = caller
	return m.exportFile, nil
}
func (m *mockUserService) GetByID(_ context.Context, _ *access.Identity, _ string) (*dto.UserResponse, error) {
	return nil, access.ErrOutOfScope
}

// ── Mock EventService ──

type mockEventService struct {
	service.EventService
	registerResult *dto.RegisterEventResponse
	registerErr    error
	registeredBy   string
	registeredFor  string
	listResult     []dto.EventResponse
	listTotal      int64
	listReq        *dto.EventListRequest
}

func (m *mockEventService) Register(_ context.Context, userID, id string) (*dto.RegisterEventResponse, error) {
	m.registeredBy, m.registeredFor = userID, id
	return m.registerResult, m.registerErr
}
func (m *mockEventService) ListForMember(_ context.Context, _ string, req *dto.EventListRequest) ([]dto.EventResponse, int64, error) {
	m.listReq = req
	return m.listResult, m.listTotal, nil
}
func (m *mockEventService) MyCalendar(_ context.Context, _ string) ([]byte, error) {
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}

// ── Mock TenureService ──

type mockTenureService struct {
	service.TenureService
	endAdminID string
	endReason  string
	endErr     error
}

func (m *mockTenureService) End(_ context.Context, _ *access.Identity, adminID string, req *dto.EndTenureRequest) error {
	m.endAdminID, m.endReason = adminID, req.Reason
	return m.endErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func memberIdentity() *access.Identity {
	return access.NewUserIdentity("user-1", model.UserRoleCoreMember)
}

func superIdentity() *access.Identity {
	return access.NewAdminIdentity("admin-1", model.RoleSuperAdmin, "")
}

// withIdentity stands in for the auth middleware
func withIdentity(id *access.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIdentity, id)
		c.Set(ContextTokenJTI, "test-jti")
		c.Set(ContextTokenExp, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{loginResult: &dto.TokenResponse{Token: "tok", TokenType: "user", ExpiresIn: 3600}}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", jsonBody(dto.UserLoginRequest{
		Email:    "ada@devs.test",
		Password: "member-pass",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", jsonBody(map[string]string{"email": "not-an-email"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	details, _ := resp.Details.(map[string]interface{})
	if details["email"] == nil || details["password"] == nil {
		t.Errorf("expected email and password field errors, got %v", resp.Details)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := serve(r, http.MethodPost, "/auth/login", jsonBody(dto.UserLoginRequest{
		Email:    "ada@devs.test",
		Password: "wrong",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeUnauthorized || resp.Message != "invalid credentials" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Logout_PassesTokenMeta(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/logout", withIdentity(memberIdentity()), h.Logout)
	w := serve(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "test-jti" || mock.logoutExp.IsZero() {
		t.Errorf("token meta not forwarded: jti=%q exp=%v", mock.logoutJTI, mock.logoutExp)
	}
}

func TestAuthHandler_AdminMe_WithoutIdentity(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.GET("/admin/auth/me", h.AdminMe)
	w := serve(r, http.MethodGet, "/admin/auth/me", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_AdminMe_UsesCaller(t *testing.T) {
	mock := &mockAuthService{meResult: &dto.AdminResponse{ID: "admin-1"}}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.GET("/admin/auth/me", withIdentity(superIdentity()), h.AdminMe)
	w := serve(r, http.MethodGet, "/admin/auth/me", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.meAdminID != "admin-1" {
		t.Errorf("expected admin-1, got %q", mock.meAdminID)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_MemberCard(t *testing.T) {
	mock := &mockUserService{}
	h := NewUserHandler(mock, &mockEventService{})

	r := gin.New()
	r.GET("/users/me/qr", withIdentity(memberIdentity()), h.MemberCard)

	w := serve(r, http.MethodGet, "/users/me/qr?size=512", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != pngContentType {
		t.Errorf("expected png content type, got %q", ct)
	}
	if mock.cardSize != 512 {
		t.Errorf("expected size 512, got %d", mock.cardSize)
	}

	w = serve(r, http.MethodGet, "/users/me/qr?size=big", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad size, got %d", w.Code)
	}
}

func TestUserHandler_MyCalendar(t *testing.T) {
	h := NewUserHandler(&mockUserService{}, &mockEventService{})

	r := gin.New()
	r.GET("/users/me/events.ics", withIdentity(memberIdentity()), h.MyCalendar)
	w := serve(r, http.MethodGet, "/users/me/events.ics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != calendarContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestUserHandler_Export_WritesAttachment(t *testing.T) {
	mock := &mockUserService{exportFile: &dto.ExportFile{
		Filename:    "members.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK"),
	}}
	h := NewUserHandler(mock, &mockEventService{})

	r := gin.New()
	r.GET("/admin/users/export", withIdentity(superIdentity()), h.Export)
	w := serve(r, http.MethodGet, "/admin/users/export?is_active=true", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="members.xlsx"` {
		t.Errorf("unexpected disposition %q", cd)
	}
	if mock.listCaller == nil || mock.listCaller.SubjectID != "admin-1" {
		t.Errorf("caller not forwarded: %+v", mock.listCaller)
	}
}

func TestUserHandler_Get_OutOfScope(t *testing.T) {
	h := NewUserHandler(&mockUserService{}, &mockEventService{})

	r := gin.New()
	r.GET("/admin/users/:id", withIdentity(access.NewAdminIdentity("admin-2", model.RoleAdmin, "college-1")), h.Get)
	w := serve(r, http.MethodGet, "/admin/users/user-9", nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeForbidden {
		t.Errorf("expected code %d, got %d", response.CodeForbidden, resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_Register_Success(t *testing.T) {
	mock := &mockEventService{registerResult: &dto.RegisterEventResponse{
		Registration: dto.RegistrationResponse{EventID: "event-1", Status: model.RegistrationWaitlisted},
	}}
	h := NewEventHandler(mock)

	r := gin.New()
	r.POST("/events/:id/register", withIdentity(memberIdentity()), h.Register)
	w := serve(r, http.MethodPost, "/events/event-1/register", nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if mock.registeredBy != "user-1" || mock.registeredFor != "event-1" {
		t.Errorf("unexpected call: user=%q event=%q", mock.registeredBy, mock.registeredFor)
	}
}

func TestEventHandler_Register_ErrorKinds(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		code    int
		message string
	}{
		{service.ErrDeadlinePassed, http.StatusUnprocessableEntity, response.CodeRegistration, "deadline passed"},
		{service.ErrAlreadyRegistered, http.StatusUnprocessableEntity, response.CodeRegistration, "already registered"},
		{service.ErrEventNotVisible, http.StatusForbidden, response.CodeForbidden, "event is restricted to another college"},
		{service.ErrEventNotFound, http.StatusNotFound, response.CodeNotFound, "event not found"},
		{service.ErrEventBusy, http.StatusConflict, response.CodeConflict, "event was modified concurrently, please retry"},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			h := NewEventHandler(&mockEventService{registerErr: tc.err})
			r := gin.New()
			r.POST("/events/:id/register", withIdentity(memberIdentity()), h.Register)
			w := serve(r, http.MethodPost, "/events/event-1/register", nil)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tc.code || resp.Message != tc.message {
				t.Errorf("unexpected body: %+v", resp)
			}
		})
	}
}

func TestEventHandler_List_Paginates(t *testing.T) {
	mock := &mockEventService{
		listResult: []dto.EventResponse{{ID: "event-1"}},
		listTotal:  21,
	}
	h := NewEventHandler(mock)

	r := gin.New()
	r.GET("/events", withIdentity(memberIdentity()), h.List)
	w := serve(r, http.MethodGet, "/events?page=2&page_size=10&upcoming=true", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listReq == nil || mock.listReq.GetPage() != 2 || !mock.listReq.Upcoming {
		t.Errorf("query not bound: %+v", mock.listReq)
	}

	var body struct {
		Data response.PageData `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Data.Pagination.Total != 21 || body.Data.Pagination.TotalPages != 3 {
		t.Errorf("unexpected pagination: %+v", body.Data.Pagination)
	}
}

func TestEventHandler_List_BadQuery(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	r := gin.New()
	r.GET("/events", withIdentity(memberIdentity()), h.List)
	w := serve(r, http.MethodGet, "/events?event_type=private", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TenureHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTenureHandler_End_OptionalBody(t *testing.T) {
	mock := &mockTenureService{}
	h := NewTenureHandler(mock)

	r := gin.New()
	r.POST("/admins/:id/tenure/end", withIdentity(superIdentity()), h.End)

	w := serve(r, http.MethodPost, "/admins/admin-7/tenure/end", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without body, got %d", w.Code)
	}
	if mock.endAdminID != "admin-7" {
		t.Errorf("expected admin-7, got %q", mock.endAdminID)
	}

	w = serve(r, http.MethodPost, "/admins/admin-7/tenure/end", jsonBody(dto.EndTenureRequest{Reason: "graduated"}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with body, got %d", w.Code)
	}
	if mock.endReason != "graduated" {
		t.Errorf("expected reason to be bound, got %q", mock.endReason)
	}
}

func TestTenureHandler_End_NoActiveTenure(t *testing.T) {
	h := NewTenureHandler(&mockTenureService{endErr: service.ErrNoActiveTenure})

	r := gin.New()
	r.POST("/admins/:id/tenure/end", withIdentity(superIdentity()), h.End)
	w := serve(r, http.MethodPost, "/admins/admin-7/tenure/end", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != response.CodeInvalidState {
		t.Errorf("expected code %d, got %d", response.CodeInvalidState, resp.Code)
	}
}
