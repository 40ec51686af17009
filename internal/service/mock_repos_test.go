package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
	pkgerrors "devs-society/backend/pkg/errors"
)

// mocks in-memory repositories behind one aggregate. Rows are stored and returned
// as copies so a service only changes state through Create/Update.
type mocks struct {
	users    *mockUserRepo
	admins   *mockAdminRepo
	colleges *mockCollegeRepo
	tenures  *mockTenureRepo
	events   *mockEventRepo
	regs     *mockRegistrationRepo
	seqs     *mockMemberSequenceRepo
	audits   *mockAuditLogRepo
	settings *mockSettingsRepo
}

func newMocks() (*repository.Repository, *mocks) {
	m := &mocks{
		users:    &mockUserRepo{rows: make(map[string]model.User)},
		admins:   &mockAdminRepo{rows: make(map[string]model.Admin)},
		colleges: &mockCollegeRepo{rows: make(map[string]model.College)},
		tenures:  &mockTenureRepo{rows: make(map[string]model.TenureHead)},
		events:   &mockEventRepo{rows: make(map[string]model.Event)},
		seqs:     &mockMemberSequenceRepo{values: make(map[string]int)},
		audits:   &mockAuditLogRepo{},
		settings: &mockSettingsRepo{},
	}
	m.regs = &mockRegistrationRepo{rows: make(map[string]model.Registration), events: m.events}

	repo := &repository.Repository{
		User:           m.users,
		Admin:          m.admins,
		College:        m.colleges,
		Tenure:         m.tenures,
		Event:          m.events,
		Registration:   m.regs,
		MemberSequence: m.seqs,
		AuditLog:       m.audits,
		Settings:       m.settings,
	}
	return repo, m
}

func page[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	rows map[string]model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.rows[user.UserID] = *user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.rows[id]; ok {
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetForUpdate(ctx context.Context, id string) (*model.User, error) {
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.rows[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

// put stores user as is; seeding only
func (m *mockUserRepo) put(user *model.User) {
	m.rows[user.UserID] = *user
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	row, ok := m.rows[user.UserID]
	if !ok {
		return nil
	}
	row.FullName = user.FullName
	row.Phone = user.Phone
	row.CollegeName = user.CollegeName
	row.CollegeID = user.CollegeID
	row.BatchYear = user.BatchYear
	row.UpdatedBy = user.UpdatedBy
	m.rows[user.UserID] = row
	return nil
}

func (m *mockUserRepo) UpdateStatus(_ context.Context, id string, active bool, updatedBy string) error {
	row, ok := m.rows[id]
	if !ok {
		return nil
	}
	row.IsActive = active
	row.UpdatedBy = &updatedBy
	m.rows[id] = row
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, f repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	all, _ := m.ListAll(ctx, f)
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockUserRepo) ListAll(_ context.Context, f repository.UserListFilters) ([]model.User, error) {
	var result []model.User
	for _, u := range m.rows {
		if f.CollegeID != "" && !u.InCollege(f.CollegeID) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		if f.Keyword != "" && !strings.Contains(strings.ToLower(u.FullName+" "+u.Email+" "+u.MemberID), strings.ToLower(f.Keyword)) {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MemberID < result[j].MemberID })
	return result, nil
}

func (m *mockUserRepo) Count(ctx context.Context, f repository.UserListFilters) (int64, error) {
	all, _ := m.ListAll(ctx, f)
	return int64(len(all)), nil
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	rows map[string]model.Admin
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	if admin.AdminID == "" {
		admin.AdminID = uuid.NewString()
	}
	m.rows[admin.AdminID] = *admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	if a, ok := m.rows[id]; ok {
		return &a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetForUpdate(ctx context.Context, id string) (*model.Admin, error) {
	return m.GetByID(ctx, id)
}

func (m *mockAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range m.rows {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range m.rows {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByIDs(_ context.Context, ids []string) ([]model.Admin, error) {
	var result []model.Admin
	for _, id := range ids {
		if a, ok := m.rows[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

// put stores admin as is; seeding only
func (m *mockAdminRepo) put(admin *model.Admin) {
	m.rows[admin.AdminID] = *admin
}

func (m *mockAdminRepo) UpdateProfile(_ context.Context, admin *model.Admin) error {
	row, ok := m.rows[admin.AdminID]
	if !ok {
		return nil
	}
	row.FullName = admin.FullName
	row.Email = admin.Email
	row.IsActive = admin.IsActive
	row.UpdatedBy = admin.UpdatedBy
	m.rows[admin.AdminID] = row
	return nil
}

func (m *mockAdminRepo) UpdateTenure(_ context.Context, admin *model.Admin) error {
	row, ok := m.rows[admin.AdminID]
	if !ok {
		return nil
	}
	row.AssignedCollegeID = admin.AssignedCollegeID
	row.TenureBatchYear = admin.TenureBatchYear
	row.TenureStartDate = admin.TenureStartDate
	row.TenureEndDate = admin.TenureEndDate
	row.TenureIsActive = admin.TenureIsActive
	row.UpdatedBy = admin.UpdatedBy
	m.rows[admin.AdminID] = row
	return nil
}

func (m *mockAdminRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	a, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.LastLogin = &at
	m.rows[id] = a
	return nil
}

func (m *mockAdminRepo) List(_ context.Context, f repository.AdminListFilters, offset, limit int) ([]model.Admin, int64, error) {
	var result []model.Admin
	for _, a := range m.rows {
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		if f.CollegeID != "" && (a.AssignedCollegeID == nil || *a.AssignedCollegeID != f.CollegeID) {
			continue
		}
		if f.IsActive != nil && a.IsActive != *f.IsActive {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockAdminRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, a := range m.rows {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

// ── Mock CollegeRepository ──

type mockCollegeRepo struct {
	rows map[string]model.College
}

func (m *mockCollegeRepo) Create(_ context.Context, college *model.College) error {
	if college.CollegeID == "" {
		college.CollegeID = uuid.NewString()
	}
	m.rows[college.CollegeID] = *college
	return nil
}

func (m *mockCollegeRepo) GetByID(_ context.Context, id string) (*model.College, error) {
	if c, ok := m.rows[id]; ok {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) GetByCode(_ context.Context, code string) (*model.College, error) {
	for _, c := range m.rows {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) GetByName(_ context.Context, name string) (*model.College, error) {
	for _, c := range m.rows {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) Update(_ context.Context, college *model.College) error {
	m.rows[college.CollegeID] = *college
	return nil
}

func (m *mockCollegeRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *mockCollegeRepo) List(_ context.Context, f repository.CollegeListFilters, offset, limit int) ([]model.College, int64, error) {
	var result []model.College
	for _, c := range m.rows {
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		if f.Keyword != "" && !strings.Contains(strings.ToLower(c.Name+" "+c.Code), strings.ToLower(f.Keyword)) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockCollegeRepo) ListActive(ctx context.Context) ([]model.College, error) {
	active := true
	result, _, err := m.List(ctx, repository.CollegeListFilters{IsActive: &active}, 0, 0)
	return result, err
}

func (m *mockCollegeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}

// ── Mock TenureRepository ──

type mockTenureRepo struct {
	rows map[string]model.TenureHead
}

func (m *mockTenureRepo) Create(_ context.Context, head *model.TenureHead) error {
	if head.TenureHeadID == "" {
		head.TenureHeadID = uuid.NewString()
	}
	m.rows[head.TenureHeadID] = *head
	return nil
}

func (m *mockTenureRepo) Update(_ context.Context, head *model.TenureHead) error {
	m.rows[head.TenureHeadID] = *head
	return nil
}

func (m *mockTenureRepo) GetActive(_ context.Context, collegeID string, batchYear int) (*model.TenureHead, error) {
	for _, h := range m.rows {
		if h.IsActive && h.CollegeID == collegeID && h.BatchYear == batchYear {
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenureRepo) GetActiveByAdmin(_ context.Context, adminID string) (*model.TenureHead, error) {
	for _, h := range m.rows {
		if h.IsActive && h.AdminID == adminID {
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenureRepo) ListByCollege(_ context.Context, collegeID string) ([]model.TenureHead, error) {
	var result []model.TenureHead
	for _, h := range m.rows {
		if h.CollegeID == collegeID {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockTenureRepo) ListActiveByCollege(ctx context.Context, collegeID string) ([]model.TenureHead, error) {
	all, _ := m.ListByCollege(ctx, collegeID)
	var result []model.TenureHead
	for _, h := range all {
		if h.IsActive {
			result = append(result, h)
		}
	}
	return result, nil
}

func (m *mockTenureRepo) CountActiveByCollege(ctx context.Context, collegeID string) (int64, error) {
	active, _ := m.ListActiveByCollege(ctx, collegeID)
	return int64(len(active)), nil
}

// activeHeads all active heads of (collegeID, batchYear)
func (m *mockTenureRepo) activeHeads(collegeID string, batchYear int) []model.TenureHead {
	var result []model.TenureHead
	for _, h := range m.rows {
		if h.IsActive && h.CollegeID == collegeID && h.BatchYear == batchYear {
			result = append(result, h)
		}
	}
	return result
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	rows map[string]model.Event
	// conflicts makes the next N updates fail with ErrOptimisticLock
	conflicts int
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Version == 0 {
		event.Version = 1
	}
	m.rows[event.EventID] = *event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.rows[id]; ok {
		return &e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) GetForUpdate(ctx context.Context, id string) (*model.Event, error) {
	return m.GetByID(ctx, id)
}

func (m *mockEventRepo) GetByIDs(_ context.Context, ids []string) ([]model.Event, error) {
	var result []model.Event
	for _, id := range ids {
		if e, ok := m.rows[id]; ok {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	if m.conflicts > 0 {
		m.conflicts--
		return pkgerrors.ErrOptimisticLock
	}
	stored, ok := m.rows[event.EventID]
	if !ok || stored.Version != event.Version {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version++
	m.rows[event.EventID] = *event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *mockEventRepo) List(_ context.Context, f repository.EventListFilters, offset, limit int) ([]model.Event, int64, error) {
	var result []model.Event
	for _, e := range m.rows {
		if m.matches(&e, f) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockEventRepo) Count(ctx context.Context, f repository.EventListFilters) (int64, error) {
	_, total, err := m.List(ctx, f, 0, 0)
	return total, err
}

func (m *mockEventRepo) matches(e *model.Event, f repository.EventListFilters) bool {
	target := ""
	if e.TargetCollegeID != nil {
		target = *e.TargetCollegeID
	}
	switch {
	case f.EventType != "" && e.EventType != f.EventType,
		f.Category != "" && e.Category != f.Category,
		f.TargetCollegeID != "" && target != f.TargetCollegeID,
		f.ScopeCollegeID != "" && target != f.ScopeCollegeID && e.OrganizerID != f.ScopeOrganizerID,
		f.MemberView && !e.VisibleTo(f.MemberCollegeID),
		f.ActiveOnly && !e.IsActive,
		f.From != nil && e.Date.Before(*f.From),
		f.Before != nil && !e.Date.Before(*f.Before):
		return false
	}
	return true
}

// ── Mock RegistrationRepository ──

type mockRegistrationRepo struct {
	rows   map[string]model.Registration
	events *mockEventRepo
}

func (m *mockRegistrationRepo) Create(_ context.Context, reg *model.Registration) error {
	if reg.RegistrationID == "" {
		reg.RegistrationID = uuid.NewString()
	}
	m.rows[reg.RegistrationID] = *reg
	return nil
}

func (m *mockRegistrationRepo) Update(_ context.Context, reg *model.Registration) error {
	stored, ok := m.rows[reg.RegistrationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = reg.Status
	stored.CancelledAt = reg.CancelledAt
	m.rows[reg.RegistrationID] = stored
	return nil
}

func (m *mockRegistrationRepo) ListByEvent(_ context.Context, eventID string) ([]model.Registration, error) {
	var result []model.Registration
	for _, r := range m.rows {
		if r.EventID == eventID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RegisteredAt.Equal(result[j].RegisteredAt) {
			return result[i].RegisteredAt.Before(result[j].RegisteredAt)
		}
		return result[i].RegistrationID < result[j].RegistrationID
	})
	return result, nil
}

func (m *mockRegistrationRepo) ListByUser(_ context.Context, userID string, activeOnly bool) ([]model.Registration, error) {
	var result []model.Registration
	for _, r := range m.rows {
		if r.UserID != userID || (activeOnly && !r.IsActive()) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockRegistrationRepo) CountByEvents(_ context.Context, eventIDs []string) (map[string]repository.RegistrationCounts, error) {
	wanted := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}
	counts := make(map[string]repository.RegistrationCounts)
	for _, r := range m.rows {
		if !wanted[r.EventID] {
			continue
		}
		c := counts[r.EventID]
		switch r.Status {
		case model.RegistrationConfirmed:
			c.Confirmed++
		case model.RegistrationWaitlisted:
			c.Waitlisted++
		}
		counts[r.EventID] = c
	}
	return counts, nil
}

func (m *mockRegistrationRepo) CountByStatus(_ context.Context, collegeID, organizerID string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, r := range m.rows {
		if collegeID != "" {
			e, ok := m.events.rows[r.EventID]
			if !ok {
				continue
			}
			targeted := e.TargetCollegeID != nil && *e.TargetCollegeID == collegeID
			if !targeted && e.OrganizerID != organizerID {
				continue
			}
		}
		out[r.Status]++
	}
	return out, nil
}

// byUser the registration rows of userID on eventID
func (m *mockRegistrationRepo) byUser(eventID, userID string) []model.Registration {
	var result []model.Registration
	for _, r := range m.rows {
		if r.EventID == eventID && r.UserID == userID {
			result = append(result, r)
		}
	}
	return result
}

// ── Mock MemberSequenceRepository ──

type mockMemberSequenceRepo struct {
	values map[string]int
}

func (m *mockMemberSequenceRepo) Next(_ context.Context, prefix string, year int) (int, error) {
	key := FormatMemberID(prefix, year, 0)
	m.values[key]++
	return m.values[key], nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	entries []model.AuditLog
}

func (m *mockAuditLogRepo) Create(_ context.Context, entry *model.AuditLog) error {
	if entry.AuditLogID == "" {
		entry.AuditLogID = uuid.NewString()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditLogRepo) List(_ context.Context, f repository.AuditLogListFilters, offset, limit int) ([]model.AuditLog, int64, error) {
	var result []model.AuditLog
	for _, e := range m.entries {
		if (f.AdminID != "" && e.AdminID != f.AdminID) ||
			(f.Action != "" && e.Action != f.Action) ||
			(f.Resource != "" && e.Resource != f.Resource) {
			continue
		}
		result = append(result, e)
	}
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockAuditLogRepo) actions() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	row *model.Settings
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.Settings, error) {
	if m.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.row
	return &cp, nil
}

func (m *mockSettingsRepo) Save(_ context.Context, settings *model.Settings) error {
	cp := *settings
	cp.Singleton = true
	m.row = &cp
	return nil
}
