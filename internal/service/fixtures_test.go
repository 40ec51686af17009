package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/model"
	"devs-society/backend/pkg/password"
)

func init() {
	password.Cost = bcrypt.MinCost
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// testClock advances one second per reading so registration order is strict
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: testNow}
}

func (c *testClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type recordingNotifier struct {
	notices []string // kind:userID
}

func (n *recordingNotifier) Notify(kind string, user *model.User, _ *model.Event) {
	n.notices = append(n.notices, kind+":"+user.UserID)
}

func seedCollege(m *mocks, code string, active bool) *model.College {
	c := &model.College{
		Name:     code + " College",
		Code:     code,
		Location: "Kochi",
		IsActive: active,
	}
	m.colleges.Create(context.Background(), c)
	return c
}

func seedAdmin(m *mocks, username, role string) *model.Admin {
	hash, _ := password.Hash("secret-pass")
	a := &model.Admin{
		Username:     username,
		Email:        username + "@devs.test",
		PasswordHash: hash,
		FullName:     username + " Admin",
		Role:         role,
		IsActive:     true,
	}
	m.admins.Create(context.Background(), a)
	return a
}

// seedHead makes admin the active head of college for batchYear
func seedHead(m *mocks, college *model.College, admin *model.Admin, batchYear int) *model.TenureHead {
	h := &model.TenureHead{
		CollegeID: college.CollegeID,
		AdminID:   admin.AdminID,
		BatchYear: batchYear,
		StartDate: testNow.AddDate(0, -6, 0),
		IsActive:  true,
	}
	m.tenures.Create(context.Background(), h)
	admin.AssignTenure(college.CollegeID, batchYear, h.StartDate)
	m.admins.put(admin)
	return h
}

func seedUser(m *mocks, name string, collegeID *string) *model.User {
	hash, _ := password.Hash("member-pass")
	u := &model.User{
		FullName:     name,
		Email:        name + "@mail.test",
		Phone:        "+919876543210",
		PasswordHash: hash,
		CollegeName:  "Some College",
		CollegeID:    collegeID,
		BatchYear:    2024,
		Role:         model.UserRoleCoreMember,
		MemberID:     "DEVS-2025-" + name,
		IsActive:     true,
	}
	m.users.Create(context.Background(), u)
	return u
}

// seedEvent an active open-to-all event one week after testNow
func seedEvent(m *mocks, organizer *model.Admin, maxAttendees int, opts ...func(*model.Event)) *model.Event {
	e := &model.Event{
		Title:                "Go Workshop",
		Description:          "Hands-on Go",
		Date:                 time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		Time:                 "10:00",
		Location:             "Main Hall",
		EventType:            model.EventTypeOpenToAll,
		MaxAttendees:         maxAttendees,
		Category:             "workshop",
		OrganizerID:          organizer.AdminID,
		OrganizerName:        organizer.FullName,
		RegistrationDeadline: testNow.AddDate(0, 0, 5),
		IsActive:             true,
	}
	for _, opt := range opts {
		opt(e)
	}
	m.events.Create(context.Background(), e)
	return e
}

func superIdentity(a *model.Admin) *access.Identity {
	return access.NewAdminIdentity(a.AdminID, model.RoleSuperAdmin, "")
}

func collegeIdentity(a *model.Admin) *access.Identity {
	return access.NewAdminIdentity(a.AdminID, model.RoleAdmin, a.ScopeCollegeID())
}

func strp(s string) *string { return &s }

func intp(i int) *int { return &i }

func boolp(b bool) *bool { return &b }
