// Package access turns a verified token into an Identity and answers
// permission and college-scope questions about it.
package access

import (
	"devs-society/backend/internal/model"
	pkgerrors "devs-society/backend/pkg/errors"
)

// Permission closed set of admin permission strings
type Permission string

const (
	UsersRead      Permission = "users.read"
	UsersWrite     Permission = "users.write"
	UsersDelete    Permission = "users.delete"
	EventsRead     Permission = "events.read"
	EventsWrite    Permission = "events.write"
	EventsDelete   Permission = "events.delete"
	CollegesRead   Permission = "colleges.read"
	CollegesWrite  Permission = "colleges.write"
	CollegesDelete Permission = "colleges.delete"
	AdminsRead     Permission = "admins.read"
	AdminsWrite    Permission = "admins.write"
	AdminsDelete   Permission = "admins.delete"
	SettingsRead   Permission = "settings.read"
	SettingsWrite  Permission = "settings.write"
	AnalyticsRead  Permission = "analytics.read"
	SystemAdmin    Permission = "system.admin"
)

// Token subject types
const (
	SubjectUser  = "user"
	SubjectAdmin = "admin"
)

var allPermissions = []Permission{
	UsersRead, UsersWrite, UsersDelete,
	EventsRead, EventsWrite, EventsDelete,
	CollegesRead, CollegesWrite, CollegesDelete,
	AdminsRead, AdminsWrite, AdminsDelete,
	SettingsRead, SettingsWrite,
	AnalyticsRead, SystemAdmin,
}

var adminPermissions = []Permission{
	UsersRead, UsersWrite,
	EventsRead, EventsWrite, EventsDelete,
	AnalyticsRead,
}

var (
	ErrPermissionDenied = pkgerrors.Forbidden("insufficient permissions")
	ErrNoCollegeScope   = pkgerrors.Forbidden("admin has no active college assignment")
	ErrOutOfScope       = pkgerrors.Forbidden("resource belongs to another college")
)

// PermissionsFor derives the permission set of an admin role. Unknown roles get none.
func PermissionsFor(role string) []Permission {
	var src []Permission
	switch role {
	case model.RoleSuperAdmin:
		src = allPermissions
	case model.RoleAdmin:
		src = adminPermissions
	}
	out := make([]Permission, len(src))
	copy(out, src)
	return out
}

// Strings converts permissions for token claims and responses
func Strings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

// Identity authenticated caller of one request
type Identity struct {
	SubjectID   string
	Type        string
	Role        string
	Permissions []Permission
	CollegeID   string // admin scope; empty for super-admins and unassigned admins
}

// NewAdminIdentity builds an admin identity, re-deriving permissions from role
func NewAdminIdentity(adminID, role, collegeID string) *Identity {
	return &Identity{
		SubjectID:   adminID,
		Type:        SubjectAdmin,
		Role:        role,
		Permissions: PermissionsFor(role),
		CollegeID:   collegeID,
	}
}

// NewUserIdentity builds a member identity; members hold no admin permissions
func NewUserIdentity(userID, role string) *Identity {
	return &Identity{SubjectID: userID, Type: SubjectUser, Role: role}
}

// IsSuperAdmin unscoped administrator
func (id *Identity) IsSuperAdmin() bool {
	return id != nil && id.Type == SubjectAdmin && id.Role == model.RoleSuperAdmin
}

// Has reports whether the identity holds p
func (id *Identity) Has(p Permission) bool {
	if id == nil || id.Type != SubjectAdmin {
		return false
	}
	for _, held := range id.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

// Authorize returns ErrPermissionDenied unless the identity holds every permission
func (id *Identity) Authorize(perms ...Permission) error {
	for _, p := range perms {
		if !id.Has(p) {
			return ErrPermissionDenied
		}
	}
	return nil
}

// CollegeScope returns the college an admin-scoped query must filter on.
// scoped=false means the caller sees every college.
func (id *Identity) CollegeScope() (collegeID string, scoped bool, err error) {
	if id.IsSuperAdmin() {
		return "", false, nil
	}
	if id.CollegeID == "" {
		return "", true, ErrNoCollegeScope
	}
	return id.CollegeID, true, nil
}

// CheckCollege fails with ErrOutOfScope when a scoped admin touches another college's resource
func (id *Identity) CheckCollege(collegeID *string) error {
	scope, scoped, err := id.CollegeScope()
	if err != nil {
		return err
	}
	if !scoped {
		return nil
	}
	if collegeID == nil || *collegeID != scope {
		return ErrOutOfScope
	}
	return nil
}
