package model

import "time"

// Admin roles
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
)

// Admin administrator, table admins.
// The tenure columns mirror the admin's active college_tenure_heads row and are only
// changed through AssignTenure and EndTenure.
type Admin struct {
	AdminID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_id"`
	Username          string     `gorm:"type:varchar(30);not null"                      json:"username"`
	Email             string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName          string     `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Role              string     `gorm:"type:varchar(20);not null"                      json:"role"`
	AssignedCollegeID *string    `gorm:"type:uuid"                                      json:"assigned_college_id,omitempty"`
	TenureBatchYear   *int       `                                                      json:"tenure_batch_year,omitempty"`
	TenureStartDate   *time.Time `                                                      json:"tenure_start_date,omitempty"`
	TenureEndDate     *time.Time `                                                      json:"tenure_end_date,omitempty"`
	TenureIsActive    bool       `gorm:"not null"                                       json:"tenure_is_active"`
	LastLogin         *time.Time `                                                      json:"last_login,omitempty"`
	IsActive          bool       `gorm:"not null"                                       json:"is_active"`
	BaseModel
}

// TableName table name
func (Admin) TableName() string { return "admins" }

// AdminKind closed set of admin variants, see Kind
type AdminKind interface {
	adminKind()
}

// SuperAdmin unscoped administrator with every permission
type SuperAdmin struct{}

// CollegeAdmin admin currently heading a college for one batch year
type CollegeAdmin struct {
	CollegeID string
	BatchYear int
}

// UnassignedAdmin admin without an active tenure; has no college scope
type UnassignedAdmin struct{}

func (SuperAdmin) adminKind()      {}
func (CollegeAdmin) adminKind()    {}
func (UnassignedAdmin) adminKind() {}

// Kind resolves the persisted columns into a variant
func (a *Admin) Kind() AdminKind {
	if a.Role == RoleSuperAdmin {
		return SuperAdmin{}
	}
	if a.TenureIsActive && a.AssignedCollegeID != nil && a.TenureBatchYear != nil {
		return CollegeAdmin{CollegeID: *a.AssignedCollegeID, BatchYear: *a.TenureBatchYear}
	}
	return UnassignedAdmin{}
}

// ScopeCollegeID college id for the admin's token; empty unless the admin holds an active tenure
func (a *Admin) ScopeCollegeID() string {
	if ca, ok := a.Kind().(CollegeAdmin); ok {
		return ca.CollegeID
	}
	return ""
}

// AssignTenure points the admin at collegeID for batchYear
func (a *Admin) AssignTenure(collegeID string, batchYear int, start time.Time) {
	a.AssignedCollegeID = &collegeID
	a.TenureBatchYear = &batchYear
	a.TenureStartDate = &start
	a.TenureEndDate = nil
	a.TenureIsActive = true
}

// EndTenure closes the active tenure; the college and batch stay as history
func (a *Admin) EndTenure(at time.Time) {
	a.TenureEndDate = &at
	a.TenureIsActive = false
}
