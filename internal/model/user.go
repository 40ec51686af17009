package model

// User roles
const (
	UserRoleCoreMember    = "core-member"
	UserRoleBoardMember   = "board-member"
	UserRoleSpecialMember = "special-member"
	UserRoleOther         = "other"
)

// User society member, table users. Never deleted, only deactivated.
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FullName     string  `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        string  `gorm:"type:varchar(20);not null"                      json:"phone"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	CollegeName  string  `gorm:"type:varchar(150);not null"                     json:"college_name"`
	CollegeID    *string `gorm:"type:uuid"                                      json:"college_id,omitempty"`
	BatchYear    int     `gorm:"not null"                                       json:"batch_year"`
	Role         string  `gorm:"type:varchar(20);not null"                      json:"role"`
	MemberID     string  `gorm:"type:varchar(32);not null"                      json:"member_id"`
	IsActive     bool    `gorm:"not null"                                       json:"is_active"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }

// InCollege reports whether the user is linked to collegeID
func (u *User) InCollege(collegeID string) bool {
	return u.CollegeID != nil && *u.CollegeID == collegeID
}
