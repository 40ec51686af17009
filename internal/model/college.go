package model

import "time"

// College member college, table colleges
type College struct {
	CollegeID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"college_id"`
	Name         string `gorm:"type:varchar(150);not null"                     json:"name"`
	Code         string `gorm:"type:varchar(10);not null"                      json:"code"`
	Location     string `gorm:"type:varchar(150);not null"                     json:"location"`
	Address      string `gorm:"type:text;not null"                             json:"address"`
	ContactEmail string `gorm:"type:varchar(255);not null"                     json:"contact_email"`
	ContactPhone string `gorm:"type:varchar(20);not null"                      json:"contact_phone"`
	Website      string `gorm:"type:varchar(255);not null"                     json:"website"`
	IsActive     bool   `gorm:"not null"                                       json:"is_active"`
	BaseModel
}

// TableName table name
func (College) TableName() string { return "colleges" }

// TenureHead one admin's tenure over a college for a batch year, table college_tenure_heads.
// At most one active row exists per (college, batch year).
type TenureHead struct {
	TenureHeadID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tenure_head_id"`
	CollegeID    string     `gorm:"type:uuid;not null"                             json:"college_id"`
	AdminID      string     `gorm:"type:uuid;not null"                             json:"admin_id"`
	BatchYear    int        `gorm:"not null"                                       json:"batch_year"`
	StartDate    time.Time  `gorm:"not null"                                       json:"start_date"`
	EndDate      *time.Time `                                                      json:"end_date,omitempty"`
	IsActive     bool       `gorm:"not null"                                       json:"is_active"`
	EndReason    string     `gorm:"type:text;not null"                             json:"end_reason"`
	BaseModel
}

// TableName table name
func (TenureHead) TableName() string { return "college_tenure_heads" }

// End deactivates the record
func (t *TenureHead) End(at time.Time, reason string) {
	t.IsActive = false
	t.EndDate = &at
	t.EndReason = reason
}
