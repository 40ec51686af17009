package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions
const (
	AuditTenureAssign    = "tenure.assign"
	AuditTenureTransfer  = "tenure.transfer"
	AuditTenureEnd       = "tenure.end"
	AuditCollegeDelete   = "college.delete"
	AuditAdminCreate     = "admin.create"
	AuditAdminDeactivate = "admin.deactivate"
	AuditSettingsUpdate  = "settings.update"
)

// AuditLog administrative action record, table admin_audit_logs
type AuditLog struct {
	AuditLogID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	AdminID    string         `gorm:"type:uuid;not null"                             json:"admin_id"`
	Action     string         `gorm:"type:varchar(50);not null"                      json:"action"`
	Resource   string         `gorm:"type:varchar(50);not null"                      json:"resource"`
	ResourceID string         `gorm:"type:varchar(64);not null"                      json:"resource_id"`
	Details    datatypes.JSON `gorm:"type:jsonb;not null"                            json:"details"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName table name
func (AuditLog) TableName() string { return "admin_audit_logs" }
