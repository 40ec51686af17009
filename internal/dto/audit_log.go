package dto

import "encoding/json"

// AuditLogListRequest audit log query
type AuditLogListRequest struct {
	PaginationRequest
	AdminID  string `form:"admin_id" binding:"omitempty,uuid"`
	Action   string `form:"action"   binding:"omitempty,max=50"`
	Resource string `form:"resource" binding:"omitempty,max=50"`
}

// AuditLogResponse one audit entry
type AuditLogResponse struct {
	ID         string          `json:"id"`
	AdminID    string          `json:"admin_id"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resource_id"`
	Details    json.RawMessage `json:"details"`
	CreatedAt  string          `json:"created_at"`
}
