package dto

// CreateAdminRequest super-admin creates an administrator.
// role=admin requires college_id and batch_year; role=super-admin must not carry them.
type CreateAdminRequest struct {
	Username  string  `json:"username"   binding:"required,username"`
	Email     string  `json:"email"      binding:"required,email,max=255"`
	Password  string  `json:"password"   binding:"required,min=8,max=64"`
	FullName  string  `json:"full_name"  binding:"required,min=2,max=100"`
	Role      string  `json:"role"       binding:"required,oneof=super-admin admin"`
	CollegeID *string `json:"college_id" binding:"omitempty,uuid"`
	BatchYear *int    `json:"batch_year" binding:"omitempty,batchyear"`
}

// UpdateAdminRequest mutable admin fields; role and permissions are not editable
type UpdateAdminRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email,max=255"`
	IsActive *bool   `json:"is_active"`
}

// AdminListRequest admin list query
type AdminListRequest struct {
	PaginationRequest
	Role      string `form:"role"       binding:"omitempty,oneof=super-admin admin"`
	CollegeID string `form:"college_id" binding:"omitempty,uuid"`
	IsActive  *bool  `form:"is_active"`
}

// TenureInfoResponse admin's current or last tenure
type TenureInfoResponse struct {
	CollegeID string `json:"college_id"`
	BatchYear int    `json:"batch_year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// AdminResponse administrator without credentials
type AdminResponse struct {
	ID          string              `json:"id"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	FullName    string              `json:"full_name"`
	Role        string              `json:"role"`
	Permissions []string            `json:"permissions"`
	Tenure      *TenureInfoResponse `json:"tenure,omitempty"`
	LastLogin   string              `json:"last_login,omitempty"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   string              `json:"created_at"`
}
