package dto

// CreateCollegeRequest new college; code is upper-cased before saving
type CreateCollegeRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=150"`
	Code         string `json:"code"          binding:"required,collegecode"`
	Location     string `json:"location"      binding:"required,max=150"`
	Address      string `json:"address"       binding:"omitempty,max=500"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email,max=255"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,phone"`
	Website      string `json:"website"       binding:"omitempty,url,max=255"`
}

// UpdateCollegeRequest partial college update
type UpdateCollegeRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=150"`
	Code         *string `json:"code"          binding:"omitempty,collegecode"`
	Location     *string `json:"location"      binding:"omitempty,max=150"`
	Address      *string `json:"address"       binding:"omitempty,max=500"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=255"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,phone"`
	Website      *string `json:"website"       binding:"omitempty,url,max=255"`
	IsActive     *bool   `json:"is_active"`
}

// CollegeListRequest college list query
type CollegeListRequest struct {
	PaginationRequest
	IsActive *bool  `form:"is_active"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
}

// CollegeResponse college with its current tenure heads
type CollegeResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Code         string               `json:"code"`
	Location     string               `json:"location"`
	Address      string               `json:"address"`
	ContactEmail string               `json:"contact_email"`
	ContactPhone string               `json:"contact_phone"`
	Website      string               `json:"website,omitempty"`
	IsActive     bool                 `json:"is_active"`
	CurrentHeads []TenureHeadResponse `json:"current_heads,omitempty"`
	CreatedAt    string               `json:"created_at"`
}

// CollegeOptionResponse public college picker entry
type CollegeOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ── Tenure ──

// AssignTenureRequest make an admin head of a college for a batch year
type AssignTenureRequest struct {
	AdminID   string  `json:"admin_id"   binding:"required,uuid"`
	BatchYear int     `json:"batch_year" binding:"required,batchyear"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
}

// TransferTenureRequest hand a college batch over to another admin
type TransferTenureRequest struct {
	ToAdminID string `json:"to_admin_id" binding:"required,uuid"`
	BatchYear int    `json:"batch_year"  binding:"required,batchyear"`
	Reason    string `json:"reason"      binding:"omitempty,max=500"`
}

// EndTenureRequest close an admin's active tenure
type EndTenureRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// TenureHeadResponse one tenure record
type TenureHeadResponse struct {
	ID        string `json:"id"`
	CollegeID string `json:"college_id"`
	AdminID   string `json:"admin_id"`
	AdminName string `json:"admin_name,omitempty"`
	BatchYear int    `json:"batch_year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	IsActive  bool   `json:"is_active"`
	EndReason string `json:"end_reason,omitempty"`
}
