package dto

// UserResponse member profile without credentials
type UserResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	CollegeName string  `json:"college_name"`
	CollegeID   *string `json:"college_id,omitempty"`
	BatchYear   int     `json:"batch_year"`
	Role        string  `json:"role"`
	MemberID    string  `json:"member_id"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

// UpdateProfileRequest fields a member may change on their own profile
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"    binding:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone"        binding:"omitempty,phone"`
	CollegeName *string `json:"college_name" binding:"omitempty,max=150"`
	CollegeID   *string `json:"college_id"   binding:"omitempty,uuid"`
	BatchYear   *int    `json:"batch_year"   binding:"omitempty,batchyear"`
}

// UpdateUserStatusRequest activate or deactivate a member
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UserListRequest admin member list query
type UserListRequest struct {
	PaginationRequest
	CollegeID string `form:"college_id" binding:"omitempty,uuid"`
	Role      string `form:"role"       binding:"omitempty,oneof=core-member board-member special-member other"`
	IsActive  *bool  `form:"is_active"`
	Keyword   string `form:"keyword"    binding:"omitempty,max=100"`
}
