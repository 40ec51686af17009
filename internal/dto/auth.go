package dto

// ── Auth ──

// UserRegisterRequest member sign-up
type UserRegisterRequest struct {
	FullName    string  `json:"full_name"    binding:"required,min=2,max=100"`
	Email       string  `json:"email"        binding:"required,email,max=255"`
	Phone       string  `json:"phone"        binding:"required,phone"`
	Password    string  `json:"password"     binding:"required,min=8,max=64"`
	CollegeName string  `json:"college_name" binding:"required,max=150"`
	CollegeID   *string `json:"college_id"   binding:"omitempty,uuid"`
	BatchYear   int     `json:"batch_year"   binding:"required,batchyear"`
	Role        string  `json:"role"         binding:"omitempty,oneof=core-member board-member special-member other"`
}

// UserLoginRequest member login
type UserLoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest admin login by username or email
type AdminLoginRequest struct {
	Identifier string `json:"identifier" binding:"required,max=255"`
	Password   string `json:"password"   binding:"required"`
}

// TokenResponse issued token plus the authenticated profile
type TokenResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"` // user | admin
	ExpiresIn int            `json:"expires_in"` // seconds
	User      *UserResponse  `json:"user,omitempty"`
	Admin     *AdminResponse `json:"admin,omitempty"`
}
