package dto

// UpdateSettingsRequest partial settings update
type UpdateSettingsRequest struct {
	RegistrationOpen *bool `json:"registration_open"`
	MemberCardSize   *int  `json:"member_card_size" binding:"omitempty,min=64,max=1024"`
}

// SettingsResponse current settings
type SettingsResponse struct {
	RegistrationOpen bool   `json:"registration_open"`
	MemberCardSize   int    `json:"member_card_size"`
	UpdatedAt        string `json:"updated_at,omitempty"`
	UpdatedBy        string `json:"updated_by,omitempty"`
}
