package model

// Settings society-wide runtime settings, table system_settings (single row)
type Settings struct {
	Singleton        bool `gorm:"primaryKey"  json:"-"`
	RegistrationOpen bool `gorm:"not null"    json:"registration_open"`
	MemberCardSize   int  `gorm:"not null"    json:"member_card_size"`
	BaseModel
}

// TableName table name
func (Settings) TableName() string { return "system_settings" }

// DefaultMemberCardSize QR size in pixels when nothing is configured
const DefaultMemberCardSize = 256

// DefaultSettings values used until the row is first written
func DefaultSettings() *Settings {
	return &Settings{
		Singleton:        true,
		RegistrationOpen: true,
		MemberCardSize:   DefaultMemberCardSize,
	}
}
