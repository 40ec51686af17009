package model

// MemberIDSequence last issued member number per prefix and year, table member_id_sequences
type MemberIDSequence struct {
	Prefix    string `gorm:"type:varchar(8);primaryKey"`
	Year      int    `gorm:"primaryKey;autoIncrement:false"`
	LastValue int    `gorm:"not null"`
}

// TableName table name
func (MemberIDSequence) TableName() string { return "member_id_sequences" }
