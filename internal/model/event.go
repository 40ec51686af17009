package model

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Event types
const (
	EventTypeCollegeSpecific = "college-specific"
	EventTypeOpenToAll       = "open-to-all"
)

// Event categories
var EventCategories = []string{"workshop", "seminar", "hackathon", "competition", "meetup", "webinar", "other"}

// Registration statuses
const (
	RegistrationConfirmed  = "confirmed"
	RegistrationWaitlisted = "waitlisted"
	RegistrationCancelled  = "cancelled"
)

// Event society event, table events. Owns its event_registrations rows.
type Event struct {
	EventID              string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title                string         `gorm:"type:varchar(200);not null"                     json:"title"`
	Description          string         `gorm:"type:text;not null"                             json:"description"`
	Date                 time.Time      `gorm:"column:event_date;type:date;not null"           json:"date"`
	Time                 string         `gorm:"column:event_time;type:varchar(5);not null"     json:"time"` // HH:MM
	Location             string         `gorm:"type:varchar(200);not null"                     json:"location"`
	EventType            string         `gorm:"type:varchar(20);not null"                      json:"event_type"`
	TargetCollegeID      *string        `gorm:"type:uuid"                                      json:"target_college_id,omitempty"`
	MaxAttendees         int            `gorm:"not null"                                       json:"max_attendees"`
	Category             string         `gorm:"type:varchar(30);not null"                      json:"category"`
	OrganizerID          string         `gorm:"type:uuid;not null"                             json:"organizer_id"`
	OrganizerName        string         `gorm:"type:varchar(100);not null"                     json:"organizer_name"`
	OrganizerContact     string         `gorm:"type:varchar(255);not null"                     json:"organizer_contact"`
	Requirements         pq.StringArray `gorm:"type:text[]"                                    json:"requirements"`
	Prizes               pq.StringArray `gorm:"type:text[]"                                    json:"prizes"`
	RegistrationDeadline time.Time      `gorm:"not null"                                       json:"registration_deadline"`
	IsActive             bool           `gorm:"not null"                                       json:"is_active"`
	VersionedModel
}

// TableName table name
func (Event) TableName() string { return "events" }

// VisibleTo reports whether members of collegeID may see and register for the event
func (e *Event) VisibleTo(collegeID string) bool {
	if e.EventType == EventTypeOpenToAll {
		return true
	}
	return e.TargetCollegeID != nil && *e.TargetCollegeID == collegeID
}

// StartsAt combines the event date and HH:MM time in loc
func (e *Event) StartsAt(loc *time.Location) time.Time {
	var h, m int
	if _, err := fmt.Sscanf(e.Time, "%d:%d", &h, &m); err != nil {
		h, m = 0, 0
	}
	y, mo, d := e.Date.Date()
	return time.Date(y, mo, d, h, m, 0, 0, loc)
}

// Registration a user's place on an event, table event_registrations
type Registration struct {
	RegistrationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"registration_id"`
	EventID        string     `gorm:"type:uuid;not null"                             json:"event_id"`
	UserID         string     `gorm:"type:uuid;not null"                             json:"user_id"`
	RegisteredAt   time.Time  `gorm:"not null"                                       json:"registered_at"`
	Status         string     `gorm:"type:varchar(20);not null"                      json:"status"`
	CancelledAt    *time.Time `                                                      json:"cancelled_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName table name
func (Registration) TableName() string { return "event_registrations" }

// IsActive confirmed or waitlisted
func (r *Registration) IsActive() bool {
	return r.Status == RegistrationConfirmed || r.Status == RegistrationWaitlisted
}
