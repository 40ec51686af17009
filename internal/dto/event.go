package dto

// CreateEventRequest new event. date is YYYY-MM-DD, time is HH:MM, registration_deadline is RFC 3339.
type CreateEventRequest struct {
	Title                string   `json:"title"                 binding:"required,min=3,max=200"`
	Description          string   `json:"description"           binding:"required,max=5000"`
	Date                 string   `json:"date"                  binding:"required,datetime=2006-01-02"`
	Time                 string   `json:"time"                  binding:"required,datetime=15:04"`
	Location             string   `json:"location"              binding:"required,max=200"`
	EventType            string   `json:"event_type"            binding:"required,oneof=college-specific open-to-all"`
	TargetCollegeID      *string  `json:"target_college_id"     binding:"omitempty,uuid"`
	MaxAttendees         int      `json:"max_attendees"         binding:"required,min=1,max=10000"`
	Category             string   `json:"category"              binding:"required,oneof=workshop seminar hackathon competition meetup webinar other"`
	OrganizerContact     string   `json:"organizer_contact"     binding:"omitempty,max=255"`
	Requirements         []string `json:"requirements"          binding:"omitempty,max=20,dive,max=200"`
	Prizes               []string `json:"prizes"                binding:"omitempty,max=20,dive,max=200"`
	RegistrationDeadline string   `json:"registration_deadline" binding:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// UpdateEventRequest partial event update
type UpdateEventRequest struct {
	Title                *string   `json:"title"                 binding:"omitempty,min=3,max=200"`
	Description          *string   `json:"description"           binding:"omitempty,max=5000"`
	Date                 *string   `json:"date"                  binding:"omitempty,datetime=2006-01-02"`
	Time                 *string   `json:"time"                  binding:"omitempty,datetime=15:04"`
	Location             *string   `json:"location"              binding:"omitempty,max=200"`
	EventType            *string   `json:"event_type"            binding:"omitempty,oneof=college-specific open-to-all"`
	TargetCollegeID      *string   `json:"target_college_id"     binding:"omitempty,uuid"`
	MaxAttendees         *int      `json:"max_attendees"         binding:"omitempty,min=1,max=10000"`
	Category             *string   `json:"category"              binding:"omitempty,oneof=workshop seminar hackathon competition meetup webinar other"`
	OrganizerContact     *string   `json:"organizer_contact"     binding:"omitempty,max=255"`
	Requirements         *[]string `json:"requirements"          binding:"omitempty,max=20,dive,max=200"`
	Prizes               *[]string `json:"prizes"                binding:"omitempty,max=20,dive,max=200"`
	RegistrationDeadline *string   `json:"registration_deadline" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsActive             *bool     `json:"is_active"`
}

// EventListRequest event list query; from/to bound the event date (inclusive)
type EventListRequest struct {
	PaginationRequest
	EventType string `form:"event_type" binding:"omitempty,oneof=college-specific open-to-all"`
	Category  string `form:"category"   binding:"omitempty,oneof=workshop seminar hackathon competition meetup webinar other"`
	CollegeID string `form:"college_id" binding:"omitempty,uuid"`
	From      string `form:"from"       binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to"         binding:"omitempty,datetime=2006-01-02"`
	Upcoming  bool   `form:"upcoming"`
}

// EventResponse event with derived registration figures
type EventResponse struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Date                 string   `json:"date"`
	Time                 string   `json:"time"`
	Location             string   `json:"location"`
	EventType            string   `json:"event_type"`
	TargetCollegeID      *string  `json:"target_college_id,omitempty"`
	MaxAttendees         int      `json:"max_attendees"`
	Category             string   `json:"category"`
	OrganizerID          string   `json:"organizer_id"`
	OrganizerName        string   `json:"organizer_name"`
	OrganizerContact     string   `json:"organizer_contact,omitempty"`
	Requirements         []string `json:"requirements"`
	Prizes               []string `json:"prizes"`
	RegistrationDeadline string   `json:"registration_deadline"`
	IsActive             bool     `json:"is_active"`
	ConfirmedCount       int      `json:"confirmed_count"`
	WaitlistedCount      int      `json:"waitlisted_count"`
	AvailableSpots       int      `json:"available_spots"`
	RegistrationStatus   string   `json:"registration_status"`              // open | full | closed
	MyRegistration       string   `json:"my_registration_status,omitempty"` // user-facing views only
	CreatedAt            string   `json:"created_at"`
}

// RegistrationResponse one registration row, with member details on admin views
type RegistrationResponse struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name,omitempty"`
	UserEmail    string `json:"user_email,omitempty"`
	MemberID     string `json:"member_id,omitempty"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registered_at"`
	CancelledAt  string `json:"cancelled_at,omitempty"`
}

// RegisterEventResponse result of register / unregister
type RegisterEventResponse struct {
	Registration RegistrationResponse  `json:"registration"`
	Promoted     *RegistrationResponse `json:"promoted,omitempty"`
}
