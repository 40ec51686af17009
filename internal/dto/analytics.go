package dto

// RegistrationCounts registrations grouped by status
type RegistrationCounts struct {
	Confirmed  int64 `json:"confirmed"`
	Waitlisted int64 `json:"waitlisted"`
	Cancelled  int64 `json:"cancelled"`
}

// OverviewResponse dashboard figures, scoped to the caller's college for college admins
type OverviewResponse struct {
	CollegeID      string             `json:"college_id,omitempty"`
	TotalUsers     int64              `json:"total_users"`
	ActiveUsers    int64              `json:"active_users"`
	TotalColleges  int64              `json:"total_colleges"`
	UpcomingEvents int64              `json:"upcoming_events"`
	PastEvents     int64              `json:"past_events"`
	Registrations  RegistrationCounts `json:"registrations"`
}
