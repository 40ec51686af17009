package repository

import (
	"context"

	"gorm.io/gorm"

	"devs-society/backend/internal/model"
)

// RegistrationCounts active registrations of one event
type RegistrationCounts struct {
	Confirmed  int
	Waitlisted int
}

// RegistrationRepository event registration data access
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) error
	Update(ctx context.Context, reg *model.Registration) error
	// ListByEvent returns every registration of the event in registration order
	ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]model.Registration, error)
	CountByEvents(ctx context.Context, eventIDs []string) (map[string]RegistrationCounts, error)
	// CountByStatus groups registrations by status. A non-empty collegeID limits to events
	// targeting it or organised by organizerID, the same scope event lists use.
	CountByStatus(ctx context.Context, collegeID, organizerID string) (map[string]int64, error)
}

type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo creates a RegistrationRepository
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepo) Update(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("registration_id = ?", reg.RegistrationID).
		Updates(map[string]interface{}{
			"status":       reg.Status,
			"cancelled_at": reg.CancelledAt,
		}).Error
}

func (r *registrationRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at ASC, registration_id ASC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepo) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]model.Registration, error) {
	var regs []model.Registration
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		db = db.Where("status <> ?", model.RegistrationCancelled)
	}
	err := db.Order("registered_at DESC").Find(&regs).Error
	return regs, err
}

func (r *registrationRepo) CountByEvents(ctx context.Context, eventIDs []string) (map[string]RegistrationCounts, error) {
	counts := make(map[string]RegistrationCounts, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID string
		Status  string
		Total   int
	}
	err := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Select("event_id, status, COUNT(*) AS total").
		Where("event_id IN ? AND status <> ?", eventIDs, model.RegistrationCancelled).
		Group("event_id, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.EventID]
		switch row.Status {
		case model.RegistrationConfirmed:
			c.Confirmed = row.Total
		case model.RegistrationWaitlisted:
			c.Waitlisted = row.Total
		}
		counts[row.EventID] = c
	}
	return counts, nil
}

func (r *registrationRepo) CountByStatus(ctx context.Context, collegeID, organizerID string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	db := r.db.WithContext(ctx).
		Table("event_registrations AS r").
		Select("r.status, COUNT(*) AS total")
	if collegeID != "" {
		db = db.Joins("JOIN events e ON e.event_id = r.event_id").
			Where("(e.target_college_id = ? OR e.organizer_id = ?)", collegeID, organizerID)
	}
	if err := db.Group("r.status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
