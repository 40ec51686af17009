package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devs-society/backend/internal/model"
	pkgerrors "devs-society/backend/pkg/errors"
)

// EventListFilters event list filters; zero values are ignored
type EventListFilters struct {
	EventType       string
	Category        string
	TargetCollegeID string
	// ScopeCollegeID limits a college admin to events targeting the college or organised by ScopeOrganizerID
	ScopeCollegeID   string
	ScopeOrganizerID string
	// MemberView limits to events a member of MemberCollegeID may see: open-to-all or targeting that college
	MemberView      bool
	MemberCollegeID string
	ActiveOnly      bool
	From            *time.Time // event_date >= From
	Before          *time.Time // event_date < Before
}

// EventRepository event data access
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// GetForUpdate loads the event with a row lock; only meaningful inside a transaction
	GetForUpdate(ctx context.Context, id string) (*model.Event, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Event, error)
	// Update writes the event if its version is unchanged and bumps the version, otherwise ErrOptimisticLock
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters EventListFilters, offset, limit int) ([]model.Event, int64, error)
	Count(ctx context.Context, filters EventListFilters) (int64, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates an EventRepository
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) GetForUpdate(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	var events []model.Event
	if len(ids) == 0 {
		return events, nil
	}
	err := r.db.WithContext(ctx).
		Where("event_id IN ?", ids).
		Order("event_date ASC, event_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	oldVersion := event.Version
	result := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ? AND version = ?", event.EventID, oldVersion).
		Updates(map[string]interface{}{
			"title":                 event.Title,
			"description":           event.Description,
			"event_date":            event.Date,
			"event_time":            event.Time,
			"location":              event.Location,
			"event_type":            event.EventType,
			"target_college_id":     event.TargetCollegeID,
			"max_attendees":         event.MaxAttendees,
			"category":              event.Category,
			"organizer_contact":     event.OrganizerContact,
			"requirements":          event.Requirements,
			"prizes":                event.Prizes,
			"registration_deadline": event.RegistrationDeadline,
			"is_active":             event.IsActive,
			"updated_by":            event.UpdatedBy,
			"updated_at":            time.Now(),
			"version":               oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version = oldVersion + 1
	return nil
}

// Delete removes the event; its registrations go with it (ON DELETE CASCADE)
func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", id).
		Delete(&model.Event{}).Error
}

func (r *eventRepo) List(ctx context.Context, filters EventListFilters, offset, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	db := r.filtered(ctx, filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("event_date ASC, event_time ASC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepo) Count(ctx context.Context, filters EventListFilters) (int64, error) {
	var total int64
	err := r.filtered(ctx, filters).Count(&total).Error
	return total, err
}

func (r *eventRepo) filtered(ctx context.Context, f EventListFilters) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Event{})
	if f.EventType != "" {
		db = db.Where("event_type = ?", f.EventType)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.TargetCollegeID != "" {
		db = db.Where("target_college_id = ?", f.TargetCollegeID)
	}
	if f.ScopeCollegeID != "" {
		db = db.Where("(target_college_id = ? OR organizer_id = ?)", f.ScopeCollegeID, f.ScopeOrganizerID)
	}
	if f.MemberView {
		if f.MemberCollegeID == "" {
			db = db.Where("event_type = ?", model.EventTypeOpenToAll)
		} else {
			db = db.Where("(event_type = ? OR target_college_id = ?)", model.EventTypeOpenToAll, f.MemberCollegeID)
		}
	}
	if f.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if f.From != nil {
		db = db.Where("event_date >= ?", *f.From)
	}
	if f.Before != nil {
		db = db.Where("event_date < ?", *f.Before)
	}
	return db
}
