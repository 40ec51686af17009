package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
	"devs-society/backend/pkg/calendar"
	pkgerrors "devs-society/backend/pkg/errors"
)

const (
	// maxWriteAttempts register/unregister/capacity writes retried on a version conflict
	maxWriteAttempts = 3
	// calendarEventDuration events carry no end time
	calendarEventDuration = 2 * time.Hour
)

// EventService event management and member registration
type EventService interface {
	Create(ctx context.Context, caller *access.Identity, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Update(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, caller *access.Identity, id string) error
	GetForAdmin(ctx context.Context, caller *access.Identity, id string) (*dto.EventResponse, error)
	ListForAdmin(ctx context.Context, caller *access.Identity, req *dto.EventListRequest) ([]dto.EventResponse, int64, error)
	ListRegistrations(ctx context.Context, caller *access.Identity, id string) ([]dto.RegistrationResponse, error)
	ExportRegistrations(ctx context.Context, caller *access.Identity, id string) (*dto.ExportFile, error)

	ListForMember(ctx context.Context, userID string, req *dto.EventListRequest) ([]dto.EventResponse, int64, error)
	GetForMember(ctx context.Context, userID, id string) (*dto.EventResponse, error)
	Register(ctx context.Context, userID, id string) (*dto.RegisterEventResponse, error)
	Unregister(ctx context.Context, userID, id string) (*dto.RegisterEventResponse, error)
	MyEvents(ctx context.Context, userID string) ([]dto.EventResponse, error)
	MyCalendar(ctx context.Context, userID string) ([]byte, error)
}

type eventService struct {
	repo     *repository.Repository
	notifier Notifier
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewEventService creates an EventService. A nil notifier drops notices.
func NewEventService(repo *repository.Repository, notifier Notifier, loc *time.Location, logger *zap.Logger) EventService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &eventService{
		repo:     repo,
		notifier: notifier,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// ────────────────────── Admin: manage ──────────────────────

func (s *eventService) Create(ctx context.Context, caller *access.Identity, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	organizer, err := loadAdmin(ctx, s.repo, caller.SubjectID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidEventDate
	}
	deadline, err := time.Parse(time.RFC3339, req.RegistrationDeadline)
	if err != nil {
		return nil, ErrInvalidEventDate
	}

	contact := strings.TrimSpace(req.OrganizerContact)
	if contact == "" {
		contact = organizer.Email
	}

	event := &model.Event{
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		Date:                 date,
		Time:                 req.Time,
		Location:             strings.TrimSpace(req.Location),
		EventType:            req.EventType,
		TargetCollegeID:      req.TargetCollegeID,
		MaxAttendees:         req.MaxAttendees,
		Category:             req.Category,
		OrganizerID:          organizer.AdminID,
		OrganizerName:        organizer.FullName,
		OrganizerContact:     contact,
		Requirements:         pq.StringArray(req.Requirements),
		Prizes:               pq.StringArray(req.Prizes),
		RegistrationDeadline: deadline,
		IsActive:             true,
	}
	event.Version = 1
	event.CreatedBy = &caller.SubjectID
	event.UpdatedBy = &caller.SubjectID

	if err := s.validate(ctx, s.repo, caller, event); err != nil {
		return nil, err
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("create event failed", zap.String("title", event.Title), zap.Error(err))
		return nil, err
	}

	s.logger.Info("event created", zap.String("event_id", event.EventID), zap.String("by", caller.SubjectID))
	return s.toEventResponse(event, repository.RegistrationCounts{}, ""), nil
}

// Update applies req. Raising max_attendees promotes waitlisted registrations;
// lowering it below the confirmed count is rejected.
func (s *eventService) Update(ctx context.Context, caller *access.Identity, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	var event *model.Event
	var counts repository.RegistrationCounts
	var promoted []model.Registration

	err := s.withRetry(ctx, func(tx *repository.Repository) error {
		e, err := lockEvent(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := checkEventScope(caller, e); err != nil {
			return err
		}
		if err := applyEventUpdate(e, req); err != nil {
			return err
		}
		e.UpdatedBy = &caller.SubjectID
		if err := s.validate(ctx, tx, caller, e); err != nil {
			return err
		}

		regs, err := tx.Registration.ListByEvent(ctx, id)
		if err != nil {
			return err
		}
		confirmed, _ := countActive(regs)
		if e.MaxAttendees < confirmed {
			return ErrCapacityBelowConfirmed
		}

		moved := promoteWaitlisted(e, regs)
		if err := tx.Event.Update(ctx, e); err != nil {
			return err
		}
		promoted = promoted[:0]
		for _, r := range moved {
			if err := tx.Registration.Update(ctx, r); err != nil {
				return err
			}
			promoted = append(promoted, *r)
		}

		c, w := countActive(regs)
		counts = repository.RegistrationCounts{Confirmed: c, Waitlisted: w}
		event = e
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update event failed", zap.String("event_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.notifyPromoted(ctx, event, promoted)
	return s.toEventResponse(event, counts, ""), nil
}

func (s *eventService) Delete(ctx context.Context, caller *access.Identity, id string) error {
	event, err := loadEvent(ctx, s.repo, id)
	if err != nil {
		return err
	}
	if err := checkEventScope(caller, event); err != nil {
		return err
	}
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("delete event failed", zap.String("event_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("event deleted", zap.String("event_id", id), zap.String("by", caller.SubjectID))
	return nil
}

// validate type/target pairing, the caller's college scope and the deadline; repo is the
// caller's transaction when there is one
func (s *eventService) validate(ctx context.Context, repo *repository.Repository, caller *access.Identity, e *model.Event) error {
	switch e.EventType {
	case model.EventTypeCollegeSpecific:
		if e.TargetCollegeID == nil || *e.TargetCollegeID == "" {
			return ErrTargetCollegeRequired
		}
		if _, err := loadCollege(ctx, repo, *e.TargetCollegeID); err != nil {
			return err
		}
	case model.EventTypeOpenToAll:
		if e.TargetCollegeID != nil {
			return ErrTargetCollegeNotAllowed
		}
	}

	scope, scoped, err := caller.CollegeScope()
	if err != nil {
		return err
	}
	if scoped && e.EventType == model.EventTypeCollegeSpecific && *e.TargetCollegeID != scope {
		return access.ErrOutOfScope
	}

	if _, err := time.Parse("15:04", e.Time); err != nil {
		return ErrInvalidEventDate
	}
	if e.RegistrationDeadline.After(e.StartsAt(s.loc)) {
		return ErrDeadlineAfterEvent
	}
	return nil
}

func applyEventUpdate(e *model.Event, req *dto.UpdateEventRequest) error {
	if req.Title != nil {
		e.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return ErrInvalidEventDate
		}
		e.Date = d
	}
	if req.Time != nil {
		e.Time = *req.Time
	}
	if req.Location != nil {
		e.Location = strings.TrimSpace(*req.Location)
	}
	if req.EventType != nil {
		e.EventType = *req.EventType
		if e.EventType == model.EventTypeOpenToAll && req.TargetCollegeID == nil {
			e.TargetCollegeID = nil
		}
	}
	if req.TargetCollegeID != nil {
		e.TargetCollegeID = req.TargetCollegeID
	}
	if req.MaxAttendees != nil {
		e.MaxAttendees = *req.MaxAttendees
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.OrganizerContact != nil {
		e.OrganizerContact = strings.TrimSpace(*req.OrganizerContact)
	}
	if req.Requirements != nil {
		e.Requirements = pq.StringArray(*req.Requirements)
	}
	if req.Prizes != nil {
		e.Prizes = pq.StringArray(*req.Prizes)
	}
	if req.RegistrationDeadline != nil {
		d, err := time.Parse(time.RFC3339, *req.RegistrationDeadline)
		if err != nil {
			return ErrInvalidEventDate
		}
		e.RegistrationDeadline = d
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	return nil
}

// ────────────────────── Admin: read ──────────────────────

func (s *eventService) GetForAdmin(ctx context.Context, caller *access.Identity, id string) (*dto.EventResponse, error) {
	event, err := loadEvent(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if err := checkEventScope(caller, event); err != nil {
		return nil, err
	}

	counts, err := s.repo.Registration.CountByEvents(ctx, []string{id})
	if err != nil {
		s.logger.Error("count registrations failed", zap.String("event_id", id), zap.Error(err))
		return nil, err
	}
	return s.toEventResponse(event, counts[id], ""), nil
}

func (s *eventService) ListForAdmin(ctx context.Context, caller *access.Identity, req *dto.EventListRequest) ([]dto.EventResponse, int64, error) {
	filters, err := s.listFilters(req)
	if err != nil {
		return nil, 0, err
	}

	scope, scoped, err := caller.CollegeScope()
	if err != nil {
		return nil, 0, err
	}
	if scoped {
		filters.ScopeCollegeID = scope
		filters.ScopeOrganizerID = caller.SubjectID
	}

	events, total, err := s.repo.Event.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return nil, 0, err
	}

	result, err := s.withCounts(ctx, events, nil)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *eventService) ListRegistrations(ctx context.Context, caller *access.Identity, id string) ([]dto.RegistrationResponse, error) {
	_, regs, users, err := s.registrationsWithUsers(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		result = append(result, toRegistrationResponse(&regs[i], users[regs[i].UserID]))
	}
	return result, nil
}

// ExportRegistrations attendee sheet of one event
func (s *eventService) ExportRegistrations(ctx context.Context, caller *access.Identity, id string) (*dto.ExportFile, error) {
	event, regs, users, err := s.registrationsWithUsers(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	headers := []string{"Member ID", "Full Name", "Email", "Phone", "College", "Batch Year", "Status", "Registered At", "Cancelled At"}
	widths := []float64{18, 24, 30, 16, 30, 12, 14, 22, 22}
	rows := make([][]interface{}, 0, len(regs))
	for i := range regs {
		r := &regs[i]
		row := []interface{}{"", "", "", "", "", "", r.Status, formatLocal(r.RegisteredAt, s.loc), ""}
		if u := users[r.UserID]; u != nil {
			row[0], row[1], row[2], row[3], row[4], row[5] = u.MemberID, u.FullName, u.Email, u.Phone, u.CollegeName, u.BatchYear
		}
		if r.CancelledAt != nil {
			row[8] = formatLocal(*r.CancelledAt, s.loc)
		}
		rows = append(rows, row)
	}

	data, err := buildSheet("Registrations", headers, widths, rows)
	if err != nil {
		s.logger.Error("build registration sheet failed", zap.String("event_id", id), zap.Error(err))
		return nil, err
	}
	name := fmt.Sprintf("registrations_%s_%s.xlsx", event.Date.Format("20060102"), event.EventID)
	return xlsxFile(name, data), nil
}

func (s *eventService) registrationsWithUsers(ctx context.Context, caller *access.Identity, id string) (*model.Event, []model.Registration, map[string]*model.User, error) {
	event, err := loadEvent(ctx, s.repo, id)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := checkEventScope(caller, event); err != nil {
		return nil, nil, nil, err
	}

	regs, err := s.repo.Registration.ListByEvent(ctx, id)
	if err != nil {
		s.logger.Error("list registrations failed", zap.String("event_id", id), zap.Error(err))
		return nil, nil, nil, err
	}

	ids := make([]string, 0, len(regs))
	for i := range regs {
		ids = append(ids, regs[i].UserID)
	}
	list, err := s.repo.User.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("load registrants failed", zap.String("event_id", id), zap.Error(err))
		return nil, nil, nil, err
	}
	users := make(map[string]*model.User, len(list))
	for i := range list {
		users[list[i].UserID] = &list[i]
	}
	return event, regs, users, nil
}

// ────────────────────── Members ──────────────────────

func (s *eventService) ListForMember(ctx context.Context, userID string, req *dto.EventListRequest) ([]dto.EventResponse, int64, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, 0, err
	}

	filters, err := s.listFilters(req)
	if err != nil {
		return nil, 0, err
	}
	filters.MemberView = true
	filters.MemberCollegeID = collegeOf(user)
	filters.ActiveOnly = true

	events, total, err := s.repo.Event.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list member events failed", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, err
	}

	mine, err := s.myStatuses(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	result, err := s.withCounts(ctx, events, mine)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *eventService) GetForMember(ctx context.Context, userID, id string) (*dto.EventResponse, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	event, err := loadEvent(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, ErrEventNotFound
	}
	if !event.VisibleTo(collegeOf(user)) {
		return nil, ErrEventNotVisible
	}

	mine, err := s.myStatuses(ctx, userID)
	if err != nil {
		return nil, err
	}
	result, err := s.withCounts(ctx, []model.Event{*event}, mine)
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

// Register places the user on the event, confirmed while spots remain and waitlisted after
func (s *eventService) Register(ctx context.Context, userID, id string) (*dto.RegisterEventResponse, error) {
	user, err := loadUser(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	var event *model.Event
	var reg *model.Registration
	err = s.withRetry(ctx, func(tx *repository.Repository) error {
		e, err := lockEvent(ctx, tx, id)
		if err != nil {
			return err
		}
		if !e.IsActive {
			return ErrEventInactive
		}
		if !e.VisibleTo(collegeOf(user)) {
			return ErrEventNotVisible
		}

		regs, err := tx.Registration.ListByEvent(ctx, id)
		if err != nil {
			return err
		}

		now := s.now()
		decision := CanRegister(e, regs, userID, now)
		if !decision.Allowed {
			return decision.Reason
		}

		if err := tx.Event.Update(ctx, e); err != nil {
			return err
		}
		r := &model.Registration{
			EventID:      id,
			UserID:       userID,
			RegisteredAt: now,
			Status:       decision.Status,
		}
		if err := tx.Registration.Create(ctx, r); err != nil {
			if repository.IsUniqueViolation(err, "uq_registration_active") {
				return ErrAlreadyRegistered
			}
			return err
		}

		event, reg = e, r
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("register for event failed", zap.String("event_id", id), zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	notice := NoticeConfirmed
	if reg.Status == model.RegistrationWaitlisted {
		notice = NoticeWaitlisted
	}
	s.notifier.Notify(notice, user, event)

	s.logger.Info("event registration",
		zap.String("event_id", id),
		zap.String("user_id", userID),
		zap.String("status", reg.Status),
	)
	return &dto.RegisterEventResponse{Registration: toRegistrationResponse(reg, nil)}, nil
}

// Unregister cancels the user's active registration; a freed confirmed spot goes to the earliest waitlisted user
func (s *eventService) Unregister(ctx context.Context, userID, id string) (*dto.RegisterEventResponse, error) {
	var event *model.Event
	var cancelled model.Registration
	var promoted []model.Registration

	err := s.withRetry(ctx, func(tx *repository.Repository) error {
		e, err := lockEvent(ctx, tx, id)
		if err != nil {
			return err
		}

		regs, err := tx.Registration.ListByEvent(ctx, id)
		if err != nil {
			return err
		}

		c, moved, err := cancelRegistration(e, regs, userID, s.now())
		if err != nil {
			return err
		}
		if err := tx.Event.Update(ctx, e); err != nil {
			return err
		}
		if err := tx.Registration.Update(ctx, c); err != nil {
			return err
		}
		promoted = promoted[:0]
		for _, r := range moved {
			if err := tx.Registration.Update(ctx, r); err != nil {
				return err
			}
			promoted = append(promoted, *r)
		}

		event, cancelled = e, *c
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("unregister from event failed", zap.String("event_id", id), zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	s.notifyPromoted(ctx, event, promoted)

	resp := &dto.RegisterEventResponse{Registration: toRegistrationResponse(&cancelled, nil)}
	if len(promoted) > 0 {
		p := toRegistrationResponse(&promoted[0], nil)
		resp.Promoted = &p
	}
	return resp, nil
}

// MyEvents events the user holds an active registration for, soonest first
func (s *eventService) MyEvents(ctx context.Context, userID string) ([]dto.EventResponse, error) {
	events, mine, err := s.myEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, events, mine)
}

// MyCalendar the user's registered events as an iCalendar document
func (s *eventService) MyCalendar(ctx context.Context, userID string) ([]byte, error) {
	events, mine, err := s.myEvents(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]calendar.Entry, 0, len(events))
	for i := range events {
		e := &events[i]
		title := e.Title
		if mine[e.EventID] == model.RegistrationWaitlisted {
			title = "[Waitlisted] " + title
		}
		entries = append(entries, calendar.Entry{
			ID:          e.EventID,
			Title:       title,
			Description: e.Description,
			Location:    e.Location,
			Start:       e.StartsAt(s.loc),
			Duration:    calendarEventDuration,
		})
	}
	return calendar.Export(entries, s.now()), nil
}

func (s *eventService) myEvents(ctx context.Context, userID string) ([]model.Event, map[string]string, error) {
	if _, err := loadUser(ctx, s.repo, userID); err != nil {
		return nil, nil, err
	}

	mine, err := s.myStatuses(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, 0, len(mine))
	for id := range mine {
		ids = append(ids, id)
	}

	events, err := s.repo.Event.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("load registered events failed", zap.String("user_id", userID), zap.Error(err))
		return nil, nil, err
	}
	return events, mine, nil
}

// myStatuses active registration status per event id
func (s *eventService) myStatuses(ctx context.Context, userID string) (map[string]string, error) {
	regs, err := s.repo.Registration.ListByUser(ctx, userID, true)
	if err != nil {
		s.logger.Error("list user registrations failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make(map[string]string, len(regs))
	for i := range regs {
		out[regs[i].EventID] = regs[i].Status
	}
	return out, nil
}

// ────────────────────── helpers ──────────────────────

// withRetry runs fn in a transaction, retrying when the event version moved underneath it
func (s *eventService) withRetry(ctx context.Context, fn func(tx *repository.Repository) error) error {
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err := s.repo.Transaction(ctx, fn)
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return err
		}
		s.logger.Warn("event version conflict", zap.Int("attempt", attempt))
	}
	return ErrEventBusy
}

func (s *eventService) listFilters(req *dto.EventListRequest) (repository.EventListFilters, error) {
	filters := repository.EventListFilters{
		EventType:       req.EventType,
		Category:        req.Category,
		TargetCollegeID: req.CollegeID,
	}
	if req.From != "" {
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return filters, ErrInvalidEventDate
		}
		filters.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return filters, ErrInvalidEventDate
		}
		before := to.AddDate(0, 0, 1)
		filters.Before = &before
	}
	if req.Upcoming {
		today := s.today()
		if filters.From == nil || filters.From.Before(today) {
			filters.From = &today
		}
	}
	return filters, nil
}

// today midnight of the current society-local date, as stored in event_date
func (s *eventService) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *eventService) withCounts(ctx context.Context, events []model.Event, mine map[string]string) ([]dto.EventResponse, error) {
	ids := make([]string, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].EventID)
	}
	counts, err := s.repo.Registration.CountByEvents(ctx, ids)
	if err != nil {
		s.logger.Error("count registrations failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		e := &events[i]
		result = append(result, *s.toEventResponse(e, counts[e.EventID], mine[e.EventID]))
	}
	return result, nil
}

func (s *eventService) notifyPromoted(ctx context.Context, event *model.Event, promoted []model.Registration) {
	if len(promoted) == 0 {
		return
	}
	ids := make([]string, 0, len(promoted))
	for i := range promoted {
		ids = append(ids, promoted[i].UserID)
	}
	users, err := s.repo.User.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("load promoted users failed", zap.String("event_id", event.EventID), zap.Error(err))
		return
	}
	for i := range users {
		s.logger.Info("waitlisted registration promoted",
			zap.String("event_id", event.EventID),
			zap.String("user_id", users[i].UserID),
		)
		s.notifier.Notify(NoticePromoted, &users[i], event)
	}
}

func (s *eventService) toEventResponse(e *model.Event, counts repository.RegistrationCounts, mine string) *dto.EventResponse {
	requirements := []string(e.Requirements)
	if requirements == nil {
		requirements = []string{}
	}
	prizes := []string(e.Prizes)
	if prizes == nil {
		prizes = []string{}
	}

	return &dto.EventResponse{
		ID:                   e.EventID,
		Title:                e.Title,
		Description:          e.Description,
		Date:                 e.Date.Format(dateLayout),
		Time:                 e.Time,
		Location:             e.Location,
		EventType:            e.EventType,
		TargetCollegeID:      e.TargetCollegeID,
		MaxAttendees:         e.MaxAttendees,
		Category:             e.Category,
		OrganizerID:          e.OrganizerID,
		OrganizerName:        e.OrganizerName,
		OrganizerContact:     e.OrganizerContact,
		Requirements:         requirements,
		Prizes:               prizes,
		RegistrationDeadline: formatTime(e.RegistrationDeadline),
		IsActive:             e.IsActive,
		ConfirmedCount:       counts.Confirmed,
		WaitlistedCount:      counts.Waitlisted,
		AvailableSpots:       AvailableSpots(e, counts.Confirmed),
		RegistrationStatus:   RegistrationStatus(e, counts.Confirmed, s.now()),
		MyRegistration:       mine,
		CreatedAt:            formatTime(e.CreatedAt),
	}
}

// checkEventScope college admins reach events they organised or that target their college
func checkEventScope(caller *access.Identity, e *model.Event) error {
	scope, scoped, err := caller.CollegeScope()
	if err != nil {
		return err
	}
	if !scoped || e.OrganizerID == caller.SubjectID {
		return nil
	}
	if e.TargetCollegeID != nil && *e.TargetCollegeID == scope {
		return nil
	}
	return access.ErrOutOfScope
}

func lockEvent(ctx context.Context, tx *repository.Repository, id string) (*model.Event, error) {
	e, err := tx.Event.GetForUpdate(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func collegeOf(u *model.User) string {
	if u.CollegeID == nil {
		return ""
	}
	return *u.CollegeID
}

func formatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}

func toRegistrationResponse(r *model.Registration, u *model.User) dto.RegistrationResponse {
	resp := dto.RegistrationResponse{
		ID:           r.RegistrationID,
		EventID:      r.EventID,
		UserID:       r.UserID,
		Status:       r.Status,
		RegisteredAt: formatTime(r.RegisteredAt),
		CancelledAt:  formatTimePtr(r.CancelledAt),
	}
	if u != nil {
		resp.UserName = u.FullName
		resp.UserEmail = u.Email
		resp.MemberID = u.MemberID
	}
	return resp
}
