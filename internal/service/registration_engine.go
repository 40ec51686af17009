package service

import (
	"sort"
	"time"

	"devs-society/backend/internal/model"
)

// Derived registration states; computed on read, never stored
const (
	RegistrationOpen   = "open"
	RegistrationFull   = "full"
	RegistrationClosed = "closed"
)

// RegistrationDecision outcome of CanRegister
type RegistrationDecision struct {
	Allowed bool
	Reason  error  // set when not allowed
	Status  string // confirmed or waitlisted when allowed
}

// CanRegister decides whether userID may register for event given its current registrations.
// Checks in order: deadline, existing active registration, capacity.
func CanRegister(event *model.Event, regs []model.Registration, userID string, now time.Time) RegistrationDecision {
	if now.After(event.RegistrationDeadline) {
		return RegistrationDecision{Reason: ErrDeadlinePassed}
	}
	if activeRegistration(regs, userID) >= 0 {
		return RegistrationDecision{Reason: ErrAlreadyRegistered}
	}
	confirmed, _ := countActive(regs)
	if confirmed >= event.MaxAttendees {
		return RegistrationDecision{Allowed: true, Status: model.RegistrationWaitlisted}
	}
	return RegistrationDecision{Allowed: true, Status: model.RegistrationConfirmed}
}

// AvailableSpots free confirmed places, never negative
func AvailableSpots(event *model.Event, confirmed int) int {
	if n := event.MaxAttendees - confirmed; n > 0 {
		return n
	}
	return 0
}

// RegistrationStatus closed after the deadline, full without spots, open otherwise
func RegistrationStatus(event *model.Event, confirmed int, now time.Time) string {
	if now.After(event.RegistrationDeadline) {
		return RegistrationClosed
	}
	if AvailableSpots(event, confirmed) <= 0 {
		return RegistrationFull
	}
	return RegistrationOpen
}

// cancelRegistration cancels the user's active registration in regs and promotes
// waitlisted registrations into any freed capacity. The returned pointers alias regs.
func cancelRegistration(event *model.Event, regs []model.Registration, userID string, now time.Time) (*model.Registration, []*model.Registration, error) {
	i := activeRegistration(regs, userID)
	if i < 0 {
		return nil, nil, ErrNotRegistered
	}
	cancelled := &regs[i]
	cancelled.Status = model.RegistrationCancelled
	cancelled.CancelledAt = &now

	return cancelled, promoteWaitlisted(event, regs), nil
}

// promoteWaitlisted confirms waitlisted registrations, earliest first, until the event is full
func promoteWaitlisted(event *model.Event, regs []model.Registration) []*model.Registration {
	confirmed, _ := countActive(regs)

	waiting := make([]*model.Registration, 0)
	for i := range regs {
		if regs[i].Status == model.RegistrationWaitlisted {
			waiting = append(waiting, &regs[i])
		}
	}
	sort.SliceStable(waiting, func(a, b int) bool {
		if !waiting[a].RegisteredAt.Equal(waiting[b].RegisteredAt) {
			return waiting[a].RegisteredAt.Before(waiting[b].RegisteredAt)
		}
		return waiting[a].RegistrationID < waiting[b].RegistrationID
	})

	var promoted []*model.Registration
	for _, r := range waiting {
		if confirmed >= event.MaxAttendees {
			break
		}
		r.Status = model.RegistrationConfirmed
		confirmed++
		promoted = append(promoted, r)
	}
	return promoted
}

func activeRegistration(regs []model.Registration, userID string) int {
	for i := range regs {
		if regs[i].UserID == userID && regs[i].IsActive() {
			return i
		}
	}
	return -1
}

func countActive(regs []model.Registration) (confirmed, waitlisted int) {
	for i := range regs {
		switch regs[i].Status {
		case model.RegistrationConfirmed:
			confirmed++
		case model.RegistrationWaitlisted:
			waitlisted++
		}
	}
	return confirmed, waitlisted
}
