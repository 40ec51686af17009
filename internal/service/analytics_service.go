package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"devs-society/backend/internal/access"
	"devs-society/backend/internal/dto"
	"devs-society/backend/internal/model"
	"devs-society/backend/internal/repository"
)

// AnalyticsService dashboard figures
type AnalyticsService interface {
	Overview(ctx context.Context, caller *access.Identity) (*dto.OverviewResponse, error)
}

type analyticsService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService creates an AnalyticsService
func NewAnalyticsService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &analyticsService{repo: repo, loc: loc, logger: logger, now: time.Now}
}

// Overview counts members, colleges, events and registrations; college admins only see their college
func (s *analyticsService) Overview(ctx context.Context, caller *access.Identity) (*dto.OverviewResponse, error) {
	scope, scoped, err := caller.CollegeScope()
	if err != nil {
		return nil, err
	}

	resp := &dto.OverviewResponse{CollegeID: scope}

	active := true
	if resp.TotalUsers, err = s.repo.User.Count(ctx, repository.UserListFilters{CollegeID: scope}); err != nil {
		return nil, s.fail("count users", err)
	}
	if resp.ActiveUsers, err = s.repo.User.Count(ctx, repository.UserListFilters{CollegeID: scope, IsActive: &active}); err != nil {
		return nil, s.fail("count active users", err)
	}

	if scoped {
		resp.TotalColleges = 1
	} else if resp.TotalColleges, err = s.repo.College.Count(ctx); err != nil {
		return nil, s.fail("count colleges", err)
	}

	y, m, d := s.now().In(s.loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	upcoming := repository.EventListFilters{From: &today}
	past := repository.EventListFilters{Before: &today}
	if scoped {
		upcoming.ScopeCollegeID, upcoming.ScopeOrganizerID = scope, caller.SubjectID
		past.ScopeCollegeID, past.ScopeOrganizerID = scope, caller.SubjectID
	}
	if resp.UpcomingEvents, err = s.repo.Event.Count(ctx, upcoming); err != nil {
		return nil, s.fail("count upcoming events", err)
	}
	if resp.PastEvents, err = s.repo.Event.Count(ctx, past); err != nil {
		return nil, s.fail("count past events", err)
	}

	organizer := ""
	if scoped {
		organizer = caller.SubjectID
	}
	byStatus, err := s.repo.Registration.CountByStatus(ctx, scope, organizer)
	if err != nil {
		return nil, s.fail("count registrations", err)
	}
	resp.Registrations = dto.RegistrationCounts{
		Confirmed:  byStatus[model.RegistrationConfirmed],
		Waitlisted: byStatus[model.RegistrationWaitlisted],
		Cancelled:  byStatus[model.RegistrationCancelled],
	}

	return resp, nil
}

func (s *analyticsService) fail(op string, err error) error {
	s.logger.Error(op+" failed", zap.Error(err))
	return err
}
