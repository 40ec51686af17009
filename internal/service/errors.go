package service

import (
	pkgerrors "devs-society/backend/pkg/errors"
)

// ── Accounts ──

var (
	ErrInvalidCredentials = pkgerrors.Unauthorized("invalid credentials")
	ErrAccountDisabled    = pkgerrors.Unauthorized("account is disabled")
	ErrUserNotFound       = pkgerrors.NotFound("user not found")
	ErrEmailTaken         = pkgerrors.Conflict("email is already registered")
	ErrSignUpClosed       = pkgerrors.Forbidden("member registration is currently closed")
	ErrCollegeLocked      = pkgerrors.InvalidState("college cannot be changed once set, contact an admin")
)

// ── Admins ──

var (
	ErrAdminNotFound        = pkgerrors.NotFound("admin not found")
	ErrUsernameTaken        = pkgerrors.Conflict("username is already taken")
	ErrAdminEmailTaken      = pkgerrors.Conflict("email is already used by another admin")
	ErrTenureScopeRequired  = pkgerrors.Validation("role admin requires college_id and batch_year")
	ErrSuperAdminScoped     = pkgerrors.Validation("a super-admin cannot be assigned to a college")
	ErrCannotDeactivateSelf = pkgerrors.InvalidState("you cannot deactivate your own account")
	ErrAdminHoldsTenure     = pkgerrors.InvalidState("admin holds an active tenure, end it first")
)

// ── Colleges and tenure ──

var (
	ErrCollegeNotFound        = pkgerrors.NotFound("college not found")
	ErrCollegeInactive        = pkgerrors.Validation("college is not active")
	ErrCollegeCodeTaken       = pkgerrors.Conflict("college code already exists")
	ErrCollegeNameTaken       = pkgerrors.Conflict("college name already exists")
	ErrCollegeHasActiveTenure = pkgerrors.InvalidState("college has active tenure heads, end them first")
	ErrCollegeHasEvents       = pkgerrors.InvalidState("college is the target of existing events")
	ErrTenureExists           = pkgerrors.Conflict("an active tenure head already exists for this college and batch year")
	ErrAdminHasTenure         = pkgerrors.Conflict("admin already holds an active tenure")
	ErrAdminCannotHoldTenure  = pkgerrors.Validation("only admins with role admin can hold a tenure")
	ErrAdminInactive          = pkgerrors.Validation("admin is not active")
	ErrNoActiveTenure         = pkgerrors.InvalidState("admin has no active tenure")
	ErrTransferToSameAdmin    = pkgerrors.Validation("admin already heads this college for the batch year")
	ErrInvalidStartDate       = pkgerrors.Validation("start_date must be a YYYY-MM-DD date")
)

// ── Events ──

var (
	ErrEventNotFound           = pkgerrors.NotFound("event not found")
	ErrEventInactive           = pkgerrors.Registration("event is not active")
	ErrDeadlinePassed          = pkgerrors.Registration("deadline passed")
	ErrAlreadyRegistered       = pkgerrors.Registration("already registered")
	ErrNotRegistered           = pkgerrors.InvalidState("no active registration for this event")
	ErrEventNotVisible         = pkgerrors.Forbidden("event is restricted to another college")
	ErrTargetCollegeRequired   = pkgerrors.Validation("target_college_id is required for college-specific events")
	ErrTargetCollegeNotAllowed = pkgerrors.Validation("open-to-all events cannot target a college")
	ErrDeadlineAfterEvent      = pkgerrors.Validation("registration deadline must not be after the event start")
	ErrInvalidEventDate        = pkgerrors.Validation("invalid event date, time or deadline")
	ErrCapacityBelowConfirmed  = pkgerrors.Validation("max_attendees cannot be lower than the confirmed registrations")
	ErrEventBusy               = pkgerrors.Conflict("event was modified concurrently, please retry")
)
