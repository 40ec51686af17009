package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"devs-society/backend/internal/model"
	"devs-society/backend/pkg/mailer"
)

// Notice kinds sent to members about their registrations
const (
	NoticeConfirmed  = "confirmed"
	NoticeWaitlisted = "waitlisted"
	NoticePromoted   = "promoted"
)

// Notifier delivers registration notices. Implementations must not block the caller.
type Notifier interface {
	Notify(kind string, user *model.User, event *model.Event)
}

// MailNotifier sends notices by email in the background; failures are only logged
type MailNotifier struct {
	mailer  *mailer.Mailer
	society string
	loc     *time.Location
	logger  *zap.Logger
}

// NewMailNotifier creates a MailNotifier
func NewMailNotifier(m *mailer.Mailer, society string, loc *time.Location, logger *zap.Logger) *MailNotifier {
	return &MailNotifier{mailer: m, society: society, loc: loc, logger: logger}
}

// Notify implements Notifier
func (n *MailNotifier) Notify(kind string, user *model.User, event *model.Event) {
	if !n.mailer.Enabled() {
		return
	}
	msg := n.compose(kind, user, event)
	go func() {
		if err := n.mailer.Send(msg); err != nil {
			n.logger.Warn("send registration notice failed",
				zap.String("kind", kind),
				zap.String("user_id", user.UserID),
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
		}
	}()
}

func (n *MailNotifier) compose(kind string, user *model.User, event *model.Event) mailer.Message {
	when := event.StartsAt(n.loc).Format("Mon, 02 Jan 2006 15:04 MST")

	var subject, lead string
	switch kind {
	case NoticeWaitlisted:
		subject = fmt.Sprintf("Waitlisted: %s", event.Title)
		lead = "The event is currently full, so you have been placed on the waitlist. We will email you if a place opens up."
	case NoticePromoted:
		subject = fmt.Sprintf("You're in: %s", event.Title)
		lead = "A place opened up and your waitlisted registration is now confirmed."
	default:
		subject = fmt.Sprintf("Registration confirmed: %s", event.Title)
		lead = "Your registration is confirmed."
	}

	body := fmt.Sprintf("Hi %s,\n\n%s\n\nEvent: %s\nWhen: %s\nWhere: %s\nMember ID: %s\n\n%s\n",
		user.FullName, lead, event.Title, when, event.Location, user.MemberID, n.society)

	return mailer.Message{To: user.Email, Subject: subject, Body: body}
}

// nopNotifier drops every notice
type nopNotifier struct{}

func (nopNotifier) Notify(string, *model.User, *model.Event) {}
