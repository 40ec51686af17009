package mailer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"devs-society/backend/config"
)

// Message one outgoing plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer SMTP sender. A Mailer built without an SMTP host logs messages instead of sending them.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	domain string
	logger *zap.Logger
}

// New creates a Mailer
func New(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{from: cfg.From, domain: domainOf(cfg.From), logger: logger}
	if cfg.SMTPHost != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	}
	return m
}

// Enabled reports whether an SMTP server is configured
func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

// Send delivers msg synchronously
func (m *Mailer) Send(msg Message) error {
	if !m.Enabled() {
		m.logger.Debug("mail disabled, message dropped",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return nil
	}

	gm := gomail.NewMessage()
	gm.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.New().String(), m.domain))
	gm.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func domainOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == '@' {
			return addr[i+1:]
		}
	}
	return "localhost"
}
