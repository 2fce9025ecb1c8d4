package mailer

import (
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"

	"github.com/tartampluch/birthday-cards/internal/config"
	"github.com/tartampluch/birthday-cards/internal/engine"
)

// Config holds the externally supplied SMTP endpoint and account.
// The password is loaded from the system keyring by the caller; it is never
// persisted in preferences.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Validate checks the fields required before any send is attempted.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New(config.ErrSMTPHostEmpty)
	}
	if c.From == "" {
		return errors.New(config.ErrSMTPFromEmpty)
	}
	return nil
}

// Addr returns the host:port dial address.
func (c Config) Addr() string {
	return c.Host + config.AddrSeparator + strconv.Itoa(c.Port)
}

// Notifier sends one reminder message per upcoming birthday.
// The interface exists so the UI layer can be tested without a mail server.
type Notifier interface {
	Notify(recipient string, b engine.UpcomingBirthday) error
}

// SMTPNotifier implements Notifier over a plain SMTP session.
// Each Notify call is a single blocking network exchange; there is no retry
// and no batching. A failed send is reported to the caller, which continues
// with the rest of the batch.
type SMTPNotifier struct {
	cfg Config

	// send is swappable for tests; defaults to smtp.SendMail, which
	// negotiates STARTTLS when the server advertises it.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier builds a notifier for the given endpoint.
func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:  cfg,
		send: smtp.SendMail,
	}
}

// Notify sends the reminder for one upcoming birthday to the recipient.
func (n *SMTPNotifier) Notify(recipient string, b engine.UpcomingBirthday) error {
	if err := n.cfg.Validate(); err != nil {
		return err
	}
	if recipient == "" {
		return errors.New(config.ErrRecipientEmpty)
	}

	msg := BuildMessage(n.cfg.From, recipient, b)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := n.send(n.cfg.Addr(), auth, n.cfg.From, []string{recipient}, msg); err != nil {
		slog.Warn(config.MsgReminderFail,
			config.LogKeyComponent, config.CompMailer,
			config.LogKeyHost, n.cfg.Host,
			config.LogKeyName, b.Name,
			config.LogKeyError, err)
		return fmt.Errorf("%s: %w", config.ErrSMTPSend, err)
	}

	slog.Info(config.MsgReminderSent,
		config.LogKeyComponent, config.CompMailer,
		config.LogKeyName, b.Name,
		config.LogKeyDays, b.DaysUntil)
	return nil
}

// BuildMessage assembles the RFC 5322 plaintext reminder.
func BuildMessage(from, to string, b engine.UpcomingBirthday) []byte {
	subject := fmt.Sprintf(config.SMTPSubjectFormat, b.Name)
	body := fmt.Sprintf(config.SMTPBodyFormat, b.Name, b.DaysUntil, b.Birthdate, b.Address)

	headers := config.MailHeaderFrom + ": " + from + config.MailCRLF +
		config.MailHeaderTo + ": " + to + config.MailCRLF +
		config.MailHeaderSubject + ": " + subject + config.MailCRLF

	return []byte(headers + config.MailCRLF + body)
}
