package mailer

import "net/smtp"

// SetSendFunc swaps the SMTP transport for tests.
func SetSendFunc(n *SMTPNotifier, fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	n.send = fn
}
