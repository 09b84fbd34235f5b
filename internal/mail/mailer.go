package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"folio/internal/model"
)

// Mailer notifies the site owner about new contact messages.
type Mailer interface {
	SendContactNotification(msg *model.ContactMessage) error
}

// SMTPMailer sends notifications through an SMTP relay via gomail.
type SMTPMailer struct {
	host      string
	port      int
	user      string
	password  string
	recipient string
}

// NewSMTPMailer creates a mailer for the given SMTP relay.
func NewSMTPMailer(host string, port int, user, password, recipient string) *SMTPMailer {
	return &SMTPMailer{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		recipient: recipient,
	}
}

// SendContactNotification forwards a contact message to the site owner.
func (m *SMTPMailer) SendContactNotification(msg *model.ContactMessage) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.user)
	mail.SetHeader("To", m.recipient)
	mail.SetHeader("Subject", fmt.Sprintf("[contact] %s", msg.Subject))
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message))

	d := gomail.NewDialer(m.host, m.port, m.user, m.password)
	return d.DialAndSend(mail)
}

// Noop is used when SMTP is not configured; submissions are still stored.
type Noop struct{}

// SendContactNotification does nothing.
func (Noop) SendContactNotification(*model.ContactMessage) error { return nil }
