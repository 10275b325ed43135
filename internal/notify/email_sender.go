/*
Package notify delivers the rendered report over authenticated SMTP.
*/
package notify

import (
	"log"
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/Duarte0903/stock-summary/internal/types"
)

// Sender and recipient are fixed identities, not configuration.
const (
	senderAddress    = "duarte0903@gmail.com"
	recipientAddress = "duarte0903@gmail.com"
)

// SMTPConfig holds the relay endpoint and the account secret.
type SMTPConfig struct {
	Host     string
	Port     int
	Password string
}

// DeliveryResult reports the outcome of one send attempt. A failed delivery
// never propagates as an error or panic past the dispatcher; callers that
// want to alert on it can inspect the result.
type DeliveryResult struct {
	Sent bool
	Err  error
}

// dialer abstracts gomail's dial-and-send so delivery failures are testable.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers one HTML message per run to the fixed recipient.
type EmailSender struct {
	cfg  SMTPConfig
	dial func(cfg SMTPConfig) dialer
}

// NewEmailSender creates a sender using STARTTLS with AUTH on the relay.
func NewEmailSender(cfg SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg, dial: newGomailDialer}
}

func newGomailDialer(cfg SMTPConfig) dialer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, senderAddress, cfg.Password)
	d.Timeout = 10 * time.Second
	return d
}

// Send delivers the rendered content. Any failure (connection, auth, send)
// is logged and reported in the result.
func (s *EmailSender) Send(content *types.EmailContent) DeliveryResult {
	m := gomail.NewMessage()
	m.SetHeader("From", senderAddress)
	m.SetHeader("To", recipientAddress)
	m.SetHeader("Subject", content.Subject)
	m.SetBody("text/html", content.HTMLBody)

	if err := s.dial(s.cfg).DialAndSend(m); err != nil {
		log.Printf("Failed to send email: %v", err)
		return DeliveryResult{Sent: false, Err: err}
	}

	log.Printf("Email sent successfully to %s!", recipientAddress)
	return DeliveryResult{Sent: true}
}
