package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	appConfig "github.com/vinayak3788/mvps-print-api/config"
)

// MailerInterface defines the outbound email operations
type MailerInterface interface {
	Send(to []string, cc, subject, htmlBody string) error
}

// SMTPMailer implements MailerInterface over SMTP
type SMTPMailer struct {
	dialer     *gomail.Dialer
	from       string
	fromName   string
	configured bool
}

var mailerServiceInstance MailerInterface

// InitMailerService initializes the SMTP mailer. Missing credentials disable
// mail features instead of failing startup.
func InitMailerService() MailerInterface {
	cfg := appConfig.GetConfig()

	mailer := &SMTPMailer{
		from:       cfg.EmailUser,
		fromName:   "MVPS Printing Services",
		configured: cfg.EmailConfigured(),
	}
	if mailer.configured {
		mailer.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	} else {
		log.Println("Missing EMAIL_USER or EMAIL_PASS in environment. Email features disabled.")
	}

	mailerServiceInstance = mailer
	return mailerServiceInstance
}

// GetMailerService returns the initialized mailer instance
func GetMailerService() MailerInterface {
	return mailerServiceInstance
}

// SetMailerService sets the mailer instance (primarily for testing)
func SetMailerService(service MailerInterface) {
	mailerServiceInstance = service
}

// Send delivers an HTML email. When SMTP is not configured it is a no-op.
func (m *SMTPMailer) Send(to []string, cc, subject, htmlBody string) error {
	if !m.configured {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to...)
	if cc != "" {
		msg.SetHeader("Cc", cc)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
