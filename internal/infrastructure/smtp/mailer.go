package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/go-auth-api/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

const otpSubject = "Your verification code"

// OTPDeliverer emails registration codes.
type OTPDeliverer struct {
	mailer Mailer
}

func NewOTPDeliverer(mailer Mailer) *OTPDeliverer {
	return &OTPDeliverer{mailer: mailer}
}

func (d *OTPDeliverer) Deliver(_ context.Context, email, code string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires shortly; do not share it.", code)
	if err := d.mailer.SendEmail(email, otpSubject, body); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}
