package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/salon-booking/internal/config"
)

// Sender delivers OTP emails. It is an interface so handlers can be
// tested without an SMTP server.
type Sender interface {
	SendOTP(to, code string) error
	SendPasswordReset(to, code string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *Mailer) SendOTP(to, code string) error {
	return m.send(to, "Your Verification Code", otpBody("Verify Your Account", "Your verification code is:", code))
}

func (m *Mailer) SendPasswordReset(to, code string) error {
	return m.send(to, "Password Reset Request", otpBody("Reset Your Password", "Your password reset code is:", code))
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

func otpBody(title, lead, code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2>%s</h2>
          <p>%s</p>
          <h1 style="font-size: 32px; letter-spacing: 5px; background: #f4f4f4; padding: 10px; text-align: center;">%s</h1>
          <p>This code will expire in 15 minutes.</p>
          <p>If you didn't request this code, please ignore this email.</p>
        </div>`, title, lead, code)
}
