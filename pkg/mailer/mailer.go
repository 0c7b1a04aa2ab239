package mailer

import (
	"fmt"

	"ecom-store/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Dispatcher delivers an OTP code to a user, best-effort. Implementations
// must not block the caller and must not surface delivery failures.
type Dispatcher interface {
	SendOTP(email, code string)
}

// SMTPDispatcher sends OTP emails through an SMTP relay. Every call runs the
// send on its own goroutine; errors are logged and swallowed so a broken mail
// transport never reaches the registration flow.
type SMTPDispatcher struct {
	config        utils.EmailConfig
	expiryMinutes int
	log           *zap.Logger
	send          func(m *gomail.Message) error
}

func NewSMTPDispatcher(config utils.EmailConfig, expiryMinutes int, log *zap.Logger) *SMTPDispatcher {
	dialer := gomail.NewDialer(config.Host, config.Port, config.User, config.Password)

	return &SMTPDispatcher{
		config:        config,
		expiryMinutes: expiryMinutes,
		log:           log.With(zap.String("component", "mailer")),
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

func (d *SMTPDispatcher) SendOTP(email, code string) {
	m := gomail.NewMessage()
	m.SetHeader("From", d.config.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/html", d.body(code))

	go func() {
		if err := d.send(m); err != nil {
			d.log.Error("Failed to send OTP email",
				zap.Error(err),
				zap.String("email", email),
			)
		}
	}()
}

func (d *SMTPDispatcher) body(code string) string {
	return fmt.Sprintf(
		"<p>Your verification code is <strong>%s</strong>.</p>"+
			"<p>This code expires in %d minutes.</p>",
		code, d.expiryMinutes,
	)
}

// LogDispatcher writes the OTP to the log instead of sending mail.
// Used when no SMTP host is configured (local development, tests).
type LogDispatcher struct {
	log *zap.Logger
}

func NewLogDispatcher(log *zap.Logger) *LogDispatcher {
	return &LogDispatcher{log: log.With(zap.String("component", "mailer"))}
}

func (d *LogDispatcher) SendOTP(email, code string) {
	d.log.Info("OTP generated (no SMTP host configured)",
		zap.String("email", email),
		zap.String("otp_code", code),
	)
}
