package mailer

//go:generate mockgen -source=mailer.go -destination=mock_mailer.go -package=mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-hub/internal/config"
	"auction-hub/utils"

	"gopkg.in/gomail.v2"
)

// Sender delivers one-time verification codes
type Sender interface {
	SendOTP(ctx context.Context, toEmail, code string) error
}

// SMTPMailer sends mail through an SMTP relay. Without a relay host it only logs the code.
type SMTPMailer struct {
	cfg    config.EmailConfig
	ttl    time.Duration
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a mailer. otpTTL is only used in the message text.
func NewSMTPMailer(cfg config.EmailConfig, otpTTL time.Duration) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg, ttl: otpTTL}
	if m.Configured() {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return m
}

// Configured reports whether an SMTP relay is set up.
func (m *SMTPMailer) Configured() bool {
	return m.cfg.SMTPHost != "" && m.cfg.FromEmail != ""
}

// SendOTP mails code to toEmail
func (m *SMTPMailer) SendOTP(ctx context.Context, toEmail, code string) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("send otp: empty recipient")
	}
	if !m.Configured() {
		utils.Warn("SMTP not configured, demo OTP", map[string]any{"email": toEmail, "otp": code})
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}

	if err := m.dialer.DialAndSend(m.otpMessage(toEmail, code)); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	utils.Info("verification email sent", map[string]any{"email": toEmail})
	return nil
}

func (m *SMTPMailer) otpMessage(toEmail, code string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(m.ttl.Minutes())))
	return msg
}
