package mailer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rahmadfadli/silahan-backend/pkg/config"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers account lifecycle mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendActivation(ctx context.Context, to, username, token string) error
	SendPasswordReset(ctx context.Context, to, username, token string) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	dialer  sender
	from    string
	baseURL string
	logg    *logger.Logger
}

// New builds a Mailer from config. When SMTP is not configured it returns a
// no-op mailer that logs the links instead, which keeps local development
// working without a relay.
func New(cfg config.MailConfig, app config.AppConfig, logg *logger.Logger) Mailer {
	if !cfg.Enabled() {
		return &LogMailer{baseURL: app.BaseURL, logg: logg}
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{
		dialer:  dialer,
		from:    cfg.From,
		baseURL: app.BaseURL,
		logg:    logg,
	}
}

// SendActivation mails the account activation link.
func (m *SMTPMailer) SendActivation(ctx context.Context, to, username, token string) error {
	link := buildLink(m.baseURL, "/activate", token)
	body := fmt.Sprintf(
		"<p>Halo %s,</p><p>Akun Anda telah terdaftar di SILAHAN. Silakan aktivasi akun melalui tautan berikut (berlaku 1 jam):</p><p><a href=%q>%s</a></p>",
		username, link, link,
	)
	return m.send(ctx, to, "Aktivasi Akun SILAHAN", body)
}

// SendPasswordReset mails the password reset link.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, username, token string) error {
	link := buildLink(m.baseURL, "/reset-password", token)
	body := fmt.Sprintf(
		"<p>Halo %s,</p><p>Kami menerima permintaan untuk mengatur ulang kata sandi Anda. Gunakan tautan berikut (berlaku 1 jam):</p><p><a href=%q>%s</a></p><p>Abaikan email ini jika Anda tidak meminta pengaturan ulang.</p>",
		username, link, link,
	)
	return m.send(ctx, to, "Atur Ulang Kata Sandi SILAHAN", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	if m.logg != nil {
		m.logg.Info(m.logg.WithField(ctx, "mail_subject", subject), "mail delivered")
	}
	return nil
}

// LogMailer is the dev fallback used when SMTP is not configured. It logs the
// links instead of delivering them.
type LogMailer struct {
	baseURL string
	logg    *logger.Logger
}

func (m *LogMailer) SendActivation(ctx context.Context, to, username, token string) error {
	if m.logg != nil {
		ctx = m.logg.WithFields(ctx, map[string]any{
			"mail_to": to,
			"link":    buildLink(m.baseURL, "/activate", token),
		})
		m.logg.Info(ctx, "smtp disabled, activation mail skipped")
	}
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, username, token string) error {
	if m.logg != nil {
		ctx = m.logg.WithFields(ctx, map[string]any{
			"mail_to": to,
			"link":    buildLink(m.baseURL, "/reset-password", token),
		})
		m.logg.Info(ctx, "smtp disabled, password reset mail skipped")
	}
	return nil
}

func buildLink(baseURL, path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", baseURL, path, url.QueryEscape(token))
}
