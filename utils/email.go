package utils

import (
	"context"
	"fmt"
	"io"

	"restaurant_pos/config"
	"restaurant_pos/notify"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Attachment struct {
	FileName string
	Content  []byte
}

// Mailer sends receipts over SMTP.
type Mailer struct {
	cfg config.SMTP
	log *zap.Logger
}

func NewMailer(cfg config.SMTP, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log.With(zap.String("component", "mailer"))}
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string, files ...Attachment) (notify.Result, error) {
	if !m.cfg.Enabled() {
		return notify.Skipped("smtp not configured"), nil
	}
	if to == "" {
		return notify.Skipped("recipient has no email"), nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	for _, f := range files {
		content := f.Content
		msg.Attach(f.FileName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(msg) }()
	select {
	case err := <-done:
		if err != nil {
			return notify.Result{}, fmt.Errorf("send email: %w", err)
		}
	case <-ctx.Done():
		return notify.Result{}, ctx.Err()
	}

	m.log.Info("email sent", zap.String("subject", subject))
	return notify.Sent(), nil
}
