// Package notify sends best-effort email to the recruiting office when a
// lead comes in. Sends never fail the action that triggered them; errors
// are logged and swallowed by the callers.
package notify

import (
	"context"
	"fmt"

	"github.com/trooper-recruit/engage-api/internal/config"
	"github.com/trooper-recruit/engage-api/internal/models"
	"gopkg.in/gomail.v2"
)

type Notifier interface {
	// RegistrationReceived announces a newly captured lead.
	RegistrationReceived(ctx context.Context, user *models.User) error
	// ApplicationStarted announces a has_applied transition.
	ApplicationStarted(ctx context.Context, user *models.User) error
}

type emailNotifier struct {
	dialer *gomail.Dialer
	from   string
	admin  string
}

// NewNotifier builds the SMTP notifier, or a no-op one when no SMTP host
// is configured (local development).
func NewNotifier(cfg *config.Config) Notifier {
	if cfg.Mail.SMTPHost == "" {
		return NopNotifier{}
	}
	return &emailNotifier{
		dialer: gomail.NewDialer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.Username, cfg.Mail.Password),
		from:   cfg.Mail.From,
		admin:  cfg.Mail.AdminAddr,
	}
}

func (n *emailNotifier) RegistrationReceived(ctx context.Context, user *models.User) error {
	subject := fmt.Sprintf("New lead: %s", user.Name)
	body := fmt.Sprintf("A new visitor opted in.\n\nName: %s\nEmail: %s\nPhone: %s\n",
		user.Name, user.Email, user.Phone)
	return n.send(ctx, subject, body)
}

func (n *emailNotifier) ApplicationStarted(ctx context.Context, user *models.User) error {
	subject := fmt.Sprintf("Application started: %s", user.Name)
	body := fmt.Sprintf("%s <%s> marked themselves as applying.\n", user.Name, user.Email)
	return n.send(ctx, subject, body)
}

// send runs the SMTP dial in a goroutine so the context deadline applies;
// gomail itself has no context support.
func (n *emailNotifier) send(ctx context.Context, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.admin)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail: %w", ctx.Err())
	}
}

type NopNotifier struct{}

func (NopNotifier) RegistrationReceived(context.Context, *models.User) error { return nil }
func (NopNotifier) ApplicationStarted(context.Context, *models.User) error   { return nil }
