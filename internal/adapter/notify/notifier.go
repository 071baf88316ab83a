package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/heartmarshall/council-backend/internal/domain"
)

type audienceEmails interface {
	GetAudienceEmails(ctx context.Context, audience string) ([]string, error)
}

type mailer interface {
	SendEmail(ctx context.Context, recipients []string, e Email) error
}

var bodyTemplate = template.Must(template.New("broadcast").Parse(
	`{{.Title}}
{{if .Message}}
{{.Message}}
{{end}}{{if .CaseNumber}}
Case: {{.CaseNumber}}
{{end}}
Priority: {{.Priority}}
`))

// Notifier emails a published broadcast to its audience.
type Notifier struct {
	emails audienceEmails
	mail   mailer
	log    *slog.Logger
}

func NewNotifier(logger *slog.Logger, emails audienceEmails, mail mailer) *Notifier {
	return &Notifier{
		emails: emails,
		mail:   mail,
		log:    logger.With("adapter", "notify"),
	}
}

// NotifyBroadcast resolves the audience's addresses and sends one email.
func (n *Notifier) NotifyBroadcast(ctx context.Context, b domain.Broadcast) error {
	recipients, err := n.emails.GetAudienceEmails(ctx, b.Audience)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		n.log.DebugContext(ctx, "no recipients", slog.String("broadcast_id", b.ID.String()))
		return nil
	}

	e, err := Render(b)
	if err != nil {
		return err
	}
	if err := n.mail.SendEmail(ctx, recipients, e); err != nil {
		return fmt.Errorf("send broadcast email: %w", err)
	}
	return nil
}

// Render builds the notification email for b.
func Render(b domain.Broadcast) (Email, error) {
	data := struct {
		Title      string
		Message    string
		CaseNumber string
		Priority   domain.Priority
	}{
		Title:    b.Title,
		Priority: b.Priority,
	}
	if b.Message != nil {
		data.Message = *b.Message
	}
	if b.CaseNumber != nil {
		data.CaseNumber = *b.CaseNumber
	}

	var body strings.Builder
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("render broadcast email: %w", err)
	}

	subject := fmt.Sprintf("[%s] %s", strings.ToUpper(b.Type.String()), b.Title)
	if b.Priority == domain.PriorityUrgent {
		subject = "URGENT " + subject
	}
	return Email{Subject: subject, Body: body.String()}, nil
}
