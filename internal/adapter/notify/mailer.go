package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/heartmarshall/council-backend/internal/config"
)

const defaultBatchSize = 50

// Email is a rendered plain-text message.
type Email struct {
	Subject string
	Body    string
}

// SendFunc delivers one message to one batch of recipients.
type SendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

// Mailer sends mail through one SMTP relay. Recipients go in the envelope
// only, in batches, so addresses are never disclosed to each other.
type Mailer struct {
	addr      string
	from      string
	auth      sasl.Client
	batchSize int
	send      SendFunc
	log       *slog.Logger
}

// NewMailer creates a Mailer. PLAIN auth is used when a username is set.
func NewMailer(logger *slog.Logger, cfg config.SMTPConfig) *Mailer {
	m := &Mailer{
		addr:      cfg.Addr,
		from:      cfg.From,
		batchSize: cfg.BatchSize,
		send:      smtp.SendMail,
		log:       logger.With("adapter", "smtp"),
	}
	if m.batchSize <= 0 {
		m.batchSize = defaultBatchSize
	}
	if cfg.Username != "" {
		m.auth = sasl.NewPlainClient("", cfg.Username, cfg.Password)
	}
	return m
}

// SendEmail delivers e to every recipient. A failed batch does not stop the
// remaining ones; all batch errors are returned joined.
func (m *Mailer) SendEmail(ctx context.Context, recipients []string, e Email) error {
	if len(recipients) == 0 {
		return nil
	}

	msg := m.render(e)
	var errs []error
	sent := 0
	for start := 0; start < len(recipients); start += m.batchSize {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		end := min(start+m.batchSize, len(recipients))
		batch := recipients[start:end]

		if err := m.send(m.addr, m.auth, m.from, batch, bytes.NewReader(msg)); err != nil {
			m.log.WarnContext(ctx, "smtp batch failed",
				slog.Int("batch_start", start),
				slog.Int("batch_size", len(batch)),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("send batch %d-%d: %w", start, end, err))
			continue
		}
		sent += len(batch)
	}

	m.log.InfoContext(ctx, "email sent",
		slog.String("subject", e.Subject),
		slog.Int("recipients", sent),
		slog.Int("failed", len(recipients)-sent),
	)
	return errors.Join(errs...)
}

func (m *Mailer) render(e Email) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: undisclosed-recipients:;\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerSafe(e.Subject)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(e.Body, "\n", "\r\n"))
	return []byte(b.String())
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
