package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Broadcast.validate(); err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}

	if err := c.Events.validate(); err != nil {
		return fmt.Errorf("events: %w", err)
	}

	if err := c.Membership.validate(); err != nil {
		return fmt.Errorf("membership: %w", err)
	}

	if c.Broadcast.EmailNotifications {
		if err := c.SMTP.validate(); err != nil {
			return fmt.Errorf("smtp: %w", err)
		}
	}

	return nil
}

func (b *BroadcastConfig) validate() error {
	if b.FeedLimit <= 0 {
		return fmt.Errorf("feed_limit must be > 0 (got %d)", b.FeedLimit)
	}
	if b.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be > 0 (got %d)", b.HistoryLimit)
	}
	if b.HardDeleteRetentionDays <= 0 {
		return fmt.Errorf("hard_delete_retention_days must be > 0 (got %d)", b.HardDeleteRetentionDays)
	}
	return nil
}

func (e *EventsConfig) validate() error {
	if e.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be > 0 (got %d)", e.QueueSize)
	}
	if e.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", e.Workers)
	}
	if e.SubscriberBuffer <= 0 {
		return fmt.Errorf("subscriber_buffer must be > 0 (got %d)", e.SubscriberBuffer)
	}
	return nil
}

func (m *MembershipConfig) validate() error {
	u, err := url.Parse(m.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", m.BaseURL)
	}
	m.BaseURL = strings.TrimRight(m.BaseURL, "/")
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", m.Timeout)
	}
	return nil
}

func (s *SMTPConfig) validate() error {
	if s.Addr == "" {
		return fmt.Errorf("addr is required when email notifications are enabled")
	}
	if s.From == "" {
		return fmt.Errorf("from is required when email notifications are enabled")
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", s.BatchSize)
	}
	return nil
}
