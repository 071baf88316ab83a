package broadcast

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/event"
)

// Create stores a new broadcast authored by the caller. Published broadcasts
// are announced to their audience; drafts stay silent.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Broadcast, error) {
	actor, err := s.requireRank(ctx, domain.RoleCouncil)
	if err != nil {
		return domain.Broadcast{}, err
	}

	now := s.now().UTC()
	if err := input.Validate(now); err != nil {
		return domain.Broadcast{}, err
	}

	sticky := true
	if input.Sticky != nil {
		sticky = *input.Sticky
	}
	if input.IsDraft {
		sticky = false
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	created, err := s.broadcasts.Create(ctx, domain.Broadcast{
		ID:           uuid.New(),
		CreatedBy:    actor,
		Type:         input.Type,
		Title:        strings.TrimSpace(input.Title),
		Message:      trimOrNil(input.Message),
		ProposalID:   input.ProposalID,
		CaseNumber:   trimOrNil(input.CaseNumber),
		Audience:     input.Audience,
		Sticky:       sticky,
		ExpiresAt:    input.ExpiresAt,
		ScheduledFor: input.ScheduledFor,
		IsDraft:      input.IsDraft,
		Priority:     priority,
		Categories:   nonNilLabels(domain.NormalizeLabels(input.Categories)),
		Tags:         nonNilLabels(domain.NormalizeLabels(input.Tags)),
		TemplateID:   input.TemplateID,
		ImageURL:     input.ImageURL,
		Attachments:  input.Attachments,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.Broadcast{}, s.storeErr(ctx, "create broadcast", err)
	}

	if !created.IsDraft {
		s.events.Publish(ctx, event.BroadcastCreated(&created, now))
		s.notify(ctx, created)
	}

	s.log.InfoContext(ctx, "broadcast created",
		slog.String("broadcast_id", created.ID.String()),
		slog.String("created_by", actor.String()),
		slog.String("type", created.Type.String()),
		slog.String("audience", created.Audience),
		slog.Bool("draft", created.IsDraft),
	)
	return created, nil
}
