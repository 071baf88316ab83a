// Package audience decides whether a viewer belongs to a broadcast's audience.
package audience

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

type membershipLookup interface {
	GetUserCircles(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]domain.Role, error)
}

// Resolver evaluates audience rules. Membership sets missing from a Viewer
// are fetched once and memoized on it, so a Viewer must not be shared
// between goroutines.
type Resolver struct {
	log     *slog.Logger
	members membershipLookup
}

// NewResolver creates a new audience resolver.
func NewResolver(log *slog.Logger, members membershipLookup) *Resolver {
	return &Resolver{
		log:     log.With("service", "audience"),
		members: members,
	}
}

// Matches reports whether v is in the audience described by rule.
// Unknown rules and failed lookups deny.
func (r *Resolver) Matches(ctx context.Context, rule domain.AudienceRule, v *domain.Viewer) bool {
	switch rule.Kind {
	case domain.AudienceAll:
		return true

	case domain.AudienceCircle:
		if err := r.loadCircles(ctx, v); err != nil {
			r.log.WarnContext(ctx, "circle lookup failed, denying",
				slog.String("user_id", v.ID.String()),
				slog.String("circle_id", rule.CircleID.String()),
				slog.String("error", err.Error()),
			)
			return false
		}
		return v.InCircle(rule.CircleID)

	case domain.AudienceRole:
		rank, err := r.Rank(ctx, v)
		if err != nil {
			r.log.WarnContext(ctx, "role lookup failed, denying",
				slog.String("user_id", v.ID.String()),
				slog.String("role", rule.Role.String()),
				slog.String("error", err.Error()),
			)
			return false
		}
		return rank >= rule.Role.Rank()
	}

	r.log.DebugContext(ctx, "unknown audience rule", slog.String("audience", rule.Raw))
	return false
}

// MatchesAudience parses raw and evaluates it for v.
func (r *Resolver) MatchesAudience(ctx context.Context, raw string, v *domain.Viewer) bool {
	return r.Matches(ctx, domain.ParseAudience(raw), v)
}

// Rank returns the viewer's highest role rank, loading roles if needed.
// A viewer with no recognized role has rank 0.
func (r *Resolver) Rank(ctx context.Context, v *domain.Viewer) (int, error) {
	if err := r.loadRoles(ctx, v); err != nil {
		return 0, err
	}
	return domain.HighestRank(v.Roles), nil
}

func (r *Resolver) loadRoles(ctx context.Context, v *domain.Viewer) error {
	if v.RolesLoaded {
		return nil
	}
	roles, err := r.members.GetUserRoles(ctx, v.ID)
	if err != nil {
		return err
	}
	v.Roles = roles
	v.RolesLoaded = true
	return nil
}

func (r *Resolver) loadCircles(ctx context.Context, v *domain.Viewer) error {
	if v.CirclesLoaded {
		return nil
	}
	circles, err := r.members.GetUserCircles(ctx, v.ID)
	if err != nil {
		return err
	}
	v.Circles = circles
	v.CirclesLoaded = true
	return nil
}
