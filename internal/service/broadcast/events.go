package broadcast

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/event"
)

// AudienceFilter restricts created/updated events to viewers in the
// broadcast's audience.
func AudienceFilter(resolver audienceResolver) event.Filter {
	return func(ctx context.Context, viewerID uuid.UUID, e event.Event) bool {
		return resolver.Matches(ctx, domain.ParseAudience(e.Audience), domain.NewViewer(viewerID))
	}
}
