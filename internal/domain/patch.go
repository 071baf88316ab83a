package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field is one optional entry of a patch. Set=false means "leave as is".
// For nullable columns T is a pointer, so Set=true with a nil Value clears it.
type Field[T any] struct {
	Set   bool
	Value T
}

// SetTo returns a present field holding v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a present field that clears a nullable column.
func Null[T any]() Field[*T] {
	return Field[*T]{Set: true}
}

// BroadcastPatch is a partial update of a broadcast's mutable fields.
type BroadcastPatch struct {
	Type         Field[BroadcastType]
	Title        Field[string]
	Message      Field[*string]
	ProposalID   Field[*uuid.UUID]
	CaseNumber   Field[*string]
	Audience     Field[string]
	Sticky       Field[bool]
	ExpiresAt    Field[*time.Time]
	ScheduledFor Field[*time.Time]
	IsDraft      Field[bool]
	Priority     Field[Priority]
	Categories   Field[[]string]
	Tags         Field[[]string]
	TemplateID   Field[*uuid.UUID]
	ImageURL     Field[*string]
	Attachments  Field[[]Attachment]
}

// IsEmpty reports whether no field is present.
func (p BroadcastPatch) IsEmpty() bool {
	return len(p.Changes()) == 0
}

// Changes lists present fields keyed by their wire names. A cleared nullable
// field maps to nil.
func (p BroadcastPatch) Changes() map[string]any {
	changes := make(map[string]any)
	put := func(set bool, key string, v any) {
		if set {
			changes[key] = v
		}
	}
	put(p.Type.Set, "type", p.Type.Value)
	put(p.Title.Set, "title", p.Title.Value)
	put(p.Message.Set, "message", derefOrNil(p.Message.Value))
	put(p.ProposalID.Set, "proposalId", derefOrNil(p.ProposalID.Value))
	put(p.CaseNumber.Set, "caseNumber", derefOrNil(p.CaseNumber.Value))
	put(p.Audience.Set, "audience", p.Audience.Value)
	put(p.Sticky.Set, "sticky", p.Sticky.Value)
	put(p.ExpiresAt.Set, "expiresAt", derefOrNil(p.ExpiresAt.Value))
	put(p.ScheduledFor.Set, "scheduledFor", derefOrNil(p.ScheduledFor.Value))
	put(p.IsDraft.Set, "isDraft", p.IsDraft.Value)
	put(p.Priority.Set, "priority", p.Priority.Value)
	put(p.Categories.Set, "categories", p.Categories.Value)
	put(p.Tags.Set, "tags", p.Tags.Value)
	put(p.TemplateID.Set, "templateId", derefOrNil(p.TemplateID.Value))
	put(p.ImageURL.Set, "imageUrl", derefOrNil(p.ImageURL.Value))
	put(p.Attachments.Set, "attachments", p.Attachments.Value)
	return changes
}

// ApplyTo writes every present field onto b, one field at a time.
// Omitted fields are left untouched.
func (p BroadcastPatch) ApplyTo(b *Broadcast) {
	if p.Type.Set {
		b.Type = p.Type.Value
	}
	if p.Title.Set {
		b.Title = p.Title.Value
	}
	if p.Message.Set {
		b.Message = clonePtr(p.Message.Value)
	}
	if p.ProposalID.Set {
		b.ProposalID = clonePtr(p.ProposalID.Value)
	}
	if p.CaseNumber.Set {
		b.CaseNumber = clonePtr(p.CaseNumber.Value)
	}
	if p.Audience.Set {
		b.Audience = p.Audience.Value
	}
	if p.Sticky.Set {
		b.Sticky = p.Sticky.Value
	}
	if p.ExpiresAt.Set {
		b.ExpiresAt = clonePtr(p.ExpiresAt.Value)
	}
	if p.ScheduledFor.Set {
		b.ScheduledFor = clonePtr(p.ScheduledFor.Value)
	}
	if p.IsDraft.Set {
		b.IsDraft = p.IsDraft.Value
	}
	if p.Priority.Set {
		b.Priority = p.Priority.Value
	}
	if p.Categories.Set {
		b.Categories = cloneSlice(p.Categories.Value)
	}
	if p.Tags.Set {
		b.Tags = cloneSlice(p.Tags.Value)
	}
	if p.TemplateID.Set {
		b.TemplateID = clonePtr(p.TemplateID.Value)
	}
	if p.ImageURL.Set {
		b.ImageURL = clonePtr(p.ImageURL.Value)
	}
	if p.Attachments.Set {
		b.Attachments = cloneSlice(p.Attachments.Value)
	}
}

func derefOrNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
