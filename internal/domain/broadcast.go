package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file reference shown alongside a broadcast.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Broadcast is a targeted, time-bounded announcement.
type Broadcast struct {
	ID         uuid.UUID
	CreatedBy  uuid.UUID
	Type       BroadcastType
	Title      string
	Message    *string
	ProposalID *uuid.UUID
	CaseNumber *string

	// Audience is the stored targeting string; see ParseAudience.
	Audience string

	Sticky       bool
	ExpiresAt    *time.Time
	ScheduledFor *time.Time
	IsDraft      bool
	Priority     Priority
	Categories   []string
	Tags         []string
	TemplateID   *uuid.UUID
	ImageURL     *string
	Attachments  []Attachment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AudienceRule parses the stored targeting string.
func (b *Broadcast) AudienceRule() AudienceRule {
	return ParseAudience(b.Audience)
}

// BroadcastSnapshot is the copy of mutable content and targeting fields kept
// in a version row.
type BroadcastSnapshot struct {
	Type         BroadcastType `json:"type"`
	Title        string        `json:"title"`
	Message      *string       `json:"message,omitempty"`
	ProposalID   *uuid.UUID    `json:"proposalId,omitempty"`
	CaseNumber   *string       `json:"caseNumber,omitempty"`
	Audience     string        `json:"audience"`
	Sticky       bool          `json:"sticky"`
	ExpiresAt    *time.Time    `json:"expiresAt,omitempty"`
	ScheduledFor *time.Time    `json:"scheduledFor,omitempty"`
	IsDraft      bool          `json:"isDraft"`
	Priority     Priority      `json:"priority"`
	Categories   []string      `json:"categories,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	TemplateID   *uuid.UUID    `json:"templateId,omitempty"`
	ImageURL     *string       `json:"imageUrl,omitempty"`
	Attachments  []Attachment  `json:"attachments,omitempty"`
}

// Snapshot copies the mutable fields. Slices and pointers are cloned so later
// edits to b do not leak into the snapshot.
func (b *Broadcast) Snapshot() BroadcastSnapshot {
	return BroadcastSnapshot{
		Type:         b.Type,
		Title:        b.Title,
		Message:      clonePtr(b.Message),
		ProposalID:   clonePtr(b.ProposalID),
		CaseNumber:   clonePtr(b.CaseNumber),
		Audience:     b.Audience,
		Sticky:       b.Sticky,
		ExpiresAt:    clonePtr(b.ExpiresAt),
		ScheduledFor: clonePtr(b.ScheduledFor),
		IsDraft:      b.IsDraft,
		Priority:     b.Priority,
		Categories:   cloneSlice(b.Categories),
		Tags:         cloneSlice(b.Tags),
		TemplateID:   clonePtr(b.TemplateID),
		ImageURL:     clonePtr(b.ImageURL),
		Attachments:  cloneSlice(b.Attachments),
	}
}

// ReadReceipt marks that a user acknowledged a broadcast. At most one exists
// per (BroadcastID, UserID).
type ReadReceipt struct {
	BroadcastID uuid.UUID
	UserID      uuid.UUID
	ReadAt      time.Time
}

// BroadcastVersion is an immutable pre-change snapshot of a broadcast.
type BroadcastVersion struct {
	ID            uuid.UUID
	BroadcastID   uuid.UUID
	VersionNumber int
	Snapshot      BroadcastSnapshot
	ChangedBy     uuid.UUID
	ChangedAt     time.Time
	ChangeReason  *string
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
