package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

// BroadcastResponse is the wire form of a broadcast.
type BroadcastResponse struct {
	ID           uuid.UUID            `json:"id"`
	CreatedBy    uuid.UUID            `json:"createdBy"`
	Type         domain.BroadcastType `json:"type"`
	Title        string               `json:"title"`
	Message      *string              `json:"message"`
	ProposalID   *uuid.UUID           `json:"proposalId"`
	CaseNumber   *string              `json:"caseNumber"`
	Audience     string               `json:"audience"`
	Sticky       bool                 `json:"sticky"`
	ExpiresAt    *time.Time           `json:"expiresAt"`
	ScheduledFor *time.Time           `json:"scheduledFor"`
	IsDraft      bool                 `json:"isDraft"`
	Priority     domain.Priority      `json:"priority"`
	Categories   []string             `json:"categories"`
	Tags         []string             `json:"tags"`
	TemplateID   *uuid.UUID           `json:"templateId"`
	ImageURL     *string              `json:"imageUrl"`
	Attachments  []domain.Attachment  `json:"attachments"`
	State        string               `json:"state"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func toBroadcastResponse(b domain.Broadcast, now time.Time) BroadcastResponse {
	return BroadcastResponse{
		ID:           b.ID,
		CreatedBy:    b.CreatedBy,
		Type:         b.Type,
		Title:        b.Title,
		Message:      b.Message,
		ProposalID:   b.ProposalID,
		CaseNumber:   b.CaseNumber,
		Audience:     b.Audience,
		Sticky:       b.Sticky,
		ExpiresAt:    b.ExpiresAt,
		ScheduledFor: b.ScheduledFor,
		IsDraft:      b.IsDraft,
		Priority:     b.Priority,
		Categories:   nonNil(b.Categories),
		Tags:         nonNil(b.Tags),
		TemplateID:   b.TemplateID,
		ImageURL:     b.ImageURL,
		Attachments:  nonNil(b.Attachments),
		State:        string(domain.StateAt(&b, now)),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toBroadcastResponses(items []domain.Broadcast, now time.Time) []BroadcastResponse {
	out := make([]BroadcastResponse, len(items))
	for i := range items {
		out[i] = toBroadcastResponse(items[i], now)
	}
	return out
}

// VersionResponse is one stored pre-change snapshot.
type VersionResponse struct {
	ID            uuid.UUID                `json:"id"`
	BroadcastID   uuid.UUID                `json:"broadcastId"`
	VersionNumber int                      `json:"versionNumber"`
	Snapshot      domain.BroadcastSnapshot `json:"snapshot"`
	ChangedBy     uuid.UUID                `json:"changedBy"`
	ChangedAt     time.Time                `json:"changedAt"`
	ChangeReason  *string                  `json:"changeReason"`
}

func toVersionResponse(v domain.BroadcastVersion) VersionResponse {
	return VersionResponse{
		ID:            v.ID,
		BroadcastID:   v.BroadcastID,
		VersionNumber: v.VersionNumber,
		Snapshot:      v.Snapshot,
		ChangedBy:     v.ChangedBy,
		ChangedAt:     v.ChangedAt,
		ChangeReason:  v.ChangeReason,
	}
}

// ReaderResponse is one read receipt.
type ReaderResponse struct {
	UserID uuid.UUID `json:"userId"`
	ReadAt time.Time `json:"readAt"`
}

// MarkReadResponse reports whether the receipt already existed.
type MarkReadResponse struct {
	AlreadyRead bool `json:"alreadyRead"`
}

// CreateBroadcastRequest is the body of POST /api/broadcasts.
type CreateBroadcastRequest struct {
	Type         domain.BroadcastType `json:"type"`
	Title        string               `json:"title"`
	Message      *string              `json:"message"`
	ProposalID   *uuid.UUID           `json:"proposalId"`
	CaseNumber   *string              `json:"caseNumber"`
	Audience     string               `json:"audience"`
	Sticky       *bool                `json:"sticky"`
	ExpiresAt    *time.Time           `json:"expiresAt"`
	ScheduledFor *time.Time           `json:"scheduledFor"`
	IsDraft      bool                 `json:"isDraft"`
	Priority     domain.Priority      `json:"priority"`
	Categories   []string             `json:"categories"`
	Tags         []string             `json:"tags"`
	TemplateID   *uuid.UUID           `json:"templateId"`
	ImageURL     *string              `json:"imageUrl"`
	Attachments  []domain.Attachment  `json:"attachments"`
}

// PublishRequest is the optional body of POST /api/broadcasts/{id}/publish.
type PublishRequest struct {
	Sticky *bool `json:"sticky"`
}

// ErrorResponse is every non-2xx body.
type ErrorResponse struct {
	Error  string           `json:"error"`
	Fields []FieldErrorBody `json:"fields,omitempty"`
}

// FieldErrorBody is one validation failure.
type FieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
