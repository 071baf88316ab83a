package broadcast

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

const (
	MaxTitleLength      = 200
	MaxMessageLength    = 10000
	MaxCaseNumberLength = 64
	MaxLabels           = 20
	MaxLabelLength      = 50
	MaxAttachments      = 10
	MaxReasonLength     = 500
	MaxListLimit        = 200
)

// CreateInput holds the parameters for creating a broadcast.
type CreateInput struct {
	Type         domain.BroadcastType
	Title        string
	Message      *string
	ProposalID   *uuid.UUID
	CaseNumber   *string
	Audience     string
	Sticky       *bool // nil = true for published broadcasts
	ExpiresAt    *time.Time
	ScheduledFor *time.Time
	IsDraft      bool
	Priority     domain.Priority // empty = normal
	Categories   []string
	Tags         []string
	TemplateID   *uuid.UUID
	ImageURL     *string
	Attachments  []domain.Attachment
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate(now time.Time) error {
	var errs []domain.FieldError

	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be one of approval, veto, announcement, poll, emergency"})
	}
	errs = append(errs, checkTitle(i.Title)...)
	errs = append(errs, checkMessage(i.Message)...)
	errs = append(errs, checkCaseNumber(i.CaseNumber)...)
	errs = append(errs, checkAudience(i.Audience)...)
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be one of low, normal, high, urgent"})
	}
	if i.ExpiresAt != nil && !i.ExpiresAt.After(now) {
		errs = append(errs, domain.FieldError{Field: "expiresAt", Message: "must be in the future"})
	}
	errs = append(errs, checkSchedule(i.ScheduledFor, i.ExpiresAt)...)
	errs = append(errs, checkLabels("categories", i.Categories)...)
	errs = append(errs, checkLabels("tags", i.Tags)...)
	errs = append(errs, checkImageURL(i.ImageURL)...)
	errs = append(errs, checkAttachments(i.Attachments)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds a partial edit and the optional reason recorded with the
// pre-change version.
type UpdateInput struct {
	ID     uuid.UUID
	Patch  domain.BroadcastPatch
	Reason *string
}

// Validate checks every present field. Cross-field rules that depend on the
// stored row are checked after merging.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	p := i.Patch

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if p.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if p.Type.Set && !p.Type.Value.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be one of approval, veto, announcement, poll, emergency"})
	}
	if p.Title.Set {
		errs = append(errs, checkTitle(p.Title.Value)...)
	}
	if p.Message.Set {
		errs = append(errs, checkMessage(p.Message.Value)...)
	}
	if p.CaseNumber.Set {
		errs = append(errs, checkCaseNumber(p.CaseNumber.Value)...)
	}
	if p.Audience.Set {
		errs = append(errs, checkAudience(p.Audience.Value)...)
	}
	if p.Priority.Set && !p.Priority.Value.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be one of low, normal, high, urgent"})
	}
	if p.Categories.Set {
		errs = append(errs, checkLabels("categories", p.Categories.Value)...)
	}
	if p.Tags.Set {
		errs = append(errs, checkLabels("tags", p.Tags.Value)...)
	}
	if p.ImageURL.Set {
		errs = append(errs, checkImageURL(p.ImageURL.Value)...)
	}
	if p.Attachments.Set {
		errs = append(errs, checkAttachments(p.Attachments.Value)...)
	}
	if i.Reason != nil && utf8.RuneCountInString(*i.Reason) > MaxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: fmt.Sprintf("max %d characters", MaxReasonLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the admin list filter.
type ListInput struct {
	IncludeDrafts  bool
	IncludeExpired bool
	Limit          int
	Offset         int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxListLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Field checks
// ---------------------------------------------------------------------------

func checkTitle(title string) []domain.FieldError {
	t := strings.TrimSpace(title)
	if t == "" {
		return []domain.FieldError{{Field: "title", Message: "required"}}
	}
	if utf8.RuneCountInString(t) > MaxTitleLength {
		return []domain.FieldError{{Field: "title", Message: fmt.Sprintf("max %d characters", MaxTitleLength)}}
	}
	return nil
}

func checkMessage(msg *string) []domain.FieldError {
	if msg != nil && utf8.RuneCountInString(*msg) > MaxMessageLength {
		return []domain.FieldError{{Field: "message", Message: fmt.Sprintf("max %d characters", MaxMessageLength)}}
	}
	return nil
}

func checkCaseNumber(cn *string) []domain.FieldError {
	if cn != nil && utf8.RuneCountInString(*cn) > MaxCaseNumberLength {
		return []domain.FieldError{{Field: "caseNumber", Message: fmt.Sprintf("max %d characters", MaxCaseNumberLength)}}
	}
	return nil
}

func checkAudience(raw string) []domain.FieldError {
	if !domain.ParseAudience(raw).IsKnown() {
		return []domain.FieldError{{Field: "audience", Message: "must be all, circle:<uuid> or role:<sovereign|council|observer>"}}
	}
	return nil
}

func checkSchedule(scheduledFor, expiresAt *time.Time) []domain.FieldError {
	if scheduledFor != nil && expiresAt != nil && !expiresAt.After(*scheduledFor) {
		return []domain.FieldError{{Field: "expiresAt", Message: "must be after scheduledFor"}}
	}
	return nil
}

func checkLabels(field string, labels []string) []domain.FieldError {
	var errs []domain.FieldError
	if len(labels) > MaxLabels {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("max %d items", MaxLabels)})
	}
	for _, l := range labels {
		if utf8.RuneCountInString(strings.TrimSpace(l)) > MaxLabelLength {
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("each item max %d characters", MaxLabelLength)})
			break
		}
	}
	return errs
}

func checkImageURL(u *string) []domain.FieldError {
	if u != nil && !isHTTPURL(*u) {
		return []domain.FieldError{{Field: "imageUrl", Message: "must be an absolute http(s) URL"}}
	}
	return nil
}

func checkAttachments(atts []domain.Attachment) []domain.FieldError {
	var errs []domain.FieldError
	if len(atts) > MaxAttachments {
		errs = append(errs, domain.FieldError{Field: "attachments", Message: fmt.Sprintf("max %d items", MaxAttachments)})
	}
	for i, a := range atts {
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("attachments[%d].name", i), Message: "required"})
		}
		if !isHTTPURL(a.URL) {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("attachments[%d].url", i), Message: "must be an absolute http(s) URL"})
		}
	}
	return errs
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

// trimOrNil trims s and maps blank strings to nil.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// normalizePatch trims text fields and normalizes labels in place.
func normalizePatch(p *domain.BroadcastPatch) {
	if p.Title.Set {
		p.Title.Value = strings.TrimSpace(p.Title.Value)
	}
	if p.Message.Set {
		p.Message.Value = trimOrNil(p.Message.Value)
	}
	if p.CaseNumber.Set {
		p.CaseNumber.Value = trimOrNil(p.CaseNumber.Value)
	}
	if p.Categories.Set {
		p.Categories.Value = nonNilLabels(domain.NormalizeLabels(p.Categories.Value))
	}
	if p.Tags.Set {
		p.Tags.Value = nonNilLabels(domain.NormalizeLabels(p.Tags.Value))
	}
}

func nonNilLabels(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
