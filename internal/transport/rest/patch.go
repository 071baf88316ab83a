package rest

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

var null = []byte("null")

// decodePatch turns a PATCH body into a presence-aware patch: an omitted key
// leaves the column alone, an explicit null clears a nullable one.
func decodePatch(body map[string]json.RawMessage) (domain.BroadcastPatch, *string, error) {
	var (
		p      domain.BroadcastPatch
		reason *string
		errs   []domain.FieldError
	)

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := body[key]
		var err error
		switch key {
		case "type":
			err = setValue(raw, &p.Type)
		case "title":
			err = setValue(raw, &p.Title)
		case "message":
			err = setNullable(raw, &p.Message)
		case "proposalId":
			err = setNullable[uuid.UUID](raw, &p.ProposalID)
		case "caseNumber":
			err = setNullable(raw, &p.CaseNumber)
		case "audience":
			err = setValue(raw, &p.Audience)
		case "sticky":
			err = setValue(raw, &p.Sticky)
		case "expiresAt":
			err = setNullable(raw, &p.ExpiresAt)
		case "scheduledFor":
			err = setNullable(raw, &p.ScheduledFor)
		case "isDraft":
			err = setValue(raw, &p.IsDraft)
		case "priority":
			err = setValue(raw, &p.Priority)
		case "categories":
			err = setList(raw, &p.Categories)
		case "tags":
			err = setList(raw, &p.Tags)
		case "templateId":
			err = setNullable[uuid.UUID](raw, &p.TemplateID)
		case "imageUrl":
			err = setNullable(raw, &p.ImageURL)
		case "attachments":
			err = setList(raw, &p.Attachments)
		case "reason":
			if !isNull(raw) {
				var r string
				if json.Unmarshal(raw, &r) != nil {
					err = errWrongType
				} else {
					reason = &r
				}
			}
		default:
			errs = append(errs, domain.FieldError{Field: key, Message: "unknown field"})
			continue
		}
		if err != nil {
			errs = append(errs, domain.FieldError{Field: key, Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return domain.BroadcastPatch{}, nil, domain.NewValidationErrors(errs)
	}
	return p, reason, nil
}

type fieldErr string

func (e fieldErr) Error() string { return string(e) }

const (
	errNotNull   fieldErr = "must not be null"
	errWrongType fieldErr = "has the wrong type"
)

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), null)
}

func setValue[T any](raw json.RawMessage, f *domain.Field[T]) error {
	if isNull(raw) {
		return errNotNull
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return errWrongType
	}
	*f = domain.SetTo(v)
	return nil
}

func setNullable[T any](raw json.RawMessage, f *domain.Field[*T]) error {
	if isNull(raw) {
		*f = domain.Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return errWrongType
	}
	*f = domain.SetTo(&v)
	return nil
}

// setList treats null as the empty list.
func setList[T any](raw json.RawMessage, f *domain.Field[[]T]) error {
	if isNull(raw) {
		*f = domain.SetTo([]T{})
		return nil
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return errWrongType
	}
	*f = domain.SetTo(nonNil(v))
	return nil
}
