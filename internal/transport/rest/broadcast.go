package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
	"github.com/heartmarshall/council-backend/internal/service/broadcast"
	"github.com/heartmarshall/council-backend/internal/service/readtracker"
)

const maxBodyBytes = 1 << 20

type broadcastService interface {
	Create(ctx context.Context, input broadcast.CreateInput) (domain.Broadcast, error)
	Update(ctx context.Context, input broadcast.UpdateInput) (domain.Broadcast, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	List(ctx context.Context, input broadcast.ListInput) ([]domain.Broadcast, error)
	Feed(ctx context.Context) ([]domain.Broadcast, error)
	Publish(ctx context.Context, id uuid.UUID, sticky *bool) (domain.Broadcast, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	Archive(ctx context.Context, id uuid.UUID) (domain.Broadcast, error)
	HardDelete(ctx context.Context, id uuid.UUID, confirm bool) error
	MarkRead(ctx context.Context, id uuid.UUID) (readtracker.MarkReadResult, error)
	Readers(ctx context.Context, id uuid.UUID) ([]domain.ReadReceipt, error)
	Versions(ctx context.Context, id uuid.UUID) ([]domain.BroadcastVersion, error)
	Version(ctx context.Context, id uuid.UUID, number int) (domain.BroadcastVersion, error)
	Analytics(ctx context.Context) (domain.BroadcastAnalytics, error)
}

// BroadcastHandler serves the broadcast REST API.
type BroadcastHandler struct {
	svc broadcastService
	log *slog.Logger
	now func() time.Time
}

// NewBroadcastHandler creates a BroadcastHandler.
func NewBroadcastHandler(svc broadcastService, logger *slog.Logger) *BroadcastHandler {
	return &BroadcastHandler{
		svc: svc,
		log: logger.With("handler", "broadcast"),
		now: time.Now,
	}
}

// Register mounts every broadcast route on mux.
func (h *BroadcastHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/broadcasts", h.Create)
	mux.HandleFunc("GET /api/broadcasts", h.List)
	mux.HandleFunc("GET /api/broadcasts/{id}", h.Get)
	mux.HandleFunc("PATCH /api/broadcasts/{id}", h.Update)
	mux.HandleFunc("DELETE /api/broadcasts/{id}", h.SoftDelete)
	mux.HandleFunc("POST /api/broadcasts/{id}/publish", h.Publish)
	mux.HandleFunc("POST /api/broadcasts/{id}/archive", h.Archive)
	mux.HandleFunc("DELETE /api/broadcasts/{id}/purge", h.HardDelete)
	mux.HandleFunc("POST /api/broadcasts/{id}/read", h.MarkRead)
	mux.HandleFunc("GET /api/broadcasts/{id}/readers", h.Readers)
	mux.HandleFunc("GET /api/broadcasts/{id}/versions", h.Versions)
	mux.HandleFunc("GET /api/broadcasts/{id}/versions/{n}", h.Version)
	mux.HandleFunc("GET /api/feed", h.Feed)
	mux.HandleFunc("GET /api/analytics/broadcasts", h.Analytics)
}

// Create stores a new broadcast.
// POST /api/broadcasts
func (h *BroadcastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBroadcastRequest
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := h.svc.Create(r.Context(), broadcast.CreateInput{
		Type:         req.Type,
		Title:        req.Title,
		Message:      req.Message,
		ProposalID:   req.ProposalID,
		CaseNumber:   req.CaseNumber,
		Audience:     req.Audience,
		Sticky:       req.Sticky,
		ExpiresAt:    req.ExpiresAt,
		ScheduledFor: req.ScheduledFor,
		IsDraft:      req.IsDraft,
		Priority:     req.Priority,
		Categories:   req.Categories,
		Tags:         req.Tags,
		TemplateID:   req.TemplateID,
		ImageURL:     req.ImageURL,
		Attachments:  req.Attachments,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBroadcastResponse(b, h.now()))
}

// List returns broadcasts for administration.
// GET /api/broadcasts?include_drafts=true&include_expired=true&limit=50&offset=0
func (h *BroadcastHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var errs []domain.FieldError

	input := broadcast.ListInput{
		IncludeDrafts:  parseBoolParam(q.Get("include_drafts"), "include_drafts", &errs),
		IncludeExpired: parseBoolParam(q.Get("include_expired"), "include_expired", &errs),
		Limit:          parseIntParam(q.Get("limit"), "limit", &errs),
		Offset:         parseIntParam(q.Get("offset"), "offset", &errs),
	}
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBroadcastResponses(items, h.now()))
}

// Get returns one broadcast.
// GET /api/broadcasts/{id}
func (h *BroadcastHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBroadcastResponse(b, h.now()))
}

// Update applies a partial edit. Omitted keys are untouched; null clears.
// PATCH /api/broadcasts/{id}
func (h *BroadcastHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if !decodeBody(w, r, &body) {
		return
	}
	patch, reason, err := decodePatch(body)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	b, err := h.svc.Update(r.Context(), broadcast.UpdateInput{ID: id, Patch: patch, Reason: reason})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBroadcastResponse(b, h.now()))
}

// Publish makes a draft visible.
// POST /api/broadcasts/{id}/publish
func (h *BroadcastHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req PublishRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	b, err := h.svc.Publish(r.Context(), id, req.Sticky)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBroadcastResponse(b, h.now()))
}

// Archive expires a broadcast now.
// POST /api/broadcasts/{id}/archive
func (h *BroadcastHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Archive)
}

// SoftDelete hides a broadcast.
// DELETE /api/broadcasts/{id}
func (h *BroadcastHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.SoftDelete)
}

func (h *BroadcastHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) (domain.Broadcast, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := fn(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBroadcastResponse(b, h.now()))
}

// HardDelete permanently removes a broadcast.
// DELETE /api/broadcasts/{id}/purge?confirm=true
func (h *BroadcastHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := h.svc.HardDelete(r.Context(), id, confirm); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkRead records the caller's receipt.
// POST /api/broadcasts/{id}/read
func (h *BroadcastHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.svc.MarkRead(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MarkReadResponse{AlreadyRead: res.AlreadyRead})
}

// Readers lists receipts of one broadcast.
// GET /api/broadcasts/{id}/readers
func (h *BroadcastHandler) Readers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	receipts, err := h.svc.Readers(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]ReaderResponse, len(receipts))
	for i, rc := range receipts {
		out[i] = ReaderResponse{UserID: rc.UserID, ReadAt: rc.ReadAt}
	}
	writeJSON(w, http.StatusOK, out)
}

// Versions lists the edit history.
// GET /api/broadcasts/{id}/versions
func (h *BroadcastHandler) Versions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	versions, err := h.svc.Versions(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]VersionResponse, len(versions))
	for i := range versions {
		out[i] = toVersionResponse(versions[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Version returns one stored version.
// GET /api/broadcasts/{id}/versions/{n}
func (h *BroadcastHandler) Version(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("n", "must be an integer"))
		return
	}

	v, err := h.svc.Version(r.Context(), id, n)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVersionResponse(v))
}

// Feed returns the caller's unread broadcasts.
// GET /api/feed
func (h *BroadcastHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.svc.Feed(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBroadcastResponses(feed, h.now()))
}

// Analytics returns the reach summary.
// GET /api/analytics/broadcasts
func (h *BroadcastHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Analytics(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Fields: []FieldErrorBody{{Field: "id", Message: "must be a UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "request body required")
		default:
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}

func parseBoolParam(raw, name string, errs *[]domain.FieldError) bool {
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, domain.FieldError{Field: name, Message: "must be a boolean"})
	}
	return v
}

func parseIntParam(raw, name string, errs *[]domain.FieldError) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, domain.FieldError{Field: name, Message: "must be an integer"})
	}
	return v
}
