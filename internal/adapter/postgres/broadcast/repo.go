// Package broadcast implements the Broadcast repository using PostgreSQL.
package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/council-backend/internal/adapter/postgres"
	"github.com/heartmarshall/council-backend/internal/domain"
)

const (
	table  = "broadcasts"
	entity = "broadcast"

	defaultLimit = 50
	maxLimit     = 200
)

var errLockOutsideTx = errors.New("broadcast row lock requires a transaction")

var columns = []string{
	"id", "created_by", "type", "title", "message", "proposal_id", "case_number", "audience",
	"sticky", "expires_at", "scheduled_for", "is_draft", "priority", "categories", "tags",
	"template_id", "image_url", "attachments", "created_at", "updated_at",
}

// Repo provides broadcast persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new broadcast repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new broadcast and returns the persisted row.
func (r *Repo) Create(ctx context.Context, b domain.Broadcast) (domain.Broadcast, error) {
	attachments, err := marshalAttachments(b.Attachments)
	if err != nil {
		return domain.Broadcast{}, fmt.Errorf("%s %s: %w", entity, b.ID, err)
	}

	query := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(
			b.ID, b.CreatedBy, string(b.Type), b.Title, b.Message, b.ProposalID, b.CaseNumber, b.Audience,
			b.Sticky, b.ExpiresAt, b.ScheduledFor, b.IsDraft, string(b.Priority), nonNil(b.Categories), nonNil(b.Tags),
			b.TemplateID, b.ImageURL, attachments, b.CreatedAt, b.UpdatedAt,
		).
		Suffix(returning())

	return r.queryOne(ctx, query, b.ID)
}

// Update applies every present patch field as its own SET clause in a single
// UPDATE and bumps updated_at. An empty patch returns the current row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.BroadcastPatch, now time.Time) (domain.Broadcast, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	query := postgres.Builder.
		Update(table).
		Where(squirrel.Eq{"id": id}).
		Set("updated_at", now)

	query, err := applyPatch(query, patch)
	if err != nil {
		return domain.Broadcast{}, fmt.Errorf("%s %s: %w", entity, id, err)
	}

	return r.queryOne(ctx, query.Suffix(returning()), id)
}

// Delete removes the row. Receipts and versions go with it through
// ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder.
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// DeleteExpiredBefore hard-deletes broadcasts whose expiry is older than
// cutoff and returns how many rows were removed.
func (r *Repo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := postgres.Builder.
		Delete(table).
		Where(squirrel.Lt{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge %s: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("purge expired broadcasts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a broadcast or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	query := postgres.Builder.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	return r.queryOne(ctx, query, id)
}

// GetForUpdate reads a broadcast and locks its row until the surrounding
// transaction ends. Must run inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	if !postgres.InTx(ctx) {
		return domain.Broadcast{}, errLockOutsideTx
	}
	query := postgres.Builder.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE")

	return r.queryOne(ctx, query, id)
}

// List returns broadcasts for the administrative listing, newest first.
func (r *Repo) List(ctx context.Context, filter domain.BroadcastFilter, now time.Time) ([]domain.Broadcast, error) {
	query := postgres.Builder.
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(clampLimit(filter.Limit))).
		Offset(uint64(max(filter.Offset, 0)))

	if !filter.IncludeDrafts {
		query = query.Where(squirrel.Eq{"is_draft": false})
	}
	if !filter.IncludeExpired {
		query = query.Where(notExpired(now))
	}

	return r.queryMany(ctx, query)
}

// ListFeedCandidates returns one page of published, sticky, unexpired
// broadcasts whose schedule has arrived and that q.ViewerID has not read,
// ordered by priority (urgent first) then recency. Audience is not applied
// here.
func (r *Repo) ListFeedCandidates(ctx context.Context, q domain.FeedQuery) ([]domain.Broadcast, error) {
	query := postgres.Builder.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"is_draft": false, "sticky": true}).
		Where(notExpired(q.Now)).
		Where(squirrel.Or{
			squirrel.Eq{"scheduled_for": nil},
			squirrel.LtOrEq{"scheduled_for": q.Now},
		}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM broadcast_reads r WHERE r.broadcast_id = "+table+".id AND r.user_id = ?)",
			q.ViewerID,
		)).
		OrderBy(priorityOrder, "created_at DESC", "id DESC").
		Limit(uint64(clampLimit(q.Limit)))

	if q.Offset > 0 {
		query = query.Offset(uint64(q.Offset))
	}

	return r.queryMany(ctx, query)
}

// ReadStats returns every broadcast with its receipt count, the raw input of
// the analytics summary.
func (r *Repo) ReadStats(ctx context.Context) ([]domain.BroadcastReadStat, error) {
	sql, args, err := postgres.Builder.
		Select("b.id", "b.type", "b.created_at", "count(r.user_id)").
		From(table+" b").
		LeftJoin("broadcast_reads r ON r.broadcast_id = b.id").
		GroupBy("b.id", "b.type", "b.created_at").
		OrderBy("b.created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build read stats: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query read stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.BroadcastReadStat
	for rows.Next() {
		var (
			s       domain.BroadcastReadStat
			typ     string
			readCnt int64
		)
		if err := rows.Scan(&s.ID, &typ, &s.CreatedAt, &readCnt); err != nil {
			return nil, fmt.Errorf("scan read stats: %w", err)
		}
		s.Type = domain.BroadcastType(typ)
		s.ReadCount = int(readCnt)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate read stats: %w", err)
	}

	return stats, nil
}

// ---------------------------------------------------------------------------
// Query helpers
// ---------------------------------------------------------------------------

const priorityOrder = `CASE priority WHEN 'urgent' THEN 4 WHEN 'high' THEN 3 WHEN 'normal' THEN 2 ELSE 1 END DESC`

func notExpired(now time.Time) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"expires_at": nil},
		squirrel.Gt{"expires_at": now},
	}
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}

func (r *Repo) queryOne(ctx context.Context, query squirrel.Sqlizer, id uuid.UUID) (domain.Broadcast, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return domain.Broadcast{}, fmt.Errorf("build %s query: %w", entity, err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	b, err := scanBroadcast(row)
	if err != nil {
		return domain.Broadcast{}, postgres.MapError(err, entity, id)
	}
	return b, nil
}

func (r *Repo) queryMany(ctx context.Context, query squirrel.SelectBuilder) ([]domain.Broadcast, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s list: %w", entity, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list broadcasts: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Broadcast, 0)
	for rows.Next() {
		b, err := scanBroadcast(rows)
		if err != nil {
			return nil, fmt.Errorf("scan broadcast: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate broadcasts: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanBroadcast(row pgx.Row) (domain.Broadcast, error) {
	var (
		b           domain.Broadcast
		typ         string
		priority    string
		attachments []byte
	)
	err := row.Scan(
		&b.ID, &b.CreatedBy, &typ, &b.Title, &b.Message, &b.ProposalID, &b.CaseNumber, &b.Audience,
		&b.Sticky, &b.ExpiresAt, &b.ScheduledFor, &b.IsDraft, &priority, &b.Categories, &b.Tags,
		&b.TemplateID, &b.ImageURL, &attachments, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Broadcast{}, err
	}

	b.Type = domain.BroadcastType(typ)
	b.Priority = domain.Priority(priority)

	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &b.Attachments); err != nil {
			return domain.Broadcast{}, fmt.Errorf("%s %s unmarshal attachments: %w", entity, b.ID, err)
		}
	}

	return b, nil
}

func applyPatch(q squirrel.UpdateBuilder, p domain.BroadcastPatch) (squirrel.UpdateBuilder, error) {
	if p.Type.Set {
		q = q.Set("type", string(p.Type.Value))
	}
	if p.Title.Set {
		q = q.Set("title", p.Title.Value)
	}
	if p.Message.Set {
		q = q.Set("message", p.Message.Value)
	}
	if p.ProposalID.Set {
		q = q.Set("proposal_id", p.ProposalID.Value)
	}
	if p.CaseNumber.Set {
		q = q.Set("case_number", p.CaseNumber.Value)
	}
	if p.Audience.Set {
		q = q.Set("audience", p.Audience.Value)
	}
	if p.Sticky.Set {
		q = q.Set("sticky", p.Sticky.Value)
	}
	if p.ExpiresAt.Set {
		q = q.Set("expires_at", p.ExpiresAt.Value)
	}
	if p.ScheduledFor.Set {
		q = q.Set("scheduled_for", p.ScheduledFor.Value)
	}
	if p.IsDraft.Set {
		q = q.Set("is_draft", p.IsDraft.Value)
	}
	if p.Priority.Set {
		q = q.Set("priority", string(p.Priority.Value))
	}
	if p.Categories.Set {
		q = q.Set("categories", nonNil(p.Categories.Value))
	}
	if p.Tags.Set {
		q = q.Set("tags", nonNil(p.Tags.Value))
	}
	if p.TemplateID.Set {
		q = q.Set("template_id", p.TemplateID.Value)
	}
	if p.ImageURL.Set {
		q = q.Set("image_url", p.ImageURL.Value)
	}
	if p.Attachments.Set {
		raw, err := marshalAttachments(p.Attachments.Value)
		if err != nil {
			return q, err
		}
		q = q.Set("attachments", raw)
	}
	return q, nil
}

func marshalAttachments(a []domain.Attachment) ([]byte, error) {
	raw, err := json.Marshal(nonNil(a))
	if err != nil {
		return nil, fmt.Errorf("marshal attachments: %w", err)
	}
	return raw, nil
}

// nonNil maps nil slices to empty ones for NOT NULL array/JSON columns.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
