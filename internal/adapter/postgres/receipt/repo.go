// Package receipt implements the read-receipt repository using PostgreSQL.
// Receipts are insert-only; the (broadcast_id, user_id) primary key enforces
// at most one per pair.
package receipt

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/council-backend/internal/adapter/postgres"
	"github.com/heartmarshall/council-backend/internal/domain"
)

const (
	table  = "broadcast_reads"
	entity = "read_receipt"
)

// Repo provides read-receipt persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new receipt repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a receipt. A duplicate pair yields domain.ErrAlreadyExists and
// an unknown broadcast yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, rc domain.ReadReceipt) (domain.ReadReceipt, error) {
	sql, args, err := postgres.Builder.
		Insert(table).
		Columns("broadcast_id", "user_id", "read_at").
		Values(rc.BroadcastID, rc.UserID, rc.ReadAt).
		Suffix("RETURNING broadcast_id, user_id, read_at").
		ToSql()
	if err != nil {
		return domain.ReadReceipt{}, fmt.Errorf("build insert %s: %w", entity, err)
	}

	var out domain.ReadReceipt
	err = postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, sql, args...).
		Scan(&out.BroadcastID, &out.UserID, &out.ReadAt)
	if err != nil {
		return domain.ReadReceipt{}, postgres.MapError(err, entity, rc.BroadcastID)
	}
	return out, nil
}

// Exists reports whether userID has a receipt for broadcastID.
func (r *Repo) Exists(ctx context.Context, broadcastID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM broadcast_reads WHERE broadcast_id = $1 AND user_id = $2)`,
		broadcastID, userID,
	).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, entity, broadcastID)
	}
	return exists, nil
}

// ReadIDs returns the subset of broadcastIDs that userID has read.
func (r *Repo) ReadIDs(ctx context.Context, userID uuid.UUID, broadcastIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(broadcastIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	sql, args, err := postgres.Builder.
		Select("broadcast_id").
		From(table).
		Where(squirrel.Eq{"user_id": userID, "broadcast_id": broadcastIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build read ids: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query read ids: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan read id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate read ids: %w", err)
	}
	return ids, nil
}

// ListByBroadcast returns all receipts for a broadcast, earliest first.
func (r *Repo) ListByBroadcast(ctx context.Context, broadcastID uuid.UUID) ([]domain.ReadReceipt, error) {
	sql, args, err := postgres.Builder.
		Select("broadcast_id", "user_id", "read_at").
		From(table).
		Where(squirrel.Eq{"broadcast_id": broadcastID}).
		OrderBy("read_at", "user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", entity, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts for broadcast %s: %w", broadcastID, err)
	}
	defer rows.Close()

	receipts := make([]domain.ReadReceipt, 0)
	for rows.Next() {
		var rc domain.ReadReceipt
		if err := rows.Scan(&rc.BroadcastID, &rc.UserID, &rc.ReadAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		receipts = append(receipts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}
	return receipts, nil
}
