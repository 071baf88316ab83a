// Package version implements the append-only broadcast version log using
// PostgreSQL.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/council-backend/internal/adapter/postgres"
	"github.com/heartmarshall/council-backend/internal/domain"
)

const (
	table  = "broadcast_versions"
	entity = "broadcast_version"
)

var columns = []string{
	"id", "broadcast_id", "version_number", "snapshot", "changed_by", "changed_at", "change_reason",
}

// Repo provides version log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new version repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts v with version_number = max existing + 1 (or 1) and returns
// the stored row. v.VersionNumber is ignored. Callers serialize concurrent
// appends for one broadcast by locking the broadcast row first; the unique
// (broadcast_id, version_number) constraint backs that up with
// domain.ErrAlreadyExists.
func (r *Repo) Append(ctx context.Context, v domain.BroadcastVersion) (domain.BroadcastVersion, error) {
	snapshot, err := json.Marshal(v.Snapshot)
	if err != nil {
		return domain.BroadcastVersion{}, fmt.Errorf("%s %s marshal snapshot: %w", entity, v.ID, err)
	}

	next := squirrel.Expr(
		"(SELECT COALESCE(MAX(version_number), 0) + 1 FROM "+table+" WHERE broadcast_id = ?)",
		v.BroadcastID,
	)

	sql, args, err := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(v.ID, v.BroadcastID, next, snapshot, v.ChangedBy, v.ChangedAt, v.ChangeReason).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.BroadcastVersion{}, fmt.Errorf("build insert %s: %w", entity, err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	out, err := scanVersion(row)
	if err != nil {
		return domain.BroadcastVersion{}, postgres.MapError(err, entity, v.BroadcastID)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByBroadcast returns the newest limit versions, oldest first.
func (r *Repo) ListByBroadcast(ctx context.Context, broadcastID uuid.UUID, limit int) ([]domain.BroadcastVersion, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"broadcast_id": broadcastID}).
		OrderBy("version_number DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s: %w", entity, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list versions for broadcast %s: %w", broadcastID, err)
	}
	defer rows.Close()

	versions := make([]domain.BroadcastVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	slices.Reverse(versions)
	return versions, nil
}

// Get returns one version by number or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, broadcastID uuid.UUID, number int) (domain.BroadcastVersion, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"broadcast_id": broadcastID, "version_number": number}).
		ToSql()
	if err != nil {
		return domain.BroadcastVersion{}, fmt.Errorf("build get %s: %w", entity, err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	v, err := scanVersion(row)
	if err != nil {
		return domain.BroadcastVersion{}, postgres.MapError(err, entity, broadcastID)
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanVersion(row pgx.Row) (domain.BroadcastVersion, error) {
	var (
		v        domain.BroadcastVersion
		number   int32
		snapshot []byte
	)
	if err := row.Scan(&v.ID, &v.BroadcastID, &number, &snapshot, &v.ChangedBy, &v.ChangedAt, &v.ChangeReason); err != nil {
		return domain.BroadcastVersion{}, err
	}
	v.VersionNumber = int(number)

	if err := json.Unmarshal(snapshot, &v.Snapshot); err != nil {
		return domain.BroadcastVersion{}, fmt.Errorf("%s %s unmarshal snapshot: %w", entity, v.ID, err)
	}
	return v, nil
}
