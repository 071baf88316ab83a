package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/council-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBroadcast inserts an active, sticky announcement targeted at everyone.
// Mutators adjust the record before insert. Returns the inserted broadcast.
func SeedBroadcast(t *testing.T, pool *pgxpool.Pool, mutators ...func(*domain.Broadcast)) domain.Broadcast {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	b := domain.Broadcast{
		ID:          uuid.New(),
		CreatedBy:   uuid.New(),
		Type:        domain.BroadcastTypeAnnouncement,
		Title:       "Seeded broadcast " + uniqueSuffix(),
		Audience:    "all",
		Sticky:      true,
		Priority:    domain.PriorityNormal,
		Categories:  []string{},
		Tags:        []string{},
		Attachments: []domain.Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, m := range mutators {
		m(&b)
	}

	attachments, err := json.Marshal(b.Attachments)
	if err != nil {
		t.Fatalf("testhelper: SeedBroadcast marshal attachments: %v", err)
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO broadcasts (id, created_by, type, title, message, proposal_id, case_number, audience,
		                         sticky, expires_at, scheduled_for, is_draft, priority, categories, tags,
		                         template_id, image_url, attachments, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		b.ID, b.CreatedBy, string(b.Type), b.Title, b.Message, b.ProposalID, b.CaseNumber, b.Audience,
		b.Sticky, b.ExpiresAt, b.ScheduledFor, b.IsDraft, string(b.Priority), b.Categories, b.Tags,
		b.TemplateID, b.ImageURL, attachments, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBroadcast insert: %v", err)
	}

	return b
}

// SeedReceipt inserts a read receipt for (broadcastID, userID).
func SeedReceipt(t *testing.T, pool *pgxpool.Pool, broadcastID, userID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO broadcast_reads (broadcast_id, user_id, read_at) VALUES ($1, $2, now())`,
		broadcastID, userID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReceipt insert: %v", err)
	}
}

// CountRows returns the number of rows in table matching broadcastID.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, broadcastID uuid.UUID) int {
	t.Helper()

	column := "broadcast_id"
	if table == "broadcasts" {
		column = "id"
	}

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE `+column+` = $1`, broadcastID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
