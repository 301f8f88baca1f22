package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"bookshare/internal/models"

	"github.com/google/uuid"
)

// Layout used for occurred_at, stored as SQLite TIMESTAMP text. Query bounds
// must bind the same layout: SQLite compares TEXT lexicographically, so a raw
// time.Time bind (which serializes with a zone suffix) would sort past a
// stored value of the same second and drop boundary events.
const eventTimeLayout = "2006-01-02 15:04:05"

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ Events = (*EventSQLite)(nil)

// Append inserts a new upload event. If EventID or OccurredAt are empty,
// they’re set.
func (r *EventSQLite) Append(ctx context.Context, e models.UploadEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO upload_events (id, occurred_at, actor_email, file)
		VALUES (?, ?, ?, ?)
	`,
		e.EventID,
		e.OccurredAt.Format(eventTimeLayout),
		e.ActorEmail,
		e.File,
	)

	return err
}

// List returns events filtered by [from, to] (inclusive), ordered ASC.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time) ([]models.UploadEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(eventTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(eventTimeLayout))
	}

	q := `SELECT id, occurred_at, actor_email, file FROM upload_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.UploadEvent, 0, 64)
	for rows.Next() {
		var ev models.UploadEvent
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.ActorEmail, &ev.File); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
