package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookshare/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockEventRepo(t *testing.T) (*EventSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := NewEventSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestEventSQLite_Append_FillsIDAndTime(t *testing.T) {
	repo, mock, cleanup := newMockEventRepo(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO upload_events").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "teacher@example.com", "my-book.pdf").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), models.UploadEvent{
		ActorEmail: "teacher@example.com",
		File:       "my-book.pdf",
	})
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
}

func TestEventSQLite_Append_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockEventRepo(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO upload_events").
		WillReturnError(errors.New("disk full"))

	err := repo.Append(context.Background(), models.UploadEvent{ActorEmail: "a", File: "b.pdf"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestEventSQLite_List(t *testing.T) {
	repo, mock, cleanup := newMockEventRepo(t)
	defer cleanup()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "actor_email", "file"}).
		AddRow("ev-1", now, "teacher@example.com", "my-book.pdf").
		AddRow("ev-2", now.Add(time.Minute), "teacher@example.com", "other-book.pdf")

	mock.ExpectQuery("SELECT id, occurred_at, actor_email, file FROM upload_events").
		WillReturnRows(rows)

	events, err := repo.List(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventID != "ev-1" || events[1].File != "other-book.pdf" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestEventSQLite_List_BoundsBecomeConditions(t *testing.T) {
	repo, mock, cleanup := newMockEventRepo(t)
	defer cleanup()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	// Bounds are bound as formatted text, matching the stored occurred_at.
	mock.ExpectQuery("occurred_at >= \\? AND occurred_at <= \\?").
		WithArgs("2026-08-01 00:00:00", "2026-08-31 00:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "actor_email", "file"}))

	events, err := repo.List(context.Background(), from, to)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}
