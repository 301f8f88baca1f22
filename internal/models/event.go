package models

import "time"

// UploadEvent is a single entry in the upload audit log.
type UploadEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	ActorEmail string    `json:"actor_email"` // uploader, from the token claims
	File       string    `json:"file"`        // stored filename, e.g. "my-book.pdf"
}
