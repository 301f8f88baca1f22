package service

import (
	"context"
	"io"
	"os"

	"bookshare/internal/models"
	"bookshare/internal/repository"
	"bookshare/internal/storage"
)

// BookService orchestrates the file gateway and the upload audit log.
type BookService struct {
	gateway *storage.Gateway
	events  repository.Events
}

func NewBookService(gateway *storage.Gateway, events repository.Events) *BookService {
	return &BookService{gateway: gateway, events: events}
}

// Fetch streams a stored book.
func (s *BookService) Fetch(name string) (io.ReadCloser, int64, error) {
	return s.gateway.Fetch(name)
}

// Upload spools the payload to a temp file, moves it into the library under
// its slug name and records an audit event. The temp file is removed on
// every outcome, including the "already exists" failure.
func (s *BookService) Upload(ctx context.Context, actorEmail, originalName string, r io.Reader) (string, error) {
	tmp, err := s.gateway.SaveTemp(r)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp) }()

	stored, err := s.gateway.Store(originalName, tmp)
	if err != nil {
		return "", err
	}

	// Audit append is best-effort: the file is already in the library, so a
	// logging failure must not turn a completed upload into an error.
	_ = s.events.Append(ctx, models.UploadEvent{ActorEmail: actorEmail, File: stored})

	return stored, nil
}

// Count reports the number of stored books.
func (s *BookService) Count() (int, error) {
	return s.gateway.Count()
}
