package service

import (
	"context"
	"io"
	"time"

	"bookshare/internal/models"
	"bookshare/internal/repository"
	"bookshare/internal/storage"
)

type Authorization interface {
	Register(email, password string) (*models.PublicUser, string, error)
	Login(email, password string) (string, error)
	ParseToken(accessToken string) (*Claims, error)
}

// Users exposes read access to public account data.
type Users interface {
	GetByID(id int) (*models.PublicUser, error)
}

// Books exposes the PDF library: streaming reads and slug-named uploads.
type Books interface {
	Fetch(name string) (io.ReadCloser, int64, error)
	Upload(ctx context.Context, actorEmail, originalName string, r io.Reader) (string, error)
	Count() (int, error)
}

// EventLog exposes the append-only upload audit log with time filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.UploadEvent, error)
}

// LogFilter supports history filtering by time range.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Users
	Books
	EventLog
}

// NewService wires the repository layer and file gateway into concrete
// services.
func NewService(repos *repository.Repository, gateway *storage.Gateway, tokens TokenConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens),
		Users:         NewUserService(repos.Users),
		Books:         NewBookService(gateway, repos.Events),
		EventLog:      NewEventLogService(repos.Events),
	}
}
