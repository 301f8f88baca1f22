package repository

import (
	"context"
	"database/sql"
	"time"

	"bookshare/internal/models"
	"bookshare/internal/repository/db"
)

type Users interface {
	Create(email, passwordHash string) (int, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}

type Events interface {
	Append(ctx context.Context, e models.UploadEvent) error
	List(ctx context.Context, from, to time.Time) ([]models.UploadEvent, error)
}

type Repository struct {
	Users  Users
	Events Events
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:  NewUserRepository(sqlDB),
		Events: NewEventSQLite(sqlDB),
	}
}

// InitDB re-exports the SQLite bootstrap so callers wire one package.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
