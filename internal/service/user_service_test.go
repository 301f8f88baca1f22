package service

import (
	"errors"
	"testing"

	"bookshare/internal/models"
)

func TestUserService_GetByID(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			if id != 7 {
				return nil, nil
			}
			return &models.User{ID: 7, Email: "a@example.com", PasswordHash: "secret-hash", Role: models.RoleStudent}, nil
		},
	}
	svc := NewUserService(mock)

	pub, err := svc.GetByID(7)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if pub == nil || pub.ID != 7 || pub.Email != "a@example.com" || pub.Role != models.RoleStudent {
		t.Fatalf("unexpected public user: %+v", pub)
	}

	// Absent user yields (nil, nil).
	pub, err = svc.GetByID(99)
	if err != nil || pub != nil {
		t.Fatalf("expected (nil, nil) for absent user, got (%+v, %v)", pub, err)
	}
}

func TestUserService_GetByID_RepoError(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewUserService(mock)

	if _, err := svc.GetByID(1); err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}
