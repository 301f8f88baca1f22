package service

import (
	"bookshare/internal/models"
	"bookshare/internal/repository"
)

// UserService serves public account data.
type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

// GetByID returns the public projection of a user, or (nil, nil) if absent.
func (s *UserService) GetByID(id int) (*models.PublicUser, error) {
	u, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	pub := u.Public()
	return &pub, nil
}
