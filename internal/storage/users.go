package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"devlinker/backend/internal/models"
)

// CreateUser persists a new user. The unique index on email surfaces
// duplicate signups as gorm.ErrDuplicatedKey.
func (s *Service) CreateUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return s.DB.Create(user).Error
}

// GetUserByEmail returns (nil, nil) when no user exists for the email.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns (nil, nil) when no user exists for the id.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
