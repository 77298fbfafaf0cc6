package storage

import (
	"errors"

	"gorm.io/gorm"

	"devlinker/backend/internal/models"
)

// IsAcceptedPair reports whether an accepted connection request exists
// between the two users in either direction. This is the only relationship
// query the chat path depends on.
func (s *Service) IsAcceptedPair(userA, userB string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.ConnectionRequest{}).
		Where("status = ?", models.StatusAccepted).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRequestBetween looks up the request for the ordered (from, to) pair.
// Returns (nil, nil) when none exists.
func (s *Service) FindRequestBetween(fromUserID, toUserID string) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := s.DB.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) CreateRequest(req *models.ConnectionRequest) error {
	return s.DB.Create(req).Error
}

func (s *Service) SaveRequest(req *models.ConnectionRequest) error {
	return s.DB.Save(req).Error
}

// FindRequestForReview returns the request only if it is addressed to
// toUserID and still in the interested state; (nil, nil) otherwise.
func (s *Service) FindRequestForReview(requestID, toUserID string) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := s.DB.Where("id = ? AND to_user_id = ? AND status = ?",
		requestID, toUserID, models.StatusInterested).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPendingRequestsForUser returns interested requests addressed to the
// user, newest first, with the sender's profile attached.
func (s *Service) ListPendingRequestsForUser(userID string) ([]models.ConnectionRequest, error) {
	var reqs []models.ConnectionRequest
	err := s.DB.Preload("FromUser").
		Where("to_user_id = ? AND status = ?", userID, models.StatusInterested).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListConnectionsForUser returns the profiles of everyone the user has an
// accepted request with, in either direction.
func (s *Service) ListConnectionsForUser(userID string) ([]models.User, error) {
	var reqs []models.ConnectionRequest
	err := s.DB.
		Where("status = ?", models.StatusAccepted).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}

	otherIDs := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if req.FromUserID == userID {
			otherIDs = append(otherIDs, req.ToUserID)
		} else {
			otherIDs = append(otherIDs, req.FromUserID)
		}
	}
	if len(otherIDs) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := s.DB.Where("id IN ?", otherIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
