package storage

import (
	"devlinker/backend/internal/models"
)

func (s *Service) SaveNotification(n *models.Notification) error {
	if n.Type == "" {
		n.Type = "notification"
	}
	return s.DB.Create(n).Error
}

// ListNotificationsForUser returns the user's notifications, newest first.
func (s *Service) ListNotificationsForUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips is_read for a notification owned by the user.
func (s *Service) MarkNotificationRead(notificationID, userID string) error {
	result := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
