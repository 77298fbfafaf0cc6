package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app notification row. Writes are always best-effort
// side effects of some primary flow and must never gate it.
type Notification struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"not null;index" json:"userId"`
	Type        string    `gorm:"not null" json:"type"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	IsRead      bool      `gorm:"default:false;index" json:"isRead"`
	Metadata    string    `gorm:"type:text" json:"metadata"` // JSON blob, opaque to the backend
	CreatedAt   time.Time `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
