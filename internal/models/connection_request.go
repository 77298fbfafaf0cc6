package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Connection request statuses. "ignored" and "interested" are set by the
// sender, "accepted" and "rejected" by the recipient on review.
const (
	StatusIgnored    = "ignored"
	StatusInterested = "interested"
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
)

// ConnectionRequest is a directional record between two users. At most one
// record exists per ordered (from, to) pair; a reciprocal record may only
// exist until one of the two is resolved.
type ConnectionRequest struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	FromUserID string    `gorm:"not null;uniqueIndex:idx_from_to" json:"fromUserId"`
	ToUserID   string    `gorm:"not null;uniqueIndex:idx_from_to" json:"toUserId"`
	Status     string    `gorm:"not null" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	FromUser *User `gorm:"foreignKey:FromUserID" json:"fromUser,omitempty"`
	ToUser   *User `gorm:"foreignKey:ToUserID" json:"toUser,omitempty"`
}

func (r *ConnectionRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// IsSendableStatus reports whether a status may be set directly by the
// sender of a request.
func IsSendableStatus(status string) bool {
	return status == StatusIgnored || status == StatusInterested
}

// IsReviewableStatus reports whether a status may be set by the recipient
// when reviewing an interested request.
func IsReviewableStatus(status string) bool {
	return status == StatusAccepted || status == StatusRejected
}
