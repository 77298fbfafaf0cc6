package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // needed for pq.StringArray
	"gorm.io/gorm"
)

// User represents a member of the platform. Profile fields mirror what the
// frontend renders on connection cards and chat headers.
type User struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FullName  string         `gorm:"not null" json:"fullName"`
	PhotoURL  string         `json:"photoUrl"`
	Bio       string         `json:"bio"`
	About     string         `json:"about"`
	Role      string         `json:"role"`
	Location  string         `json:"location"`
	Skills    pq.StringArray `gorm:"type:text[]" json:"skills"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that assigns a UUID when no ID is set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
