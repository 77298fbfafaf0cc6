package chathub

import (
	"crypto/sha256"
	"encoding/hex"

	"devlinker/backend/internal/models"
)

// RoomID derives the fan-out room name for a pair of users. The pair is
// normalized before hashing, so RoomID(a, b) == RoomID(b, a). The room name
// is not an authorization boundary (access control happens at send time), so
// a plain unkeyed hash is sufficient.
func RoomID(userID, targetUserID string) string {
	a, b := models.NormalizePair(userID, targetUserID)
	sum := sha256.Sum256([]byte(a + "$" + b))
	return hex.EncodeToString(sum[:])
}
