package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"devlinker/backend/internal/models"
)

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Storage is the full persistence surface of the backend. Handlers depend on
// this interface; tests substitute a testify mock.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	// Connection requests
	IsAcceptedPair(userA, userB string) (bool, error)
	FindRequestBetween(fromUserID, toUserID string) (*models.ConnectionRequest, error)
	CreateRequest(req *models.ConnectionRequest) error
	SaveRequest(req *models.ConnectionRequest) error
	FindRequestForReview(requestID, toUserID string) (*models.ConnectionRequest, error)
	ListPendingRequestsForUser(userID string) ([]models.ConnectionRequest, error)
	ListConnectionsForUser(userID string) ([]models.User, error)

	// Conversations
	FindConversation(userA, userB string) (*models.Conversation, error)
	GetOrCreateConversation(userA, userB string) (*models.Conversation, error)
	GetConversationWithMessages(userA, userB string) (*models.Conversation, error)
	AppendMessage(conversationID, senderID, text string) (*models.Message, error)
	ListConversationsForUser(userID string) ([]models.ConversationSummary, error)

	// Notifications
	SaveNotification(n *models.Notification) error
	ListNotificationsForUser(userID string) ([]models.Notification, error)
	MarkNotificationRead(notificationID, userID string) error

	// Presence
	SetUserOnline(userID string) error
	SetUserOffline(userID string) error
	IsUserOnline(userID string) (bool, error)
}

// Service implements Storage on PostgreSQL (via GORM) plus Redis for the
// ephemeral presence set.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

var _ Storage = (*Service)(nil)

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
