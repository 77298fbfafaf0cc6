package handler_test

import (
	"github.com/stretchr/testify/mock"

	"devlinker/backend/internal/chathub"
	"devlinker/backend/internal/models"
	"devlinker/backend/internal/storage"
)

// MockStorage is a testify mock of the full storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

// User operations

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Connection request operations

func (m *MockStorage) IsAcceptedPair(userA, userB string) (bool, error) {
	args := m.Called(userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) FindRequestBetween(fromUserID, toUserID string) (*models.ConnectionRequest, error) {
	args := m.Called(fromUserID, toUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockStorage) CreateRequest(req *models.ConnectionRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockStorage) SaveRequest(req *models.ConnectionRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockStorage) FindRequestForReview(requestID, toUserID string) (*models.ConnectionRequest, error) {
	args := m.Called(requestID, toUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockStorage) ListPendingRequestsForUser(userID string) ([]models.ConnectionRequest, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *MockStorage) ListConnectionsForUser(userID string) ([]models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// Conversation operations

func (m *MockStorage) FindConversation(userA, userB string) (*models.Conversation, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) GetOrCreateConversation(userA, userB string) (*models.Conversation, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) GetConversationWithMessages(userA, userB string) (*models.Conversation, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) AppendMessage(conversationID, senderID, text string) (*models.Message, error) {
	args := m.Called(conversationID, senderID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) ListConversationsForUser(userID string) ([]models.ConversationSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConversationSummary), args.Error(1)
}

// Notification operations

func (m *MockStorage) SaveNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStorage) ListNotificationsForUser(userID string) ([]models.Notification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockStorage) MarkNotificationRead(notificationID, userID string) error {
	args := m.Called(notificationID, userID)
	return args.Error(0)
}

// Presence operations

func (m *MockStorage) SetUserOnline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) SetUserOffline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) IsUserOnline(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

// fakeSocket is a channel-backed chathub.Client used to observe fan-out
// triggered by the HTTP send path.
type fakeSocket struct {
	userID string
	send   chan models.ServerEvent
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{send: make(chan models.ServerEvent, 10)}
}

func (c *fakeSocket) GetUserID() string { return c.userID }

func (c *fakeSocket) SetUserID(id string) { c.userID = id }

func (c *fakeSocket) GetSendChannel() chan<- models.ServerEvent { return c.send }

func (c *fakeSocket) Run() {}

func (c *fakeSocket) Close() {}

func (c *fakeSocket) received() []models.ServerEvent {
	var events []models.ServerEvent
	for {
		select {
		case ev := <-c.send:
			events = append(events, ev)
		default:
			return events
		}
	}
}

var _ chathub.Client = (*fakeSocket)(nil)
