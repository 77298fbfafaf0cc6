package chathub_test

import (
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"devlinker/backend/internal/chathub"
	"devlinker/backend/internal/models"
)

// MockStore is a testify mock of the chathub.Store interface.
type MockStore struct {
	mock.Mock
}

var _ chathub.Store = (*MockStore)(nil)

func (m *MockStore) IsAcceptedPair(userA, userB string) (bool, error) {
	args := m.Called(userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetOrCreateConversation(userA, userB string) (*models.Conversation, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStore) AppendMessage(conversationID, senderID, text string) (*models.Message, error) {
	args := m.Called(conversationID, senderID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStore) SetUserOnline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStore) SetUserOffline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// fakeClient is a channel-backed test double for the Client interface. Close
// really closes the channel, mirroring WebSocketClient, so misuse shows up
// as a panic in tests; closeCount tracks how often it was invoked.
type fakeClient struct {
	userID     string
	send       chan models.ServerEvent
	closed     bool
	closeCount int32
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		// Buffered so broadcasts in tests never take the slow-client path.
		send: make(chan models.ServerEvent, 10),
	}
}

func (c *fakeClient) GetUserID() string { return c.userID }

func (c *fakeClient) SetUserID(id string) { c.userID = id }

func (c *fakeClient) GetSendChannel() chan<- models.ServerEvent { return c.send }

func (c *fakeClient) Run() {}

func (c *fakeClient) Close() {
	c.closed = true
	atomic.AddInt32(&c.closeCount, 1)
	close(c.send)
}

// received drains everything currently queued for the client.
func (c *fakeClient) received() []models.ServerEvent {
	var events []models.ServerEvent
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

var _ chathub.Client = (*fakeClient)(nil)
