package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"devlinker/backend/internal/chathub"
	"devlinker/backend/internal/models"
	"devlinker/backend/internal/storage"
)

func TestListConversations(t *testing.T) {
	store := new(MockStorage)
	r, _ := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)
	store.On("ListConversationsForUser", "u1").Return([]models.ConversationSummary{
		{ConversationID: "conv1", LastMessage: "hello", LastMessageSenderID: "u2"},
	}, nil)

	w := doRequest(t, r, "u1", http.MethodGet, "/conversations", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.ConversationSummary `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, "conv1", body.Data[0].ConversationID)
	assert.Equal(t, "hello", body.Data[0].LastMessage)
}

func TestGetConversation_ForbiddenWithoutAcceptedConnection(t *testing.T) {
	store := new(MockStorage)
	r, _ := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)
	store.On("IsAcceptedPair", "u1", "u3").Return(false, nil)

	w := doRequest(t, r, "u1", http.MethodGet, "/conversations/u3", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "GetConversationWithMessages", mock.Anything, mock.Anything)
}

func TestGetConversation_ReturnsTranscript(t *testing.T) {
	store := new(MockStorage)
	r, _ := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)
	store.On("IsAcceptedPair", "u1", "u2").Return(true, nil)
	store.On("GetConversationWithMessages", "u1", "u2").Return(&models.Conversation{
		ID: "conv1",
		Messages: []models.Message{
			{ID: "m1", ConversationID: "conv1", SenderID: "u1", Text: "hello"},
			{ID: "m2", ConversationID: "conv1", SenderID: "u2", Text: "hi"},
		},
	}, nil)

	w := doRequest(t, r, "u1", http.MethodGet, "/conversations/u2", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data models.Conversation `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "conv1", body.Data.ID)
	assert.Len(t, body.Data.Messages, 2)
	assert.Equal(t, "hello", body.Data.Messages[0].Text)
}

func TestSendMessage_EmptyTextRejected(t *testing.T) {
	store := new(MockStorage)
	r, _ := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)

	for _, body := range []string{`{}`, `{"text":""}`, `{"text":"   "}`} {
		w := doRequest(t, r, "u1", http.MethodPost, "/conversations/u2/messages", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
	store.AssertNotCalled(t, "IsAcceptedPair", mock.Anything, mock.Anything)
}

func TestSendMessage_ForbiddenWithoutAcceptedConnection(t *testing.T) {
	store := new(MockStorage)
	r, _ := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)
	store.On("IsAcceptedPair", "u1", "u3").Return(false, nil)

	w := doRequest(t, r, "u1", http.MethodPost, "/conversations/u3/messages", `{"text":"hi"}`)

	// Unlike the socket path, the HTTP path surfaces the rejection.
	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "GetOrCreateConversation", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_PersistsAndFansOut(t *testing.T) {
	store := new(MockStorage)
	r, gateway := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)
	store.On("IsAcceptedPair", "u1", "u2").Return(true, nil)
	store.On("GetOrCreateConversation", "u1", "u2").Return(&models.Conversation{ID: "conv1"}, nil)
	store.On("AppendMessage", "conv1", "u1", "hello").Return(&models.Message{
		ID:             "m1",
		ConversationID: "conv1",
		SenderID:       "u1",
		Text:           "hello",
		CreatedAt:      time.Now(),
	}, nil)

	// A live socket joined to the pair's room observes the HTTP send.
	socket := newFakeSocket()
	gateway.Rooms().Join(chathub.RoomID("u1", "u2"), socket)

	w := doRequest(t, r, "u1", http.MethodPost, "/conversations/u2/messages", `{"text":"hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			ChatID  string         `json:"chatId"`
			Message models.Message `json:"message"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "conv1", body.Data.ChatID)
	assert.Equal(t, "m1", body.Data.Message.ID)
	assert.Equal(t, "hello", body.Data.Message.Text)

	events := socket.received()
	assert.Len(t, events, 1)
	assert.Equal(t, models.EventMessageReceived, events[0].Type)
	assert.Equal(t, "m1", events[0].Message.ID)
}

func TestSendMessage_VanishedConversationIs404(t *testing.T) {
	store := new(MockStorage)
	r, _ := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)
	store.On("IsAcceptedPair", "u1", "u2").Return(true, nil)
	store.On("GetOrCreateConversation", "u1", "u2").Return(&models.Conversation{ID: "conv1"}, nil)
	store.On("AppendMessage", "conv1", "u1", "hello").Return(nil, storage.ErrConversationNotFound)

	w := doRequest(t, r, "u1", http.MethodPost, "/conversations/u2/messages", `{"text":"hello"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendMessage_StoreErrorSurfaced(t *testing.T) {
	store := new(MockStorage)
	r, _ := newTestRouter(store)

	store.On("GetUserByID", "u1").Return(testUser("u1", "Ada"), nil)
	store.On("IsAcceptedPair", "u1", "u2").Return(true, nil)
	store.On("GetOrCreateConversation", "u1", "u2").Return(&models.Conversation{ID: "conv1"}, nil)
	store.On("AppendMessage", "conv1", "u1", "hello").Return(nil, errors.New("db down"))

	w := doRequest(t, r, "u1", http.MethodPost, "/conversations/u2/messages", `{"text":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
