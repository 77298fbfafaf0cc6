package storage

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"devlinker/backend/internal/models"
)

// FindConversation looks the conversation up by the normalized participant
// pair. Returns (nil, nil) when none exists yet.
func (s *Service) FindConversation(userA, userB string) (*models.Conversation, error) {
	a, b := models.NormalizePair(userA, userB)

	var conv models.Conversation
	err := s.DB.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetOrCreateConversation lazily creates the single conversation for a pair.
// Two callers racing on the first message both end up on the same row: the
// unique index on the normalized pair rejects the second insert, and the
// loser re-fetches the winner instead of erroring.
func (s *Service) GetOrCreateConversation(userA, userB string) (*models.Conversation, error) {
	conv, err := s.FindConversation(userA, userB)
	if err != nil || conv != nil {
		return conv, err
	}

	a, b := models.NormalizePair(userA, userB)
	conv = &models.Conversation{UserAID: a, UserBID: b}
	if err := s.DB.Create(conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.FindConversation(userA, userB)
		}
		return nil, err
	}
	return conv, nil
}

// AppendMessage persists one message, assigning its id and timestamp, and
// bumps the conversation's updated_at so the listing sorts it first.
func (s *Service) AppendMessage(conversationID, senderID, text string) (*models.Message, error) {
	var conv models.Conversation
	err := s.DB.Where("id = ?", conversationID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
	}
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: failed to save message in conversation %s: %v", conversationID, err)
		return nil, err
	}

	if err := s.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumn("updated_at", time.Now()).Error; err != nil {
		// The message itself is saved; a stale updated_at only affects sort order.
		log.Printf("WARNING: failed to touch conversation %s: %v", conversationID, err)
	}

	return msg, nil
}

// GetConversationWithMessages returns the pair's conversation with the full
// transcript in stored order and both participants' profiles, creating an
// empty conversation when none exists. The caller must have verified the
// pair is an accepted connection.
func (s *Service) GetConversationWithMessages(userA, userB string) (*models.Conversation, error) {
	conv, err := s.GetOrCreateConversation(userA, userB)
	if err != nil {
		return nil, err
	}

	var full models.Conversation
	err = s.DB.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Where("id = ?", conv.ID).
		First(&full).Error
	if err != nil {
		return nil, err
	}

	var participants []models.User
	if err := s.DB.Where("id IN ?", []string{full.UserAID, full.UserBID}).Find(&participants).Error; err != nil {
		log.Printf("WARNING: failed to load participants for conversation %s: %v", full.ID, err)
	}
	full.Participants = participants

	return &full, nil
}

// lastMessageRow is the scan target for the DISTINCT ON preview query.
type lastMessageRow struct {
	ConversationID string
	SenderID       string
	Text           string
	CreatedAt      time.Time
}

// ListConversationsForUser returns one summary per conversation the user
// participates in, most recently updated first, with a last-message preview
// and the other participant's profile and presence flag.
func (s *Service) ListConversationsForUser(userID string) ([]models.ConversationSummary, error) {
	var convs []models.Conversation
	err := s.DB.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return []models.ConversationSummary{}, nil
	}

	convIDs := make([]string, 0, len(convs))
	otherIDs := make([]string, 0, len(convs))
	for _, conv := range convs {
		convIDs = append(convIDs, conv.ID)
		otherIDs = append(otherIDs, conv.OtherParticipant(userID))
	}

	// Latest message per conversation in a single query (PostgreSQL DISTINCT ON).
	rawSQL := `
		SELECT DISTINCT ON (conversation_id)
			conversation_id, sender_id, text, created_at
		FROM messages
		WHERE conversation_id IN ?
		ORDER BY conversation_id, created_at DESC
	`
	var lastRows []lastMessageRow
	if err := s.DB.Raw(rawSQL, convIDs).Scan(&lastRows).Error; err != nil {
		return nil, err
	}
	lastByConv := make(map[string]lastMessageRow, len(lastRows))
	for _, row := range lastRows {
		lastByConv[row.ConversationID] = row
	}

	var others []models.User
	if err := s.DB.Where("id IN ?", otherIDs).Find(&others).Error; err != nil {
		return nil, err
	}
	othersByID := make(map[string]models.User, len(others))
	for _, u := range others {
		othersByID[u.ID] = u
	}

	summaries := make([]models.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		otherID := conv.OtherParticipant(userID)

		summary := models.ConversationSummary{
			ConversationID: conv.ID,
			LastMessageAt:  conv.UpdatedAt,
		}
		if other, ok := othersByID[otherID]; ok {
			u := other
			summary.OtherUser = &u
		}
		if last, ok := lastByConv[conv.ID]; ok {
			summary.LastMessage = last.Text
			summary.LastMessageSenderID = last.SenderID
			summary.LastMessageAt = last.CreatedAt
		}

		online, err := s.IsUserOnline(otherID)
		if err != nil {
			log.Printf("WARNING: presence lookup failed for %s: %v", otherID, err)
		}
		summary.OtherUserOnline = online

		summaries = append(summaries, summary)
	}
	return summaries, nil
}
