// Package service holds the ownership and state rules applied on top of the
// repositories: who may act on what, and how flags and counters change.
package service

import (
	"context"
	"time"

	"murmur/internal/models"
	"murmur/internal/repository"

	"github.com/google/uuid"
)

// MessageService implements the direct-message lifecycle:
// active -> edited (repeatable) -> deleted (terminal, soft).
type MessageService struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	reactionRepo repository.MessageReactionRepository
	now          func() time.Time
}

// NewMessageService creates a MessageService.
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	reactionRepo repository.MessageReactionRepository,
) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		reactionRepo: reactionRepo,
		now:          time.Now,
	}
}

// Send stores a new message from sender to recipient. Sending always succeeds
// for an authenticated caller; the recipient is not validated against the
// user table.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uint, body string) (*models.Message, error) {
	if recipientID == 0 {
		return nil, models.NewValidationError("recipient_id is required")
	}

	message := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   s.now(),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Inbox lists the recipient's incoming messages. Only the recipient may read
// their inbox; sent messages are not listed anywhere.
func (s *MessageService) Inbox(ctx context.Context, callerID, recipientID uint) ([]models.InboxMessage, error) {
	if callerID != recipientID {
		return nil, models.NewForbiddenError("You can only read your own messages")
	}

	messages, err := s.messageRepo.ListInbox(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint, 0, len(messages))
	seen := make(map[uint]bool, len(messages))
	messageIDs := make([]string, 0, len(messages))
	for _, m := range messages {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			senderIDs = append(senderIDs, m.SenderID)
		}
		messageIDs = append(messageIDs, m.ID)
	}

	names, err := s.userRepo.UsernamesByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.reactionRepo.LikedMessages(ctx, messageIDs)
	if err != nil {
		return nil, err
	}
	disliked, err := s.reactionRepo.DislikedMessages(ctx, messageIDs)
	if err != nil {
		return nil, err
	}

	inbox := make([]models.InboxMessage, 0, len(messages))
	for _, m := range messages {
		inbox = append(inbox, models.InboxMessage{
			Message:    m,
			Username:   names[m.SenderID],
			IsLiked:    liked[m.ID],
			IsDisliked: disliked[m.ID],
		})
	}
	return inbox, nil
}

// Edit updates the body of the caller's own active message. An empty body is
// a silent no-op: the call succeeds without touching the row.
func (s *MessageService) Edit(ctx context.Context, callerID uint, messageID, body string) error {
	message, err := s.messageRepo.GetActiveOwned(ctx, messageID, callerID)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message not found")
	}

	if body == "" {
		return nil
	}

	editedAt := s.now()
	message.Body = body
	message.EditedAt = &editedAt
	return s.messageRepo.Save(ctx, message)
}

// Delete soft-deletes the caller's own active message. A second delete of the
// same message fails with not-found because the ownership lookup filters out
// already-deleted rows.
func (s *MessageService) Delete(ctx context.Context, callerID uint, messageID string) error {
	message, err := s.messageRepo.GetActiveOwned(ctx, messageID, callerID)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message not found")
	}

	message.IsDeleted = true
	return s.messageRepo.Save(ctx, message)
}
