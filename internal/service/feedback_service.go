package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// FeedbackService handles like/dislike feedback on messages. The two reaction
// kinds live in independent tables: disliking a message does not clear an
// existing like from the same user, which is the deliberate asymmetry versus
// post reactions.
//
// Check order matters and is preserved: sender guard, then duplicate guard,
// then existence/soft-delete guard, then insert.
type FeedbackService struct {
	messageRepo  repository.MessageRepository
	reactionRepo repository.MessageReactionRepository
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(
	messageRepo repository.MessageRepository,
	reactionRepo repository.MessageReactionRepository,
) *FeedbackService {
	return &FeedbackService{
		messageRepo:  messageRepo,
		reactionRepo: reactionRepo,
	}
}

// Like records a like on a message from the caller.
func (s *FeedbackService) Like(ctx context.Context, callerID uint, messageID string) error {
	senderID, found, err := s.messageRepo.SenderID(ctx, messageID)
	if err != nil {
		return err
	}
	if found && senderID == callerID {
		return models.NewForbiddenError("You cannot like your own message")
	}

	exists, err := s.reactionRepo.HasLike(ctx, callerID, messageID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewValidationError("Like already set")
	}

	message, err := s.messageRepo.GetActive(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message not found")
	}

	return s.reactionRepo.CreateLike(ctx, &models.MessageLike{
		UserID:    callerID,
		MessageID: messageID,
		IsLike:    true,
	})
}

// Dislike records a dislike on a message from the caller.
func (s *FeedbackService) Dislike(ctx context.Context, callerID uint, messageID string) error {
	senderID, found, err := s.messageRepo.SenderID(ctx, messageID)
	if err != nil {
		return err
	}
	if found && senderID == callerID {
		return models.NewForbiddenError("You cannot dislike your own message")
	}

	exists, err := s.reactionRepo.HasDislike(ctx, callerID, messageID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewValidationError("Dislike already set")
	}

	message, err := s.messageRepo.GetActive(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message not found")
	}

	return s.reactionRepo.CreateDislike(ctx, &models.MessageDislike{
		UserID:    callerID,
		MessageID: messageID,
		IsDislike: true,
	})
}
