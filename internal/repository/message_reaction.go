package repository

import (
	"context"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// MessageReactionRepository covers the two independent reaction tables for
// messages. Likes and dislikes deliberately do not exclude each other; the
// tables are queried and written separately.
type MessageReactionRepository interface {
	HasLike(ctx context.Context, userID uint, messageID string) (bool, error)
	HasDislike(ctx context.Context, userID uint, messageID string) (bool, error)
	CreateLike(ctx context.Context, like *models.MessageLike) error
	CreateDislike(ctx context.Context, dislike *models.MessageDislike) error
	LikedMessages(ctx context.Context, messageIDs []string) (map[string]bool, error)
	DislikedMessages(ctx context.Context, messageIDs []string) (map[string]bool, error)
}

type messageReactionRepository struct {
	db *gorm.DB
}

// NewMessageReactionRepository creates a new message reaction repository.
func NewMessageReactionRepository(db *gorm.DB) MessageReactionRepository {
	return &messageReactionRepository{db: db}
}

func (r *messageReactionRepository) HasLike(ctx context.Context, userID uint, messageID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MessageLike{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

func (r *messageReactionRepository) HasDislike(ctx context.Context, userID uint, messageID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MessageDislike{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

func (r *messageReactionRepository) CreateLike(ctx context.Context, like *models.MessageLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *messageReactionRepository) CreateDislike(ctx context.Context, dislike *models.MessageDislike) error {
	return r.db.WithContext(ctx).Create(dislike).Error
}

// LikedMessages reports which of the given messages have at least one like
// from any user. The flags in an inbox listing are caller-independent.
func (r *messageReactionRepository) LikedMessages(ctx context.Context, messageIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return liked, nil
	}
	var likes []models.MessageLike
	err := r.db.WithContext(ctx).Where("message_id IN ?", messageIDs).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		liked[l.MessageID] = true
	}
	return liked, nil
}

func (r *messageReactionRepository) DislikedMessages(ctx context.Context, messageIDs []string) (map[string]bool, error) {
	disliked := make(map[string]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return disliked, nil
	}
	var dislikes []models.MessageDislike
	err := r.db.WithContext(ctx).Where("message_id IN ?", messageIDs).Find(&dislikes).Error
	if err != nil {
		return nil, err
	}
	for _, d := range dislikes {
		disliked[d.MessageID] = true
	}
	return disliked, nil
}
