package repository

import (
	"context"
	"errors"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message data operations.
// Every lookup except SenderID applies the soft-delete filter.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListInbox(ctx context.Context, recipientID uint) ([]models.Message, error)
	GetActive(ctx context.Context, id string) (*models.Message, error)
	GetActiveOwned(ctx context.Context, id string, senderID uint) (*models.Message, error)
	SenderID(ctx context.Context, id string) (uint, bool, error)
	Save(ctx context.Context, message *models.Message) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListInbox(ctx context.Context, recipientID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND is_deleted = ?", recipientID, false).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) GetActive(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) GetActiveOwned(ctx context.Context, id string, senderID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Where("id = ? AND sender_id = ? AND is_deleted = ?", id, senderID, false).
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// SenderID looks up the sender of a message regardless of its deletion state.
// The self-reaction guard runs on this unscoped lookup so a sender cannot
// react to their own message even after soft-deleting it.
func (r *messageRepository) SenderID(ctx context.Context, id string) (uint, bool, error) {
	var message models.Message
	err := r.db.WithContext(ctx).Select("sender_id").Where("id = ?", id).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return message.SenderID, true, nil
}

func (r *messageRepository) Save(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}
