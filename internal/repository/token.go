package repository

import (
	"context"
	"errors"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// TokenRepository defines the interface for persisted bearer token operations.
type TokenRepository interface {
	GetByToken(ctx context.Context, token string) (*models.AuthToken, error)
	GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error)
	Create(ctx context.Context, token *models.AuthToken) error
	UpdateTokenValue(ctx context.Context, userID uint, token string) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) GetByToken(ctx context.Context, token string) (*models.AuthToken, error) {
	var row models.AuthToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *tokenRepository) GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error) {
	var row models.AuthToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// UpdateTokenValue overwrites the token column of the user's existing row.
// The row id and secret stay as they were issued on first login.
func (r *tokenRepository) UpdateTokenValue(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Model(&models.AuthToken{}).
		Where("user_id = ?", userID).
		Update("token", token).Error
}
