package models

import "time"

// Message is a direct message between two users. Messages are never removed
// physically: deletion flips IsDeleted and every read, edit and delete path
// filters on is_deleted = false afterwards.
type Message struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	SenderID    uint       `gorm:"index;not null" json:"sender_id"`
	RecipientID uint       `gorm:"index;not null" json:"recipient_id"`
	Body        string     `gorm:"column:message;type:text" json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at"`
	IsDeleted   bool       `gorm:"default:false" json:"-"`
}

// MessageLike records a like on a message. Likes and dislikes live in
// independent tables with no mutual exclusion between them; the composite
// unique index is the backstop against duplicate likes under concurrency.
type MessageLike struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex:idx_likes_user_message;not null" json:"user_id"`
	MessageID string `gorm:"uniqueIndex:idx_likes_user_message;size:36;not null" json:"message_id"`
	IsLike    bool   `json:"is_like"`
}

// TableName returns the database table name for MessageLike.
func (MessageLike) TableName() string {
	return "likes"
}

// MessageDislike records a dislike on a message.
type MessageDislike struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex:idx_dislikes_user_message;not null" json:"user_id"`
	MessageID string `gorm:"uniqueIndex:idx_dislikes_user_message;size:36;not null" json:"message_id"`
	IsDislike bool   `json:"is_dislike"`
}

// TableName returns the database table name for MessageDislike.
func (MessageDislike) TableName() string {
	return "dislikes"
}

// InboxMessage is a message as seen in the recipient's inbox, joined with the
// sender's display name and the message-wide reaction flags. The flags are
// caller-independent: they report whether any user has reacted.
type InboxMessage struct {
	Message    Message `json:"message"`
	Username   string  `json:"username"`
	IsLiked    bool    `json:"is_liked"`
	IsDisliked bool    `json:"is_disliked"`
}
