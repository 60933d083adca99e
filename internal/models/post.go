package models

import "time"

// Reaction types accepted on posts.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Post is a feed entry. Unlike messages, posts are hard-deleted. The two
// counters are denormalized and must only change inside the same transaction
// that mutates post_reactions rows.
type Post struct {
	ID            string     `gorm:"primaryKey;size:36" json:"post_id"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	Body          string     `gorm:"column:post;type:text" json:"post"`
	LikesCount    int        `gorm:"not null;default:0" json:"likes_count"`
	DislikesCount int        `gorm:"not null;default:0" json:"dislikes_count"`
	CreatedAt     time.Time  `json:"created_at"`
	EditedAt      *time.Time `json:"edited_at"`
}

// PostReaction is a user's single vote on a post. At most one row exists per
// (user, post); switching like<->dislike replaces the row and moves the
// counters within one transaction.
type PostReaction struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"uniqueIndex:idx_post_reactions_user_post;not null" json:"user_id"`
	PostID       string `gorm:"uniqueIndex:idx_post_reactions_user_post;size:36;not null" json:"post_id"`
	ReactionType string `gorm:"size:16;not null" json:"reaction_type"`
}
