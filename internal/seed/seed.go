// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"murmur/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumMessages int
	ShouldClean bool
}

// Factory builds domain entities and persists them to the database.
// Intended for development and testing only.
type Factory struct {
	db   *gorm.DB
	rng  *rand.Rand
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		opts: opts,
	}
}

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d posts and %d messages...",
		opts.NumUsers, opts.NumPosts, opts.NumMessages)

	f := NewFactory(db, opts)

	if opts.ShouldClean {
		if err := f.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := f.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := f.CreateReactions(users, posts); err != nil {
		return fmt.Errorf("failed to create reactions: %w", err)
	}
	log.Println("✓ Post reactions created")

	messages, err := f.CreateMessages(users, opts.NumMessages)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("✓ %d direct messages created", len(messages))

	if err := f.CreateMessageFeedback(users, messages); err != nil {
		return fmt.Errorf("failed to create message feedback: %w", err)
	}
	log.Println("✓ Message feedback created")

	return nil
}

// ClearAll removes all seeded data in dependency order.
func (f *Factory) ClearAll() error {
	tables := []string{
		"post_reactions", "posts",
		"likes", "dislikes", "messages",
		"auth_tokens", "users",
	}
	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// CreateUsers inserts n users. All test users share the password "password123".
func (f *Factory) CreateUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			PasswordHash: string(hashed),
		}
		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePosts inserts n posts attributed to random users, with a
// realistic created_at spread over the last 90 days.
func (f *Factory) CreatePosts(users []models.User, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[f.rng.Intn(len(users))]
		post := models.Post{
			ID:        uuid.NewString(),
			UserID:    author.ID,
			Body:      gofakeit.Paragraph(1, 3, 8, " "),
			CreatedAt: f.pastTime(90),
		}
		if err := f.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateReactions adds like/dislike reactions to posts and keeps the
// denormalized counters consistent with the reaction rows.
func (f *Factory) CreateReactions(users []models.User, posts []models.Post) error {
	for i := range posts {
		post := &posts[i]
		var likes, dislikes int

		for _, user := range users {
			// own posts cannot be reacted to
			if user.ID == post.UserID {
				continue
			}
			roll := f.rng.Intn(10)
			if roll >= 4 {
				continue
			}
			reactionType := models.ReactionLike
			if roll == 0 {
				reactionType = models.ReactionDislike
			}
			reaction := models.PostReaction{
				UserID:       user.ID,
				PostID:       post.ID,
				ReactionType: reactionType,
			}
			if err := f.db.Create(&reaction).Error; err != nil {
				return err
			}
			if reactionType == models.ReactionLike {
				likes++
			} else {
				dislikes++
			}
		}

		if likes == 0 && dislikes == 0 {
			continue
		}
		// keep the denormalized counters in step with the rows
		err := f.db.Model(&models.Post{}).Where("id = ?", post.ID).
			Updates(map[string]interface{}{
				"likes_count":    likes,
				"dislikes_count": dislikes,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateMessages inserts n direct messages between random user pairs.
// A small fraction is soft-deleted to exercise inbox filtering.
func (f *Factory) CreateMessages(users []models.User, n int) ([]models.Message, error) {
	if len(users) < 2 {
		return nil, nil
	}

	messages := make([]models.Message, 0, n)
	for i := 0; i < n; i++ {
		sender := users[f.rng.Intn(len(users))]
		recipient := users[f.rng.Intn(len(users))]
		for recipient.ID == sender.ID {
			recipient = users[f.rng.Intn(len(users))]
		}

		message := models.Message{
			ID:          uuid.NewString(),
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Body:        gofakeit.Sentence(f.rng.Intn(12) + 3),
			CreatedAt:   f.pastTime(30),
			IsDeleted:   f.rng.Intn(20) == 0,
		}
		if err := f.db.Create(&message).Error; err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// CreateMessageFeedback sprinkles likes and dislikes over active
// messages. A message can carry both, from the same or different users,
// but never from its sender.
func (f *Factory) CreateMessageFeedback(users []models.User, messages []models.Message) error {
	for _, message := range messages {
		if message.IsDeleted {
			continue
		}
		for _, user := range users {
			if user.ID == message.SenderID {
				continue
			}
			if f.rng.Intn(8) == 0 {
				like := models.MessageLike{
					UserID:    user.ID,
					MessageID: message.ID,
					IsLike:    true,
				}
				if err := f.db.Create(&like).Error; err != nil {
					return err
				}
			}
			if f.rng.Intn(16) == 0 {
				dislike := models.MessageDislike{
					UserID:    user.ID,
					MessageID: message.ID,
					IsDislike: true,
				}
				if err := f.db.Create(&dislike).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
