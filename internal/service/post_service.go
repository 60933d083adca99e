package service

import (
	"context"
	"errors"
	"time"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostService implements the feed: post CRUD with owner-only mutation and the
// mutually exclusive reaction engine with denormalized counters. It holds the
// gorm handle directly because a reaction must mutate the reaction row and
// both counters inside one transaction.
type PostService struct {
	postRepo repository.PostRepository
	db       *gorm.DB
	now      func() time.Time
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository, db *gorm.DB) *PostService {
	return &PostService{
		postRepo: postRepo,
		db:       db,
		now:      time.Now,
	}
}

// Create stores a new post for the owner with zeroed counters.
func (s *PostService) Create(ctx context.Context, ownerID uint, body string) (*models.Post, error) {
	post := &models.Post{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Body:      body,
		CreatedAt: s.now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns every post, newest first. The result is cached; any post or
// counter mutation invalidates the cache key.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.PostsListTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.List(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Edit updates the body of the caller's own post. Absent post and foreign
// post are distinct failures: 404 wins over 403.
func (s *PostService) Edit(ctx context.Context, callerID uint, postID, body string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post not found")
	}
	if post.UserID != callerID {
		return models.NewForbiddenError("You can only edit your own posts")
	}

	editedAt := s.now()
	post.Body = body
	post.EditedAt = &editedAt
	return s.postRepo.Save(ctx, post)
}

// Delete hard-deletes the caller's own post together with its reaction rows.
// A post that exists but belongs to someone else surfaces as not-found, the
// lookup filters on owner.
func (s *PostService) Delete(ctx context.Context, callerID uint, postID string) error {
	post, err := s.postRepo.GetOwned(ctx, postID, callerID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post not found")
	}
	return s.postRepo.DeleteWithReactions(ctx, postID)
}

// React applies a like or dislike to a post. The whole sequence runs in one
// transaction, in this order:
//
//	load post          -> not found
//	load own reaction  -> same type: "already reacted"
//	                   -> other type: decrement its counter, drop the row
//	self-post guard    -> "cannot react to own posts"
//	increment counter, insert the new reaction row
//
// The guard order means error precedence is: missing post, then duplicate
// reaction, then self-post. Aborting at the self-post guard rolls the
// decrement back, so counters only ever reflect committed reaction rows.
func (s *PostService) React(ctx context.Context, callerID uint, postID, reactionType string) error {
	if reactionType != models.ReactionLike && reactionType != models.ReactionDislike {
		return models.NewValidationError("Reaction type must be \"like\" or \"dislike\"")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post not found")
			}
			return err
		}

		var existing models.PostReaction
		err := tx.Where("post_id = ? AND user_id = ?", postID, callerID).First(&existing).Error
		switch {
		case err == nil:
			if existing.ReactionType == reactionType {
				return models.NewValidationError("You already reacted to this post")
			}
			if err := tx.Model(&post).
				UpdateColumn(counterColumn(existing.ReactionType), gorm.Expr(counterColumn(existing.ReactionType)+" - 1")).Error; err != nil {
				return err
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first reaction from this caller
		default:
			return err
		}

		if post.UserID == callerID {
			return models.NewValidationError("You cannot react to your own posts")
		}

		if err := tx.Model(&post).
			UpdateColumn(counterColumn(reactionType), gorm.Expr(counterColumn(reactionType)+" + 1")).Error; err != nil {
			return err
		}

		return tx.Create(&models.PostReaction{
			UserID:       callerID,
			PostID:       postID,
			ReactionType: reactionType,
		}).Error
	})
	if err != nil {
		return err
	}

	cache.InvalidatePostsList(ctx)
	return nil
}

// Reconcile reports whether the post's stored counters match the true count
// of its reaction rows.
func (s *PostService) Reconcile(ctx context.Context, postID string) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, models.NewNotFoundError("Post not found")
	}
	likes, dislikes, err := s.postRepo.CountReactions(ctx, postID)
	if err != nil {
		return false, err
	}
	return int64(post.LikesCount) == likes && int64(post.DislikesCount) == dislikes, nil
}

func counterColumn(reactionType string) string {
	if reactionType == models.ReactionLike {
		return "likes_count"
	}
	return "dislikes_count"
}
