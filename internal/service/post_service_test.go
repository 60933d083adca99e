package service

import (
	"context"
	"testing"

	"murmur/internal/models"
	"murmur/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(repository.NewPostRepository(db), db)
}

func loadPost(t *testing.T, db *gorm.DB, id string) models.Post {
	t.Helper()

	var post models.Post
	if err := db.First(&post, "id = ?", id).Error; err != nil {
		t.Fatalf("load post: %v", err)
	}
	return post
}

func TestPostService_CreateAndList(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	post, err := svc.Create(ctx, alice.ID, "first post")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.DislikesCount)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "first post", posts[0].Body)
}

func TestPostService_EditOwnership(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "original")
	require.NoError(t, err)

	require.NoError(t, svc.Edit(ctx, alice.ID, post.ID, "updated"))
	stored := loadPost(t, db, post.ID)
	assert.Equal(t, "updated", stored.Body)
	assert.NotNil(t, stored.EditedAt)

	// foreign post is forbidden, missing post is not found
	err = svc.Edit(ctx, bob.ID, post.ID, "hijack")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, models.StatusOf(err))

	err = svc.Edit(ctx, bob.ID, uuid.NewString(), "nothing")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, models.StatusOf(err))
}

func TestPostService_DeleteHard(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "short lived")
	require.NoError(t, err)
	require.NoError(t, svc.React(ctx, bob.ID, post.ID, models.ReactionLike))

	// a foreign post deletes as not-found, not forbidden
	err = svc.Delete(ctx, bob.ID, post.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, models.StatusOf(err))

	require.NoError(t, svc.Delete(ctx, alice.ID, post.ID))

	var postCount, reactionCount int64
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.PostReaction{}).Where("post_id = ?", post.ID).Count(&reactionCount).Error)
	assert.Zero(t, postCount)
	assert.Zero(t, reactionCount)
}

func TestPostService_ReactTypeValidation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	bob := createTestUser(t, db, "bob")

	// type validation runs before any lookup, even for a missing post
	err := svc.React(ctx, bob.ID, uuid.NewString(), "love")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, models.StatusOf(err))

	err = svc.React(ctx, bob.ID, uuid.NewString(), models.ReactionLike)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, models.StatusOf(err))
}

func TestPostService_ReactCountsAndSwitch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	post, err := svc.Create(ctx, alice.ID, "take sides")
	require.NoError(t, err)

	require.NoError(t, svc.React(ctx, bob.ID, post.ID, models.ReactionLike))
	require.NoError(t, svc.React(ctx, carol.ID, post.ID, models.ReactionLike))

	stored := loadPost(t, db, post.ID)
	assert.Equal(t, 2, stored.LikesCount)
	assert.Equal(t, 0, stored.DislikesCount)

	// switching moves one unit between the counters
	require.NoError(t, svc.React(ctx, carol.ID, post.ID, models.ReactionDislike))
	stored = loadPost(t, db, post.ID)
	assert.Equal(t, 1, stored.LikesCount)
	assert.Equal(t, 1, stored.DislikesCount)

	// at most one reaction row per user and post
	var count int64
	require.NoError(t, db.Model(&models.PostReaction{}).
		Where("post_id = ? AND user_id = ?", post.ID, carol.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	ok, err := svc.Reconcile(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostService_ReactDuplicate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "once only")
	require.NoError(t, err)

	require.NoError(t, svc.React(ctx, bob.ID, post.ID, models.ReactionDislike))

	err = svc.React(ctx, bob.ID, post.ID, models.ReactionDislike)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, models.StatusOf(err))
	assert.EqualError(t, err, "You already reacted to this post")

	stored := loadPost(t, db, post.ID)
	assert.Equal(t, 1, stored.DislikesCount)
}

func TestPostService_SelfReaction(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	post, err := svc.Create(ctx, alice.ID, "my own")
	require.NoError(t, err)

	err = svc.React(ctx, alice.ID, post.ID, models.ReactionLike)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, models.StatusOf(err))
	assert.EqualError(t, err, "You cannot react to your own posts")

	// the rejected attempt leaves no trace
	stored := loadPost(t, db, post.ID)
	assert.Zero(t, stored.LikesCount)
	assert.Zero(t, stored.DislikesCount)

	var count int64
	require.NoError(t, db.Model(&models.PostReaction{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostService_ReconcileDetectsDrift(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "audited")
	require.NoError(t, err)
	require.NoError(t, svc.React(ctx, bob.ID, post.ID, models.ReactionLike))

	ok, err := svc.Reconcile(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// corrupt a counter out-of-band
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("likes_count", 7).Error)

	ok, err = svc.Reconcile(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
