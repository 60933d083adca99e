package seed

import (
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Message{},
		&models.MessageLike{},
		&models.MessageDislike{},
		&models.Post{},
		&models.PostReaction{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestSeedProducesConsistentData(t *testing.T) {
	db := setupSeedTestDB(t)

	err := Seed(db, Options{NumUsers: 8, NumPosts: 20, NumMessages: 30})
	require.NoError(t, err)

	var userCount, postCount, messageCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Message{}).Count(&messageCount).Error)
	assert.EqualValues(t, 8, userCount)
	assert.EqualValues(t, 20, postCount)
	assert.EqualValues(t, 30, messageCount)

	// counters must agree with the reaction rows on every post
	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	for _, post := range posts {
		var likes, dislikes int64
		require.NoError(t, db.Model(&models.PostReaction{}).
			Where("post_id = ? AND reaction_type = ?", post.ID, models.ReactionLike).
			Count(&likes).Error)
		require.NoError(t, db.Model(&models.PostReaction{}).
			Where("post_id = ? AND reaction_type = ?", post.ID, models.ReactionDislike).
			Count(&dislikes).Error)
		assert.EqualValues(t, post.LikesCount, likes, "post %s likes drifted", post.ID)
		assert.EqualValues(t, post.DislikesCount, dislikes, "post %s dislikes drifted", post.ID)
	}

	// nobody reacted to their own post
	var selfReactions int64
	require.NoError(t, db.Model(&models.PostReaction{}).
		Joins("JOIN posts ON posts.id = post_reactions.post_id").
		Where("posts.user_id = post_reactions.user_id").
		Count(&selfReactions).Error)
	assert.Zero(t, selfReactions)

	// no sender likes their own message
	var selfLikes int64
	require.NoError(t, db.Model(&models.MessageLike{}).
		Joins("JOIN messages ON messages.id = likes.message_id").
		Where("messages.sender_id = likes.user_id").
		Count(&selfLikes).Error)
	assert.Zero(t, selfLikes)
}

func TestSeedCleanIsIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumPosts: 5, NumMessages: 5}))
	require.NoError(t, Seed(db, Options{NumUsers: 4, NumPosts: 5, NumMessages: 5, ShouldClean: true}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 4, userCount)
}
