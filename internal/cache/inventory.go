package cache

import (
	"context"
	"time"
)

const (
	UsersListKey = "users:list"
	PostsListKey = "posts:list"
)

const (
	UsersListTTL = 5 * time.Minute
	PostsListTTL = 2 * time.Minute
)

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUsersList drops the cached user listing; called after signup.
func InvalidateUsersList(ctx context.Context) {
	Invalidate(ctx, UsersListKey)
}

// InvalidatePostsList drops the cached feed. Any post or counter mutation
// must call this, including reaction switches.
func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey)
}
