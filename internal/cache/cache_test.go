package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"murmur/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })

	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var missing payload
	found, err := GetJSON(ctx, "nope", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "key", payload{Name: "x", Count: 3}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			calls++
			*dest = []string{"a", "b"}
			return nil
		}
	}

	var first []string
	require.NoError(t, Aside(ctx, "list", &first, time.Minute, fetch(&first)))
	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, 1, calls)

	// second read is served from the cache
	var second []string
	require.NoError(t, Aside(ctx, "list", &second, time.Minute, fetch(&second)))
	assert.Equal(t, []string{"a", "b"}, second)
	assert.Equal(t, 1, calls)

	Invalidate(ctx, "list")

	var third []string
	require.NoError(t, Aside(ctx, "list", &third, time.Minute, fetch(&third)))
	assert.Equal(t, 2, calls)
}

func TestAsideFetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	boom := errors.New("db down")
	var dest []string
	err := Aside(ctx, "list", &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// a failed fetch must not poison the cache
	found, err := GetJSON(ctx, "list", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpersWithoutRedis(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest []string
	found, err := GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "k", []string{"x"}, time.Minute))

	// Aside degrades to a plain fetch
	err = Aside(ctx, "k", &dest, time.Minute, func() error {
		dest = []string{"fresh"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, dest)

	assert.NotPanics(t, func() {
		InvalidateUsersList(ctx)
		InvalidatePostsList(ctx)
	})
}

func TestMetricsHookCountsErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	// InitRedis installs the error-counting hook; SetClient does not
	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())
	t.Cleanup(func() { SetClient(nil) })

	counter := observability.RedisErrors.WithLabelValues("hgetall")
	before := testutil.ToFloat64(counter)

	// type mismatch: HGETALL against a plain string key fails
	ctx := context.Background()
	require.NoError(t, GetClient().Set(ctx, "plain", "value", 0).Err())
	require.Error(t, GetClient().HGetAll(ctx, "plain").Err())

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestInvalidatePostsList(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsListKey, []string{"p1"}, time.Minute))
	require.True(t, mr.Exists(PostsListKey))

	InvalidatePostsList(ctx)
	assert.False(t, mr.Exists(PostsListKey))
}
