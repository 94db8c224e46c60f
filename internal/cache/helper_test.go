package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedDiary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	setupMiniRedis(t)
	ctx := context.Background()

	var miss cachedDiary
	found, err := GetJSON(ctx, DiaryKey(1), &miss)
	require.NoError(t, err)
	assert.False(t, found)

	want := cachedDiary{ID: 1, Title: "Day one"}
	require.NoError(t, SetJSON(ctx, DiaryKey(1), want, DiaryTTL))

	var got cachedDiary
	found, err = GetJSON(ctx, DiaryKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestSetJSONRespectsTTL(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, DiaryFeedKey(), cachedDiary{ID: 2}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got cachedDiary
	found, err := GetJSON(ctx, DiaryFeedKey(), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideFetchesOnMissThenServesFromCache(t *testing.T) {
	setupMiniRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedDiary) func() error {
		return func() error {
			fetches++
			*dest = cachedDiary{ID: 3, Title: "from db"}
			return nil
		}
	}

	var first cachedDiary
	require.NoError(t, Aside(ctx, DiaryKey(3), &first, DiaryTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from db", first.Title)

	var second cachedDiary
	require.NoError(t, Aside(ctx, DiaryKey(3), &second, DiaryTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from db", second.Title)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	setupMiniRedis(t)
	ctx := context.Background()

	fetchErr := errors.New("db down")
	var dest cachedDiary
	err := Aside(ctx, DiaryKey(4), &dest, DiaryTTL, func() error { return fetchErr })
	assert.ErrorIs(t, err, fetchErr)

	// a failed fetch must not be cached
	found, err := GetJSON(ctx, DiaryKey(4), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateDiaryClearsFeedToo(t *testing.T) {
	setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, DiaryKey(5), cachedDiary{ID: 5}, DiaryTTL))
	require.NoError(t, SetJSON(ctx, DiaryFeedKey(), []cachedDiary{{ID: 5}}, DiaryFeedTTL))

	InvalidateDiary(ctx, 5)

	var diary cachedDiary
	found, err := GetJSON(ctx, DiaryKey(5), &diary)
	require.NoError(t, err)
	assert.False(t, found)

	var feed []cachedDiary
	found, err = GetJSON(ctx, DiaryFeedKey(), &feed)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientDegradesToNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest cachedDiary
	found, err := GetJSON(ctx, DiaryKey(9), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, DiaryKey(9), cachedDiary{ID: 9}, DiaryTTL))

	fetches := 0
	err = Aside(ctx, DiaryKey(9), &dest, DiaryTTL, func() error {
		fetches++
		dest.ID = 9
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, uint(9), dest.ID)
}
