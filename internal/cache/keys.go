package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix  = "user:%d"
	diaryKeyPrefix = "diary:%d"
	diaryFeedKey   = "diaries:public:first"
)

const (
	UserTTL      = 5 * time.Minute
	DiaryTTL     = 10 * time.Minute
	DiaryFeedTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func DiaryKey(diaryID uint) string {
	return fmt.Sprintf(diaryKeyPrefix, diaryID)
}

// DiaryFeedKey caches only the anonymous first page of the public feed,
// which absorbs most read traffic.
func DiaryFeedKey() string {
	return diaryFeedKey
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateDiary(ctx context.Context, diaryID uint) {
	Invalidate(ctx, DiaryKey(diaryID))
	Invalidate(ctx, DiaryFeedKey())
}

func InvalidateDiaryFeed(ctx context.Context) {
	Invalidate(ctx, DiaryFeedKey())
}
