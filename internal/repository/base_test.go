package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"daybook/internal/database"
	"daybook/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own named database so tests stay isolated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Nickname: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestDiary(t *testing.T, db *gorm.DB, user *models.User, title string, isPublic bool) *models.Diary {
	t.Helper()

	diary := &models.Diary{
		Title:    title,
		Content:  "content of " + title,
		IsPublic: isPublic,
		UserID:   user.ID,
		Author:   user.DisplayName(),
	}
	require.NoError(t, db.Create(diary).Error)
	return diary
}

func createTestComment(t *testing.T, db *gorm.DB, user *models.User, diary *models.Diary, content string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Content: content,
		DiaryID: diary.ID,
		UserID:  user.ID,
		Author:  user.DisplayName(),
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func testCtx() context.Context {
	return context.Background()
}
