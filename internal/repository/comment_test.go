package repository

import (
	"testing"
	"time"

	"daybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByDiaryNewest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	user := createTestUser(t, db, "commenter")
	diary := createTestDiary(t, db, user, "Entry", true)

	old := createTestComment(t, db, user, diary, "old")
	require.NoError(t, db.Model(old).Update("created_at", time.Now().Add(-time.Hour)).Error)
	createTestComment(t, db, user, diary, "new")

	comments, err := repo.ListByDiary(testCtx(), diary.ID, CommentSortNewest, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "new", comments[0].Content)
	assert.Equal(t, "old", comments[1].Content)
}

func TestCommentRepository_ListByDiarySortByLikes(t *testing.T) {
	db := setupTestDB(t)
	commentRepo := NewCommentRepository(db)
	likeRepo := NewLikeRepository(db)

	author := createTestUser(t, db, "author")
	diary := createTestDiary(t, db, author, "Entry", true)

	plain := createTestComment(t, db, author, diary, "no likes")
	require.NoError(t, db.Model(plain).Update("created_at", time.Now().Add(-time.Minute)).Error)
	popular := createTestComment(t, db, author, diary, "two likes")
	middling := createTestComment(t, db, author, diary, "one like")

	fan1 := createTestUser(t, db, "fan1")
	fan2 := createTestUser(t, db, "fan2")
	for _, like := range []struct {
		user    *models.User
		comment *models.Comment
	}{
		{fan1, popular},
		{fan2, popular},
		{fan1, middling},
	} {
		_, err := likeRepo.Toggle(testCtx(), like.user.ID, models.LikeTargetComment, like.comment.ID)
		require.NoError(t, err)
	}

	comments, err := commentRepo.ListByDiary(testCtx(), diary.ID, CommentSortLikes, 0)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "two likes", comments[0].Content)
	assert.Equal(t, 2, comments[0].LikesCount)
	assert.Equal(t, "one like", comments[1].Content)
	assert.Equal(t, "no likes", comments[2].Content)
}

func TestCommentRepository_SortByLikesBreaksTiesByRecency(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	user := createTestUser(t, db, "tied")
	diary := createTestDiary(t, db, user, "Entry", true)

	older := createTestComment(t, db, user, diary, "older zero")
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	createTestComment(t, db, user, diary, "newer zero")

	comments, err := repo.ListByDiary(testCtx(), diary.ID, CommentSortLikes, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "newer zero", comments[0].Content)
	assert.Equal(t, "older zero", comments[1].Content)
}

func TestCommentRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	diary := createTestDiary(t, db, alice, "Entry", true)

	createTestComment(t, db, alice, diary, "mine")
	createTestComment(t, db, bob, diary, "not mine")

	comments, err := repo.ListByUser(testCtx(), alice.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "mine", comments[0].Content)
}

func TestCommentRepository_DeleteRemovesLikes(t *testing.T) {
	db := setupTestDB(t)
	commentRepo := NewCommentRepository(db)
	likeRepo := NewLikeRepository(db)

	user := createTestUser(t, db, "owner")
	diary := createTestDiary(t, db, user, "Entry", true)
	comment := createTestComment(t, db, user, diary, "liked then deleted")

	_, err := likeRepo.Toggle(testCtx(), user.ID, models.LikeTargetComment, comment.ID)
	require.NoError(t, err)

	require.NoError(t, commentRepo.Delete(testCtx(), comment.ID))

	count, err := likeRepo.Count(testCtx(), models.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = commentRepo.GetByID(testCtx(), comment.ID, 0)
	assert.Error(t, err)
}
