package service

import (
	"context"
	"testing"

	"daybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn  func(context.Context, uint, models.LikeTarget, uint) (*models.LikeResult, error)
	countFn   func(context.Context, models.LikeTarget, uint) (int64, error)
	isLikedFn func(context.Context, uint, models.LikeTarget, uint) (bool, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (*models.LikeResult, error) {
	return s.toggleFn(ctx, userID, targetType, targetID)
}
func (s *likeRepoStub) Count(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error) {
	return s.countFn(ctx, targetType, targetID)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, targetType, targetID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn: func(_ context.Context, _ uint, _ models.LikeTarget, _ uint) (*models.LikeResult, error) {
			return &models.LikeResult{Liked: true, LikesCount: 1}, nil
		},
		countFn: func(_ context.Context, _ models.LikeTarget, _ uint) (int64, error) { return 0, nil },
		isLikedFn: func(_ context.Context, _ uint, _ models.LikeTarget, _ uint) (bool, error) {
			return false, nil
		},
	}
}

func TestToggleDiaryLike_TargetMustExist(t *testing.T) {
	diaryRepo := noopDiaryRepo()
	diaryRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Diary, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewLikeService(noopLikeRepo(), diaryRepo, noopCommentRepo())

	_, err := svc.ToggleDiaryLike(context.Background(), 1, 99)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestToggleDiaryLike_PrivateDiaryHiddenFromOthers(t *testing.T) {
	diaryRepo := noopDiaryRepo()
	diaryRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Diary, error) {
		return &models.Diary{ID: id, UserID: 1, IsPublic: false}, nil
	}
	svc := NewLikeService(noopLikeRepo(), diaryRepo, noopCommentRepo())

	_, err := svc.ToggleDiaryLike(context.Background(), 2, 5)
	assertAppErrorCode(t, err, models.CodeNotFound)

	// the owner may like their own private diary
	result, err := svc.ToggleDiaryLike(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, result.Liked)
}

func TestToggleDiaryLike_PassesThroughResult(t *testing.T) {
	likeRepo := noopLikeRepo()
	likeRepo.toggleFn = func(_ context.Context, userID uint, targetType models.LikeTarget, targetID uint) (*models.LikeResult, error) {
		assert.Equal(t, uint(3), userID)
		assert.Equal(t, models.LikeTargetDiary, targetType)
		assert.Equal(t, uint(5), targetID)
		return &models.LikeResult{Liked: false, LikesCount: 4}, nil
	}
	svc := NewLikeService(likeRepo, noopDiaryRepo(), noopCommentRepo())

	result, err := svc.ToggleDiaryLike(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(4), result.LikesCount)
}

func TestToggleCommentLike_TargetMustExist(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Comment, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewLikeService(noopLikeRepo(), noopDiaryRepo(), commentRepo)

	_, err := svc.ToggleCommentLike(context.Background(), 1, 99)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestToggleCommentLike_PrivateDiaryHiddenFromOthers(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, DiaryID: 5}, nil
	}
	diaryRepo := noopDiaryRepo()
	diaryRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Diary, error) {
		return &models.Diary{ID: id, UserID: 1, IsPublic: false}, nil
	}
	svc := NewLikeService(noopLikeRepo(), diaryRepo, commentRepo)

	// liking a comment must not reveal a private diary to a non-owner
	_, err := svc.ToggleCommentLike(context.Background(), 2, 7)
	assertAppErrorCode(t, err, models.CodeNotFound)

	// the diary owner can still like comments on their own private entry
	result, err := svc.ToggleCommentLike(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, result.Liked)
}

func TestToggleCommentLike_Success(t *testing.T) {
	likeRepo := noopLikeRepo()
	likeRepo.toggleFn = func(_ context.Context, _ uint, targetType models.LikeTarget, _ uint) (*models.LikeResult, error) {
		assert.Equal(t, models.LikeTargetComment, targetType)
		return &models.LikeResult{Liked: true, LikesCount: 1}, nil
	}
	svc := NewLikeService(likeRepo, noopDiaryRepo(), noopCommentRepo())

	result, err := svc.ToggleCommentLike(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikesCount)
}
