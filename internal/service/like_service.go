package service

import (
	"context"
	"errors"

	"daybook/internal/cache"
	"daybook/internal/models"
	"daybook/internal/repository"

	"gorm.io/gorm"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	diaryRepo   repository.DiaryRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	diaryRepo repository.DiaryRepository,
	commentRepo repository.CommentRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		diaryRepo:   diaryRepo,
		commentRepo: commentRepo,
	}
}

// ToggleDiaryLike flips the caller's like on a visible diary.
func (s *LikeService) ToggleDiaryLike(ctx context.Context, userID, diaryID uint) (*models.LikeResult, error) {
	diary, err := s.diaryRepo.GetByID(ctx, diaryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Diary not found")
		}
		return nil, err
	}
	if !diary.IsPublic && diary.UserID != userID {
		return nil, models.NewNotFoundError("Diary not found")
	}

	result, err := s.likeRepo.Toggle(ctx, userID, models.LikeTargetDiary, diaryID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateDiary(ctx, diaryID)
	return result, nil
}

// ToggleCommentLike flips the caller's like on a comment whose diary the
// caller can see. A comment on someone else's private diary is reported as
// not found, like the diary itself.
func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (*models.LikeResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found")
		}
		return nil, err
	}

	diary, err := s.diaryRepo.GetByID(ctx, comment.DiaryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found")
		}
		return nil, err
	}
	if !diary.IsPublic && diary.UserID != userID {
		return nil, models.NewNotFoundError("Comment not found")
	}

	return s.likeRepo.Toggle(ctx, userID, models.LikeTargetComment, commentID)
}
