package service

import (
	"context"
	"errors"
	"strings"

	"daybook/internal/models"
	"daybook/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	diaryRepo   repository.DiaryRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID  uint
	DiaryID uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	diaryRepo repository.DiaryRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		diaryRepo:   diaryRepo,
		userRepo:    userRepo,
	}
}

const maxCommentLen = 500

// CreateComment attaches a comment to a diary the caller can see.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 500 characters)")
	}

	if err := s.requireVisibleDiary(ctx, in.DiaryID, in.UserID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: in.Content,
		DiaryID: in.DiaryID,
		UserID:  in.UserID,
		Author:  author.DisplayName(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

func (s *CommentService) ListComments(ctx context.Context, diaryID uint, sort repository.CommentSort, currentUserID uint) ([]*models.Comment, error) {
	if err := s.requireVisibleDiary(ctx, diaryID, currentUserID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByDiary(ctx, diaryID, sort, currentUserID)
}

func (s *CommentService) ListUserComments(ctx context.Context, userID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByUser(ctx, userID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.getComment(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 500 characters)")
	}
	comment.Content = in.Content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.getComment(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *CommentService) getComment(ctx context.Context, id, currentUserID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) requireVisibleDiary(ctx context.Context, diaryID, currentUserID uint) error {
	diary, err := s.diaryRepo.GetByID(ctx, diaryID, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Diary not found")
		}
		return err
	}
	if !diary.IsPublic && diary.UserID != currentUserID {
		return models.NewNotFoundError("Diary not found")
	}
	return nil
}
