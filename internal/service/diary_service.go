package service

import (
	"context"
	"errors"
	"strings"

	"daybook/internal/cache"
	"daybook/internal/models"
	"daybook/internal/repository"

	"gorm.io/gorm"
)

type DiaryService struct {
	diaryRepo repository.DiaryRepository
	userRepo  repository.UserRepository
}

type CreateDiaryInput struct {
	UserID   uint
	Title    string
	Content  string
	IsPublic *bool
}

type ListDiariesInput struct {
	Skip          int
	Limit         int
	PublicOnly    bool
	CurrentUserID uint
}

type UpdateDiaryInput struct {
	UserID   uint
	DiaryID  uint
	Title    string
	Content  string
	IsPublic *bool
}

func NewDiaryService(diaryRepo repository.DiaryRepository, userRepo repository.UserRepository) *DiaryService {
	return &DiaryService{diaryRepo: diaryRepo, userRepo: userRepo}
}

const maxDiaryTitleLen = 200
const maxDiaryContentLen = 50000

func (s *DiaryService) CreateDiary(ctx context.Context, in CreateDiaryInput) (*models.Diary, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxDiaryTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxDiaryContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	diary := &models.Diary{
		Title:    in.Title,
		Content:  in.Content,
		IsPublic: isPublic,
		UserID:   in.UserID,
		Author:   author.DisplayName(),
	}
	if err := s.diaryRepo.Create(ctx, diary); err != nil {
		return nil, err
	}

	return s.diaryRepo.GetByID(ctx, diary.ID, in.UserID)
}

func (s *DiaryService) ListDiaries(ctx context.Context, in ListDiariesInput) (*models.DiaryPage, error) {
	// The anonymous first page of the public feed absorbs most read traffic,
	// so it is served cache-aside. Personalized or deeper pages go straight
	// to the database.
	if in.CurrentUserID == 0 && in.PublicOnly && in.Skip == 0 && in.Limit <= 20 {
		var page models.DiaryPage
		err := cache.Aside(ctx, cache.DiaryFeedKey(), &page, cache.DiaryFeedTTL, func() error {
			diaries, total, fetchErr := s.diaryRepo.List(ctx, in.Skip, in.Limit, in.PublicOnly, 0)
			if fetchErr != nil {
				return fetchErr
			}
			page = models.DiaryPage{Items: diaries, Total: total, Skip: in.Skip, Limit: in.Limit}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	diaries, total, err := s.diaryRepo.List(ctx, in.Skip, in.Limit, in.PublicOnly, in.CurrentUserID)
	if err != nil {
		return nil, err
	}
	return &models.DiaryPage{Items: diaries, Total: total, Skip: in.Skip, Limit: in.Limit}, nil
}

// ListUserDiaries returns the given user's own diaries, private ones included.
func (s *DiaryService) ListUserDiaries(ctx context.Context, userID uint, skip, limit int) (*models.DiaryPage, error) {
	diaries, total, err := s.diaryRepo.ListByUser(ctx, userID, skip, limit, userID)
	if err != nil {
		return nil, err
	}
	return &models.DiaryPage{Items: diaries, Total: total, Skip: skip, Limit: limit}, nil
}

// GetDiary returns the diary when it is public or owned by the caller.
// A private diary is reported as not found to anyone else, so its
// existence is not leaked.
func (s *DiaryService) GetDiary(ctx context.Context, id uint, currentUserID uint) (*models.Diary, error) {
	diary, err := s.diaryRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Diary not found")
		}
		return nil, err
	}
	if !diary.IsPublic && diary.UserID != currentUserID {
		return nil, models.NewNotFoundError("Diary not found")
	}
	return diary, nil
}

func (s *DiaryService) UpdateDiary(ctx context.Context, in UpdateDiaryInput) (*models.Diary, error) {
	diary, err := s.GetDiary(ctx, in.DiaryID, in.UserID)
	if err != nil {
		return nil, err
	}
	if diary.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own diaries")
	}

	// A blank (or whitespace-only) field leaves the stored value untouched.
	if title := strings.TrimSpace(in.Title); title != "" {
		if len(title) > maxDiaryTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		diary.Title = title
	}
	if content := strings.TrimSpace(in.Content); content != "" {
		if len(content) > maxDiaryContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		diary.Content = content
	}
	if in.IsPublic != nil {
		diary.IsPublic = *in.IsPublic
	}

	if err := s.diaryRepo.Update(ctx, diary); err != nil {
		return nil, err
	}
	return s.diaryRepo.GetByID(ctx, diary.ID, in.UserID)
}

func (s *DiaryService) DeleteDiary(ctx context.Context, userID, diaryID uint) error {
	diary, err := s.GetDiary(ctx, diaryID, userID)
	if err != nil {
		return err
	}
	if diary.UserID != userID {
		return models.NewForbiddenError("You can only delete your own diaries")
	}
	return s.diaryRepo.Delete(ctx, diaryID)
}
