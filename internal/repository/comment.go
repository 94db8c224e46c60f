// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"daybook/internal/models"

	"gorm.io/gorm"
)

// CommentSort selects the ordering of a comment listing.
type CommentSort string

const (
	// CommentSortNewest orders by creation time, newest first.
	CommentSortNewest CommentSort = "newest"
	// CommentSortLikes orders by like count, ties broken by creation time.
	CommentSortLikes CommentSort = "likes"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error)
	ListByDiary(ctx context.Context, diaryID uint, sort CommentSort, currentUserID uint) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.applyCommentDetails(r.db.WithContext(ctx), currentUserID).First(&comment, id).Error; err != nil {
		return nil, err
	}
	if err := r.enrichAuthorImages(ctx, []*models.Comment{&comment}); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByDiary(ctx context.Context, diaryID uint, sort CommentSort, currentUserID uint) ([]*models.Comment, error) {
	base := r.applyCommentDetails(r.db.WithContext(ctx), currentUserID).
		Where("diary_id = ?", diaryID)

	// likes_count is a SELECT alias from applyCommentDetails; both PostgreSQL
	// and SQLite allow referencing it in ORDER BY at the same query level.
	switch sort {
	case CommentSortLikes:
		base = base.Order("likes_count DESC, created_at DESC")
	default:
		base = base.Order("created_at DESC")
	}

	var comments []*models.Comment
	if err := base.Find(&comments).Error; err != nil {
		return nil, err
	}
	if err := r.enrichAuthorImages(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyCommentDetails(r.db.WithContext(ctx), userID).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if err := r.enrichAuthorImages(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) applyCommentDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "comments.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id AND likes.user_id = ?) as liked",
			currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *commentRepository) enrichAuthorImages(ctx context.Context, comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(comments))
	seen := map[uint]struct{}{}
	for _, c := range comments {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		ids = append(ids, c.UserID)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Select("id", "profile_image").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return err
	}

	byID := make(map[uint]*string, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].ProfileImage
	}
	for _, c := range comments {
		c.AuthorProfileImage = byID[c.UserID]
	}
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes the comment and any likes referencing it.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetComment, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}
