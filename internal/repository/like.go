package repository

import (
	"context"

	"daybook/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines interface for the like ledger.
type LikeRepository interface {
	// Toggle inserts or removes a like and returns the resulting state
	// together with the fresh count for the target.
	Toggle(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (*models.LikeResult, error)
	Count(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error)
	IsLiked(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle relies on the unique index over (user_id, target_type, target_id).
// The conditional insert either takes the row or affects nothing; a no-op
// insert means the like already exists and gets removed instead. Two
// concurrent calls therefore always land on opposite outcomes.
func (r *likeRepository) Toggle(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (*models.LikeResult, error) {
	like := models.Like{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return nil, res.Error
	}

	liked := res.RowsAffected == 1
	if !liked {
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			Delete(&models.Like{}).Error
		if err != nil {
			return nil, err
		}
	}

	count, err := r.Count(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	return &models.LikeResult{Liked: liked, LikesCount: count}, nil
}

func (r *likeRepository) Count(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	return count > 0, err
}
