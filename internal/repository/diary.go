// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"daybook/internal/cache"
	"daybook/internal/models"

	"gorm.io/gorm"
)

// DiaryRepository defines the interface for diary data operations
type DiaryRepository interface {
	Create(ctx context.Context, diary *models.Diary) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Diary, error)
	List(ctx context.Context, skip, limit int, publicOnly bool, currentUserID uint) ([]*models.Diary, int64, error)
	ListByUser(ctx context.Context, userID uint, skip, limit int, currentUserID uint) ([]*models.Diary, int64, error)
	Update(ctx context.Context, diary *models.Diary) error
	Delete(ctx context.Context, id uint) error
}

type diaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository creates a new diary repository
func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) Create(ctx context.Context, diary *models.Diary) error {
	err := r.db.WithContext(ctx).Create(diary).Error
	if err == nil {
		cache.InvalidateDiaryFeed(ctx)
	}
	return err
}

func (r *diaryRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Diary, error) {
	var diary models.Diary
	key := cache.DiaryKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &diary, cache.DiaryTTL, func() error {
			return r.applyDiaryDetails(r.db.WithContext(ctx), 0).First(&diary, id).Error
		})
	} else {
		err = r.applyDiaryDetails(r.db.WithContext(ctx), currentUserID).First(&diary, id).Error
	}

	if err != nil {
		return nil, err
	}
	if err := r.enrichAuthorImages(ctx, []*models.Diary{&diary}); err != nil {
		return nil, err
	}
	return &diary, nil
}

func (r *diaryRepository) List(ctx context.Context, skip, limit int, publicOnly bool, currentUserID uint) ([]*models.Diary, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Diary{})
	if publicOnly {
		base = base.Where("is_public = ?", true)
	} else {
		// Private entries are only ever the caller's own. An anonymous
		// caller (currentUserID 0) matches no user_id, so this degrades
		// to public-only.
		base = base.Where("is_public = ? OR user_id = ?", true, currentUserID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var diaries []*models.Diary
	err := r.applyDiaryDetails(base.Session(&gorm.Session{}), currentUserID).
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&diaries).Error
	if err != nil {
		return nil, 0, err
	}
	if err := r.enrichAuthorImages(ctx, diaries); err != nil {
		return nil, 0, err
	}
	return diaries, total, nil
}

func (r *diaryRepository) ListByUser(ctx context.Context, userID uint, skip, limit int, currentUserID uint) ([]*models.Diary, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Diary{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var diaries []*models.Diary
	err := r.applyDiaryDetails(base.Session(&gorm.Session{}), currentUserID).
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&diaries).Error
	if err != nil {
		return nil, 0, err
	}
	if err := r.enrichAuthorImages(ctx, diaries); err != nil {
		return nil, 0, err
	}
	return diaries, total, nil
}

// applyDiaryDetails adds subqueries to fetch the like count and liked status in a single query.
func (r *diaryRepository) applyDiaryDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "diaries.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'diary' AND likes.target_id = diaries.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'diary' AND likes.target_id = diaries.id AND likes.user_id = ?) as liked",
			currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// enrichAuthorImages resolves the owners' current profile images in one query.
func (r *diaryRepository) enrichAuthorImages(ctx context.Context, diaries []*models.Diary) error {
	if len(diaries) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(diaries))
	seen := map[uint]struct{}{}
	for _, d := range diaries {
		if _, ok := seen[d.UserID]; ok {
			continue
		}
		seen[d.UserID] = struct{}{}
		ids = append(ids, d.UserID)
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
	for _, d := range diaries {
		d.AuthorProfileImage = byID[d.UserID]
	}
	return nil
}

func (r *diaryRepository) Update(ctx context.Context, diary *models.Diary) error {
	if err := r.db.WithContext(ctx).Save(diary).Error; err != nil {
		return err
	}
	cache.InvalidateDiary(ctx, diary.ID)
	return nil
}

// Delete removes the diary together with its comments and every like that
// references the diary or one of those comments, in a single transaction.
func (r *diaryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("diary_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?", models.LikeTargetComment, commentIDs).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetDiary, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("diary_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Diary{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateDiary(ctx, id)
	return nil
}
