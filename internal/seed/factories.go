// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"daybook/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Every seeded user gets
// the password "password123" so seeded accounts can be logged into.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	image := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
	user := &models.User{
		Username:     gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Nickname:     gofakeit.FirstName(),
		Email:        gofakeit.Email(),
		Password:     string(hashedPassword),
		ProfileImage: &image,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateDiary constructs and persists a diary entry for the given user with
// a creation time spread over the last 90 days.
func (f *Factory) CreateDiary(user *models.User, overrides ...func(*models.Diary)) (*models.Diary, error) {
	diary := &models.Diary{
		Title:    gofakeit.Sentence(4),
		Content:  gofakeit.Paragraph(2, 4, 8, "\n"),
		IsPublic: f.rng.Intn(10) > 2,
		UserID:   user.ID,
		Author:   user.DisplayName(),
	}

	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	diary.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(diary)
	}

	if err := f.db.Create(diary).Error; err != nil {
		return nil, err
	}
	return diary, nil
}

// CreateComment constructs and persists a comment on the given diary.
func (f *Factory) CreateComment(user *models.User, diary *models.Diary) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(f.rng.Intn(12) + 3),
		DiaryID: diary.ID,
		UserID:  user.ID,
		Author:  user.DisplayName(),
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like from the user on the given target, ignoring
// duplicates.
func (f *Factory) CreateLike(user *models.User, targetType models.LikeTarget, targetID uint) error {
	like := &models.Like{
		UserID:     user.ID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	err := f.db.Create(like).Error
	if err != nil && isDuplicateError(err) {
		return nil
	}
	return err
}
