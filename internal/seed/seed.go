package seed

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"daybook/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumDiaries  int
	ShouldClean bool
}

// Seeder populates the database with demo users, diaries, comments and likes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Hard deletes so reruns start clean.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Like{},
		&models.Comment{},
		&models.Diary{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run seeds users, their diaries, and a mesh of comments and likes between
// them.
func (s *Seeder) Run(opts Options) error {
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	diaries := make([]*models.Diary, 0, opts.NumDiaries)
	for i := 0; i < opts.NumDiaries; i++ {
		author := users[s.rng.Intn(len(users))]
		diary, err := s.factory.CreateDiary(author)
		if err != nil {
			return err
		}
		diaries = append(diaries, diary)
	}
	log.Printf("Created %d diaries", len(diaries))

	var comments int
	for _, diary := range diaries {
		if !diary.IsPublic {
			continue
		}
		for i := 0; i < s.rng.Intn(5); i++ {
			commenter := users[s.rng.Intn(len(users))]
			comment, err := s.factory.CreateComment(commenter, diary)
			if err != nil {
				return err
			}
			comments++

			// some comments attract likes too
			if s.rng.Intn(3) == 0 {
				liker := users[s.rng.Intn(len(users))]
				if err := s.factory.CreateLike(liker, models.LikeTargetComment, comment.ID); err != nil {
					return err
				}
			}
		}

		for i := 0; i < s.rng.Intn(len(users)); i++ {
			liker := users[s.rng.Intn(len(users))]
			if err := s.factory.CreateLike(liker, models.LikeTargetDiary, diary.ID); err != nil {
				return err
			}
		}
	}
	log.Printf("Created %d comments", comments)

	return nil
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
