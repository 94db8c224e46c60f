// Package service contains the business rules sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"daybook/internal/models"
	"daybook/internal/repository"
	"daybook/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID          uint
	Username        string
	Nickname        string
	Email           string
	Password        string
	CurrentPassword string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateProfile applies partial profile changes. Username is fixed at
// registration; sending a different one is rejected rather than ignored.
// Changing email or password requires the current password.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		return nil, models.NewImmutableFieldError("Username cannot be changed")
	}

	if in.Email != "" || in.Password != "" {
		if in.CurrentPassword == "" {
			return nil, models.NewInvalidCredentialsError("Current password is required")
		}
		if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); cmpErr != nil {
			return nil, models.NewInvalidCredentialsError("Current password is incorrect")
		}
	}

	if in.Nickname != "" {
		if err := validation.ValidateNickname(in.Nickname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Nickname = in.Nickname
	}

	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, models.NewEmailTakenError()
		}
		user.Email = in.Email
	}

	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewWeakPasswordError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfileImage stores the uploaded image path for the user.
func (s *UserService) SetProfileImage(ctx context.Context, userID uint, path string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.ProfileImage = &path
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
