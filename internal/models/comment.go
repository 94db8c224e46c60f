// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment attached to a diary entry.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`
	DiaryID uint   `gorm:"not null;index" json:"diary_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
	// Author is the owner's nickname at creation time.
	Author string `json:"author"`
	// AuthorProfileImage is not persisted; resolved from the owner at query time.
	AuthorProfileImage *string `gorm:"-" json:"author_profile_image"`
	// LikesCount is not persisted; computed from the like ledger at query time.
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the requesting user liked this comment (computed).
	Liked     bool           `gorm:"->" json:"is_liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
