// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Diary represents a diary entry owned by a user.
type Diary struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// No column default: gorm skips zero values for defaulted columns on
	// insert, so a `default:true` tag would make private creations public.
	// The service layer owns the public-by-default rule.
	IsPublic bool `gorm:"not null" json:"is_public"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	// Author is the owner's nickname at creation time.
	Author string `json:"author"`
	// AuthorProfileImage is not persisted; resolved from the owner at query time.
	AuthorProfileImage *string `gorm:"-" json:"author_profile_image"`
	// LikesCount is not persisted; computed from the like ledger at query time.
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the requesting user liked this diary (computed).
	Liked     bool           `gorm:"->" json:"is_liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DiaryPage is the paginated list envelope returned by diary listings.
type DiaryPage struct {
	Items []*Diary `json:"items"`
	Total int64    `json:"total"`
	Skip  int      `json:"skip"`
	Limit int      `json:"limit"`
}
