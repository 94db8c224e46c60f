package models

import "time"

// LikeTarget identifies the kind of record a like points at.
type LikeTarget string

const (
	LikeTargetDiary   LikeTarget = "diary"
	LikeTargetComment LikeTarget = "comment"
)

// Valid reports whether t is a known like target kind.
func (t LikeTarget) Valid() bool {
	return t == LikeTargetDiary || t == LikeTargetComment
}

// Like records that a user liked a diary or a comment.
// The (UserID, TargetType, TargetID) triple is unique: a user either has
// or has not liked a given target. Likes are hard-deleted on un-toggle so
// the unique index stays authoritative for counts.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	TargetType LikeTarget `gorm:"not null;uniqueIndex:idx_user_target;size:16" json:"target_type"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_user_target" json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LikeResult is the outcome of a toggle, returned to the client.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}
