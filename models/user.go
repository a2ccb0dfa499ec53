package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `gorm:"size:254;uniqueIndex;not null"`
	Username  string `gorm:"size:150;uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	Avatar    string
	IsAdmin   bool
}

// Follow links a follower to an author. Self-follows are rejected in the
// service layer.
type Follow struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"uniqueIndex:idx_follower_following;not null"`
	FollowingID uint `gorm:"uniqueIndex:idx_follower_following;not null"`
	CreatedAt   time.Time
}
