package models

import "time"

// JobEngagement tracks cosmetic popularity counters per request.
type JobEngagement struct {
	ID        uint `gorm:"primaryKey"`
	RequestID uint `gorm:"uniqueIndex;not null"`
	Views     int  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserLike records a user liking a marketplace job. One row per (user, job).
type UserLike struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:uidx_user_like"`
	RequestID uint `gorm:"not null;uniqueIndex:uidx_user_like"`
	CreatedAt time.Time
}
