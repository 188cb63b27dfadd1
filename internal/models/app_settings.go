package models

import "time"

type AppSettings struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	UserID               uint      `gorm:"uniqueIndex;not null" json:"-"`
	EmailNotifications   bool      `gorm:"not null;default:true" json:"emailNotifications"`
	BrowserNotifications bool      `gorm:"not null;default:false" json:"browserNotifications"`
	BidAlerts            bool      `gorm:"not null;default:true" json:"bidAlerts"`
	StatusUpdates        bool      `gorm:"not null;default:true" json:"statusUpdates"`
	DarkMode             bool      `gorm:"not null;default:false" json:"darkMode"`
	CompactView          bool      `gorm:"not null;default:false" json:"compactView"`
	CreatedAt            time.Time `json:"-"`
	UpdatedAt            time.Time `json:"-"`
}

// DefaultAppSettings is what reads return before the user ever saved anything.
func DefaultAppSettings(userID uint) AppSettings {
	return AppSettings{
		UserID:             userID,
		EmailNotifications: true,
		BidAlerts:          true,
		StatusUpdates:      true,
	}
}
