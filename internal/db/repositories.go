package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Properties  *PropertyRepository
	Requests    *RequestRepository
	Bids        *BidRepository
	Profiles    *ProfileRepository
	Engagements *EngagementRepository
	Settings    *SettingsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Properties:  NewPropertyRepository(database),
		Requests:    NewRequestRepository(database),
		Bids:        NewBidRepository(database),
		Profiles:    NewProfileRepository(database),
		Engagements: NewEngagementRepository(database),
		Settings:    NewSettingsRepository(database),
	}
}
