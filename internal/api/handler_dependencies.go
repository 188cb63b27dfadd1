package api

import (
	"github.com/fixbo/fixbo/internal/db"
	"github.com/fixbo/fixbo/internal/services"
	"github.com/fixbo/fixbo/internal/snapshot"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secretKey []byte, cookieSecure bool) *Handler {
	handler := &Handler{
		db:            database,
		secretKey:     secretKey,
		cookieSecure:  cookieSecure,
		loginThrottle: newLoginThrottle(),
	}
	handler.ensureDependencies()
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}
	repos := handler.repositories

	if handler.authService == nil {
		handler.authService = services.NewAuthService(repos.Users)
	}
	if handler.onboardingSvc == nil {
		handler.onboardingSvc = services.NewOnboardingService(repos.Users)
	}
	if handler.profileSvc == nil {
		handler.profileSvc = services.NewProfileOnboardingService(repos.Users)
	}
	if handler.requestService == nil {
		handler.requestService = services.NewRequestService(repos.Requests, repos.Properties, repos.Bids, repos.Engagements)
	}
	if handler.propertyService == nil {
		handler.propertyService = services.NewPropertyService(repos.Properties)
	}
	if handler.marketplaceSvc == nil {
		handler.marketplaceSvc = services.NewMarketplaceService(repos.Requests, repos.Users, repos.Properties, repos.Engagements)
	}
	if handler.bidService == nil {
		handler.bidService = services.NewBidService(repos.Bids, repos.Requests, repos.Users)
	}
	if handler.contractorService == nil {
		handler.contractorService = services.NewContractorService(repos.Bids, repos.Requests)
	}
	if handler.settingsService == nil {
		handler.settingsService = services.NewSettingsService(repos.Users, repos.Settings)
	}
	if handler.snapshotService == nil {
		handler.snapshotService = snapshot.NewService(repos)
	}
	if handler.loginThrottle == nil {
		handler.loginThrottle = newLoginThrottle()
	}
}
