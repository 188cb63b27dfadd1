package api

import (
	"time"

	"github.com/fixbo/fixbo/internal/db"
	"github.com/fixbo/fixbo/internal/services"
	"github.com/fixbo/fixbo/internal/snapshot"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool

	repositories      *db.Repositories
	authService       *services.AuthService
	onboardingSvc     *services.OnboardingService
	profileSvc        *services.ProfileOnboardingService
	requestService    *services.RequestService
	propertyService   *services.PropertyService
	marketplaceSvc    *services.MarketplaceService
	bidService        *services.BidService
	contractorService *services.ContractorService
	settingsService   *services.SettingsService
	snapshotService   *snapshot.Service

	loginThrottle *loginThrottle
}

const (
	authCookieName = "fixbo_auth"
	contextUserKey = "authUser"

	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
