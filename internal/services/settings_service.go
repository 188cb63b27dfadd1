package services

import (
	"errors"
	"strings"

	"github.com/fixbo/fixbo/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SettingsUserRepository interface {
	FindByID(userID uint) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	UpdateByID(userID uint, updates map[string]any) error
	RearmSetup(userID uint, role string) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AppSettingsRepository interface {
	FindByUser(userID uint) (models.AppSettings, error)
	Upsert(settings *models.AppSettings) error
}

type ProfileUpdateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type AppSettingsInput struct {
	EmailNotifications   bool `json:"emailNotifications"`
	BrowserNotifications bool `json:"browserNotifications"`
	BidAlerts            bool `json:"bidAlerts"`
	StatusUpdates        bool `json:"statusUpdates"`
	DarkMode             bool `json:"darkMode"`
	CompactView          bool `json:"compactView"`
}

type SettingsService struct {
	users    SettingsUserRepository
	settings AppSettingsRepository
}

func NewSettingsService(users SettingsUserRepository, settings AppSettingsRepository) *SettingsService {
	return &SettingsService{users: users, settings: settings}
}

// UpdateProfile changes the account's name, email and phone. Email changes
// keep the uniqueness guarantee.
func (service *SettingsService) UpdateProfile(userID uint, input ProfileUpdateInput) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	validation := NewValidationError()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		validation.Add("name", "Name is required")
	}

	email := NormalizeEmail(input.Email)
	if email == "" {
		validation.Add("email", "Email is required")
	} else if !IsValidEmail(email) {
		validation.Add("email", "Enter a valid email address")
	}
	if validation.HasErrors() {
		return models.User{}, validation
	}

	if email != NormalizeEmail(user.Email) {
		taken, err := service.users.ExistsByNormalizedEmail(email)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrEmailTaken
		}
	}

	updates := map[string]any{
		"name":  name,
		"email": email,
		"phone": strings.TrimSpace(input.Phone),
	}
	if err := service.users.UpdateByID(userID, updates); err != nil {
		return models.User{}, err
	}

	user.Name = name
	user.Email = email
	user.Phone = strings.TrimSpace(input.Phone)
	return user, nil
}

func (service *SettingsService) AppSettings(userID uint) (models.AppSettings, error) {
	return service.settings.FindByUser(userID)
}

func (service *SettingsService) SaveAppSettings(userID uint, input AppSettingsInput) (models.AppSettings, error) {
	settings := models.AppSettings{
		UserID:               userID,
		EmailNotifications:   input.EmailNotifications,
		BrowserNotifications: input.BrowserNotifications,
		BidAlerts:            input.BidAlerts,
		StatusUpdates:        input.StatusUpdates,
		DarkMode:             input.DarkMode,
		CompactView:          input.CompactView,
	}
	if err := service.settings.Upsert(&settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// RestartOnboarding clears the role-specific completion flag so the wizard
// takes over again on next login routing.
func (service *SettingsService) RestartOnboarding(userID uint) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return service.users.RearmSetup(userID, user.Role)
}

// DeleteAccount removes the user and everything hanging off them after
// re-checking the password.
func (service *SettingsService) DeleteAccount(userID uint, password string) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return service.users.DeleteAccountAndRelatedData(userID)
}
