package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/fixbo/fixbo/internal/db"
	"github.com/fixbo/fixbo/internal/models"
	"github.com/fixbo/fixbo/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand issues a temporary password for the account and
// forces a change on next login.
func RunResetPasswordCommand(dbPath string, email string) error {
	user, database, err := loadUserByEmail(dbPath, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := security.TempPassword()
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = true
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Println("✅ Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("User must change password on next login.")

	return nil
}

func loadUserByEmail(dbPath string, email string) (models.User, *gorm.DB, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return models.User{}, nil, errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return models.User{}, nil, fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, nil, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return models.User{}, nil, fmt.Errorf("load user: %w", err)
	}
	return user, database, nil
}
