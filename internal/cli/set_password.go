package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fixbo/fixbo/internal/services"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// RunSetPasswordCommand prompts for a new password on the terminal, without
// echo, and sets it directly. Unlike reset, the user is not forced to change
// it again.
func RunSetPasswordCommand(dbPath string, email string) error {
	user, database, err := loadUserByEmail(dbPath, email)
	if err != nil {
		return err
	}

	password, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return err
	}

	confirmation, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirmation {
		return errors.New("passwords do not match")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = false
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Printf("✅ Password updated for %s\n", user.Email)
	return nil
}

func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("set-password requires an interactive terminal")
	}

	fmt.Print(label)
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
