package db

import (
	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByPublicID(publicID string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("public_id = ?", publicID).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

func (repo *UserRepository) ListAll() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SaveSetupSituation records the step-1 wizard answer without touching the
// completion flag.
func (repo *UserRepository) SaveSetupSituation(userID uint, situation string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("setup_situation", situation).Error
}

func (repo *UserRepository) SavePropertyDraft(userID uint, draft []byte) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("property_draft", draft).Error
}

func (repo *UserRepository) SaveProfileDraft(userID uint, draft []byte) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_draft", draft).Error
}

// CompleteCustomerSetup commits the wizard as one unit: the property row (when
// present) and the completion flag either both land or neither does.
func (repo *UserRepository) CompleteCustomerSetup(userID uint, property *models.Property) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if property != nil {
			property.UserID = userID
			if err := tx.Create(property).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"setup_completed": true,
			"property_draft":  nil,
		}).Error
	})
}

func (repo *UserRepository) CompleteHandymanSetup(userID uint, profile *models.HandymanProfile) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if profile != nil {
			profile.UserID = userID
			if err := tx.Where("user_id = ?", userID).Delete(&models.HandymanProfile{}).Error; err != nil {
				return err
			}
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"handyman_setup_completed": true,
			"profile_draft":            nil,
		}).Error
	})
}

// RearmSetup clears the role-specific completion flag so the wizard is shown
// again on next routing.
func (repo *UserRepository) RearmSetup(userID uint, role string) error {
	column := "setup_completed"
	if role == models.RoleHandyman {
		column = "handyman_setup_completed"
	}
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update(column, false).Error
}

// DeleteAccountAndRelatedData removes the account and everything hanging off
// it in one transaction: the user's own rows, plus the bids, engagement
// counters and likes other users attached to the user's requests, plus any
// bids the user placed on other people's jobs.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		requestIDs := make([]uint, 0)
		if err := tx.Model(&models.ServiceRequest{}).Where("user_id = ?", userID).
			Pluck("id", &requestIDs).Error; err != nil {
			return err
		}
		if len(requestIDs) > 0 {
			if err := tx.Where("request_id IN ?", requestIDs).Delete(&models.Bid{}).Error; err != nil {
				return err
			}
			if err := tx.Where("request_id IN ?", requestIDs).Delete(&models.JobEngagement{}).Error; err != nil {
				return err
			}
			if err := tx.Where("request_id IN ?", requestIDs).Delete(&models.UserLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("contractor_id = ?", userID).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Property{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.HandymanProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.AppSettings{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ServiceRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
