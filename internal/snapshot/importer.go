package snapshot

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"github.com/fixbo/fixbo/internal/security"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Import restores an archive into the live store. Existing emails are left
// untouched and counted as skipped. Plaintext passwords from old archives
// are hashed on the way in and never stored.
func (service *Service) Import(archive Archive) (ImportSummary, error) {
	summary := ImportSummary{}

	archivedUsers, err := decodeUsers(archive)
	if err != nil {
		return summary, err
	}

	// First pass: accounts, so every later record can resolve its owner.
	usersByPublicID := make(map[string]*models.User, len(archivedUsers))
	for index := range archivedUsers {
		record := archivedUsers[index]

		email := strings.ToLower(strings.TrimSpace(record.Email))
		if email == "" || strings.TrimSpace(record.ID) == "" {
			summary.Skipped++
			continue
		}
		exists, err := service.repos.Users.ExistsByNormalizedEmail(email)
		if err != nil {
			return summary, &StorageError{Op: "write", Key: KeyAllUsers, Err: err}
		}
		if exists {
			summary.Skipped++
			continue
		}

		user, err := buildUserFromArchive(archive, record, email)
		if err != nil {
			return summary, err
		}
		if err := service.repos.Users.Create(user); err != nil {
			return summary, &StorageError{Op: "write", Key: KeyAllUsers, Err: err}
		}
		usersByPublicID[user.PublicID] = user
		summary.Users++
	}

	// Second pass: everything owned by one user.
	sessionEmail := strings.ToLower(strings.TrimSpace(archive[KeyCurrentUserEmail]))
	propertyIDs := make(map[string]uint)
	requestsByJobID := make(map[string]*models.ServiceRequest)
	for publicID, user := range usersByPublicID {
		count, err := service.importProperties(archive, publicID, user.ID, propertyIDs)
		if err != nil {
			return summary, err
		}
		summary.Properties += count

		count, err = service.importRequests(archive, publicID, user.ID, propertyIDs, requestsByJobID)
		if err != nil {
			return summary, err
		}
		summary.Requests += count

		if err := service.importProfile(archive, publicID, user.ID); err != nil {
			return summary, err
		}
		found, err := service.importSettings(archive, AppSettingsKey(publicID), user.ID)
		if err != nil {
			return summary, err
		}
		if !found && sessionEmail != "" && user.Email == sessionEmail {
			// The old client kept one unscoped settings blob for whoever
			// was signed in. Attribute it to the archive's session user.
			if _, err := service.importSettings(archive, KeyAppSettings, user.ID); err != nil {
				return summary, err
			}
		}
	}

	// Third pass: cross-user records that need both sides resolved.
	for jobID, request := range requestsByJobID {
		count, err := service.importJobBids(archive, jobID, request, usersByPublicID)
		if err != nil {
			return summary, err
		}
		summary.Bids += count

		if raw, ok := archive[JobViewsKey(jobID)]; ok {
			views, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return summary, &StorageError{Op: "decode", Key: JobViewsKey(jobID), Err: err}
			}
			if views < 0 {
				return summary, &StorageError{Op: "decode", Key: JobViewsKey(jobID), Err: errNegativeViewCount}
			}
			if err := service.repos.Engagements.SetViews(request.ID, views); err != nil {
				return summary, &StorageError{Op: "write", Key: JobViewsKey(jobID), Err: err}
			}
		}
	}

	for publicID, user := range usersByPublicID {
		count, err := service.importLikes(archive, publicID, user.ID, requestsByJobID)
		if err != nil {
			return summary, err
		}
		summary.Likes += count
	}

	return summary, nil
}

var errNegativeViewCount = errors.New("negative view count")

// decodeUsers prefers the current allUsers key, a map of records keyed by
// email, and falls back to the flat array the first client generation wrote
// under either key.
func decodeUsers(archive Archive) ([]archiveUser, error) {
	for _, key := range []string{KeyAllUsers, KeyLegacyUsers} {
		raw, ok := archive[key]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}

		byEmail := make(map[string]archiveUser)
		if err := json.Unmarshal([]byte(raw), &byEmail); err == nil {
			emails := make([]string, 0, len(byEmail))
			for email := range byEmail {
				emails = append(emails, email)
			}
			sort.Strings(emails)

			users := make([]archiveUser, 0, len(byEmail))
			for _, email := range emails {
				record := byEmail[email]
				if strings.TrimSpace(record.Email) == "" {
					record.Email = email
				}
				users = append(users, record)
			}
			return users, nil
		}

		users := make([]archiveUser, 0)
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			return nil, &StorageError{Op: "decode", Key: key, Err: err}
		}
		return users, nil
	}
	return nil, nil
}

func buildUserFromArchive(archive Archive, record archiveUser, email string) (*models.User, error) {
	passwordHash := strings.TrimSpace(record.PasswordHash)
	mustChange := false
	if passwordHash == "" {
		plaintext := record.Password
		if plaintext == "" {
			// No credentials in the archive: lock the account behind a
			// reset instead of leaving it open.
			generated, err := security.TempPassword()
			if err != nil {
				return nil, &StorageError{Op: "write", Key: KeyAllUsers, Err: err}
			}
			plaintext = generated
			mustChange = true
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
		if err != nil {
			return nil, &StorageError{Op: "write", Key: KeyAllUsers, Err: err}
		}
		passwordHash = string(hashed)
	}

	role := record.UserType
	if role != models.RoleHandyman {
		role = models.RoleCustomer
	}

	user := &models.User{
		PublicID:           record.ID,
		Email:              email,
		PasswordHash:       passwordHash,
		Name:               strings.TrimSpace(record.Name),
		Phone:              strings.TrimSpace(record.Phone),
		Role:               role,
		MustChangePassword: mustChange,
		CreatedAt:          time.Now(),
	}

	user.SetupCompleted = record.SetupCompleted || flagValue(archive, SetupCompletedKey(record.ID))
	user.HandymanSetupCompleted = record.HandymanSetupCompleted ||
		flagValue(archive, HandymanSetupCompletedKey(record.ID))
	return user, nil
}

func flagValue(archive Archive, key string) bool {
	raw, ok := archive[key]
	if !ok {
		return false
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && value
}

func (service *Service) importProperties(archive Archive, publicID string, userID uint, propertyIDs map[string]uint) (int, error) {
	key := PropertiesKey(publicID)
	records := make([]archiveProperty, 0)
	found, err := getJSON(archive, key, &records)
	if err != nil || !found {
		return 0, err
	}

	count := 0
	for _, record := range records {
		property := models.Property{
			PublicID:          orNewID(record.ID),
			UserID:            userID,
			Address:           record.Address,
			Type:              record.Type,
			OwnerRole:         record.UserRole,
			Size:              record.Size,
			YearBuilt:         record.YearBuilt,
			Bedrooms:          record.Bedrooms,
			Bathrooms:         record.Bathrooms,
			Description:       record.Description,
			Notes:             record.Notes,
			Status:            orDefault(record.Status, models.PropertyStatusActive),
			ActiveRequests:    record.ActiveRequests,
			CompletedRequests: record.CompletedRequests,
			CreatedAt:         orNow(record.DateAdded),
		}
		if err := service.repos.Properties.Create(&property); err != nil {
			return count, &StorageError{Op: "write", Key: key, Err: err}
		}
		propertyIDs[property.PublicID] = property.ID
		count++
	}
	return count, nil
}

func (service *Service) importRequests(archive Archive, publicID string, userID uint, propertyIDs map[string]uint, requestsByJobID map[string]*models.ServiceRequest) (int, error) {
	key := ServiceRequestsKey(publicID)
	records := make([]archiveRequest, 0)
	found, err := getJSON(archive, key, &records)
	if err != nil || !found {
		return 0, err
	}

	count := 0
	for _, record := range records {
		status := record.Status
		if !models.IsKnownRequestStatus(status) {
			status = models.RequestStatusOpen
		}

		request := models.ServiceRequest{
			PublicID:    orNewID(record.ID),
			UserID:      userID,
			Title:       record.Title,
			Description: record.Description,
			Category:    record.Category,
			Priority:    orDefault(record.Priority, models.PriorityMedium),
			Images:      record.Images,
			Budget:      record.Budget,
			Timeline:    record.Timeline,
			Status:      status,
			BidCount:    record.BidCount,
			CreatedAt:   orNow(record.DateCreated),
		}
		if record.PropertyID != "" {
			if propertyID, ok := propertyIDs[record.PropertyID]; ok {
				request.PropertyID = &propertyID
			}
		}
		if err := service.repos.Requests.Create(&request); err != nil {
			return count, &StorageError{Op: "write", Key: key, Err: err}
		}
		requestsByJobID[request.PublicID] = &request
		count++
	}
	return count, nil
}

func (service *Service) importJobBids(archive Archive, jobID string, request *models.ServiceRequest, usersByPublicID map[string]*models.User) (int, error) {
	key := JobBidsKey(jobID)
	records := make([]archiveBid, 0)
	found, err := getJSON(archive, key, &records)
	if err != nil || !found {
		return 0, err
	}

	count := 0
	for _, record := range records {
		contractor, ok := usersByPublicID[record.ContractorID]
		if !ok {
			continue
		}

		bid := models.Bid{
			PublicID:       orNewID(record.ID),
			RequestID:      request.ID,
			JobPublicID:    request.PublicID,
			ContractorID:   contractor.ID,
			ContractorName: orDefault(record.Contractor, contractor.Name),
			Amount:         record.Amount,
			EstimatedHours: record.EstimatedHours,
			Message:        record.Message,
			Status:         orDefault(record.Status, models.BidStatusPending),
			ScheduledDate:  record.ScheduledDate,
			CreatedAt:      orNow(record.CreatedAt),
		}
		if err := service.repos.Bids.Create(&bid); err != nil {
			return count, &StorageError{Op: "write", Key: key, Err: err}
		}
		count++
	}
	return count, nil
}

func (service *Service) importLikes(archive Archive, publicID string, userID uint, requestsByJobID map[string]*models.ServiceRequest) (int, error) {
	key := UserLikesKey(publicID)
	jobIDs := make([]string, 0)
	found, err := getJSON(archive, key, &jobIDs)
	if err != nil || !found {
		return 0, err
	}

	count := 0
	for _, jobID := range jobIDs {
		request, ok := requestsByJobID[jobID]
		if !ok {
			continue
		}
		liked, err := service.repos.Engagements.ToggleLike(userID, request.ID)
		if err != nil {
			return count, &StorageError{Op: "write", Key: key, Err: err}
		}
		if liked {
			count++
		}
	}
	return count, nil
}

func (service *Service) importProfile(archive Archive, publicID string, userID uint) error {
	key := HandymanProfileKey(publicID)
	record := archiveProfile{}
	found, err := getJSON(archive, key, &record)
	if err != nil || !found {
		return err
	}

	profile := models.HandymanProfile{
		UserID:                userID,
		BusinessName:          record.BusinessName,
		ContactPhone:          record.ContactPhone,
		ContactEmail:          record.ContactEmail,
		YearsExperience:       record.YearsExperience,
		GettingStarted:        record.GettingStarted,
		HasLiabilityInsurance: record.HasLiabilityInsurance,
		HasWorkersComp:        record.HasWorkersComp,
		HasBonding:            record.HasBonding,
		InsuranceProvider:     record.InsuranceProvider,
		Services:              record.Services,
		SpecialSkills:         record.SpecialSkills,
		ServiceArea:           record.ServiceArea,
		ServiceRadiusMiles:    record.ServiceRadiusMiles,
		Availability:          record.Availability,
		HourlyRate:            record.HourlyRate,
		MinimumCharge:         record.MinimumCharge,
		PricingModel:          record.PricingModel,
		CreatedAt:             time.Now(),
	}
	if err := service.repos.Profiles.Save(&profile); err != nil {
		return &StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (service *Service) importSettings(archive Archive, key string, userID uint) (bool, error) {
	record := archiveSettings{}
	found, err := getJSON(archive, key, &record)
	if err != nil || !found {
		return false, err
	}

	settings := models.AppSettings{
		UserID:               userID,
		EmailNotifications:   record.EmailNotifications,
		BrowserNotifications: record.BrowserNotifications,
		BidAlerts:            record.BidAlerts,
		StatusUpdates:        record.StatusUpdates,
		DarkMode:             record.DarkMode,
		CompactView:          record.CompactView,
	}
	if err := service.repos.Settings.Upsert(&settings); err != nil {
		return false, &StorageError{Op: "write", Key: key, Err: err}
	}
	return true, nil
}

func getJSON(archive Archive, key string, target any) (bool, error) {
	raw, ok := archive[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

func orNewID(value string) string {
	if strings.TrimSpace(value) == "" {
		return uuid.NewString()
	}
	return value
}

func orDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orNow(value time.Time) time.Time {
	if value.IsZero() {
		return time.Now()
	}
	return value
}
