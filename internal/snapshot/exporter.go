package snapshot

import (
	"encoding/json"
	"strconv"

	"github.com/fixbo/fixbo/internal/db"
	"github.com/fixbo/fixbo/internal/models"
)

type Service struct {
	repos *db.Repositories
}

func NewService(repos *db.Repositories) *Service {
	return &Service{repos: repos}
}

// Export walks every account and renders the legacy key layout: allUsers as
// a map of records keyed by email, plus the session keys for the account
// doing the export, since the old client expects to find its own sign-in
// state. Passwords leave only as bcrypt hashes.
func (service *Service) Export(sessionUserID uint) (Archive, error) {
	users, err := service.repos.Users.ListAll()
	if err != nil {
		return nil, &StorageError{Op: "read", Key: KeyAllUsers, Err: err}
	}

	archive := make(Archive)
	allUsers := make(map[string]archiveUser, len(users))

	for index := range users {
		user := users[index]
		isSessionUser := user.ID == sessionUserID

		record := archiveUser{
			ID:                     user.PublicID,
			Name:                   user.Name,
			Email:                  user.Email,
			Phone:                  user.Phone,
			UserType:               user.Role,
			PasswordHash:           user.PasswordHash,
			SetupCompleted:         user.SetupCompleted,
			HandymanSetupCompleted: user.HandymanSetupCompleted,
		}
		allUsers[user.Email] = record

		if isSessionUser {
			archive[KeyCurrentUserEmail] = user.Email
			if err := putJSON(archive, KeyUserData, record); err != nil {
				return nil, err
			}
		}

		archive[SetupCompletedKey(user.PublicID)] = strconv.FormatBool(user.SetupCompleted)
		archive[HandymanSetupCompletedKey(user.PublicID)] = strconv.FormatBool(user.HandymanSetupCompleted)

		if err := service.exportProperties(archive, &user); err != nil {
			return nil, err
		}
		if err := service.exportRequests(archive, &user); err != nil {
			return nil, err
		}
		if err := service.exportLikes(archive, &user); err != nil {
			return nil, err
		}
		if err := service.exportContractorBids(archive, &user); err != nil {
			return nil, err
		}
		if err := service.exportProfile(archive, &user); err != nil {
			return nil, err
		}
		if err := service.exportSettings(archive, &user, isSessionUser); err != nil {
			return nil, err
		}
	}

	if err := putJSON(archive, KeyAllUsers, allUsers); err != nil {
		return nil, err
	}
	return archive, nil
}

func (service *Service) exportProperties(archive Archive, user *models.User) error {
	properties, err := service.repos.Properties.ListByUser(user.ID)
	if err != nil {
		return &StorageError{Op: "read", Key: PropertiesKey(user.PublicID), Err: err}
	}
	if len(properties) == 0 {
		return nil
	}

	records := make([]archiveProperty, 0, len(properties))
	for _, property := range properties {
		records = append(records, archiveProperty{
			ID:                property.PublicID,
			Address:           property.Address,
			Type:              property.Type,
			UserRole:          property.OwnerRole,
			Size:              property.Size,
			YearBuilt:         property.YearBuilt,
			Bedrooms:          property.Bedrooms,
			Bathrooms:         property.Bathrooms,
			Description:       property.Description,
			Notes:             property.Notes,
			Status:            property.Status,
			ActiveRequests:    property.ActiveRequests,
			CompletedRequests: property.CompletedRequests,
			DateAdded:         property.CreatedAt,
		})
	}
	return putJSON(archive, PropertiesKey(user.PublicID), records)
}

func (service *Service) exportRequests(archive Archive, user *models.User) error {
	requests, err := service.repos.Requests.ListByUser(user.ID)
	if err != nil {
		return &StorageError{Op: "read", Key: ServiceRequestsKey(user.PublicID), Err: err}
	}
	if len(requests) == 0 {
		return nil
	}

	records := make([]archiveRequest, 0, len(requests))
	for _, request := range requests {
		record := archiveRequest{
			ID:          request.PublicID,
			Title:       request.Title,
			Description: request.Description,
			Category:    request.Category,
			Priority:    request.Priority,
			Images:      request.Images,
			Budget:      request.Budget,
			Timeline:    request.Timeline,
			Status:      request.Status,
			BidCount:    request.BidCount,
			DateCreated: request.CreatedAt,
		}
		if request.PropertyID != nil {
			if property, err := service.repos.Properties.FindByID(*request.PropertyID); err == nil {
				record.PropertyID = property.PublicID
			}
		}
		records = append(records, record)

		if err := service.exportJobBids(archive, request.PublicID); err != nil {
			return err
		}

		views, err := service.repos.Engagements.Views(request.ID)
		if err != nil {
			return &StorageError{Op: "read", Key: JobViewsKey(request.PublicID), Err: err}
		}
		if views > 0 {
			archive[JobViewsKey(request.PublicID)] = strconv.Itoa(views)
		}
	}
	return putJSON(archive, ServiceRequestsKey(user.PublicID), records)
}

func (service *Service) exportJobBids(archive Archive, jobPublicID string) error {
	bids, err := service.repos.Bids.ListByJobPublicID(jobPublicID)
	if err != nil {
		return &StorageError{Op: "read", Key: JobBidsKey(jobPublicID), Err: err}
	}
	if len(bids) == 0 {
		return nil
	}

	records := make([]archiveBid, 0, len(bids))
	for _, bid := range bids {
		contractorPublicID := ""
		if contractor, err := service.repos.Users.FindByID(bid.ContractorID); err == nil {
			contractorPublicID = contractor.PublicID
		}
		records = append(records, archiveBid{
			ID:             bid.PublicID,
			JobID:          bid.JobPublicID,
			ContractorID:   contractorPublicID,
			Contractor:     bid.ContractorName,
			Amount:         bid.Amount,
			EstimatedHours: bid.EstimatedHours,
			Message:        bid.Message,
			Status:         bid.Status,
			ScheduledDate:  bid.ScheduledDate,
			CreatedAt:      bid.CreatedAt,
		})
	}
	return putJSON(archive, JobBidsKey(jobPublicID), records)
}

func (service *Service) exportLikes(archive Archive, user *models.User) error {
	requestIDs, err := service.repos.Engagements.ListLikedRequestIDs(user.ID)
	if err != nil {
		return &StorageError{Op: "read", Key: UserLikesKey(user.PublicID), Err: err}
	}
	if len(requestIDs) == 0 {
		return nil
	}

	jobIDs := make([]string, 0, len(requestIDs))
	for _, requestID := range requestIDs {
		if request, err := service.repos.Requests.FindByID(requestID); err == nil {
			jobIDs = append(jobIDs, request.PublicID)
		}
	}
	return putJSON(archive, UserLikesKey(user.PublicID), jobIDs)
}

func (service *Service) exportContractorBids(archive Archive, user *models.User) error {
	if user.Role != models.RoleHandyman {
		return nil
	}

	bids, err := service.repos.Bids.ListByContractor(user.ID)
	if err != nil {
		return &StorageError{Op: "read", Key: UserBidsKey(user.PublicID), Err: err}
	}
	if len(bids) == 0 {
		return nil
	}

	bidIDs := make([]string, 0, len(bids))
	for _, bid := range bids {
		bidIDs = append(bidIDs, bid.PublicID)
	}
	return putJSON(archive, UserBidsKey(user.PublicID), bidIDs)
}

func (service *Service) exportProfile(archive Archive, user *models.User) error {
	profile, found, err := service.repos.Profiles.FindByUser(user.ID)
	if err != nil {
		return &StorageError{Op: "read", Key: HandymanProfileKey(user.PublicID), Err: err}
	}
	if !found {
		return nil
	}

	return putJSON(archive, HandymanProfileKey(user.PublicID), archiveProfile{
		BusinessName:          profile.BusinessName,
		ContactPhone:          profile.ContactPhone,
		ContactEmail:          profile.ContactEmail,
		YearsExperience:       profile.YearsExperience,
		GettingStarted:        profile.GettingStarted,
		HasLiabilityInsurance: profile.HasLiabilityInsurance,
		HasWorkersComp:        profile.HasWorkersComp,
		HasBonding:            profile.HasBonding,
		InsuranceProvider:     profile.InsuranceProvider,
		Services:              profile.Services,
		SpecialSkills:         profile.SpecialSkills,
		ServiceArea:           profile.ServiceArea,
		ServiceRadiusMiles:    profile.ServiceRadiusMiles,
		Availability:          profile.Availability,
		HourlyRate:            profile.HourlyRate,
		MinimumCharge:         profile.MinimumCharge,
		PricingModel:          profile.PricingModel,
	})
}

func (service *Service) exportSettings(archive Archive, user *models.User, isSessionUser bool) error {
	settings, err := service.repos.Settings.FindByUser(user.ID)
	if err != nil {
		return &StorageError{Op: "read", Key: AppSettingsKey(user.PublicID), Err: err}
	}
	record := archiveSettings{
		EmailNotifications:   settings.EmailNotifications,
		BrowserNotifications: settings.BrowserNotifications,
		BidAlerts:            settings.BidAlerts,
		StatusUpdates:        settings.StatusUpdates,
		DarkMode:             settings.DarkMode,
		CompactView:          settings.CompactView,
	}
	if isSessionUser {
		// The unscoped blob is what the old client actually reads.
		if err := putJSON(archive, KeyAppSettings, record); err != nil {
			return err
		}
	}
	return putJSON(archive, AppSettingsKey(user.PublicID), record)
}

func putJSON(archive Archive, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	archive[key] = string(encoded)
	return nil
}
