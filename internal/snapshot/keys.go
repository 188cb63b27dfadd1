// Package snapshot reads and writes the legacy browser-storage archive
// format: a flat map of string keys to JSON payloads, one key per user or
// per job. Imports accept archives produced by the old client; exports
// produce archives the old client could read back.
package snapshot

import "fmt"

const (
	// KeyAllUsers holds a map of account records keyed by email. The first
	// client generation wrote a flat array under KeyLegacyUsers instead;
	// imports accept both shapes.
	KeyAllUsers         = "allUsers"
	KeyLegacyUsers      = "users"
	KeyCurrentUserEmail = "currentUserEmail"
	KeyUserData         = "userData"
	// KeyAppSettings is the old client's single settings blob, scoped to
	// whoever was signed in at the time. Exports additionally write
	// AppSettingsKey(userID) so multi-account archives keep settings apart.
	KeyAppSettings = "appSettings"
)

func PropertiesKey(userID string) string {
	return "userProperties_" + userID
}

func SetupCompletedKey(userID string) string {
	return "hasCompletedSetup_" + userID
}

func HandymanSetupCompletedKey(userID string) string {
	return "hasCompletedHandymanSetup_" + userID
}

func HandymanProfileKey(userID string) string {
	return "handymanProfile_" + userID
}

func ServiceRequestsKey(userID string) string {
	return "serviceRequests_" + userID
}

func JobBidsKey(jobID string) string {
	return "jobBids_" + jobID
}

func JobViewsKey(jobID string) string {
	return "jobViews_" + jobID
}

func UserLikesKey(userID string) string {
	return "userLikes_" + userID
}

func UserBidsKey(userID string) string {
	return "userBids_" + userID
}

func AppSettingsKey(userID string) string {
	return "appSettings_" + userID
}

// StorageError wraps a failure to encode, decode or persist one archive key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (storageError *StorageError) Error() string {
	return fmt.Sprintf("snapshot %s %q: %v", storageError.Op, storageError.Key, storageError.Err)
}

func (storageError *StorageError) Unwrap() error {
	return storageError.Err
}
