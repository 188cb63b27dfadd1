package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// buildPopulatedArchive runs a full customer/handyman exchange on a fresh
// app and returns its export plus the customer's public id.
func buildPopulatedArchive(t *testing.T) (archive map[string]any, customerID string) {
	t.Helper()

	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	jobID := submitTestRequest(t, app, customer, "Fix leaky faucet")
	status, body := doJSON(t, app, http.MethodPost, "/api/jobs/"+jobID+"/bids", handyman, map[string]any{
		"amount": 120,
	})
	if status != http.StatusCreated {
		t.Fatalf("bid failed: %d (%v)", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/auth/me", customer, nil)
	if status != http.StatusOK {
		t.Fatalf("me failed: %d", status)
	}
	user, _ := body["user"].(map[string]any)
	customerID, _ = user["id"].(string)

	status, archive = doJSON(t, app, http.MethodGet, "/api/data/export", customer, nil)
	if status != http.StatusOK {
		t.Fatalf("export failed: %d", status)
	}
	return archive, customerID
}

func TestExportUsesLegacyKeyLayout(t *testing.T) {
	archive, customerID := buildPopulatedArchive(t)

	// The old client keeps allUsers as a map keyed by email.
	raw, _ := archive["allUsers"].(string)
	byEmail := map[string]map[string]any{}
	if err := json.Unmarshal([]byte(raw), &byEmail); err != nil {
		t.Fatalf("allUsers is not a map keyed by email: %v (%s)", err, raw)
	}
	if byEmail["anna@example.com"] == nil || byEmail["bob@example.com"] == nil {
		t.Fatalf("allUsers misses accounts: %s", raw)
	}
	if strings.Contains(raw, testPassword) {
		t.Fatalf("export leaked a plaintext password")
	}

	// Session keys for the account that ran the export.
	if archive["currentUserEmail"] != "anna@example.com" {
		t.Fatalf("currentUserEmail not exported: %v", archive["currentUserEmail"])
	}
	userData, _ := archive["userData"].(string)
	if !strings.Contains(userData, "anna@example.com") {
		t.Fatalf("userData misses the session account: %s", userData)
	}
	if _, ok := archive["appSettings"].(string); !ok {
		t.Fatalf("unscoped appSettings not exported")
	}

	requests, _ := archive["serviceRequests_"+customerID].(string)
	if !strings.Contains(requests, "Fix leaky faucet") {
		t.Fatalf("serviceRequests key misses the job: %s", requests)
	}
	if archive["hasCompletedSetup_"+customerID] != "true" {
		t.Fatalf("setup flag not exported: %v", archive["hasCompletedSetup_"+customerID])
	}
}

func TestImportAcceptsMapShapedUsers(t *testing.T) {
	app, _ := newTestApp(t)
	operator := registerTestUser(t, app, "ops@example.com", "customer")
	skipCustomerSetup(t, app, operator)

	// The map shape the old client writes: accounts keyed by email.
	archive := map[string]any{
		"allUsers": `{"anna@example.com":{"id":"legacy-1","name":"Anna","email":"anna@example.com","userType":"customer","password":"` + testPassword + `"}}`,
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/data/import", operator, archive)
	if status != http.StatusOK {
		t.Fatalf("expected import status 200, got %d (%v)", status, body)
	}
	imported, _ := body["imported"].(map[string]any)
	if imported["users"] != float64(1) {
		t.Fatalf("expected one imported user, got %v", imported)
	}
	loginTestUser(t, app, "anna@example.com", testPassword)
}

func TestImportRestoresAccountsAndJobs(t *testing.T) {
	archive, _ := buildPopulatedArchive(t)

	app, _ := newTestApp(t)
	operator := registerTestUser(t, app, "ops@example.com", "customer")
	skipCustomerSetup(t, app, operator)

	status, body := doJSON(t, app, http.MethodPost, "/api/data/import", operator, archive)
	if status != http.StatusOK {
		t.Fatalf("expected import status 200, got %d (%v)", status, body)
	}
	imported, _ := body["imported"].(map[string]any)
	if imported["users"] != float64(2) {
		t.Fatalf("expected two imported users, got %v", imported["users"])
	}
	if imported["requests"] != float64(1) || imported["bids"] != float64(1) {
		t.Fatalf("expected one request and one bid, got %v", imported)
	}

	// The imported account logs in with its original password: the export
	// carried the hash, not the plaintext.
	cookie := loginTestUser(t, app, "anna@example.com", testPassword)
	status, body = doJSON(t, app, http.MethodGet, "/api/requests", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected requests status 200, got %d", status)
	}
	requests, _ := body["requests"].([]any)
	if len(requests) != 1 {
		t.Fatalf("expected the imported request, got %d", len(requests))
	}
	request, _ := requests[0].(map[string]any)
	if request["status"] != "Active" || request["bidCount"] != float64(1) {
		t.Fatalf("imported request lost its bid state: %v", request)
	}

	// A second import of the same archive only skips.
	status, body = doJSON(t, app, http.MethodPost, "/api/data/import", operator, archive)
	if status != http.StatusOK {
		t.Fatalf("expected repeat import status 200, got %d", status)
	}
	imported, _ = body["imported"].(map[string]any)
	if imported["users"] != float64(0) || imported["skipped"] != float64(2) {
		t.Fatalf("repeat import must skip existing accounts, got %v", imported)
	}
}

func TestImportHashesPlaintextPasswords(t *testing.T) {
	app, _ := newTestApp(t)
	operator := registerTestUser(t, app, "ops@example.com", "customer")
	skipCustomerSetup(t, app, operator)

	// An old-client archive: plaintext password, no hash.
	archive := map[string]any{
		"allUsers": `[{"id":"legacy-1","name":"Old Anna","email":"old@example.com","userType":"customer","password":"` + testPassword + `"}]`,
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/data/import", operator, archive)
	if status != http.StatusOK {
		t.Fatalf("expected import status 200, got %d (%v)", status, body)
	}

	// The plaintext still works, because it was hashed on the way in.
	loginTestUser(t, app, "old@example.com", testPassword)
}

func TestImportAppliesUnscopedSettingsToSessionUser(t *testing.T) {
	app, _ := newTestApp(t)
	operator := registerTestUser(t, app, "ops@example.com", "customer")
	skipCustomerSetup(t, app, operator)

	// The old client kept one bare appSettings blob for whoever was signed
	// in; currentUserEmail says who that was.
	archive := map[string]any{
		"allUsers":         `{"anna@example.com":{"id":"legacy-1","name":"Anna","email":"anna@example.com","userType":"customer","password":"` + testPassword + `"}}`,
		"currentUserEmail": "anna@example.com",
		"appSettings":      `{"emailNotifications":true,"darkMode":true,"compactView":true}`,
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/data/import", operator, archive)
	if status != http.StatusOK {
		t.Fatalf("expected import status 200, got %d (%v)", status, body)
	}

	cookie := loginTestUser(t, app, "anna@example.com", testPassword)
	status, body = doJSON(t, app, http.MethodGet, "/api/settings/app", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected settings status 200, got %d", status)
	}
	settings, _ := body["settings"].(map[string]any)
	if settings["darkMode"] != true || settings["compactView"] != true {
		t.Fatalf("unscoped settings not applied to the session user: %v", settings)
	}
}

func TestImportRejectsNegativeViewCount(t *testing.T) {
	app, _ := newTestApp(t)
	operator := registerTestUser(t, app, "ops@example.com", "customer")
	skipCustomerSetup(t, app, operator)

	archive := map[string]any{
		"allUsers":                 `{"anna@example.com":{"id":"legacy-1","name":"Anna","email":"anna@example.com","userType":"customer","password":"` + testPassword + `"}}`,
		"serviceRequests_legacy-1": `[{"id":"job-1","title":"Fix leaky faucet","description":"Drips","category":"plumbing","budget":"300-500","status":"Open"}]`,
		"jobViews_job-1":           "-3",
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/data/import", operator, archive)
	if status != http.StatusBadRequest {
		t.Fatalf("expected negative view count status 400, got %d (%v)", status, body)
	}
	message, _ := body["error"].(string)
	if !strings.Contains(message, "jobViews_job-1") {
		t.Fatalf("error does not name the bad key: %q", message)
	}
}

func TestImportRejectsCorruptArchive(t *testing.T) {
	app, _ := newTestApp(t)
	operator := registerTestUser(t, app, "ops@example.com", "customer")
	skipCustomerSetup(t, app, operator)

	status, _ := doJSON(t, app, http.MethodPost, "/api/data/import", operator, map[string]any{
		"allUsers": "not json at all",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected corrupt archive status 400, got %d", status)
	}
}
