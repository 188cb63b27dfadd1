package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fixbo/fixbo/internal/db"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const testPassword = "Sup3rSecret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "fixbo-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, []byte("test-secret-key"), false)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

// doJSON sends a JSON request with an optional auth cookie and returns the
// status plus decoded body.
func doJSON(t *testing.T, app *fiber.App, method string, path string, authCookie string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("%s %s encode payload: %v", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body: %v", method, path, err)
	}

	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s %s decode body %q: %v", method, path, raw, err)
		}
	}
	return response.StatusCode, decoded
}

// registerTestUser creates an account through the public endpoint and
// returns its session cookie.
func registerTestUser(t *testing.T, app *fiber.App, email string, role string) string {
	t.Helper()

	payload := map[string]any{
		"name":            "Test User",
		"email":           email,
		"userType":        role,
		"password":        testPassword,
		"confirmPassword": testPassword,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode register payload: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(encoded))
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected register status 201, got %d (%s)", response.StatusCode, raw)
	}
	return extractAuthCookie(t, response)
}

func loginTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	encoded, err := json.Marshal(map[string]any{"email": email, "password": password})
	if err != nil {
		t.Fatalf("encode login payload: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(encoded))
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
	return extractAuthCookie(t, response)
}

func extractAuthCookie(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("auth cookie is missing in response")
	return ""
}

// skipCustomerSetup finishes the customer wizard without a property so the
// account can reach the gated endpoints.
func skipCustomerSetup(t *testing.T, app *fiber.App, authCookie string) {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/onboarding/skip", authCookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected onboarding skip status 200, got %d", status)
	}
}

func skipHandymanSetup(t *testing.T, app *fiber.App, authCookie string) {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/handyman/onboarding/skip", authCookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected handyman onboarding skip status 200, got %d", status)
	}
}

// submitTestRequest creates one service request through the wizard submit
// endpoint and returns its public id.
func submitTestRequest(t *testing.T, app *fiber.App, authCookie string, title string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/requests", authCookie, map[string]any{
		"title":       title,
		"description": "The kitchen faucet drips constantly.",
		"category":    "plumbing",
		"priority":    "high",
		"budget":      "300-500",
		"timeline":    "week",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected request submit status 201, got %d (%v)", status, body)
	}

	request, ok := body["request"].(map[string]any)
	if !ok {
		t.Fatalf("submit response has no request object: %v", body)
	}
	id, _ := request["id"].(string)
	if id == "" {
		t.Fatalf("submitted request has no id: %v", request)
	}
	return id
}
