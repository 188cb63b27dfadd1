package api

import (
	"net/http"
	"testing"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	cookie := registerTestUser(t, app, "anna@example.com", "customer")

	status, body := doJSON(t, app, http.MethodGet, "/api/auth/me", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected me status 200, got %d", status)
	}
	user, _ := body["user"].(map[string]any)
	if user["email"] != "anna@example.com" {
		t.Fatalf("me returned wrong email: %v", user["email"])
	}
	if user["userType"] != "customer" {
		t.Fatalf("me returned wrong userType: %v", user["userType"])
	}

	// A fresh login session sees the same account.
	loginCookie := loginTestUser(t, app, "anna@example.com", testPassword)
	status, body = doJSON(t, app, http.MethodGet, "/api/auth/me", loginCookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected me status 200 after re-login, got %d", status)
	}
	user, _ = body["user"].(map[string]any)
	if user["email"] != "anna@example.com" {
		t.Fatalf("re-login session sees wrong email: %v", user["email"])
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestUser(t, app, "anna@example.com", "customer")

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "anna@example.com",
		"password": "WrongPass1",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected login status 401, got %d", status)
	}
	if body["error"] != "invalid credentials" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}

	// Unknown email collapses to the same response.
	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "WrongPass1",
	})
	if status != http.StatusUnauthorized || body["error"] != "invalid credentials" {
		t.Fatalf("unknown email leaked: status %d, error %v", status, body["error"])
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestUser(t, app, "anna@example.com", "customer")

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":            "Second Anna",
		"email":           "Anna@Example.com",
		"userType":        "handyman",
		"password":        testPassword,
		"confirmPassword": testPassword,
	})
	if status != http.StatusConflict {
		t.Fatalf("expected register status 409, got %d (%v)", status, body)
	}
}

func TestRegisterValidationFieldErrors(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":            "",
		"email":           "not-an-email",
		"userType":        "alien",
		"password":        "weak",
		"confirmPassword": "different",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected register status 400, got %d", status)
	}

	fields, _ := body["fields"].(map[string]any)
	for _, field := range []string{"name", "email", "userType", "password", "confirmPassword"} {
		if fields[field] == nil {
			t.Fatalf("expected field error for %q, got %v", field, fields)
		}
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "anna@example.com", "customer")

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected logout status 200, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected me without cookie status 401, got %d", status)
	}
}

func TestLoginRateLimitKicksIn(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestUser(t, app, "anna@example.com", "customer")

	for attempt := 0; attempt < loginAttemptLimit; attempt++ {
		status, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "anna@example.com",
			"password": "WrongPass1",
		})
		if status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", attempt, status)
		}
	}

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "anna@example.com",
		"password": testPassword,
	})
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after repeated failures, got %d", status)
	}
}
