package api

import (
	"net/http"
	"testing"
)

func TestSubmitRequestStartsOpenWithNoBids(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, cookie)

	submitTestRequest(t, app, cookie, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodGet, "/api/requests", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected requests status 200, got %d", status)
	}
	requests, _ := body["requests"].([]any)
	if len(requests) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(requests))
	}

	request, _ := requests[0].(map[string]any)
	if request["status"] != "Open" {
		t.Fatalf("new request must start Open, got %v", request["status"])
	}
	if request["bidCount"] != float64(0) {
		t.Fatalf("new request must have zero bids, got %v", request["bidCount"])
	}
	bids, _ := request["bids"].([]any)
	if len(bids) != 0 {
		t.Fatalf("new request carries bids: %v", bids)
	}
}

func TestValidateStepErrorClearsWhenFieldFixed(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, cookie)

	draft := map[string]any{
		"title":       "",
		"description": "The kitchen faucet drips constantly.",
		"category":    "plumbing",
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/requests/validate/1", cookie, draft)
	if status != http.StatusBadRequest {
		t.Fatalf("expected validate status 400, got %d", status)
	}
	fields, _ := body["fields"].(map[string]any)
	if fields["title"] != "Title is required" {
		t.Fatalf("expected title error, got %v", fields)
	}
	if fields["description"] != nil || fields["category"] != nil {
		t.Fatalf("valid fields must not error: %v", fields)
	}

	draft["title"] = "Fix leaky faucet"
	status, body = doJSON(t, app, http.MethodPost, "/api/requests/validate/1", cookie, draft)
	if status != http.StatusOK {
		t.Fatalf("expected validate status 200 after fix, got %d (%v)", status, body)
	}
}

func TestSubmitRequiresCompleteDraft(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, cookie)

	// Missing budget: per-step validation passed earlier steps, but submit
	// re-checks everything.
	status, body := doJSON(t, app, http.MethodPost, "/api/requests", cookie, map[string]any{
		"title":       "Fix leaky faucet",
		"description": "The kitchen faucet drips constantly.",
		"category":    "plumbing",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected submit status 400, got %d", status)
	}
	fields, _ := body["fields"].(map[string]any)
	if fields["budget"] == nil {
		t.Fatalf("expected budget field error, got %v", fields)
	}
}

func TestEditRequestPreservesStatusAndBids(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, cookie)

	jobID := submitTestRequest(t, app, cookie, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodGet, "/api/requests/"+jobID+"/draft", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected draft status 200, got %d", status)
	}
	draft, _ := body["draft"].(map[string]any)
	if draft["title"] != "Fix leaky faucet" {
		t.Fatalf("draft not pre-populated: %v", draft)
	}

	draft["title"] = "Fix dripping faucet"
	status, body = doJSON(t, app, http.MethodPut, "/api/requests/"+jobID, cookie, draft)
	if status != http.StatusOK {
		t.Fatalf("expected update status 200, got %d (%v)", status, body)
	}
	request, _ := body["request"].(map[string]any)
	if request["title"] != "Fix dripping faucet" {
		t.Fatalf("title not updated: %v", request["title"])
	}
	if request["status"] != "Open" {
		t.Fatalf("edit must preserve status, got %v", request["status"])
	}
	if request["id"] != jobID {
		t.Fatalf("edit must keep the id, got %v", request["id"])
	}
}

func TestCancelRequest(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, cookie)

	jobID := submitTestRequest(t, app, cookie, "Fix leaky faucet")

	status, _ := doJSON(t, app, http.MethodPost, "/api/requests/"+jobID+"/cancel", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected cancel status 200, got %d", status)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/requests?status=Cancelled", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected requests status 200, got %d", status)
	}
	requests, _ := body["requests"].([]any)
	if len(requests) != 1 {
		t.Fatalf("expected the cancelled request in the filter, got %d", len(requests))
	}

	// Cancelling again is a no-op, not an error.
	status, _ = doJSON(t, app, http.MethodPost, "/api/requests/"+jobID+"/cancel", cookie, nil)
	if status != http.StatusOK {
		t.Fatalf("expected repeat cancel status 200, got %d", status)
	}
}

func TestRequestEndpointsRejectOtherUsersRecords(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, owner)
	other := registerTestUser(t, app, "carol@example.com", "customer")
	skipCustomerSetup(t, app, other)

	jobID := submitTestRequest(t, app, owner, "Fix leaky faucet")

	status, _ := doJSON(t, app, http.MethodGet, "/api/requests/"+jobID+"/draft", other, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected foreign draft status 404, got %d", status)
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/requests/"+jobID+"/cancel", other, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected foreign cancel status 404, got %d", status)
	}
}
