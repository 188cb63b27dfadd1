package api

import (
	"net/http"
	"testing"
)

func TestMarketplaceShowsOpenJobsToHandymen(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	jobID := submitTestRequest(t, app, customer, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodGet, "/api/jobs", handyman, nil)
	if status != http.StatusOK {
		t.Fatalf("expected jobs status 200, got %d", status)
	}
	jobs, _ := body["jobs"].([]any)
	if len(jobs) != 1 {
		t.Fatalf("expected one job in the feed, got %d", len(jobs))
	}

	job, _ := jobs[0].(map[string]any)
	if job["id"] != jobID {
		t.Fatalf("feed shows wrong job: %v", job["id"])
	}
	if job["budget"] != float64(400) {
		t.Fatalf("300-500 budget should map to 400, got %v", job["budget"])
	}
	if job["urgency"] != "urgent" {
		t.Fatalf("high priority should map to urgent, got %v", job["urgency"])
	}
	homeowner, _ := job["homeowner"].(map[string]any)
	if homeowner["name"] != "Test User" {
		t.Fatalf("job misses homeowner name: %v", homeowner)
	}

	// Customers do not get the contractor feed.
	status, _ = doJSON(t, app, http.MethodGet, "/api/jobs", customer, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected customer jobs status 403, got %d", status)
	}
}

func TestMarketplaceEmptyWhenNoJobs(t *testing.T) {
	app, _ := newTestApp(t)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	status, body := doJSON(t, app, http.MethodGet, "/api/jobs", handyman, nil)
	if status != http.StatusOK {
		t.Fatalf("expected jobs status 200, got %d", status)
	}
	jobs, _ := body["jobs"].([]any)
	if len(jobs) != 0 {
		t.Fatalf("expected empty feed, got %d jobs", len(jobs))
	}
	if body["message"] != "no jobs available" {
		t.Fatalf("expected explicit empty-state message, got %v", body["message"])
	}
}

func TestMarketplaceFilters(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	submitTestRequest(t, app, customer, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodGet, "/api/jobs?category=electrical", handyman, nil)
	if status != http.StatusOK {
		t.Fatalf("expected jobs status 200, got %d", status)
	}
	if jobs, _ := body["jobs"].([]any); len(jobs) != 0 {
		t.Fatalf("category filter leaked a plumbing job: %d", len(jobs))
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/jobs?q=faucet", handyman, nil)
	if status != http.StatusOK {
		t.Fatalf("expected jobs status 200, got %d", status)
	}
	if jobs, _ := body["jobs"].([]any); len(jobs) != 1 {
		t.Fatalf("text search missed the job: %d", len(jobs))
	}
}

func TestBidVisibleToBothSides(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	jobID := submitTestRequest(t, app, customer, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodPost, "/api/jobs/"+jobID+"/bids", handyman, map[string]any{
		"amount":         120,
		"estimatedHours": 2,
		"message":        "Can come tomorrow morning.",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected bid status 201, got %d (%v)", status, body)
	}

	// The contractor side sees the bid on the job.
	status, body = doJSON(t, app, http.MethodGet, "/api/jobs/"+jobID+"/bids", handyman, nil)
	if status != http.StatusOK {
		t.Fatalf("expected job bids status 200, got %d", status)
	}
	bids, _ := body["bids"].([]any)
	if len(bids) != 1 {
		t.Fatalf("expected one bid on the job, got %d", len(bids))
	}
	bid, _ := bids[0].(map[string]any)
	if bid["amount"] != float64(120) {
		t.Fatalf("unexpected bid amount: %v", bid["amount"])
	}

	// The customer side sees the same bid attached to their request.
	status, body = doJSON(t, app, http.MethodGet, "/api/requests", customer, nil)
	if status != http.StatusOK {
		t.Fatalf("expected requests status 200, got %d", status)
	}
	requests, _ := body["requests"].([]any)
	request, _ := requests[0].(map[string]any)
	requestBids, _ := request["bids"].([]any)
	if len(requestBids) != 1 {
		t.Fatalf("customer view misses the bid: %v", request)
	}
	if request["bidCount"] != float64(1) {
		t.Fatalf("bidCount not incremented: %v", request["bidCount"])
	}
	if request["status"] != "Active" {
		t.Fatalf("first bid must move the request to Active, got %v", request["status"])
	}
}

func TestBidValidation(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	jobID := submitTestRequest(t, app, customer, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodPost, "/api/jobs/"+jobID+"/bids", handyman, map[string]any{
		"amount": 0,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected bid status 400, got %d", status)
	}
	fields, _ := body["fields"].(map[string]any)
	if fields["amount"] == nil {
		t.Fatalf("expected amount field error, got %v", fields)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/jobs/missing-job/bids", handyman, map[string]any{
		"amount": 100,
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected unknown job status 404, got %d", status)
	}
}

func TestAcceptBidRejectsSiblingsAndMovesJob(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	firstHandyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, firstHandyman)
	secondHandyman := registerTestUser(t, app, "dave@example.com", "handyman")
	skipHandymanSetup(t, app, secondHandyman)

	jobID := submitTestRequest(t, app, customer, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodPost, "/api/jobs/"+jobID+"/bids", firstHandyman, map[string]any{
		"amount": 120,
	})
	if status != http.StatusCreated {
		t.Fatalf("first bid failed: %d (%v)", status, body)
	}
	firstBid, _ := body["bid"].(map[string]any)
	firstBidID, _ := firstBid["id"].(string)

	status, body = doJSON(t, app, http.MethodPost, "/api/jobs/"+jobID+"/bids", secondHandyman, map[string]any{
		"amount": 95,
	})
	if status != http.StatusCreated {
		t.Fatalf("second bid failed: %d (%v)", status, body)
	}

	// Only the job owner may accept.
	status, _ = doJSON(t, app, http.MethodPost, "/api/bids/"+firstBidID+"/accept", firstHandyman, map[string]any{})
	if status != http.StatusForbidden {
		t.Fatalf("expected handyman accept status 403, got %d", status)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/bids/"+firstBidID+"/accept", customer, map[string]any{
		"scheduledDate": "2026-09-15",
	})
	if status != http.StatusOK {
		t.Fatalf("expected accept status 200, got %d (%v)", status, body)
	}
	accepted, _ := body["bid"].(map[string]any)
	if accepted["status"] != "accepted" {
		t.Fatalf("bid not accepted: %v", accepted["status"])
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/jobs/"+jobID+"/bids", customer, nil)
	if status != http.StatusOK {
		t.Fatalf("expected job bids status 200, got %d", status)
	}
	bids, _ := body["bids"].([]any)
	statuses := map[string]int{}
	for _, raw := range bids {
		bid, _ := raw.(map[string]any)
		statusValue, _ := bid["status"].(string)
		statuses[statusValue]++
	}
	if statuses["accepted"] != 1 || statuses["rejected"] != 1 {
		t.Fatalf("expected one accepted and one rejected bid, got %v", statuses)
	}

	// The job left the marketplace feed.
	status, body = doJSON(t, app, http.MethodGet, "/api/jobs", firstHandyman, nil)
	if status != http.StatusOK {
		t.Fatalf("expected jobs status 200, got %d", status)
	}
	if jobs, _ := body["jobs"].([]any); len(jobs) != 0 {
		t.Fatalf("accepted job must leave the feed, got %d jobs", len(jobs))
	}

	// Accepting again conflicts: the bid is no longer pending.
	status, _ = doJSON(t, app, http.MethodPost, "/api/bids/"+firstBidID+"/accept", customer, map[string]any{})
	if status != http.StatusConflict {
		t.Fatalf("expected repeat accept status 409, got %d", status)
	}
}

func TestToggleJobLike(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	jobID := submitTestRequest(t, app, customer, "Fix leaky faucet")

	status, body := doJSON(t, app, http.MethodPost, "/api/jobs/"+jobID+"/like", handyman, nil)
	if status != http.StatusOK || body["liked"] != true {
		t.Fatalf("expected like true, got %d %v", status, body["liked"])
	}
	status, body = doJSON(t, app, http.MethodPost, "/api/jobs/"+jobID+"/like", handyman, nil)
	if status != http.StatusOK || body["liked"] != false {
		t.Fatalf("expected like false on second toggle, got %d %v", status, body["liked"])
	}
}

func TestJobDetailsCountsViews(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerTestUser(t, app, "anna@example.com", "customer")
	skipCustomerSetup(t, app, customer)
	handyman := registerTestUser(t, app, "bob@example.com", "handyman")
	skipHandymanSetup(t, app, handyman)

	jobID := submitTestRequest(t, app, customer, "Fix leaky faucet")

	for visit := 1; visit <= 3; visit++ {
		status, body := doJSON(t, app, http.MethodGet, "/api/jobs/"+jobID, handyman, nil)
		if status != http.StatusOK {
			t.Fatalf("expected job details status 200, got %d", status)
		}
		job, _ := body["job"].(map[string]any)
		if job["views"] != float64(visit) {
			t.Fatalf("visit %d: expected %d views, got %v", visit, visit, job["views"])
		}
	}
}
