package services

import (
	"errors"
	"testing"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type fakeBidStore struct {
	bids     map[string]models.Bid
	requests map[string]models.ServiceRequest
	users    map[uint]models.User

	nextBidID uint
}

func newFakeBidStore() *fakeBidStore {
	return &fakeBidStore{
		bids:     make(map[string]models.Bid),
		requests: make(map[string]models.ServiceRequest),
		users:    make(map[uint]models.User),
	}
}

func (store *fakeBidStore) addUser(id uint, name string) {
	store.users[id] = models.User{ID: id, Name: name}
}

func (store *fakeBidStore) addRequest(request models.ServiceRequest) {
	store.requests[request.PublicID] = request
}

func (store *fakeBidStore) ListByJobPublicID(jobPublicID string) ([]models.Bid, error) {
	list := make([]models.Bid, 0)
	for _, bid := range store.bids {
		if bid.JobPublicID == jobPublicID {
			list = append(list, bid)
		}
	}
	return list, nil
}

func (store *fakeBidStore) FindByPublicID(publicID string) (models.Bid, error) {
	bid, ok := store.bids[publicID]
	if !ok {
		return models.Bid{}, gorm.ErrRecordNotFound
	}
	return bid, nil
}

func (store *fakeBidStore) CreateForRequest(bid *models.Bid, request *models.ServiceRequest) error {
	store.nextBidID++
	bid.ID = store.nextBidID
	store.bids[bid.PublicID] = *bid

	request.BidCount++
	if request.Status == models.RequestStatusOpen {
		request.Status = models.RequestStatusActive
	}
	store.requests[request.PublicID] = *request
	return nil
}

func (store *fakeBidStore) AcceptBid(bid *models.Bid, scheduledDate *time.Time) error {
	for publicID, other := range store.bids {
		if other.RequestID == bid.RequestID && other.Status == models.BidStatusPending {
			other.Status = models.BidStatusRejected
			store.bids[publicID] = other
		}
	}

	accepted := *bid
	accepted.Status = models.BidStatusAccepted
	accepted.ScheduledDate = scheduledDate
	store.bids[bid.PublicID] = accepted

	for publicID, request := range store.requests {
		if request.ID == bid.RequestID {
			request.Status = models.RequestStatusPending
			store.requests[publicID] = request
		}
	}
	return nil
}

func (store *fakeBidStore) UpdateStatus(bidID uint, status string) error {
	for publicID, bid := range store.bids {
		if bid.ID == bidID {
			bid.Status = status
			store.bids[publicID] = bid
		}
	}
	return nil
}

func (store *fakeBidStore) FindByID(id uint) (models.ServiceRequest, error) {
	for _, request := range store.requests {
		if request.ID == id {
			return request, nil
		}
	}
	return models.ServiceRequest{}, gorm.ErrRecordNotFound
}

type fakeBidUsers struct{ store *fakeBidStore }

func (users fakeBidUsers) FindByID(userID uint) (models.User, error) {
	user, ok := users.store.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeBidRequests struct{ store *fakeBidStore }

func (requests fakeBidRequests) FindByID(requestID uint) (models.ServiceRequest, error) {
	return requests.store.FindByID(requestID)
}

func (requests fakeBidRequests) FindByPublicID(publicID string) (models.ServiceRequest, error) {
	request, ok := requests.store.requests[publicID]
	if !ok {
		return models.ServiceRequest{}, gorm.ErrRecordNotFound
	}
	return request, nil
}

func newBidServiceFixture() (*BidService, *fakeBidStore) {
	store := newFakeBidStore()
	store.addUser(1, "Anna")
	store.addUser(2, "Bob")
	store.addRequest(models.ServiceRequest{
		ID:       10,
		PublicID: "job-1",
		UserID:   1,
		Status:   models.RequestStatusOpen,
	})
	return NewBidService(store, fakeBidRequests{store}, fakeBidUsers{store}), store
}

func TestCreateBidRejectsOwnJob(t *testing.T) {
	service, _ := newBidServiceFixture()

	_, err := service.CreateBid(1, "job-1", BidInput{Amount: 100})
	if !errors.Is(err, ErrBidOwnJob) {
		t.Fatalf("expected ErrBidOwnJob, got %v", err)
	}
}

func TestCreateBidRejectsClosedJob(t *testing.T) {
	service, store := newBidServiceFixture()
	store.addRequest(models.ServiceRequest{
		ID:       11,
		PublicID: "job-2",
		UserID:   1,
		Status:   models.RequestStatusCompleted,
	})

	_, err := service.CreateBid(2, "job-2", BidInput{Amount: 100})
	if !errors.Is(err, ErrJobNotBiddable) {
		t.Fatalf("expected ErrJobNotBiddable, got %v", err)
	}
}

func TestCreateBidUnknownJob(t *testing.T) {
	service, _ := newBidServiceFixture()

	_, err := service.CreateBid(2, "missing", BidInput{Amount: 100})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestCreateBidMovesJobToActive(t *testing.T) {
	service, store := newBidServiceFixture()

	bid, err := service.CreateBid(2, "job-1", BidInput{Amount: 100, Message: "  tomorrow  "})
	if err != nil {
		t.Fatalf("CreateBid failed: %v", err)
	}
	if bid.Status != models.BidStatusPending || bid.ContractorName != "Bob" {
		t.Fatalf("unexpected bid: %+v", bid)
	}
	if bid.Message != "tomorrow" {
		t.Fatalf("message not trimmed: %q", bid.Message)
	}

	request := store.requests["job-1"]
	if request.Status != models.RequestStatusActive || request.BidCount != 1 {
		t.Fatalf("request not updated: %+v", request)
	}
}

func TestAcceptRequiresJobOwner(t *testing.T) {
	service, _ := newBidServiceFixture()

	bid, err := service.CreateBid(2, "job-1", BidInput{Amount: 100})
	if err != nil {
		t.Fatalf("CreateBid failed: %v", err)
	}

	if _, err := service.Accept(2, bid.PublicID, nil); !errors.Is(err, ErrNotJobOwner) {
		t.Fatalf("expected ErrNotJobOwner, got %v", err)
	}

	accepted, err := service.Accept(1, bid.PublicID, nil)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if accepted.Status != models.BidStatusAccepted {
		t.Fatalf("bid not accepted: %+v", accepted)
	}

	// Accepting twice fails: the bid left the pending state.
	if _, err := service.Accept(1, bid.PublicID, nil); !errors.Is(err, ErrBidNotPending) {
		t.Fatalf("expected ErrBidNotPending, got %v", err)
	}
}

func TestWithdrawOnlyOwnPendingBid(t *testing.T) {
	service, _ := newBidServiceFixture()

	bid, err := service.CreateBid(2, "job-1", BidInput{Amount: 100})
	if err != nil {
		t.Fatalf("CreateBid failed: %v", err)
	}

	// Another contractor cannot withdraw it; the bid stays hidden.
	if _, err := service.Withdraw(3, bid.PublicID); !errors.Is(err, ErrBidNotFound) {
		t.Fatalf("expected ErrBidNotFound for foreign bid, got %v", err)
	}

	withdrawn, err := service.Withdraw(2, bid.PublicID)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if withdrawn.Status != models.BidStatusWithdrawn {
		t.Fatalf("bid not withdrawn: %+v", withdrawn)
	}
}

func TestValidateBidInput(t *testing.T) {
	err := ValidateBidInput(BidInput{Amount: 0, EstimatedHours: -1})
	validation, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if validation.Fields["amount"] == "" || validation.Fields["estimatedHours"] == "" {
		t.Fatalf("missing field errors: %v", validation.Fields)
	}

	if err := ValidateBidInput(BidInput{Amount: 50}); err != nil {
		t.Fatalf("valid input must pass, got %v", err)
	}
}
