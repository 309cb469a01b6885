package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"mentorlink/internal/common"
	"mentorlink/internal/models"

	"github.com/google/uuid"
)

// MockMatchingRepository is an in-memory implementation of MatchingRepository.
// The single mutex gives it the same atomicity the GORM implementation gets
// from transactions.
type MockMatchingRepository struct {
	requests map[string]models.MatchingRequest
	mu       sync.Mutex
}

// NewMockMatchingRepository creates a new instance of MockMatchingRepository.
func NewMockMatchingRepository() *MockMatchingRepository {
	return &MockMatchingRepository{
		requests: make(map[string]models.MatchingRequest),
	}
}

// Create adds a pending request, rejecting duplicates for the pair.
func (r *MockMatchingRepository) Create(request *models.MatchingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.MenteeID == request.MenteeID && req.MentorID == request.MentorID {
			return fmt.Errorf("%w: a request to this mentor already exists", common.ErrConflict)
		}
	}
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.Status == "" {
		request.Status = models.StatusPending
	}
	// Like GORM, only fill timestamps that are still zero.
	now := time.Now()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	if request.UpdatedAt.IsZero() {
		request.UpdatedAt = now
	}
	r.requests[request.ID] = *request
	return nil
}

// ListByMentee returns the mentee's requests, newest first.
func (r *MockMatchingRepository) ListByMentee(menteeID string) ([]models.MatchingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := make([]models.MatchingRequest, 0)
	for _, req := range r.requests {
		if req.MenteeID == menteeID {
			requests = append(requests, req)
		}
	}
	sortNewestFirst(requests)
	return requests, nil
}

// ListByMentor returns the mentor's requests, newest first.
func (r *MockMatchingRepository) ListByMentor(mentorID string) ([]models.MatchingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := make([]models.MatchingRequest, 0)
	for _, req := range r.requests {
		if req.MentorID == mentorID {
			requests = append(requests, req)
		}
	}
	sortNewestFirst(requests)
	return requests, nil
}

// UpdateStatus transitions the mentor's request, holding the one-accepted
// invariant.
func (r *MockMatchingRepository) UpdateStatus(requestID, mentorID, status string) (*models.MatchingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[requestID]
	if !ok || request.MentorID != mentorID {
		return nil, fmt.Errorf("%w: matching request", common.ErrNotFound)
	}

	if status == models.StatusAccepted {
		for _, req := range r.requests {
			if req.MentorID == mentorID && req.Status == models.StatusAccepted && req.ID != requestID {
				return nil, fmt.Errorf("%w: you can only have one accepted matching request at a time", common.ErrConflict)
			}
		}
	}

	request.Status = status
	request.UpdatedAt = time.Now()
	r.requests[requestID] = request
	return &request, nil
}

// Delete removes the mentee's request and returns its last-known state.
func (r *MockMatchingRepository) Delete(requestID, menteeID string) (*models.MatchingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[requestID]
	if !ok || request.MenteeID != menteeID {
		return nil, fmt.Errorf("%w: matching request", common.ErrNotFound)
	}
	delete(r.requests, requestID)
	return &request, nil
}

func sortNewestFirst(requests []models.MatchingRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}
