package repositories

import "mentorlink/internal/models"

// MatchingRepository defines the interface for matching request data access.
//
// Lookup methods are scoped to the owning side of the request: a request that
// exists but belongs to someone else is reported as not found, so callers
// never learn about requests they do not own.
type MatchingRepository interface {
	// Create inserts a pending request. It fails with a conflict if the
	// mentee already has a request to the same mentor; the check and the
	// insert are atomic.
	Create(request *models.MatchingRequest) error

	// ListByMentee returns the mentee's requests, newest first.
	ListByMentee(menteeID string) ([]models.MatchingRequest, error)
	// ListByMentor returns the mentor's incoming requests, newest first.
	ListByMentor(mentorID string) ([]models.MatchingRequest, error)

	// UpdateStatus sets the status of the mentor's request. Accepting fails
	// with a conflict when the mentor already holds a different accepted
	// request; the check and the write are atomic.
	UpdateStatus(requestID, mentorID, status string) (*models.MatchingRequest, error)

	// Delete removes the mentee's request permanently and returns its
	// last-known state.
	Delete(requestID, menteeID string) (*models.MatchingRequest, error)
}
