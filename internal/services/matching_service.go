package services

import (
	"encoding/json"
	"fmt"
	"log"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/repositories"
)

// EventPublisher publishes matching lifecycle events. Satisfied by
// *rabbitmq.Client; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// MatchingService is the matching-request state machine: it creates, lists,
// transitions, and cancels requests while enforcing the role and uniqueness
// rules.
type MatchingService struct {
	matchingRepo repositories.MatchingRepository
	userRepo     repositories.UserRepository
	events       EventPublisher
}

// NewMatchingService creates a new MatchingService. events may be nil.
func NewMatchingService(matchingRepo repositories.MatchingRepository, userRepo repositories.UserRepository, events EventPublisher) *MatchingService {
	return &MatchingService{
		matchingRepo: matchingRepo,
		userRepo:     userRepo,
		events:       events,
	}
}

// Create opens a pending request from the calling mentee to the given mentor.
func (s *MatchingService) Create(caller *models.User, mentorID, message string) (*models.MatchingRequest, error) {
	if caller.Role != models.RoleMentee {
		return nil, fmt.Errorf("%w: only mentees can create matching requests", common.ErrForbidden)
	}

	mentor, err := s.userRepo.GetByID(mentorID)
	if err != nil || mentor.Role != models.RoleMentor {
		return nil, fmt.Errorf("%w: mentor", common.ErrNotFound)
	}

	request := &models.MatchingRequest{
		MenteeID: caller.ID,
		MentorID: mentorID,
		Message:  message,
		Status:   models.StatusPending,
	}
	if err := s.matchingRepo.Create(request); err != nil {
		return nil, err
	}

	s.publish("match.created", request)
	return request, nil
}

// ListForUser returns the caller's requests: sent requests for a mentee,
// received requests for a mentor. Newest first.
func (s *MatchingService) ListForUser(caller *models.User) ([]models.MatchingRequest, error) {
	if caller.Role == models.RoleMentee {
		return s.matchingRepo.ListByMentee(caller.ID)
	}
	return s.matchingRepo.ListByMentor(caller.ID)
}

// ListIncoming returns the requests addressed to the calling mentor.
func (s *MatchingService) ListIncoming(caller *models.User) ([]models.MatchingRequest, error) {
	if caller.Role != models.RoleMentor {
		return nil, fmt.Errorf("%w: only mentors can view incoming requests", common.ErrForbidden)
	}
	return s.matchingRepo.ListByMentor(caller.ID)
}

// ListOutgoing returns the requests created by the calling mentee.
func (s *MatchingService) ListOutgoing(caller *models.User) ([]models.MatchingRequest, error) {
	if caller.Role != models.RoleMentee {
		return nil, fmt.Errorf("%w: only mentees can view outgoing requests", common.ErrForbidden)
	}
	return s.matchingRepo.ListByMentee(caller.ID)
}

// Transition moves the request to accepted or rejected. Only the mentor the
// request is addressed to may decide it, and a mentor can hold at most one
// accepted request at a time.
func (s *MatchingService) Transition(caller *models.User, requestID, status string) (*models.MatchingRequest, error) {
	if caller.Role != models.RoleMentor {
		return nil, fmt.Errorf("%w: only mentors can update matching requests", common.ErrForbidden)
	}
	if !models.IsDecidableStatus(status) {
		return nil, fmt.Errorf("%w: status must be either 'accepted' or 'rejected'", common.ErrValidation)
	}

	request, err := s.matchingRepo.UpdateStatus(requestID, caller.ID, status)
	if err != nil {
		return nil, err
	}

	s.publish("match."+status, request)
	return request, nil
}

// Accept is a convenience form of Transition.
func (s *MatchingService) Accept(caller *models.User, requestID string) (*models.MatchingRequest, error) {
	return s.Transition(caller, requestID, models.StatusAccepted)
}

// Reject is a convenience form of Transition.
func (s *MatchingService) Reject(caller *models.User, requestID string) (*models.MatchingRequest, error) {
	return s.Transition(caller, requestID, models.StatusRejected)
}

// Cancel deletes the calling mentee's request permanently. The returned
// representation reports the display status "cancelled".
func (s *MatchingService) Cancel(caller *models.User, requestID string) (*models.MatchingRequest, error) {
	if caller.Role != models.RoleMentee {
		return nil, fmt.Errorf("%w: only mentees can delete their matching requests", common.ErrForbidden)
	}

	request, err := s.matchingRepo.Delete(requestID, caller.ID)
	if err != nil {
		return nil, err
	}

	request.Status = models.StatusCancelled
	s.publish("match.cancelled", request)
	return request, nil
}

// publish sends a matching event on a best-effort basis. A publish failure
// never fails the operation that triggered it.
func (s *MatchingService) publish(routingKey string, request *models.MatchingRequest) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"requestId": request.ID,
		"menteeId":  request.MenteeID,
		"mentorId":  request.MentorID,
		"status":    request.Status,
	})
	if err != nil {
		log.Printf("Failed to marshal matching event: %v", err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for request %s: %v", routingKey, request.ID, err)
	}
}
