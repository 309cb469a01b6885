package services_test

import (
	"testing"
	"time"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/repositories"
	"mentorlink/internal/services"

	"github.com/stretchr/testify/assert"
)

type matchingFixture struct {
	service      *services.MatchingService
	userRepo     *repositories.MockUserRepository
	matchingRepo *repositories.MockMatchingRepository
	mentee       *models.User
	mentor       *models.User
}

func newMatchingFixture(t *testing.T) *matchingFixture {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	matchingRepo := repositories.NewMockMatchingRepository()

	mentee := &models.User{Email: "mentee@example.com", Name: "Alice", Role: models.RoleMentee}
	mentor := &models.User{Email: "mentor@example.com", Name: "Bob", Role: models.RoleMentor}
	assert.NoError(t, userRepo.Create(mentee))
	assert.NoError(t, userRepo.Create(mentor))

	return &matchingFixture{
		service:      services.NewMatchingService(matchingRepo, userRepo, nil),
		userRepo:     userRepo,
		matchingRepo: matchingRepo,
		mentee:       mentee,
		mentor:       mentor,
	}
}

func TestMatchingService_Create(t *testing.T) {
	f := newMatchingFixture(t)

	// Mentee creates a pending request
	request, err := f.service.Create(f.mentee, f.mentor.ID, "hi")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.Equal(t, f.mentee.ID, request.MenteeID)
	assert.Equal(t, f.mentor.ID, request.MentorID)
	assert.Equal(t, "hi", request.Message)

	// A second request to the same mentor conflicts
	_, err = f.service.Create(f.mentee, f.mentor.ID, "hi again")
	assert.ErrorIs(t, err, common.ErrConflict)

	// Mentors cannot create requests
	_, err = f.service.Create(f.mentor, f.mentor.ID, "")
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Unknown mentor
	_, err = f.service.Create(f.mentee, "no-such-id", "")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// A mentee id is not a valid mentor target
	_, err = f.service.Create(f.mentee, f.mentee.ID, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMatchingService_Transition(t *testing.T) {
	f := newMatchingFixture(t)

	request, err := f.service.Create(f.mentee, f.mentor.ID, "hi")
	assert.NoError(t, err)

	// Only mentors may transition
	_, err = f.service.Transition(f.mentee, request.ID, models.StatusAccepted)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Only accepted/rejected are valid target statuses
	_, err = f.service.Transition(f.mentor, request.ID, "pending")
	assert.ErrorIs(t, err, common.ErrValidation)

	// A different mentor does not see the request
	otherMentor := &models.User{ID: "other-mentor", Role: models.RoleMentor}
	_, err = f.service.Transition(otherMentor, request.ID, models.StatusAccepted)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// The owning mentor accepts
	updated, err := f.service.Accept(f.mentor, request.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	// Re-accepting the same request is an idempotent success
	updated, err = f.service.Accept(f.mentor, request.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	// Unknown request id
	_, err = f.service.Accept(f.mentor, "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMatchingService_OneAcceptedPerMentor(t *testing.T) {
	f := newMatchingFixture(t)

	first, err := f.service.Create(f.mentee, f.mentor.ID, "first")
	assert.NoError(t, err)

	// A second mentee also requests the same mentor
	secondMentee := &models.User{ID: "mentee-2", Email: "c@example.com", Name: "Carol", Role: models.RoleMentee}
	second, err := f.service.Create(secondMentee, f.mentor.ID, "second")
	assert.NoError(t, err)

	// Accepting the first succeeds, accepting the second then conflicts
	_, err = f.service.Accept(f.mentor, first.ID)
	assert.NoError(t, err)
	_, err = f.service.Accept(f.mentor, second.ID)
	assert.ErrorIs(t, err, common.ErrConflict)

	// The first request remains accepted, rejecting the second still works
	incoming, err := f.service.ListIncoming(f.mentor)
	assert.NoError(t, err)
	accepted := 0
	for _, req := range incoming {
		if req.Status == models.StatusAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)

	rejected, err := f.service.Reject(f.mentor, second.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
}

func TestMatchingService_Cancel(t *testing.T) {
	f := newMatchingFixture(t)

	request, err := f.service.Create(f.mentee, f.mentor.ID, "hi")
	assert.NoError(t, err)

	// Mentors cannot cancel
	_, err = f.service.Cancel(f.mentor, request.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Another mentee does not see the request
	otherMentee := &models.User{ID: "other-mentee", Role: models.RoleMentee}
	_, err = f.service.Cancel(otherMentee, request.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// The owning mentee cancels; the returned state reads cancelled
	cancelled, err := f.service.Cancel(f.mentee, request.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// The request is gone from the mentee's listing
	outgoing, err := f.service.ListOutgoing(f.mentee)
	assert.NoError(t, err)
	assert.Empty(t, outgoing)
}

func TestMatchingService_Listing(t *testing.T) {
	f := newMatchingFixture(t)

	// A second mentor so the mentee can hold two outgoing requests
	secondMentor := &models.User{Email: "d@example.com", Name: "Dave", Role: models.RoleMentor}
	assert.NoError(t, f.userRepo.Create(secondMentor))

	// Seed through the repository with explicit timestamps so the ordering
	// assertion does not depend on wall-clock spacing between creates.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := &models.MatchingRequest{
		MenteeID:  f.mentee.ID,
		MentorID:  f.mentor.ID,
		Message:   "first",
		CreatedAt: base,
	}
	second := &models.MatchingRequest{
		MenteeID:  f.mentee.ID,
		MentorID:  secondMentor.ID,
		Message:   "second",
		CreatedAt: base.Add(time.Minute),
	}
	assert.NoError(t, f.matchingRepo.Create(first))
	assert.NoError(t, f.matchingRepo.Create(second))

	// Newest first
	outgoing, err := f.service.ListForUser(f.mentee)
	assert.NoError(t, err)
	assert.Len(t, outgoing, 2)
	assert.Equal(t, second.ID, outgoing[0].ID)
	assert.Equal(t, first.ID, outgoing[1].ID)

	// The mentor branch of ListForUser sees only its own request
	incoming, err := f.service.ListForUser(f.mentor)
	assert.NoError(t, err)
	assert.Len(t, incoming, 1)
	assert.Equal(t, first.ID, incoming[0].ID)

	// Role gating on the dedicated listings
	_, err = f.service.ListIncoming(f.mentee)
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = f.service.ListOutgoing(f.mentor)
	assert.ErrorIs(t, err, common.ErrForbidden)
}
