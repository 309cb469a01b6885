package repositories

import (
	"errors"
	"fmt"

	"mentorlink/internal/common"
	"mentorlink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMMatchingRepository is a GORM implementation of MatchingRepository.
type GORMMatchingRepository struct {
	db *gorm.DB
}

// NewGORMMatchingRepository creates a new instance of GORMMatchingRepository.
func NewGORMMatchingRepository(db *gorm.DB) *GORMMatchingRepository {
	return &GORMMatchingRepository{
		db: db,
	}
}

// Create inserts a pending request, rejecting duplicates for the same
// (mentee, mentor) pair. The pre-check gives a friendly error on the common
// path; the unique index on (mentee_id, mentor_id) is the authority when two
// creates race, and its violation is translated to a conflict as well.
func (r *GORMMatchingRepository) Create(request *models.MatchingRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.Status == "" {
		request.Status = models.StatusPending
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.MatchingRequest{}).
			Where("mentee_id = ? AND mentor_id = ?", request.MenteeID, request.MentorID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check for existing request: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: a request to this mentor already exists", common.ErrConflict)
		}
		if err := tx.Create(request).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: a request to this mentor already exists", common.ErrConflict)
			}
			return fmt.Errorf("failed to create matching request: %w", err)
		}
		return nil
	})
}

// ListByMentee returns all requests created by the mentee, newest first.
func (r *GORMMatchingRepository) ListByMentee(menteeID string) ([]models.MatchingRequest, error) {
	var requests []models.MatchingRequest
	err := r.db.Where("mentee_id = ?", menteeID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for mentee %s: %w", menteeID, err)
	}
	return requests, nil
}

// ListByMentor returns all requests addressed to the mentor, newest first.
func (r *GORMMatchingRepository) ListByMentor(mentorID string) ([]models.MatchingRequest, error) {
	var requests []models.MatchingRequest
	err := r.db.Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for mentor %s: %w", mentorID, err)
	}
	return requests, nil
}

// UpdateStatus transitions the mentor's request to the given status. Every
// request addressed to the mentor is locked FOR UPDATE before the
// one-accepted-request-per-mentor check, so two accepts racing on different
// requests serialize instead of both passing the check under READ COMMITTED.
// The request itself is excluded from the check, which makes re-accepting the
// same request an idempotent success.
func (r *GORMMatchingRepository) UpdateStatus(requestID, mentorID, status string) (*models.MatchingRequest, error) {
	var request models.MatchingRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var requests []models.MatchingRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("mentor_id = ?", mentorID).
			Find(&requests).Error
		if err != nil {
			return fmt.Errorf("failed to load requests for mentor %s: %w", mentorID, err)
		}

		found := false
		for i := range requests {
			if requests[i].ID == requestID {
				request = requests[i]
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: matching request", common.ErrNotFound)
		}

		if status == models.StatusAccepted {
			for _, other := range requests {
				if other.ID != requestID && other.Status == models.StatusAccepted {
					return fmt.Errorf("%w: you can only have one accepted matching request at a time", common.ErrConflict)
				}
			}
		}

		request.Status = status
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to update matching request %s: %w", requestID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Delete removes the mentee's request and returns its last-known state.
func (r *GORMMatchingRepository) Delete(requestID, menteeID string) (*models.MatchingRequest, error) {
	var request models.MatchingRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&request, "id = ? AND mentee_id = ?", requestID, menteeID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: matching request", common.ErrNotFound)
			}
			return fmt.Errorf("failed to load matching request %s: %w", requestID, err)
		}
		if err := tx.Delete(&models.MatchingRequest{}, "id = ?", request.ID).Error; err != nil {
			return fmt.Errorf("failed to delete matching request %s: %w", requestID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
