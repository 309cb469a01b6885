package services

import (
	"fmt"
	"sort"
	"strings"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/repositories"
)

// Sort keys accepted by the mentor listing.
const (
	SortByName  = "name"
	SortBySkill = "skill"
)

// MentorFilter narrows the mentor listing.
type MentorFilter struct {
	// Skill keeps only mentors whose skill list contains this exact value.
	Skill string
	// Search keeps only mentors whose name contains this substring
	// (case-sensitive).
	Search string
	// SortBy orders the result by name or by the raw serialized skills value.
	SortBy string
}

// MentorService provides the mentee-facing read-only view over mentors.
type MentorService struct {
	userRepo repositories.UserRepository
}

// NewMentorService creates a new MentorService.
func NewMentorService(userRepo repositories.UserRepository) *MentorService {
	return &MentorService{
		userRepo: userRepo,
	}
}

// List returns mentors matching the filter. Only mentees may browse mentors.
// Filtering and sorting happen here rather than in SQL so the case-sensitive
// search and exact skill membership do not depend on database collation.
func (s *MentorService) List(caller *models.User, filter MentorFilter) ([]models.User, error) {
	if caller.Role != models.RoleMentee {
		return nil, fmt.Errorf("%w: only mentees can view the mentors list", common.ErrForbidden)
	}

	mentors, err := s.userRepo.ListByRole(models.RoleMentor)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.User, 0, len(mentors))
	for _, mentor := range mentors {
		if filter.Skill != "" && !mentor.HasSkill(filter.Skill) {
			continue
		}
		if filter.Search != "" && !strings.Contains(mentor.Name, filter.Search) {
			continue
		}
		filtered = append(filtered, mentor)
	}

	switch filter.SortBy {
	case SortBySkill:
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].Skills < filtered[j].Skills
		})
	default:
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].Name < filtered[j].Name
		})
	}

	return filtered, nil
}

// GetByID returns a single mentor. A user that exists with a different role
// is reported as not found.
func (s *MentorService) GetByID(caller *models.User, mentorID string) (*models.User, error) {
	if caller.Role != models.RoleMentee {
		return nil, fmt.Errorf("%w: only mentees can view mentor details", common.ErrForbidden)
	}

	mentor, err := s.userRepo.GetByID(mentorID)
	if err != nil {
		return nil, fmt.Errorf("%w: mentor", common.ErrNotFound)
	}
	if mentor.Role != models.RoleMentor {
		return nil, fmt.Errorf("%w: mentor", common.ErrNotFound)
	}
	return mentor, nil
}
