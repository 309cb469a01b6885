package services

import (
	"fmt"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/repositories"
)

// Content types accepted for profile images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ProfileUpdate carries the fields of a profile update. Nil pointers mean the
// field was not provided and must be left untouched.
type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Skills *[]string
	// Role is never applied; supplying it fails validation. It exists so the
	// handler can report the attempt instead of silently dropping the field.
	Role *string
}

// ProfileService lets users read and mutate their own profile.
type ProfileService struct {
	userRepo      repositories.UserRepository
	maxImageBytes int
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository, maxImageBytes int) *ProfileService {
	return &ProfileService{
		userRepo:      userRepo,
		maxImageBytes: maxImageBytes,
	}
}

// GetProfile returns the caller's current record.
func (s *ProfileService) GetProfile(caller *models.User) (*models.User, error) {
	return s.userRepo.GetByID(caller.ID)
}

// UpdateProfile applies the provided fields to the caller's profile. Name and
// bio apply unconditionally; skills only for mentors; role never changes.
func (s *ProfileService) UpdateProfile(caller *models.User, update ProfileUpdate) (*models.User, error) {
	if update.Role != nil {
		return nil, fmt.Errorf("%w: role is immutable", common.ErrValidation)
	}
	if update.Skills != nil && caller.Role != models.RoleMentor {
		return nil, fmt.Errorf("%w: only mentors may set skills", common.ErrValidation)
	}

	user, err := s.userRepo.GetByID(caller.ID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Skills != nil {
		if err := user.SetSkillList(*update.Skills); err != nil {
			return nil, fmt.Errorf("%w: invalid skills", common.ErrValidation)
		}
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfileImage stores the image bytes on the caller's record, replacing
// any prior image. Only jpeg and png are accepted, up to the configured cap.
func (s *ProfileService) SetProfileImage(caller *models.User, data []byte, contentType, filename string) error {
	if !allowedImageTypes[contentType] {
		return fmt.Errorf("%w: only .jpg and .png files are allowed", common.ErrValidation)
	}
	if len(data) > s.maxImageBytes {
		return fmt.Errorf("%w: file size must be less than %d bytes", common.ErrValidation, s.maxImageBytes)
	}

	user, err := s.userRepo.GetByID(caller.ID)
	if err != nil {
		return err
	}
	user.ProfileImage = data
	user.ProfileImageType = contentType
	user.ProfileImageName = filename
	return s.userRepo.Save(user)
}
