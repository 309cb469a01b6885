package services_test

import (
	"bytes"
	"testing"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/repositories"
	"mentorlink/internal/services"

	"github.com/stretchr/testify/assert"
)

func newProfileFixture(t *testing.T) (*services.ProfileService, *models.User, *models.User) {
	t.Helper()

	userRepo := repositories.NewMockUserRepository()
	mentee := &models.User{Email: "mentee@example.com", Name: "Alice", Role: models.RoleMentee}
	mentor := &models.User{Email: "mentor@example.com", Name: "Bob", Role: models.RoleMentor}
	assert.NoError(t, userRepo.Create(mentee))
	assert.NoError(t, userRepo.Create(mentor))

	return services.NewProfileService(userRepo, 1<<20), mentee, mentor
}

func strPtr(s string) *string { return &s }

func TestProfileService_UpdateProfile(t *testing.T) {
	service, mentee, _ := newProfileFixture(t)

	// Only provided fields change
	updated, err := service.UpdateProfile(mentee, services.ProfileUpdate{
		Bio: strPtr("learning backend development"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "learning backend development", updated.Bio)

	updated, err = service.UpdateProfile(mentee, services.ProfileUpdate{
		Name: strPtr("Alice B"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "learning backend development", updated.Bio)

	// An update carrying no fields is a no-op success
	fetched, err := service.GetProfile(mentee)
	assert.NoError(t, err)
	before := *fetched
	updated, err = service.UpdateProfile(mentee, services.ProfileUpdate{})
	assert.NoError(t, err)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Bio, updated.Bio)
}

func TestProfileService_SkillsOnlyForMentors(t *testing.T) {
	service, mentee, mentor := newProfileFixture(t)

	skills := []string{"Go", "PostgreSQL"}
	updated, err := service.UpdateProfile(mentor, services.ProfileUpdate{Skills: &skills})
	assert.NoError(t, err)
	assert.Equal(t, skills, updated.SkillList())

	_, err = service.UpdateProfile(mentee, services.ProfileUpdate{Skills: &skills})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestProfileService_RoleIsImmutable(t *testing.T) {
	service, mentee, _ := newProfileFixture(t)

	// Any supplied role is rejected, even the current one
	_, err := service.UpdateProfile(mentee, services.ProfileUpdate{Role: strPtr("mentor")})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = service.UpdateProfile(mentee, services.ProfileUpdate{Role: strPtr("mentee")})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestProfileService_SetProfileImage(t *testing.T) {
	service, mentee, _ := newProfileFixture(t)

	// Allowed type within the cap
	err := service.SetProfileImage(mentee, []byte("fake-png-bytes"), "image/png", "avatar.png")
	assert.NoError(t, err)
	stored, err := service.GetProfile(mentee)
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake-png-bytes"), stored.ProfileImage)
	assert.Equal(t, "image/png", stored.ProfileImageType)
	assert.Equal(t, "avatar.png", stored.ProfileImageName)

	// A new upload replaces the prior image
	err = service.SetProfileImage(mentee, []byte("fake-jpeg-bytes"), "image/jpeg", "avatar.jpg")
	assert.NoError(t, err)
	stored, err = service.GetProfile(mentee)
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake-jpeg-bytes"), stored.ProfileImage)

	// Disallowed content type
	err = service.SetProfileImage(mentee, []byte("gif-bytes"), "image/gif", "avatar.gif")
	assert.ErrorIs(t, err, common.ErrValidation)

	// Over the configured cap
	oversized := bytes.Repeat([]byte("a"), (1<<20)+1)
	err = service.SetProfileImage(mentee, oversized, "image/png", "big.png")
	assert.ErrorIs(t, err, common.ErrValidation)
}
