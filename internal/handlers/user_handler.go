package handlers

import (
	"fmt"
	"io"
	"log"

	"mentorlink/internal/common"
	"mentorlink/internal/middleware"
	"mentorlink/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the caller's own profile.
type UserHandler struct {
	profileService *services.ProfileService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(profileService *services.ProfileService) *UserHandler {
	return &UserHandler{
		profileService: profileService,
	}
}

// RegisterRoutes registers the profile routes. The router must already carry
// the authentication middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/me", h.HandleGetProfile)
	router.Put("/me", h.HandleUpdateProfile)
	router.Post("/me/profile-image", h.HandleUploadProfileImage)
}

// HandleGetProfile returns the caller's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	user, err := h.profileService.GetProfile(caller)
	if err != nil {
		log.Printf("Error loading profile for user %s: %v", caller.ID, err)
		return common.RespondError(c, err)
	}
	return c.JSON(newUserProfileResponse(user))
}

// UpdateProfileRequest represents the request body for a profile update.
// Pointer fields distinguish an omitted field from an explicit value.
type UpdateProfileRequest struct {
	Name   *string   `json:"name"`
	Bio    *string   `json:"bio"`
	Skills *[]string `json:"skills"`
	Role   *string   `json:"role"`
}

// HandleUpdateProfile applies a partial update to the caller's profile.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return common.RespondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}

	user, err := h.profileService.UpdateProfile(caller, services.ProfileUpdate{
		Name:   req.Name,
		Bio:    req.Bio,
		Skills: req.Skills,
		Role:   req.Role,
	})
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", caller.ID, err)
		return common.RespondError(c, err)
	}
	return c.JSON(newUserProfileResponse(user))
}

// HandleUploadProfileImage stores a multipart image upload on the caller's
// record.
func (h *UserHandler) HandleUploadProfileImage(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.RespondError(c, fmt.Errorf("%w: image file is required", common.ErrValidation))
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return common.RespondError(c, fmt.Errorf("%w: could not read uploaded file", common.ErrValidation))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded file: %v", err)
		return common.RespondError(c, fmt.Errorf("%w: could not read uploaded file", common.ErrValidation))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.profileService.SetProfileImage(caller, data, contentType, fileHeader.Filename); err != nil {
		log.Printf("Error storing profile image for user %s: %v", caller.ID, err)
		return common.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile image uploaded successfully",
	})
}
