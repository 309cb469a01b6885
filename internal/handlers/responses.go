package handlers

import (
	"encoding/base64"
	"fmt"
	"time"

	"mentorlink/internal/models"
)

// UserProfileResponse is the representation of a user's own profile.
type UserProfileResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Bio             string    `json:"bio,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MentorProfile is the nested profile block of a mentor list item.
type MentorProfile struct {
	Name     string   `json:"name"`
	Bio      string   `json:"bio,omitempty"`
	ImageURL string   `json:"imageUrl"`
	Skills   []string `json:"skills,omitempty"`
}

// MentorItemResponse is a mentor as seen by mentees.
type MentorItemResponse struct {
	ID      string        `json:"id"`
	Email   string        `json:"email"`
	Role    string        `json:"role"`
	Profile MentorProfile `json:"profile"`
}

// profileImageURL returns an inline data URI for a stored image, or a
// deterministic role-based placeholder when none is stored.
func profileImageURL(user *models.User) string {
	if len(user.ProfileImage) > 0 {
		return fmt.Sprintf("data:%s;base64,%s",
			user.ProfileImageType,
			base64.StdEncoding.EncodeToString(user.ProfileImage))
	}
	if user.Role == models.RoleMentor {
		return "https://placehold.co/500x500.jpg?text=MENTOR"
	}
	return "https://placehold.co/500x500.jpg?text=MENTEE"
}

func newUserProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role,
		Bio:             user.Bio,
		Skills:          user.SkillList(),
		ProfileImageURL: profileImageURL(user),
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

func newMentorItemResponse(mentor *models.User) MentorItemResponse {
	return MentorItemResponse{
		ID:    mentor.ID,
		Email: mentor.Email,
		Role:  mentor.Role,
		Profile: MentorProfile{
			Name:     mentor.Name,
			Bio:      mentor.Bio,
			ImageURL: profileImageURL(mentor),
			Skills:   mentor.SkillList(),
		},
	}
}
