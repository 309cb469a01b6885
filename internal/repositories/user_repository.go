package repositories

import "mentorlink/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	ListByRole(role string) ([]models.User, error)
	Save(user *models.User) error
}
