package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(role string) ([]models.User, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", time.Hour)

	// Successful registration stores a bcrypt hash, not the raw password
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	user, err := authService.Register("mentee@example.com", "password123", "Test Mentee", "mentee")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("wrongpassword")))
	mockRepo.AssertExpectations(t)

	// Duplicate email surfaces the repository conflict
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("%w: email 'mentee@example.com' already registered", common.ErrConflict)).Once()
	_, err = authService.Register("mentee@example.com", "password123", "Test Mentee", "mentee")
	assert.ErrorIs(t, err, common.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Malformed email fails before any repository call
	_, err = authService.Register("not-an-email", "password123", "Test", "mentee")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = authService.Register("user@domain.c", "password123", "Test", "mentee")
	assert.ErrorIs(t, err, common.ErrValidation)

	// Unknown role is rejected
	_, err = authService.Register("admin@example.com", "password123", "Test", "admin")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", time.Hour)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "mentor@example.com",
		Password: string(hashedPassword),
		Name:     "Test Mentor",
		Role:     "mentor",
	}

	// Successful login returns a token carrying the expected claims
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.Name, claims["name"])
	assert.Equal(t, user.Role, claims["role"])
	assert.Equal(t, "mentorlink", claims["iss"])
	assert.Equal(t, "mentorlink-users", claims["aud"])
	assert.Contains(t, claims["jti"], user.ID)
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown email collapse to the same error
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	mockRepo.On("GetByEmail", "nobody@example.com").
		Return(nil, fmt.Errorf("%w: user with email nobody@example.com", common.ErrNotFound)).Once()
	_, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", time.Hour)

	user := &models.User{ID: "user-123", Email: "m@example.com", Name: "M", Role: "mentee"}

	// A freshly issued token verifies
	token, err := authService.IssueToken(user)
	assert.NoError(t, err)
	claims, err := authService.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["sub"])

	// Expired token is rejected
	expiredService := services.NewAuthService(mockRepo, "test_jwt_secret", -time.Hour)
	expiredToken, err := expiredService.IssueToken(user)
	assert.NoError(t, err)
	_, err = authService.VerifyToken(expiredToken)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	// Wrong signing key is rejected
	otherService := services.NewAuthService(mockRepo, "other_secret", time.Hour)
	foreignToken, err := otherService.IssueToken(user)
	assert.NoError(t, err)
	_, err = authService.VerifyToken(foreignToken)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	// Wrong issuer/audience is rejected even with a valid signature
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"iss": "someone-else",
		"aud": "mentorlink-users",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("test_jwt_secret"))
	_, err = authService.VerifyToken(forgedString)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	// Malformed token is rejected
	_, err = authService.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestAuthService_ResolveUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", time.Hour)

	user := &models.User{ID: "user-123", Email: "m@example.com", Name: "M", Role: "mentee"}
	token, err := authService.IssueToken(user)
	assert.NoError(t, err)

	// Valid token resolves to the stored user
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	resolved, err := authService.ResolveUser(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	mockRepo.AssertExpectations(t)

	// A valid token for a user that no longer exists fails authentication
	mockRepo.On("GetByID", "user-123").
		Return(nil, fmt.Errorf("%w: user with ID user-123", common.ErrNotFound)).Once()
	_, err = authService.ResolveUser(token)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}
