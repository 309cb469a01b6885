package services

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Registered-claim values baked into every issued token.
const (
	tokenIssuer   = "mentorlink"
	tokenAudience = "mentorlink-users"
)

// emailPattern requires local@domain with a TLD of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles registration, login, and token issuing/verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(email, password, name, role string) (*models.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	if role != models.RoleMentor && role != models.RoleMentee {
		return nil, fmt.Errorf("%w: role must be either 'mentor' or 'mentee'", common.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     name,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a signed token. Unknown email and
// wrong password produce the same error so credentials cannot be probed.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: incorrect email or password", common.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: incorrect email or password", common.ErrUnauthenticated)
	}
	return s.IssueToken(user)
}

// IssueToken signs a token carrying the subject id, denormalized profile
// claims, and the registered claims (RFC 7519).
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"exp":   now.Add(s.tokenTTL).Unix(),
		"nbf":   now.Unix(),
		"iat":   now.Unix(),
		"jti":   fmt.Sprintf("%s-%d", user.ID, now.Unix()),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken parses and validates a token. Any failure, whether a bad
// signature, expiry, or wrong issuer/audience, collapses to a single
// authentication error so no detail leaks to the caller.
func (s *AuthService) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("%w: invalid or expired token", common.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", common.ErrUnauthenticated)
	}
	if !claims.VerifyIssuer(tokenIssuer, true) || !claims.VerifyAudience(tokenAudience, true) {
		return nil, fmt.Errorf("%w: invalid or expired token", common.ErrUnauthenticated)
	}
	return claims, nil
}

// ResolveUser verifies the token and loads the user it was issued to. A valid
// token whose subject no longer exists still fails authentication.
func (s *AuthService) ResolveUser(tokenString string) (*models.User, error) {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, fmt.Errorf("%w: invalid or expired token", common.ErrUnauthenticated)
	}
	user, err := s.userRepo.GetByID(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", common.ErrUnauthenticated)
	}
	return user, nil
}
