package services

import (
	"context" // Kept on the signature for symmetry with the other services
	"errors"  // For creating standard errors
	"fmt"     // For string formatting
	"log"     // For logging
	"time"    // For token expiry

	"github.com/go-playground/validator/v10" // For request validation
	"github.com/golang-jwt/jwt/v5"           // For JWT generation
	"golang.org/x/crypto/bcrypt"             // For password verification

	"nutricare/backend/config"
	"nutricare/backend/models"
)

// AuthService handles admin authentication. The clinic has a single admin
// account whose email and bcrypt password hash come from configuration;
// a successful login issues a signed session token.
type AuthService struct {
	cfg       *config.Config
	validator *validator.Validate
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg:       cfg,
		validator: validator.New(),
	}
}

// Login verifies the admin credentials and issues a session JWT.
func (s *AuthService) Login(ctx context.Context, req models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	// 1. Validate request data
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error during login for email %s: %v", req.Email, err)
		return nil, fmt.Errorf("invalid login data: %w", err)
	}

	// 2. Check the email against the configured admin account.
	// The same generic error is returned for a wrong email and a wrong
	// password so the response does not reveal which one failed.
	if req.Email != s.cfg.AdminEmail {
		log.Printf("Login attempt failed: Unknown email %s", req.Email)
		return nil, errors.New("invalid email or password")
	}

	// 3. Compare the provided password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login attempt failed: Invalid password for email %s", req.Email)
		return nil, errors.New("invalid email or password")
	}

	// 4. Generate the session token
	token, err := s.generateJWT(req.Email)
	if err != nil {
		log.Printf("Error generating JWT for admin %s: %v", req.Email, err)
		return nil, fmt.Errorf("failed to generate authentication token: %w", err)
	}

	log.Printf("Admin logged in successfully: %s", req.Email)

	return &models.AdminLoginResponse{
		Token: token,
		Email: req.Email,
	}, nil
}

// generateJWT creates a new session token for the admin account.
func (s *AuthService) generateJWT(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour * 72).Unix(), // Token expires after 72 hours
		"iat":   time.Now().Unix(),                     // Issued at time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}
