// Package auth implements the session provider: email/password credentials
// and JWT bearer tokens carrying the user identity.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/models"
)

const tokenTTL = 24 * time.Hour

// Service handles registration, login and token validation.
type Service struct {
	db        *gorm.DB
	jwtSecret []byte
}

// NewService creates an auth service.
func NewService(db *gorm.DB, jwtSecret string) *Service {
	return &Service{
		db:        db,
		jwtSecret: []byte(jwtSecret),
	}
}

// AuthResponse is returned on successful register/login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Register creates a user with a bcrypt-hashed password and returns a token.
func (s *Service) Register(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierrors.Validation("valid email required", "email")
	}
	if len(password) < 8 {
		return nil, apierrors.Validation("password must be at least 8 characters", "password")
	}

	var existing models.User
	err := s.db.Where("LOWER(email) = ?", email).First(&existing).Error
	if err == nil {
		return nil, apierrors.New(apierrors.CodeEmailTaken, "email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.Internal("failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apierrors.Internal("failed to create user", err)
	}

	return s.generateAuthResponse(user)
}

// Login verifies credentials and returns a token.
func (s *Service) Login(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("LOWER(email) = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.New(apierrors.CodeInvalidCredentials, "invalid email or password")
	}
	if err != nil {
		return nil, apierrors.Internal("failed to load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apierrors.New(apierrors.CodeInvalidCredentials, "invalid email or password")
	}

	return s.generateAuthResponse(&user)
}

// ValidateToken parses a bearer token and returns the user id and email.
func (s *Service) ValidateToken(tokenString string) (userID, email string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", apierrors.New(apierrors.CodeTokenExpired, "token expired")
		}
		return "", "", apierrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", apierrors.Unauthorized("invalid token claims")
	}

	userID, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	if userID == "" {
		return "", "", apierrors.Unauthorized("token missing subject")
	}

	return userID, email, nil
}

func (s *Service) generateAuthResponse(user *models.User) (*AuthResponse, error) {
	expiresAt := time.Now().Add(tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, apierrors.Internal("failed to sign token", err)
	}

	return &AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
