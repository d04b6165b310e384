// Package services provides the business logic layer for the SGA application.
// This file implements authentication: credential validation and password
// hashing using bcrypt.
package services

import (
	"context"
	"errors"

	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login failure: unknown email,
// wrong company or wrong password. One error for all three cases so the
// response does not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// bcrypt cost 12 per current OWASP guidance.
const bcryptCost = 12

// AuthService validates credentials and manages password hashes.
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService creates and returns a new AuthService instance.
func NewAuthService() *AuthService {
	return &AuthService{
		userRepo: repository.NewUserRepository(),
	}
}

// Authenticate verifies the credentials against the given company and
// returns the user record on success.
//
// Login is scoped to a company: the same email logging into the wrong
// company id fails exactly like a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, companyID int, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.CompanyID != companyID {
		return nil, ErrInvalidCredentials
	}

	// Constant-time comparison; never log the password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword generates a bcrypt hash for storage. Used on user creation
// and password change.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}
