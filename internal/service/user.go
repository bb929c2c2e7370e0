package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/repo"
)

// UserService implements registration, login, and profile lookup.
// Token minting is the auth package's job — this service only deals in users
// and password hashes.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Register validates the registration, hashes the password with bcrypt, and
// persists the account. A duplicate email or phone returns domain.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	if err := validateRegistration(reg); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: hash: %w", err)
	}

	user, err := s.users.Insert(ctx, domain.User{
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        strings.ToLower(strings.TrimSpace(reg.Email)),
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(reg.Phone),
		CityName:     strings.TrimSpace(reg.CityName),
		CountryName:  strings.TrimSpace(reg.CountryName),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the account.
// An unknown email and a wrong password both return domain.ErrInvalidCredentials
// so the response does not reveal whether the email is registered.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, domain.WithDetail(domain.ErrValidation, "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.UserService.Login: %w", domain.ErrInvalidCredentials)
		}
		return domain.User{}, fmt.Errorf("service.UserService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Login: %w", domain.ErrInvalidCredentials)
	}

	return user, nil
}

// GetByID returns the account for an authenticated caller's id.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// validateRegistration enforces the required registration fields.
func validateRegistration(reg domain.Registration) error {
	if strings.TrimSpace(reg.FirstName) == "" ||
		strings.TrimSpace(reg.LastName) == "" ||
		strings.TrimSpace(reg.Email) == "" ||
		reg.Password == "" {
		return domain.WithDetail(domain.ErrValidation, "first_name, last_name, email, and password are required")
	}
	if !strings.Contains(reg.Email, "@") {
		return domain.WithDetail(domain.ErrValidation, "email is not valid")
	}
	if len(reg.Password) < 8 {
		return domain.WithDetail(domain.ErrValidation, "password must be at least 8 characters")
	}
	return nil
}
