package service

import (
	"context"
	"errors"
	"fmt"

	"shopcaster/internal/common"
	"shopcaster/internal/common/security"
	"shopcaster/internal/domain/model"
	"shopcaster/internal/domain/repository"
)

const minPasswordLength = 6

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" || len(req.Password) < minPasswordLength {
		return nil, common.Errorf("email and password (min %d chars) are required: %w",
			minPasswordLength, common.ErrValidation)
	}

	// The email column is unique, so a concurrent register still surfaces as
	// a conflict from Create; this pre-check just gives the common case a
	// clean message.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.Errorf("email is already in use: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = "" // Clear before returning
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password both return
// common.ErrInvalidCredentials so the two cases are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	user.HashedPassword = ""
	return user, nil
}
