package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"seminarbooking/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	issuer domain.TokenIssuer
	clock  domain.Clock
	expiry time.Duration
}

// NewAuthService creates an AuthService with the given user store, password
// hasher, and token issuer.
func NewAuthService(users domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, clock domain.Clock, expiry time.Duration) domain.AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		clock:  clock,
		expiry: expiry,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name string) (*domain.FrontEndUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrInvalidInput)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	user := &domain.FrontEndUser{
		Username:  email,
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  hash,
		Salt:      salt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.Password, user.Salt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(user.UID, user.Email, s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
