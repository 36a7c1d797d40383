package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrDuplicateEmail = errors.New("email already in use")
)

// FrontEndUser represents a website user who can log in and register for
// events.
type FrontEndUser struct {
	UID       int64     `json:"uid"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Salt      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the user's full name, falling back to the username.
func (u *FrontEndUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// UserRepository defines the interface for front-end user storage.
type UserRepository interface {
	Create(ctx context.Context, user *FrontEndUser) error
	GetByUID(ctx context.Context, uid int64) (*FrontEndUser, error)
	GetByEmail(ctx context.Context, email string) (*FrontEndUser, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (string, error)
	Compare(hash, salt, password string) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userUID int64, email string, expiry time.Duration) (string, error)
}

// TokenVerifier validates an access token and returns the user uid.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthService authenticates front-end users.
type AuthService interface {
	// SignUp creates a user with a salted, hashed password. Returns
	// ErrDuplicateEmail when the email is taken.
	SignUp(ctx context.Context, email, password, name string) (*FrontEndUser, error)
	// Login verifies the credentials and returns a signed access token.
	// Returns ErrInvalidCredentials without distinguishing unknown email
	// from wrong password.
	Login(ctx context.Context, email, password string) (string, error)
}
