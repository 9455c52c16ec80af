// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"erp/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    *string
	Password string
}

// LoginInput defines the data required to log in. Username may also be an
// email address when it contains '@'.
type LoginInput struct {
	Username string
	Password string
}

// UpdateProfileInput lists the account fields the principal may change.
// Nil fields are left alone; an empty email clears it.
type UpdateProfileInput struct {
	Email    *string
	Password *string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput carries the bearer token issued after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *entity.User
}

// AuthUsecase defines the authentication operations the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Resolve turns a bearer token into the active principal it names.
	// Verification is stateless apart from the principal lookup.
	Resolve(ctx context.Context, rawToken string, now time.Time) (*entity.User, error)

	UpdateProfile(ctx context.Context, principal *entity.User, input *UpdateProfileInput) (*entity.User, error)
}
