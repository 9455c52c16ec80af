// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "erp/internal/delivery/context"
	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/domain/repository"
	"erp/internal/domain/service"
	"erp/internal/infra/metrics"
	"erp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword is hashed once and verified against when a login names an
// unknown account, so unknown users cost the same as wrong passwords.
const dummyPassword = "timing-equaliser-Passw0rd"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	metrics      *metrics.AuthMetrics
	logger       *slog.Logger
	now          func() time.Time

	dummyOnce   sync.Once
	dummyDigest string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Metrics      *metrics.AuthMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		metrics:      params.Metrics,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// Register creates an active account. Concurrent registrations of the same
// identity are settled by the store's unique indexes.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if err := entity.ValidateUsername(input.Username); err != nil {
		srv.metrics.RecordRegistration(metrics.ResultError)

		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", input.Username), slog.Any("error", err))
		srv.metrics.RecordRegistration(metrics.ResultError)

		return nil, err
	}

	digest, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))
		srv.metrics.RecordRegistration(metrics.ResultError)

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	now := srv.now().UTC()
	user := &entity.User{
		Username:     input.Username,
		Email:        normalizeEmail(input.Email),
		PasswordHash: digest,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			srv.log(ctx).Info("Registration rejected, identity taken", slog.String("username", input.Username))
			srv.metrics.RecordRegistration(metrics.ResultDuplicate)

			return nil, errors.Wrap(domainerrors.ErrDuplicateIdentity, "registration failed")
		}
		srv.log(ctx).Error("Failed to create user during registration", slog.Any("error", err))
		srv.metrics.RecordRegistration(metrics.ResultUnavailable)

		return nil, errors.Wrap(domainerrors.ErrAuthUnavailable, err.Error())
	}

	srv.metrics.RecordRegistration(metrics.ResultSuccess)
	srv.publish(ctx, entity.AuthEventRegistered, user.Username, user.ID)
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login checks the credentials and issues a bearer token. Unknown account and
// wrong password produce the same error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.lookupLoginIdentity(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.equaliseTiming(input.Password)

			return nil, srv.loginFailed(ctx, input.Username, uuid.Nil, metrics.ResultInvalidCredentials, domainerrors.ErrInvalidCredentials)
		}
		srv.log(ctx).Error("Credential store unavailable during login", slog.Any("error", err))
		srv.metrics.RecordLogin(metrics.ResultUnavailable)

		return nil, errors.Wrap(domainerrors.ErrAuthUnavailable, err.Error())
	}

	ok, err := srv.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		// A corrupt stored digest is an operator problem, not a bad password.
		srv.log(ctx).Error("Stored password digest is malformed", slog.Any("userID", user.ID), slog.Any("error", err))
		srv.metrics.RecordLogin(metrics.ResultError)

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}
	if !ok {
		return nil, srv.loginFailed(ctx, input.Username, user.ID, metrics.ResultInvalidCredentials, domainerrors.ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, srv.loginFailed(ctx, input.Username, user.ID, metrics.ResultInactive, domainerrors.ErrInactiveAccount)
	}

	assertion, err := srv.tokenService.Issue(user.Username, srv.now(), 0)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("userID", user.ID), slog.Any("error", err))
		srv.metrics.RecordLogin(metrics.ResultError)

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	srv.metrics.RecordLogin(metrics.ResultSuccess)
	srv.publish(ctx, entity.AuthEventLoginSucceeded, user.Username, user.ID)
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: assertion.Token,
		TokenType:   entity.TokenTypeBearer,
		ExpiresAt:   assertion.ExpiresAt,
		User:        user,
	}, nil
}

// lookupLoginIdentity finds the account by username, falling back to email
// when the identifier looks like one.
func (srv *authService) lookupLoginIdentity(ctx context.Context, identifier string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrUserNotFound) && strings.Contains(identifier, "@") {
		return srv.userRepo.FindByEmail(ctx, identifier)
	}

	return user, err
}

func (srv *authService) loginFailed(ctx context.Context, username string, userID uuid.UUID, result string, cause *domainerrors.BaseError) error {
	srv.log(ctx).Warn("Login failed", slog.String("username", username), slog.String("reason", result))
	srv.metrics.RecordLogin(result)
	srv.publish(ctx, entity.AuthEventLoginFailed, username, userID)

	return errors.Wrap(cause, "login failed")
}

func (srv *authService) equaliseTiming(password string) {
	srv.dummyOnce.Do(func() {
		digest, err := srv.hasher.Hash(dummyPassword)
		if err == nil {
			srv.dummyDigest = digest
		}
	})
	if srv.dummyDigest != "" {
		_, _ = srv.hasher.Verify(password, srv.dummyDigest)
	}
}

// Resolve verifies the token, then loads the principal it names. The precise
// failure is logged; callers only see the boundary kind.
func (srv *authService) Resolve(ctx context.Context, rawToken string, now time.Time) (*entity.User, error) {
	assertion, err := srv.tokenService.Verify(rawToken, now)
	if err != nil {
		result := metrics.ResultMalformedToken
		if errors.Is(err, domainerrors.ErrExpiredToken) {
			result = metrics.ResultExpiredToken
		}
		srv.log(ctx).Warn("Bearer token rejected", slog.String("reason", result), slog.Any("error", err))
		srv.metrics.RecordTokenResolution(result)

		return nil, err
	}

	user, err := srv.userRepo.FindByUsername(ctx, assertion.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Bearer token names unknown principal", slog.String("subject", assertion.Subject))
			srv.metrics.RecordTokenResolution(metrics.ResultPrincipalNotFound)

			return nil, errors.Wrap(domainerrors.ErrPrincipalNotFound, "resolve token")
		}
		srv.log(ctx).Error("Credential store unavailable during token resolution", slog.Any("error", err))
		srv.metrics.RecordTokenResolution(metrics.ResultUnavailable)

		return nil, errors.Wrap(domainerrors.ErrAuthUnavailable, err.Error())
	}

	if !user.IsActive {
		srv.log(ctx).Info("Bearer token names inactive principal", slog.Any("userID", user.ID))
		srv.metrics.RecordTokenResolution(metrics.ResultInactive)

		return nil, errors.Wrap(domainerrors.ErrInactiveAccount, "resolve token")
	}

	srv.metrics.RecordTokenResolution(metrics.ResultSuccess)

	return user, nil
}

// UpdateProfile applies an account patch inside a transaction. A new password
// is checked against the strength policy and re-hashed.
func (srv *authService) UpdateProfile(ctx context.Context, principal *entity.User, input *usecase.UpdateProfileInput) (*entity.User, error) {
	var patch entity.UserPatch

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		patch.Email = &email
	}

	if input.Password != nil {
		if err := srv.hasher.ValidatePasswordStrength(*input.Password); err != nil {
			return nil, err
		}
		digest, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password during profile update")
		}
		patch.PasswordHash = &digest
	}

	if patch.IsEmpty() {
		return principal, nil
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		current, err := userRepo.FindByID(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrPrincipalNotFound, "update profile")
			}

			return errors.Wrap(domainerrors.ErrAuthUnavailable, err.Error())
		}

		patch.Apply(current)
		current.UpdatedAt = srv.now().UTC()

		if err := userRepo.Update(ctx, current); err != nil {
			if errors.Is(err, repository.ErrDuplicateIdentity) {
				return errors.Wrap(domainerrors.ErrDuplicateIdentity, "update profile")
			}

			return errors.Wrap(domainerrors.ErrAuthUnavailable, err.Error())
		}
		updated = current

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", principal.ID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}

// publish emits an audit event; a failing bus never changes the outcome.
func (srv *authService) publish(ctx context.Context, eventType entity.AuthEventType, username string, userID uuid.UUID) {
	if srv.publisher == nil {
		return
	}

	event := &entity.AuthEvent{
		ID:         uuid.NewString(),
		RequestID:  deliverycontext.RequestIDFrom(ctx),
		Type:       eventType,
		Username:   username,
		OccurredAt: srv.now().UTC(),
	}
	if userID != uuid.Nil {
		event.UserID = userID.String()
	}

	if err := srv.publisher.PublishAuthEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish auth event", slog.String("event_type", string(eventType)), slog.Any("error", err))
	}
}

// normalizeEmail trims the address; a blank address means none.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
