// Package client drives the erp API on behalf of one interactive user. Every
// authenticated call goes through the session cache: timeout check first,
// then the bearer token, then clear-on-reject.
package client

import (
	"context"

	"erp/internal/client/api"
	"erp/internal/client/session"

	"github.com/pkg/errors"
)

// ErrSessionRejected is returned after the server rejected the cached token
// (401, or the account was deactivated). The session is already cleared; the call is not retried.
var ErrSessionRejected = errors.New("the server rejected the session, please log in again")

// Service combines the API client with the session cache.
type Service struct {
	api   *api.Client
	cache *session.Cache
}

// NewService is the constructor for Service.
func NewService(apiClient *api.Client, cache *session.Cache) *Service {
	return &Service{api: apiClient, cache: cache}
}

// Session exposes the cache for status display and persistence.
func (s *Service) Session() *session.Cache {
	return s.cache
}

// BaseURL is the server the service talks to.
func (s *Service) BaseURL() string {
	return s.api.BaseURL()
}

// Health needs no session and does not count as interaction.
func (s *Service) Health(ctx context.Context) (*api.Health, error) {
	return s.api.Health(ctx)
}

// Login authenticates, fetches the principal and only then starts the session.
func (s *Service) Login(ctx context.Context, username, password string) (*api.User, error) {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	user, err := s.api.Me(ctx, token.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile after login")
	}

	s.cache.Login(token.AccessToken, token.ExpiresAt, principalOf(user))

	return user, nil
}

// Logout drops the session locally. Tokens are stateless, so the server is not contacted.
func (s *Service) Logout() {
	s.cache.Logout()
}

// Register creates an account without logging in.
func (s *Service) Register(ctx context.Context, input *api.RegisterRequest) (*api.User, error) {
	return s.api.Register(ctx, input)
}

// Me fetches the current principal from the server.
func (s *Service) Me(ctx context.Context) (*api.User, error) {
	return call(ctx, s, func(ctx context.Context, token string) (*api.User, error) {
		return s.api.Me(ctx, token)
	})
}

// UpdateMe changes email or password and refreshes the cached principal.
func (s *Service) UpdateMe(ctx context.Context, input *api.UpdateProfileRequest) (*api.User, error) {
	user, err := call(ctx, s, func(ctx context.Context, token string) (*api.User, error) {
		return s.api.UpdateMe(ctx, token, input)
	})
	if err != nil {
		return nil, err
	}
	s.cache.UpdateProfile(principalOf(user))

	return user, nil
}

func (s *Service) ListItems(ctx context.Context, skip, limit int) ([]api.Item, error) {
	return call(ctx, s, func(ctx context.Context, token string) ([]api.Item, error) {
		return s.api.ListItems(ctx, token, skip, limit)
	})
}

func (s *Service) CreateItem(ctx context.Context, input *api.ItemInput) (*api.Item, error) {
	return call(ctx, s, func(ctx context.Context, token string) (*api.Item, error) {
		return s.api.CreateItem(ctx, token, input)
	})
}

func (s *Service) GetItem(ctx context.Context, id string) (*api.Item, error) {
	return call(ctx, s, func(ctx context.Context, token string) (*api.Item, error) {
		return s.api.GetItem(ctx, token, id)
	})
}

func (s *Service) UpdateItem(ctx context.Context, id string, patch *api.ItemPatch) (*api.Item, error) {
	return call(ctx, s, func(ctx context.Context, token string) (*api.Item, error) {
		return s.api.UpdateItem(ctx, token, id, patch)
	})
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	_, err := call(ctx, s, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, s.api.DeleteItem(ctx, token, id)
	})

	return err
}

// call runs fn with the session token. A 401 or an inactive-account answer
// clears the session and is reported as ErrSessionRejected.
func call[T any](ctx context.Context, s *Service, fn func(ctx context.Context, token string) (T, error)) (T, error) {
	var zero T

	token, err := s.cache.Begin()
	if err != nil {
		return zero, err
	}

	result, err := fn(ctx, token)
	if err != nil {
		if apiErr, ok := api.AsAPIError(err); ok && apiErr.IsSessionRejection() {
			s.cache.Reject(token)

			return zero, errors.Wrap(ErrSessionRejected, apiErr.Message)
		}

		return zero, err
	}

	return result, nil
}

func principalOf(user *api.User) session.Principal {
	return session.Principal{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
