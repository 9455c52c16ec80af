package middleware

import (
	"log/slog"
	"strings"
	"time"

	deliverycontext "erp/internal/delivery/context"
	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerScheme = "bearer"

// AuthMiddleware resolves the bearer token on protected routes into a principal.
type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
	logger      *slog.Logger
	now         func() time.Time
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUsecase usecase.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		logger:      logger,
		now:         time.Now,
	}
}

// Authenticate requires `Authorization: Bearer <token>` and stores the resolved
// principal on the context. Every token rejection leaves as the same 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrMissingToken
		}

		ctx := c.Request().Context()
		principal, err := m.authUsecase.Resolve(ctx, raw, m.now())
		if err != nil {
			if domainerrors.IsTokenRejection(err) {
				deliverycontext.LoggerFrom(ctx, m.logger).Warn("Bearer token rejected",
					slog.String("reason", err.Error()),
					slog.String("path", c.Request().URL.Path),
				)
			}

			return errors.WithStack(err)
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// bearerToken extracts the token from an Authorization header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

// Principal returns the authenticated user for handlers behind Authenticate.
func Principal(c echo.Context) (*entity.User, error) {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return nil, domainerrors.ErrMissingToken
	}

	return principal, nil
}
