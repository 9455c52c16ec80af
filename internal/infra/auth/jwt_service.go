package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"erp/config"
	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/domain/service"
)

// ErrInvalidTTL is returned by Issue when the requested lifetime is out of range.
var ErrInvalidTTL = errors.New("token ttl out of range")

// jwtService is a concrete implementation of the TokenService interface using
// compact HS256 JSON Web Tokens with sub, iat and exp claims.
type jwtService struct {
	secret     []byte        // HMAC key, fixed for the life of the process.
	defaultTTL time.Duration // Lifetime used when Issue is called with ttl 0.
	maxTTL     time.Duration // Longest lifetime Issue accepts.
}

// NewJWTService is the constructor for jwtService.
// It refuses to start without a signing secret.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.SecretKey == "" {
		return nil, errors.New("auth.secretKey must be provided")
	}

	defaultTTL := cfg.Auth.AccessTokenTTL
	if defaultTTL == 0 {
		defaultTTL = config.DefaultAccessTokenTTL
	}
	maxTTL := cfg.Auth.MaxTokenTTL
	if maxTTL == 0 {
		maxTTL = config.DefaultMaxTokenTTL
	}
	if defaultTTL > maxTTL {
		return nil, errors.Errorf("auth.accessTokenTTL %s exceeds auth.maxTokenTTL %s", defaultTTL, maxTTL)
	}

	return &jwtService{
		secret:     []byte(cfg.Auth.SecretKey),
		defaultTTL: defaultTTL,
		maxTTL:     maxTTL,
	}, nil
}

// DefaultTTL returns the lifetime applied when Issue is given a zero ttl.
func (s *jwtService) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Issue signs {sub, iat, exp} for subject. Timestamps are whole seconds, so
// the lifetime is truncated to seconds and must be at least one.
func (s *jwtService) Issue(subject string, now time.Time, ttl time.Duration) (*entity.Assertion, error) {
	if subject == "" {
		return nil, errors.New("token subject must not be empty")
	}
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	if ttl < time.Second || ttl > s.maxTTL {
		return nil, errors.Wrapf(ErrInvalidTTL, "ttl %s not within [1s, %s]", ttl, s.maxTTL)
	}

	issuedAt := now.UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl.Truncate(time.Second))

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &entity.Assertion{
		Token:     token,
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the signature, algorithm and lifetime of raw as of now.
// An expired token yields ErrExpiredToken; anything else wrong with it yields
// ErrMalformedToken. The signature is checked before any claim is trusted.
func (s *jwtService) Verify(raw string, now time.Time) (*entity.Assertion, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	)

	claims := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(domainerrors.ErrExpiredToken, err.Error())
		}

		return nil, errors.Wrap(domainerrors.ErrMalformedToken, err.Error())
	}

	if claims.Subject == "" || claims.IssuedAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return nil, errors.Wrap(domainerrors.ErrMalformedToken, "token claims incomplete")
	}

	return &entity.Assertion{
		Token:     raw,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
	}, nil
}
