package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/kitadi/kitadi/internal/domain"
	"github.com/kitadi/kitadi/jwt"
)

var tracer = otel.Tracer("auth")

const denylistPrefix = "kitadi:denylist:"

// AuthService issues and verifies session tokens. Tokens are stateless;
// the Redis denylist only records revocations until their natural expiry.
type AuthService struct {
	secret string
	expiry time.Duration
	rdb    *redis.Client
}

func NewAuthService(secret string, expiry time.Duration, rdb *redis.Client) *AuthService {
	return &AuthService{
		secret: secret,
		expiry: expiry,
		rdb:    rdb,
	}
}

// Issue mints a session token embedding the identity's claims.
func (s *AuthService) Issue(user domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiry)
	token, err := jwt.Create(user.ID, user.Phone, user.Role, user.Name, s.secret, s.expiry)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "AuthService.Issue: token signing failed")
	}
	return token, expiresAt, nil
}

// Verify checks signature, expiry and the revocation denylist.
func (s *AuthService) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Verify")
	defer span.End()

	claims, err := jwt.Validate(token, s.secret)
	if err != nil {
		span.RecordError(err)
		return nil, domain.AuthenticationError{Detail: "invalid or expired token"}
	}

	if s.rdb != nil && claims.ID != "" {
		revoked, err := s.rdb.Exists(ctx, denylistPrefix+claims.ID).Result()
		if err != nil {
			span.RecordError(errors.Wrap(err, "denylist lookup failed"))
			return nil, errors.Wrap(err, "AuthService.Verify: denylist lookup failed")
		}
		if revoked > 0 {
			return nil, domain.AuthenticationError{Detail: "token revoked"}
		}
	}

	return claims, nil
}

// Revoke denylists the token's id until the token would have expired.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Revoke")
	defer span.End()

	claims, err := jwt.Validate(token, s.secret)
	if err != nil {
		span.RecordError(err)
		return domain.AuthenticationError{Detail: "invalid or expired token"}
	}

	if s.rdb == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.rdb.Set(ctx, denylistPrefix+claims.ID, "1", ttl).Err(); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "AuthService.Revoke: denylist write failed")
	}
	return nil
}
