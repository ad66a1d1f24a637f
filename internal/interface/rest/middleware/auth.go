package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kitadi/kitadi/internal/domain"
	"github.com/kitadi/kitadi/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// Authenticate resolves the caller's identity from the bearer token and
// stores the claims in the request context. Routes without this
// middleware are public. Any token failure rejects the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.Authenticate")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")
		if authHeader == "" {
			span.RecordError(fmt.Errorf("missing authentication header"))
			return unauthenticated(c)
		}

		split := strings.Split(authHeader, " ")
		if len(split) != 2 {
			span.RecordError(fmt.Errorf("invalid authentication header"))
			return unauthenticated(c)
		}

		authType, token := split[0], split[1]
		if authType != "Bearer" {
			span.RecordError(fmt.Errorf("only Bearer is acceptable"))
			return unauthenticated(c)
		}

		claims, err := m.auth.Verify(ctx, token)
		if err != nil {
			span.RecordError(errors.Wrap(err, "AuthMiddleware.Authenticate: token verification failed"))
			// A denylist outage is an infrastructure fault, not a bad
			// credential.
			if !errors.Is(err, domain.ErrAuthentication) {
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": "internal error",
					"code":  "internal",
				})
			}
			return unauthenticated(c)
		}

		ctx = context.WithValue(ctx, domain.RequesterIdCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, domain.RequesterPhoneCtxKey, claims.Phone)
		ctx = context.WithValue(ctx, domain.RequesterRoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, domain.RequesterNameCtxKey, claims.Name)
		span.SetAttributes(attribute.String("RequesterId", claims.Subject))

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireRole restricts a route to the given roles. An empty set admits
// any authenticated caller. Must run after Authenticate, so a missing
// token is reported as an authentication failure, never a role failure.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Request().Context().Value(domain.RequesterRoleCtxKey).(string)
			if !ok || role == "" {
				return unauthenticated(c)
			}

			if len(roles) == 0 {
				return next(c)
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "insufficient permissions",
				"code":  "forbidden",
			})
		}
	}
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error": "invalid credentials",
		"code":  "unauthenticated",
	})
}

// RequesterID extracts the authenticated caller's id from the request.
func RequesterID(c echo.Context) string {
	id, _ := c.Request().Context().Value(domain.RequesterIdCtxKey).(string)
	return id
}

// RequesterRole extracts the authenticated caller's role.
func RequesterRole(c echo.Context) string {
	role, _ := c.Request().Context().Value(domain.RequesterRoleCtxKey).(string)
	return role
}
