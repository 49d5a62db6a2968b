package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roktoSheba/domain"
	"roktoSheba/pkg/logger"
	"roktoSheba/pkg/metrics"

	jsonres "roktoSheba/pkg/response"

	"github.com/labstack/echo/v4"
)

const (
	// ContextEmail and ContextUID are the echo context keys holding the
	// verified identity.
	ContextEmail = "email"
	ContextUID   = "uid"

	verifyTimeout = 5 * time.Second
)

// TokenVerifier checks a bearer token against the identity provider
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (domain.Identity, error)
}

// AdminChecker reports whether the stored account has the Admin role
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

func unauthorized(c echo.Context) error {
	metrics.AuthFailuresTotal.Inc()
	return c.JSON(http.StatusUnauthorized, jsonres.Error(
		"UNAUTHORIZED", "unauthorized access", nil,
	))
}

func forbidden(c echo.Context) error {
	metrics.AuthFailuresTotal.Inc()
	return c.JSON(http.StatusForbidden, jsonres.Error(
		"FORBIDDEN", "forbidden access", nil,
	))
}

// AuthMiddleware requires a verified identity token in the Authorization header.
func AuthMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c)
			}

			// the token is the second whitespace separated field
			tokenParts := strings.Fields(authHeader)
			if len(tokenParts) < 2 {
				return unauthorized(c)
			}
			tokenString := tokenParts[1]

			ctx, cancel := context.WithTimeout(c.Request().Context(), verifyTimeout)
			defer cancel()

			identity, err := verifier.VerifyIDToken(ctx, tokenString)
			if err != nil {
				logger.Warn("Rejected identity token", "path", c.Path(), "error", err)
				return unauthorized(c)
			}

			logger.Debug("Verified identity", "uid", identity.UID, "path", c.Path())
			c.Set(ContextEmail, identity.Email)
			c.Set(ContextUID, identity.UID)

			return next(c)
		}
	}
}

// OwnerOnly rejects requests whose path param does not match the verified email.
func OwnerOnly(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get(ContextEmail).(string)
			if !ok || email == "" || PathParam(c, param) != email {
				return forbidden(c)
			}

			return next(c)
		}
	}
}

// AdminOnly rejects callers whose stored account is not an Admin.
func AdminOnly(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, ok := c.Get(ContextEmail).(string)
			if !ok || email == "" {
				return forbidden(c)
			}

			isAdmin, err := checker.IsAdmin(c.Request().Context(), email)
			if err != nil {
				logger.Error("Failed to check admin role", "email", email, "error", err)
				return c.JSON(http.StatusInternalServerError, jsonres.Error(
					"INTERNAL_SERVER_ERROR", "internal server error", nil,
				))
			}
			if !isAdmin {
				return forbidden(c)
			}

			return next(c)
		}
	}
}

// PathParam returns the named path param with percent-encoding removed.
// Echo leaves params escaped when the client encoded them, e.g. %40 for @.
func PathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}
