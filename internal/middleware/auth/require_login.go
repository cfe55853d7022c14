package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coursebook/course-booking-api/internal/logging"
	"github.com/coursebook/course-booking-api/internal/token"
)

// ClaimsKey is the echo context key the verified claims are stored under.
const ClaimsKey = "claims"

const bearerPrefix = "Bearer "

type IdentityGate struct {
	Codec *token.Codec
}

func NewIdentityGate(codec *token.Codec) *IdentityGate {
	return &IdentityGate{Codec: codec}
}

// RequireLogin extracts the bearer token, verifies it and attaches the
// decoded claims to the request context. All decode failures collapse into
// one client-visible message so the failure mode is not distinguishable.
func (m *IdentityGate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}

		claims, err := m.Codec.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			l := logging.FromContext(c.Request().Context()).With("middleware", "require_login")
			l.Warn("token_rejected", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(ClaimsKey, claims)
		return next(c)
	}
}

// ClaimsFrom returns the claims attached by RequireLogin, or nil when the
// gate has not run.
func ClaimsFrom(c echo.Context) *token.Claims {
	claims, _ := c.Get(ClaimsKey).(*token.Claims)
	return claims
}
