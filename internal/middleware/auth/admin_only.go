package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly must be composed after RequireLogin. The privilege flag it
// checks is a snapshot taken at token issuance.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil || !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
		return next(c)
	}
}
