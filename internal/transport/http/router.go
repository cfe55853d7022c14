package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursebook/course-booking-api/internal/handlers"
	authmw "github.com/coursebook/course-booking-api/internal/middleware/auth"
)

type Deps struct {
	UserHandler *handlers.UserHandler
	Identity    *authmw.IdentityGate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	users := e.Group("/users")

	users.POST("/check-email", d.UserHandler.CheckEmail)
	users.POST("/register", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)

	private := users.Group("", d.Identity.RequireLogin)

	private.GET("/details", d.UserHandler.GetProfile)
	private.PATCH("/reset-password", d.UserHandler.ResetPassword)
	private.PUT("/profile", d.UserHandler.UpdateProfile)

	admin := users.Group("", d.Identity.RequireLogin, authmw.AdminOnly)

	admin.PATCH("/:id/set-as-admin", d.UserHandler.PromoteToAdmin)
}
