package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coursebook/course-booking-api/internal/hash"
	"github.com/coursebook/course-booking-api/internal/logging"
	authmw "github.com/coursebook/course-booking-api/internal/middleware/auth"
	"github.com/coursebook/course-booking-api/internal/models"
	"github.com/coursebook/course-booking-api/internal/mykafka"
	"github.com/coursebook/course-booking-api/internal/repo"
	"github.com/coursebook/course-booking-api/internal/token"
)

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

type UserHandler struct {
	Repo   repo.UserRepo
	Codec  *token.Codec
	Events EventPublisher
}

func (h *UserHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.PublishEvent(ctx, mykafka.UserEventsTopic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *UserHandler) CheckEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_check_email")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("check_email_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	taken, err := h.Repo.EmailTaken(ctx, req.Email)
	if err != nil {
		l.Error("check_email_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"message": "duplicate email found"})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"message": "no duplicate email found"})
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_register")

	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		MobileNo  string `json:"mobileNo"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// validation order is part of the contract: first failing check wins
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if len(req.MobileNo) != 11 {
		return echo.NewHTTPError(http.StatusBadRequest, "mobile number is invalid")
	}
	if len(req.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters long")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		MobileNo:     req.MobileNo,
		PasswordHash: pwHash,
		IsAdmin:      false,
	}
	if err := h.Repo.Create(ctx, &user); err != nil {
		l.Error("register_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, user.ID.Hex(), map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID.Hex(),
		"email":  user.Email,
	})

	l.Info("register_success", "status", 201)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"user":    user,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	user, err := h.Repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repo.ErrNotFound) {
		l.Warn("login_failed", "status", 404, "reason", "no_email")
		return echo.NewHTTPError(http.StatusNotFound, "no email found")
	}
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong_password")
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}

	access, err := h.Codec.Sign(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot create token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create token")
	}

	h.publish(c, user.ID.Hex(), map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID.Hex(),
		"email":  user.Email,
	})

	l.Info("login_success", "status", 200)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "user logged in successfully",
		"access":  access,
	})
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_profile")

	claims := authmw.ClaimsFrom(c)
	user, err := h.Repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		// historical quirk kept for client compatibility: a verified token
		// whose subject no longer exists answers 200, not 404
		l.Warn("profile_missing_subject", "status", 200, "userID", claims.UserID)
		return c.JSON(http.StatusOK, echo.Map{"message": "invalid signature"})
	}
	if err != nil {
		l.Error("profile_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_reset_password")

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("reset_password_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pwHash, err := hash.HashPassword(req.NewPassword)
	if errors.Is(err, hash.ErrEmptyPassword) {
		return echo.NewHTTPError(http.StatusBadRequest, "password must not be empty")
	}
	if err != nil {
		l.Error("reset_password_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	claims := authmw.ClaimsFrom(c)
	if err := h.Repo.UpdatePassword(ctx, claims.UserID, pwHash); err != nil {
		l.Error("reset_password_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("reset_password_success", "status", 200)
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset successfully"})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_update_profile")

	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		MobileNo  string `json:"mobileNo"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	claims := authmw.ClaimsFrom(c)
	updated, err := h.Repo.UpdateProfile(ctx, claims.UserID, req.FirstName, req.LastName, req.MobileNo)
	if err != nil {
		l.Error("update_profile_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update profile")
	}

	l.Info("update_profile_success", "status", 200)
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) PromoteToAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_promote_admin")

	id := c.Param("id")
	updated, err := h.Repo.SetAdmin(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		l.Warn("promote_failed", "status", 404, "reason", "user_not_found")
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		l.Error("promote_failed", "status", 500, "reason", "db_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "error updating user")
	}

	h.publish(c, updated.ID.Hex(), map[string]interface{}{
		"type":   "user_promoted",
		"userID": updated.ID.Hex(),
		"email":  updated.Email,
	})

	l.Info("promote_success", "status", 200)
	return c.JSON(http.StatusOK, echo.Map{"message": "user has been updated to admin"})
}
