package repo

import (
	"context"
	"errors"

	"github.com/coursebook/course-booking-api/internal/models"
)

var ErrNotFound = errors.New("user not found")

// UserRepo is the single-document contract the handlers need from the
// document store: unique lookup by email plus lookup/update by identifier.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateProfile(ctx context.Context, id, firstName, lastName, mobileNo string) (*models.User, error)
	SetAdmin(ctx context.Context, id string) (*models.User, error)
}
