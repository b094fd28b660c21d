package users

import (
	"context"
	"time"

	"github.com/psidorov/interviewhub/internal/server/models"
)

// Repository is the account store. Implementations must enforce email
// uniqueness at the storage layer; callers treat the pre-write lookup as
// an optimization only.
type Repository interface {
	// Create persists a new account and returns it with its ID assigned.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the account with the given normalized email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the account with the given ID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// RecordLogin marks a successful signin: last_login and updated_at are
	// set to at, and the login counter is incremented. Safe to retry.
	RecordLogin(ctx context.Context, id string, at time.Time) error
}
