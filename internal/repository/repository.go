// Package repository declares the storage interfaces consumed by the
// service layer. The sqlite subpackage implements them; tests substitute
// in-memory mocks.
package repository

import (
	"context"
	"time"

	"github.com/mulan-edu/mulan/internal/model"
)

// ListOptions carries LIMIT/OFFSET pagination for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts a new user, assigning ID and timestamps.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByID returns the user or apperror.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByUsername returns the user or apperror.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// GetUserByEmail returns the user or apperror.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateProfile saves the mutable profile fields (username, about_me).
	UpdateProfile(ctx context.Context, user *model.User) error
	// TouchLastSeen refreshes the last-seen timestamp.
	TouchLastSeen(ctx context.Context, id string, seen time.Time) error
}

// EnterpriseRepository persists enterprise records and their value tags.
type EnterpriseRepository interface {
	// CreateEnterprise inserts a new enterprise. The caller assigns the GUID.
	// Uniqueness violations on name or symbol come back as
	// apperror.ErrConflict.
	CreateEnterprise(ctx context.Context, e *model.Enterprise) error
	// GetEnterpriseByName returns the enterprise or apperror.ErrNotFound. Name is
	// the external lookup key used by routes.
	GetEnterpriseByName(ctx context.Context, name string) (*model.Enterprise, error)
	// GetEnterpriseBySymbol returns the enterprise or apperror.ErrNotFound.
	GetEnterpriseBySymbol(ctx context.Context, symbol string) (*model.Enterprise, error)
	// ListEnterprises returns a window of enterprises, newest first, in a stable
	// order (creation time descending, id as tie-break).
	ListEnterprises(ctx context.Context, opts ListOptions) ([]model.Enterprise, error)
	// CountEnterprises returns the total number of enterprises.
	CountEnterprises(ctx context.Context) (int64, error)
	// UpdateEnterprise saves name, description and symbol by ID. Missing rows are
	// apperror.ErrNotFound.
	UpdateEnterprise(ctx context.Context, e *model.Enterprise) error
	// DeleteEnterpriseByName removes the enterprise and its value associations.
	// Missing rows are apperror.ErrNotFound, never a silent no-op.
	DeleteEnterpriseByName(ctx context.Context, name string) error
	// ReplaceValues sets the enterprise's value tags, creating Value rows
	// for names not seen before.
	ReplaceValues(ctx context.Context, enterpriseID model.GUID, names []string) error
	// ValuesFor returns the enterprise's value tags in name order.
	ValuesFor(ctx context.Context, enterpriseID model.GUID) ([]model.Value, error)
}
