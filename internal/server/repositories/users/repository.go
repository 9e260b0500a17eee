// Package users stores user accounts. Usernames and emails are unique.
package users

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type Repository interface {
	// Create stores a new account and returns it with id and timestamps set.
	// A taken username or email yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByUserNameOrEmail matches login against both the username and the
	// email column.
	GetByUserNameOrEmail(ctx context.Context, login string) (*models.User, error)
}
