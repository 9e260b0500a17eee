// Package profiles stores the optional personal details of a user. Every
// user gets an empty profile when they register.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string) (*models.Profile, error)
	GetByUser(ctx context.Context, userID string) (*models.Profile, error)
}
