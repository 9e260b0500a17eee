// Package todos stores task records and serves the two list strategies:
// keyset pagination on created_at and classic page/limit offsets.
package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, id string) (*models.Todo, error)
	Update(ctx context.Context, id string, patch crud.Patch) (*models.Todo, error)
	Delete(ctx context.Context, id string) error

	// PaginateWithCursor returns the owner's tasks newest first, strictly
	// older than the cursor when one is given.
	PaginateWithCursor(ctx context.Context, req pagination.Cursor) ([]*models.Todo, error)
	// PaginateWithOffset returns one page of the owner's tasks newest first.
	PaginateWithOffset(ctx context.Context, req pagination.Offset) ([]*models.Todo, error)
}
