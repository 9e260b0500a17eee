package todos

import (
	"context"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type MemoryRepository struct {
	*crud.Memory[models.Todo]
}

func NewMemoryRepository(opts ...crud.Option) *MemoryRepository {
	return &MemoryRepository{Memory: crud.NewMemory(table, opts...)}
}

// Journaled returns a view of r whose writes are recorded in u.
func (r *MemoryRepository) Journaled(u *crud.Undo) *MemoryRepository {
	return &MemoryRepository{Memory: r.Memory.Journaled(u)}
}

func (r *MemoryRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	return r.Insert(ctx, todo)
}

func createdAt(t *models.Todo) time.Time { return t.CreatedAt }

func (r *MemoryRepository) owned(ownerID string) []*models.Todo {
	return r.Find(func(t *models.Todo) bool { return t.UserID == ownerID })
}

func (r *MemoryRepository) PaginateWithCursor(ctx context.Context, req pagination.Cursor) ([]*models.Todo, error) {
	if _, err := pagination.SortColumn(req.SortBy); err != nil {
		return nil, err
	}
	return pagination.Keyset(r.owned(req.OwnerID), req.Limit, req.LastCursor, createdAt), nil
}

func (r *MemoryRepository) PaginateWithOffset(ctx context.Context, req pagination.Offset) ([]*models.Todo, error) {
	if _, err := pagination.SortColumn(req.SortBy); err != nil {
		return nil, err
	}
	return pagination.Window(r.owned(req.OwnerID), req.Page, req.Limit), nil
}
