package users

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type MemoryRepository struct {
	*crud.Memory[models.User]
}

func NewMemoryRepository(opts ...crud.Option) *MemoryRepository {
	return &MemoryRepository{Memory: crud.NewMemory(table, opts...)}
}

// Journaled returns a view of r whose writes are recorded in u.
func (r *MemoryRepository) Journaled(u *crud.Undo) *MemoryRepository {
	return &MemoryRepository{Memory: r.Memory.Journaled(u)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return r.Insert(ctx, user)
}

func (r *MemoryRepository) GetByUserNameOrEmail(ctx context.Context, login string) (*models.User, error) {
	found := r.Find(func(u *models.User) bool {
		return u.UserName == login || u.Email == login
	})
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}
