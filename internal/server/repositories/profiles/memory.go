package profiles

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type MemoryRepository struct {
	*crud.Memory[models.Profile]
}

func NewMemoryRepository(opts ...crud.Option) *MemoryRepository {
	return &MemoryRepository{Memory: crud.NewMemory(table, opts...)}
}

// Journaled returns a view of r whose writes are recorded in u.
func (r *MemoryRepository) Journaled(u *crud.Undo) *MemoryRepository {
	return &MemoryRepository{Memory: r.Memory.Journaled(u)}
}

func (r *MemoryRepository) Create(ctx context.Context, userID string) (*models.Profile, error) {
	return r.Insert(ctx, &models.Profile{UserID: userID})
}

func (r *MemoryRepository) GetByUser(ctx context.Context, userID string) (*models.Profile, error) {
	found := r.Find(func(p *models.Profile) bool { return p.UserID == userID })
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}
