package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type MemoryRepository struct {
	*crud.Memory[models.Session]
}

func NewMemoryRepository(opts ...crud.Option) *MemoryRepository {
	return &MemoryRepository{Memory: crud.NewMemory(table, opts...)}
}

// Journaled returns a view of r whose writes are recorded in u.
func (r *MemoryRepository) Journaled(u *crud.Undo) *MemoryRepository {
	return &MemoryRepository{Memory: r.Memory.Journaled(u)}
}

func (r *MemoryRepository) Create(ctx context.Context, userID, token string) error {
	_, err := r.Insert(ctx, &models.Session{UserID: userID, Token: token})
	return err
}

func (r *MemoryRepository) GetByUser(ctx context.Context, userID string) (*models.Session, error) {
	found := r.Find(func(s *models.Session) bool { return s.UserID == userID })
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *MemoryRepository) Rotate(ctx context.Context, userID, newToken string) error {
	_, err := r.Modify(
		func(s *models.Session) bool { return s.UserID == userID },
		func(s *models.Session) error { s.Token = newToken; return nil },
	)
	return err
}

var errStale = errors.New("stale token")

func (r *MemoryRepository) RotateIfMatch(ctx context.Context, userID, presented, newToken string) error {
	_, err := r.Modify(
		func(s *models.Session) bool { return s.UserID == userID },
		func(s *models.Session) error {
			if s.Token != presented {
				return errStale
			}
			s.Token = newToken
			return nil
		},
	)
	if errors.Is(err, errStale) {
		return fmt.Errorf("%w: refresh token was already rotated", common.ErrorUnauthorized)
	}
	return err
}
