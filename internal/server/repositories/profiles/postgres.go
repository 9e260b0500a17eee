package profiles

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type PostgresRepository struct {
	*crud.Repository[models.Profile]
}

func NewPostgresRepository(db dbx.DBTX, opts ...crud.Option) *PostgresRepository {
	return &PostgresRepository{Repository: crud.NewRepository(db, table, opts...)}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string) (*models.Profile, error) {
	return r.Insert(ctx, &models.Profile{UserID: userID})
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*models.Profile, error) {
	return r.FindOne(ctx, "user_id = $1", userID)
}
