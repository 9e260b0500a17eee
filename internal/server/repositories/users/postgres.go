package users

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type PostgresRepository struct {
	*crud.Repository[models.User]
}

func NewPostgresRepository(db dbx.DBTX, opts ...crud.Option) *PostgresRepository {
	return &PostgresRepository{Repository: crud.NewRepository(db, table, opts...)}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return r.Insert(ctx, user)
}

func (r *PostgresRepository) GetByUserNameOrEmail(ctx context.Context, login string) (*models.User, error) {
	return r.FindOne(ctx, "username = $1 OR email = $1", login)
}
