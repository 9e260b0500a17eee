package todos

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type PostgresRepository struct {
	*crud.Repository[models.Todo]
}

func NewPostgresRepository(db dbx.DBTX, opts ...crud.Option) *PostgresRepository {
	return &PostgresRepository{Repository: crud.NewRepository(db, table, opts...)}
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	return r.Insert(ctx, todo)
}

func (r *PostgresRepository) PaginateWithCursor(ctx context.Context, req pagination.Cursor) ([]*models.Todo, error) {
	col, err := pagination.SortColumn(req.SortBy)
	if err != nil {
		return nil, err
	}

	if req.LastCursor == nil {
		clause := fmt.Sprintf("WHERE user_id = $1 ORDER BY %[1]s DESC, id DESC LIMIT $2", col)
		return r.FindMany(ctx, clause, req.OwnerID, req.Limit)
	}

	clause := fmt.Sprintf("WHERE user_id = $1 AND %[1]s < $2 ORDER BY %[1]s DESC, id DESC LIMIT $3", col)
	return r.FindMany(ctx, clause, req.OwnerID, req.LastCursor.UTC(), req.Limit)
}

func (r *PostgresRepository) PaginateWithOffset(ctx context.Context, req pagination.Offset) ([]*models.Todo, error) {
	col, err := pagination.SortColumn(req.SortBy)
	if err != nil {
		return nil, err
	}

	clause := fmt.Sprintf("WHERE user_id = $1 ORDER BY %[1]s DESC, id DESC LIMIT $2 OFFSET $3", col)
	return r.FindMany(ctx, clause, req.OwnerID, req.Limit, req.Skip())
}
