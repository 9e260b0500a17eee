package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

type PostgresRepository struct {
	*crud.Repository[models.Session]
}

func NewPostgresRepository(db dbx.DBTX, opts ...crud.Option) *PostgresRepository {
	return &PostgresRepository{Repository: crud.NewRepository(db, table, opts...)}
}

func (r *PostgresRepository) Create(ctx context.Context, userID, token string) error {
	_, err := r.Insert(ctx, &models.Session{UserID: userID, Token: token})
	return err
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*models.Session, error) {
	return r.FindOne(ctx, "user_id = $1", userID)
}

func (r *PostgresRepository) Rotate(ctx context.Context, userID, newToken string) error {
	query := `
		UPDATE user_token
		SET token = $1, updated_at = $2
		WHERE user_id = $3
	`
	n, err := dbx.Affected(r.DB().ExecContext(ctx, query, newToken, r.Now(), userID))
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) RotateIfMatch(ctx context.Context, userID, presented, newToken string) error {
	query := `
		UPDATE user_token
		SET token = $1, updated_at = $2
		WHERE user_id = $3 AND token = $4
	`
	n, err := dbx.Affected(r.DB().ExecContext(ctx, query, newToken, r.Now(), userID, presented))
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// nothing swapped: tell a missing session from a stale token
	if _, err := r.GetByUser(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return err
	}
	return fmt.Errorf("%w: refresh token was already rotated", common.ErrorUnauthorized)
}
