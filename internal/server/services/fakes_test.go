package services

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type brokenUsers struct{ err error }

func (b brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, b.err }
func (b brokenUsers) GetByID(context.Context, string) (*models.User, error)      { return nil, b.err }
func (b brokenUsers) GetByUserNameOrEmail(context.Context, string) (*models.User, error) {
	return nil, b.err
}
