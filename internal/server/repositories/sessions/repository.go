// Package sessions keeps the refresh token of each user. A user has at most
// one session; logging in or refreshing replaces its token.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type Repository interface {
	// Create opens the session of userID. A second session for the same user
	// yields common.ErrorConflict.
	Create(ctx context.Context, userID, token string) error

	// Rotate replaces the stored token unconditionally. It returns
	// common.ErrorNotFound when the user has no session.
	Rotate(ctx context.Context, userID, newToken string) error

	// RotateIfMatch replaces the stored token only while it still equals
	// presented. It returns common.ErrorNotFound when the user has no session
	// and common.ErrorUnauthorized when the stored token differs.
	RotateIfMatch(ctx context.Context, userID, presented, newToken string) error

	GetByUser(ctx context.Context, userID string) (*models.Session, error)
}
