package sessions

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	var _ Repository = repo

	require.NoError(t, repo.Create(ctx, "u1", "t0"))
	assert.ErrorIs(t, repo.Create(ctx, "u1", "other"), common.ErrorConflict, "one session per user")

	require.NoError(t, repo.Rotate(ctx, "u1", "t1"))
	s, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "t1", s.Token)

	assert.ErrorIs(t, repo.Rotate(ctx, "ghost", "x"), common.ErrorNotFound)
	_, err = repo.GetByUser(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_RotateIfMatch(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, "u1", "t0"))

	require.NoError(t, repo.RotateIfMatch(ctx, "u1", "t0", "t1"))
	assert.ErrorIs(t, repo.RotateIfMatch(ctx, "u1", "t0", "t2"), common.ErrorUnauthorized, "replayed token")
	assert.ErrorIs(t, repo.RotateIfMatch(ctx, "ghost", "t0", "t2"), common.ErrorNotFound)

	s, err := repo.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "t1", s.Token)
}

func TestMemoryRepository_ConcurrentRefreshHasOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, "u1", "t0"))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if repo.RotateIfMatch(ctx, "u1", "t0", "next") == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
