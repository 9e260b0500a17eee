package todos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed creates t1..t5 for u1, one minute apart, plus a task of another owner.
func seed(t *testing.T) (*MemoryRepository, map[string]*models.Todo) {
	t.Helper()
	ctx := context.Background()

	tick := base
	repo := NewMemoryRepository(crud.WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}))

	byTitle := make(map[string]*models.Todo)
	for i := 1; i <= 5; i++ {
		title := fmt.Sprintf("t%d", i)
		td, err := repo.Create(ctx, &models.Todo{UserID: "u1", Title: title})
		require.NoError(t, err)
		byTitle[title] = td
	}
	_, err := repo.Create(ctx, &models.Todo{UserID: "u2", Title: "foreign"})
	require.NoError(t, err)

	return repo, byTitle
}

func titles(todos []*models.Todo) []string {
	out := make([]string, len(todos))
	for i, td := range todos {
		out[i] = td.Title
	}
	return out
}

func TestMemory_PaginateWithCursor(t *testing.T) {
	ctx := context.Background()
	repo, byTitle := seed(t)

	got, err := repo.PaginateWithCursor(ctx, pagination.Cursor{OwnerID: "u1", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"t5", "t4"}, titles(got))

	c4 := byTitle["t4"].CreatedAt
	got, err = repo.PaginateWithCursor(ctx, pagination.Cursor{OwnerID: "u1", Limit: 2, LastCursor: &c4})
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, titles(got))

	c1 := byTitle["t1"].CreatedAt
	got, err = repo.PaginateWithCursor(ctx, pagination.Cursor{OwnerID: "u1", Limit: 2, LastCursor: &c1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemory_PaginateWithOffset(t *testing.T) {
	ctx := context.Background()
	repo, _ := seed(t)

	cases := map[int][]string{
		1: {"t5", "t4"},
		2: {"t3", "t2"},
		3: {"t1"},
		4: {},
	}
	for page, want := range cases {
		got, err := repo.PaginateWithOffset(ctx, pagination.Offset{OwnerID: "u1", Page: page, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, want, titles(got), "page %d", page)
	}

	got, err := repo.PaginateWithOffset(ctx, pagination.Offset{OwnerID: "u2", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"foreign"}, titles(got))
}

func TestMemory_UpdateKeepsOwnerAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo, byTitle := seed(t)
	orig := byTitle["t1"]

	desc := "details"
	got, err := repo.Update(ctx, orig.ID, crud.Patch{ColumnDescription: &desc, ColumnDone: true})
	require.NoError(t, err)
	assert.True(t, got.Done)
	require.NotNil(t, got.Description)
	assert.Equal(t, "details", *got.Description)
	assert.Equal(t, orig.UserID, got.UserID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(orig.UpdatedAt))

	got, err = repo.Update(ctx, orig.ID, crud.Patch{ColumnDescription: nil})
	require.NoError(t, err)
	assert.Nil(t, got.Description)

	_, err = repo.Update(ctx, orig.ID, crud.Patch{ColumnDone: "yes"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}
