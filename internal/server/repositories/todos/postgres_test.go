package todos

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	todoColumns = []string{"id", "created_at", "updated_at", "done", "title", "description", "user_id"}
	base        = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	selectList  = `id,\s*created_at,\s*updated_at,\s*done,\s*title,\s*description,\s*user_id`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db, crud.WithClock(func() time.Time { return base })), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+todo\s*\(id,\s*created_at,\s*updated_at,\s*done,\s*title,\s*description,\s*user_id\)`).
		WithArgs(sqlmock.AnyArg(), base, base, false, "buy milk", nil, "u1").
		WillReturnRows(sqlmock.NewRows(todoColumns).AddRow("t1", base, base, false, "buy milk", nil, "u1"))

	got, err := repo.Create(context.Background(), &models.Todo{UserID: "u1", Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.False(t, got.Done)
	assert.Nil(t, got.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateWithCursor_FirstPage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectList + `\s+FROM\s+todo\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$2$`
	mock.ExpectQuery(q).
		WithArgs("u1", 2).
		WillReturnRows(sqlmock.NewRows(todoColumns).
			AddRow("t5", base.Add(5*time.Minute), base, false, "five", nil, "u1").
			AddRow("t4", base.Add(4*time.Minute), base, false, "four", "d", "u1"))

	got, err := repo.PaginateWithCursor(context.Background(), pagination.Cursor{OwnerID: "u1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t5", got[0].ID)
	require.NotNil(t, got[1].Description)
	assert.Equal(t, "d", *got[1].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateWithCursor_OlderThanCursor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cursor := base.Add(4 * time.Minute)
	q := `(?s)^SELECT\s+` + selectList + `\s+FROM\s+todo\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+created_at\s*<\s*\$2\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$3$`
	mock.ExpectQuery(q).
		WithArgs("u1", cursor, 2).
		WillReturnRows(sqlmock.NewRows(todoColumns))

	got, err := repo.PaginateWithCursor(context.Background(), pagination.Cursor{OwnerID: "u1", Limit: 2, LastCursor: &cursor})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateWithOffset(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectList + `\s+FROM\s+todo\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$2\s+OFFSET\s+\$3$`
	mock.ExpectQuery(q).
		WithArgs("u1", 2, 2).
		WillReturnRows(sqlmock.NewRows(todoColumns).
			AddRow("t3", base.Add(3*time.Minute), base, true, "three", nil, "u1"))

	got, err := repo.PaginateWithOffset(context.Background(), pagination.Offset{OwnerID: "u1", Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Done)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_RejectsSortColumn(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.PaginateWithOffset(context.Background(), pagination.Offset{OwnerID: "u1", Page: 1, Limit: 2, SortBy: "title"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = repo.PaginateWithCursor(context.Background(), pagination.Cursor{OwnerID: "u1", Limit: 2, SortBy: "1; --"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Patch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+todo\s+SET\s+done\s*=\s*\$1,\s*title\s*=\s*\$2,\s*updated_at\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4\s+RETURNING\s+` + selectList + `$`
	mock.ExpectQuery(q).
		WithArgs(true, "renamed", base, "t1").
		WillReturnRows(sqlmock.NewRows(todoColumns).AddRow("t1", base, base, true, "renamed", nil, "u1"))

	got, err := repo.Update(context.Background(), "t1", crud.Patch{ColumnTitle: "renamed", ColumnDone: true})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	_, err = repo.Update(context.Background(), "t1", crud.Patch{"user_id": "u2"})
	assert.ErrorIs(t, err, common.ErrorValidation, "owner cannot be changed")
	require.NoError(t, mock.ExpectationsWereMet())
}
