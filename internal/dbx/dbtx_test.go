package dbx

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS todo (id INTEGER PRIMARY KEY, title TEXT NOT NULL, done INTEGER NOT NULL DEFAULT 0)`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM todo`).Scan(&n))
	return n
}

func insertTodo(ctx context.Context, tx DBTX, title string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO todo(title) VALUES (?)`, title)
	return err
}

func TestWithTx(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(ctx context.Context, tx DBTX) error
		wantErr  bool
		wantRows int
	}{
		{
			name: "commits both inserts",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertTodo(ctx, tx, "one"); err != nil {
					return err
				}
				return insertTodo(ctx, tx, "two")
			},
			wantRows: 2,
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertTodo(ctx, tx, "one"); err != nil {
					return err
				}
				return errors.New("boom")
			},
			wantErr: true,
		},
		{
			name: "rolls back on failing statement",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertTodo(ctx, tx, "one"); err != nil {
					return err
				}
				_, err := tx.ExecContext(ctx, `INSERT INTO todo(title) VALUES (NULL)`)
				return err
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			err := WithTx(context.Background(), db, nil, tt.fn)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRows, countRows(t, db))
		})
	}
}

func TestWithTx_PreservesCause(t *testing.T) {
	db := setupDB(t)
	cause := errors.New("title taken")

	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return cause })
	assert.ErrorIs(t, err, cause)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		require.NotNil(t, recover(), "expected panic to propagate")
		require.Equal(t, 0, countRows(t, db), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertTodo(ctx, tx, "panic"))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
}

func TestAffected(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	require.NoError(t, insertTodo(ctx, db, "a"))
	require.NoError(t, insertTodo(ctx, db, "b"))

	n, err := Affected(db.ExecContext(ctx, `UPDATE todo SET done = 1`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = Affected(db.ExecContext(ctx, `UPDATE todo SET done = 1 WHERE title = 'missing'`))
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = Affected(db.ExecContext(ctx, `UPDATE nope SET x = 1`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
