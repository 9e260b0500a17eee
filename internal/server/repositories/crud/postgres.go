package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Repository runs the shared statements for one table.
type Repository[T any] struct {
	db    dbx.DBTX
	table Table[T]
	settings
}

func NewRepository[T any](db dbx.DBTX, table Table[T], opts ...Option) *Repository[T] {
	return &Repository[T]{db: db, table: table, settings: newSettings(opts)}
}

// DB returns the handle the repository was bound to.
func (r *Repository[T]) DB() dbx.DBTX { return r.db }

func (r *Repository[T]) Table() Table[T] { return r.table }

// Now returns the timestamp the repository would stamp a write with.
func (r *Repository[T]) Now() time.Time { return r.stamp() }

// ScanRow reads one row laid out as Table.SelectList.
func (r *Repository[T]) ScanRow(s Scanner) (*T, error) {
	v := new(T)
	rec := r.table.Record(v)
	dest := append([]any{&rec.ID, &rec.CreatedAt, &rec.UpdatedAt}, r.table.Targets(v)...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	return v, nil
}

// FindOne returns the first row matching where, or common.ErrorNotFound.
func (r *Repository[T]) FindOne(ctx context.Context, where string, args ...any) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", r.table.SelectList(), r.table.Name, where)

	v, err := r.ScanRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

// FindMany returns all rows selected by clause, which follows the FROM
// part of the statement (WHERE, ORDER BY, LIMIT...).
func (r *Repository[T]) FindMany(ctx context.Context, clause string, args ...any) ([]*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s %s", r.table.SelectList(), r.table.Name, clause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*T, 0)
	for rows.Next() {
		v, err := r.ScanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]*T, error) {
	return r.FindMany(ctx, "ORDER BY created_at DESC")
}

func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, "id = $1", id)
}

// Insert stores v, assigning an id and timestamps when they are unset, and
// returns the row as stored.
func (r *Repository[T]) Insert(ctx context.Context, v *T) (*T, error) {
	rec := r.table.Record(v)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.stamp()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}

	columns := append([]string{"id", "created_at", "updated_at"}, r.table.Columns...)
	args := append([]any{rec.ID, rec.CreatedAt, rec.UpdatedAt}, r.table.Values(v)...)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table.Name, strings.Join(columns, ", "), placeholders(1, len(columns)), r.table.SelectList())

	out, err := r.ScanRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, MapError(err)
	}
	return out, nil
}

// Update merges patch into the row with the given id and stamps updated_at.
// Columns outside Table.Mutable are rejected with common.ErrorValidation.
func (r *Repository[T]) Update(ctx context.Context, id string, patch Patch) (*T, error) {
	keys, err := r.table.patchKeys(patch)
	if err != nil {
		return nil, err
	}

	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+2)
	for i, k := range keys {
		sets = append(sets, fmt.Sprintf("%s = $%d", k, i+1))
		args = append(args, patch[k])
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(keys)+1))
	args = append(args, r.stamp(), id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		r.table.Name, strings.Join(sets, ", "), len(keys)+2, r.table.SelectList())

	out, err := r.ScanRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, MapError(err)
	}
	return out, nil
}

// Delete removes the row with the given id. Deleting a missing row is not
// an error.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table.Name)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// MapError turns unique violations into common.ErrorConflict and wraps
// everything else as a db error.
func MapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorConflict, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}

func placeholders(from, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(p, ", ")
}
