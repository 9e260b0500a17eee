// Package crud implements the storage operations shared by every entity
// repository: lookup by id, listing, insert, partial update and delete.
//
// A Table describes how an entity maps onto its columns. Repository runs the
// operations against PostgreSQL through dbx.DBTX, Memory keeps rows in a map
// and enforces the same uniqueness rules the schema declares.
package crud

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Patch maps column names to new values for a partial update.
type Patch map[string]any

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table maps the entity T onto a relational table. Columns lists the
// entity's own columns; id, created_at and updated_at are implied.
type Table[T any] struct {
	Name    string
	Columns []string
	// Mutable is the allow-list of columns a Patch may set.
	Mutable []string

	// Values returns the values of Columns in order.
	Values func(*T) []any
	// Targets returns scan destinations for Columns in order.
	Targets func(*T) []any
	// Record exposes the embedded models.Record.
	Record func(*T) *models.Record
	// Set applies one patched column in memory.
	Set func(v *T, column string, value any) error
	// Unique lists key extractors for the unique constraints of the table.
	Unique map[string]func(*T) string
}

const recordColumns = "id, created_at, updated_at"

// SelectList is the column list used by every SELECT and RETURNING clause.
func (t Table[T]) SelectList() string {
	if len(t.Columns) == 0 {
		return recordColumns
	}
	return recordColumns + ", " + strings.Join(t.Columns, ", ")
}

// patchKeys validates the patch against Mutable and returns its keys sorted,
// so generated statements are stable.
func (t Table[T]) patchKeys(p Patch) ([]string, error) {
	keys := make([]string, 0, len(p))
	for k := range p {
		if !slices.Contains(t.Mutable, k) {
			return nil, fmt.Errorf("%w: column %q of %s is not updatable", common.ErrorValidation, k, t.Name)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

type settings struct {
	now func() time.Time
}

// Option configures a Repository or a Memory store.
type Option func(*settings)

// WithClock replaces time.Now as the source of created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// stamp truncates to the precision PostgreSQL keeps for TIMESTAMP columns.
func (s settings) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
