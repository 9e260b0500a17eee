// Package repomanager vends the entity repositories for a storage backend
// and runs units of work that must commit together.
package repomanager

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

// MemoryDSN selects the in-process backend.
const MemoryDSN = "memory://"

// Repositories are bound to one database handle or transaction.
type Repositories struct {
	Users    users.Repository
	Sessions sessions.Repository
	Todos    todos.Repository
	Profiles profiles.Repository
}

type RepositoryManager interface {
	Repositories() Repositories
	// InTx runs fn with repositories whose writes are committed only when
	// fn returns nil.
	InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open picks the backend from the DSN scheme.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, MemoryDSN) {
		return NewMemoryRepositoryManager(), nil
	}
	return OpenPostgres(ctx, dsn)
}
