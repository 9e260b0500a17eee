package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps every table in process. Transactions are
// serialized; a failed one reverts only the rows written through the
// repositories it was handed, so concurrent writes outside it survive.
type MemoryRepositoryManager struct {
	txMu sync.Mutex

	users    *users.MemoryRepository
	sessions *sessions.MemoryRepository
	todos    *todos.MemoryRepository
	profiles *profiles.MemoryRepository
}

func NewMemoryRepositoryManager(opts ...crud.Option) *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(opts...),
		sessions: sessions.NewMemoryRepository(opts...),
		todos:    todos.NewMemoryRepository(opts...),
		profiles: profiles.NewMemoryRepository(opts...),
	}
}

func (m *MemoryRepositoryManager) Repositories() Repositories {
	return Repositories{
		Users:    m.users,
		Sessions: m.sessions,
		Todos:    m.todos,
		Profiles: m.profiles,
	}
}

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) (err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	undo := crud.NewUndo()
	defer func() {
		if p := recover(); p != nil {
			undo.Rollback()
			panic(p)
		}
		if err != nil {
			undo.Rollback()
		}
	}()

	return fn(ctx, Repositories{
		Users:    m.users.Journaled(undo),
		Sessions: m.sessions.Journaled(undo),
		Todos:    m.todos.Journaled(undo),
		Profiles: m.profiles.Journaled(undo),
	})
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
