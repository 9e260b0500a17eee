package crud

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/google/uuid"
)

// Memory is an in-process store with the contract of Repository. Rows are
// kept by value so callers never alias stored state.
type Memory[T any] struct {
	*rowStore[T]
	table Table[T]
	undo  *Undo
	settings
}

type rowStore[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func NewMemory[T any](table Table[T], opts ...Option) *Memory[T] {
	return &Memory[T]{
		rowStore: &rowStore[T]{rows: make(map[string]T)},
		table:    table,
		settings: newSettings(opts),
	}
}

// Journaled returns a view over the same rows that records the inverse of
// each of its writes in u. Writes made through m itself are not recorded.
func (m *Memory[T]) Journaled(u *Undo) *Memory[T] {
	v := *m
	v.undo = u
	return &v
}

// remember logs how to put row id back as it is now. Callers hold mu.
func (m *Memory[T]) remember(id string) {
	if m.undo == nil {
		return
	}
	prev, existed := m.rows[id]
	m.undo.push(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existed {
			m.rows[id] = prev
		} else {
			delete(m.rows, id)
		}
	})
}

func (m *Memory[T]) Now() time.Time { return m.stamp() }

func (m *Memory[T]) GetAll(ctx context.Context) ([]*T, error) {
	return m.Find(func(*T) bool { return true }), nil
}

func (m *Memory[T]) GetByID(ctx context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &v, nil
}

// Find returns copies of the rows matching pred, newest first.
func (m *Memory[T]) Find(pred func(*T) bool) []*T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*T, 0)
	for _, v := range m.rows {
		if pred(&v) {
			c := v
			result = append(result, &c)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := m.table.Record(result[i]), m.table.Record(result[j])
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return result
}

func (m *Memory[T]) Insert(ctx context.Context, v *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := *v
	rec := m.table.Record(&row)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, exists := m.rows[rec.ID]; exists {
		return nil, fmt.Errorf("%w: %s_pkey", common.ErrorConflict, m.table.Name)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.stamp()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	if err := m.checkUnique(&row); err != nil {
		return nil, err
	}

	m.remember(rec.ID)
	m.rows[rec.ID] = row
	return &row, nil
}

func (m *Memory[T]) Update(ctx context.Context, id string, patch Patch) (*T, error) {
	keys, err := m.table.patchKeys(patch)
	if err != nil {
		return nil, err
	}

	return m.modify(id, func(v *T) error {
		for _, k := range keys {
			if err := m.table.Set(v, k, patch[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Modify applies fn to a copy of the first row matching pred and stores the
// result with a fresh updated_at. The match and the write happen under one
// lock. It returns common.ErrorNotFound when nothing matches.
func (m *Memory[T]) Modify(pred func(*T) bool, fn func(*T) error) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, v := range m.rows {
		if pred(&v) {
			return m.modifyLocked(id, fn)
		}
	}
	return nil, common.ErrorNotFound
}

func (m *Memory[T]) modify(id string, fn func(*T) error) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.modifyLocked(id, fn)
}

func (m *Memory[T]) modifyLocked(id string, fn func(*T) error) (*T, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if err := fn(&row); err != nil {
		return nil, err
	}
	m.table.Record(&row).UpdatedAt = m.stamp()
	if err := m.checkUnique(&row); err != nil {
		return nil, err
	}

	m.remember(id)
	m.rows[id] = row
	return &row, nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; ok {
		m.remember(id)
		delete(m.rows, id)
	}
	return nil
}

func (m *Memory[T]) checkUnique(v *T) error {
	id := m.table.Record(v).ID
	for name, key := range m.table.Unique {
		want := key(v)
		for otherID, other := range m.rows {
			if otherID != id && key(&other) == want {
				return fmt.Errorf("%w: %s", common.ErrorConflict, name)
			}
		}
	}
	return nil
}

// Undo collects the inverse of every write made through journaled views so a
// failed unit of work reverts only the rows it touched.
type Undo struct {
	mu    sync.Mutex
	steps []func()
}

func NewUndo() *Undo { return &Undo{} }

func (u *Undo) push(step func()) {
	u.mu.Lock()
	u.steps = append(u.steps, step)
	u.mu.Unlock()
}

// Rollback reverts the recorded writes newest first and empties the log.
func (u *Undo) Rollback() {
	u.mu.Lock()
	steps := u.steps
	u.steps = nil
	u.mu.Unlock()

	for i := len(steps) - 1; i >= 0; i-- {
		steps[i]()
	}
}
