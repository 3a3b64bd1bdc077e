package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/sqlerr"
)

// MemoryStore holds the tables of every MemoryRepository sharing it, so
// foreign keys can be checked across record types.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
}

type memoryTable struct {
	nextID     int64
	references []Reference
	rows       map[int64]memoryRow
}

type memoryRow struct {
	// data is the JSON encoding of the record, so callers never share
	// pointers with stored rows.
	data []byte
	keys map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]*memoryTable)}
}

// table returns the named table, creating it empty. Callers hold mu for
// writing; readers index tables directly, since every repository creates its
// own table on construction.
func (s *MemoryStore) table(name string) *memoryTable {
	t, ok := s.tables[name]
	if !ok {
		t = &memoryTable{rows: make(map[int64]memoryRow)}
		s.tables[name] = t
	}
	return t
}

// MemoryRepository implements Repository over a MemoryStore.
type MemoryRepository[T model.Entity[T]] struct {
	store *MemoryStore
	table Table[T]
}

func NewMemoryRepository[T model.Entity[T]](store *MemoryStore, table Table[T]) *MemoryRepository[T] {
	store.mu.Lock()
	store.table(table.Name).references = table.References
	store.mu.Unlock()

	return &MemoryRepository[T]{store: store, table: table}
}

func (r *MemoryRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t := r.store.tables[r.table.Name]
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	items := make([]T, 0, len(ids))
	for _, id := range ids {
		entity, err := decodeRow[T](t.rows[id])
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s id=%d: %w", r.table.Name, id, err)
		}
		items = append(items, entity)
	}
	return items, nil
}

func (r *MemoryRepository[T]) FindOne(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.tables[r.table.Name].rows[id]
	if !ok {
		return zero, false, nil
	}

	entity, err := decodeRow[T](row)
	if err != nil {
		return zero, false, fmt.Errorf("failed to decode %s id=%d: %w", r.table.Name, id, err)
	}
	return entity, true, nil
}

func (r *MemoryRepository[T]) Save(ctx context.Context, entity T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t := r.store.table(r.table.Name)
	values := r.table.row(entity)

	for _, column := range r.table.NotNull {
		if isNull(values[column]) {
			return zero, sqlerr.Violation(sqlerr.NotNullViolation, r.table.Name, column, "")
		}
	}

	keys := make(map[string]int64, len(r.table.References))
	for _, ref := range r.table.References {
		key, ok := values[ref.Column].(*int64)
		if !ok || key == nil {
			continue
		}
		if _, exists := r.store.table(ref.Table).rows[*key]; !exists {
			return zero, sqlerr.Violation(sqlerr.ForeignKeyViolation, r.table.Name, ref.Column, ref.Constraint)
		}
		keys[ref.Column] = *key
	}

	id, ok := entity.Identity().Get()
	if ok {
		if _, exists := t.rows[id]; !exists {
			return zero, notFound(r.table.Name)
		}
	} else {
		t.nextID++
		id = t.nextID
		entity = entity.WithIdentity(model.NewID(id))
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", r.table.Name, err)
	}
	t.rows[id] = memoryRow{data: data, keys: keys}

	return decodeRow[T](t.rows[id])
}

// Delete refuses, like ON DELETE RESTRICT, while another row references id.
func (r *MemoryRepository[T]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t := r.store.table(r.table.Name)
	if _, ok := t.rows[id]; !ok {
		return nil
	}

	for name, other := range r.store.tables {
		for _, ref := range other.references {
			if ref.Table != r.table.Name {
				continue
			}
			for _, row := range other.rows {
				if key, ok := row.keys[ref.Column]; ok && key == id {
					return sqlerr.StillReferenced(r.table.Name, name, ref.Column, ref.Constraint)
				}
			}
		}
	}

	delete(t.rows, id)
	return nil
}

func (r *MemoryRepository[T]) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.tables[r.table.Name].rows)), nil
}

func decodeRow[T any](row memoryRow) (T, error) {
	var entity T
	err := json.Unmarshal(row.data, &entity)
	return entity, err
}
