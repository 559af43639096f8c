package memory

import (
	"sort"
	"sync"
)

// table is an id-keyed row store. Ids are assigned monotonically and never reused.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	id     func(*T) *int64
}

func newTable[T any](id func(*T) *int64) *table[T] {
	return &table[T]{rows: make(map[int64]T), id: id}
}

func (t *table[T]) insert(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	*t.id(row) = t.nextID
	t.rows[t.nextID] = *row
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) replace(row *T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := *t.id(row)
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = *row
	return true
}

// modify runs fn on the row under the write lock and stores the result unless
// fn fails. It reports false when the row is missing.
func (t *table[T]) modify(id int64, fn func(row *T) error) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return false, nil
	}
	if err := fn(&row); err != nil {
		return true, err
	}
	t.rows[id] = row
	return true, nil
}

func (t *table[T]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// filter returns matching rows ordered by id.
func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id, row := range t.rows {
		if match == nil || match(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}
