package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when id is absent or owned by another user.
var ErrNotFound = errors.New("record not found")

// Table is a user-scoped in-memory table used by the dev/test repos.
type Table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	owner map[string]string
}

// NewTable constructs an empty Table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		rows:  make(map[string]T),
		owner: make(map[string]string),
	}
}

// Put inserts or replaces the row id owned by userID.
func (t *Table[T]) Put(ctx context.Context, userID, id string, row T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if owner, ok := t.owner[id]; ok && owner != userID {
		return ErrNotFound
	}
	t.rows[id] = row
	t.owner[id] = userID
	return nil
}

// Replace overwrites an existing row, failing when it is absent.
func (t *Table[T]) Replace(ctx context.Context, userID, id string, row T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if owner, ok := t.owner[id]; !ok || owner != userID {
		return ErrNotFound
	}
	t.rows[id] = row
	return nil
}

// Get returns the row id if userID owns it.
func (t *Table[T]) Get(ctx context.Context, userID, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if owner, ok := t.owner[id]; !ok || owner != userID {
		return zero, ErrNotFound
	}
	return t.rows[id], nil
}

// Delete removes the row id if userID owns it.
func (t *Table[T]) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if owner, ok := t.owner[id]; !ok || owner != userID {
		return ErrNotFound
	}
	delete(t.rows, id)
	delete(t.owner, id)
	return nil
}

// List returns userID's rows matching keep, sorted by less, then windowed.
// A nil keep matches every row.
func (t *Table[T]) List(ctx context.Context, userID string, keep func(T) bool, less func(a, b T) bool, limit, offset int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := t.All(userID, keep)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []T{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// All returns every row of userID matching keep, in no particular order.
func (t *Table[T]) All(userID string, keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for id, row := range t.rows {
		if t.owner[id] != userID {
			continue
		}
		if keep != nil && !keep(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}
