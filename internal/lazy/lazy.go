// Package lazy provides a load-once cell that memoizes successful loads only.
//
// Unlike sync.Once, a failed load leaves the cell empty so the next Get
// retries. Once a value is stored it never changes.
package lazy

import "sync"

// Cell holds a lazily loaded value of type T.
// The zero value is an empty cell ready for use.
type Cell[T any] struct {
	mu     sync.Mutex
	loaded bool
	value  T
}

// Get returns the stored value, calling load if the cell is empty.
// On error the cell stays empty and the error is returned as is.
// Concurrent callers serialize on the load, so load runs at most once
// per successful population.
func (c *Cell[T]) Get(load func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.value, nil
	}

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = v
	c.loaded = true
	return v, nil
}

// Loaded reports whether a value has been stored.
func (c *Cell[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
