// Package arena provides bump-style allocation scopes for deep-copied
// constant values. An arena hands out backing storage and releases all of it
// in one step; values copied into an arena must not be used after Release.
package arena

import (
	"errors"
	"unsafe"
)

// ErrOutOfMemory is returned when an allocation would exceed the arena's
// byte budget. It is the only failure mode of deep copy and must propagate
// to the caller unchanged.
var ErrOutOfMemory = errors.New("arena: out of memory")

// Arena tracks allocations charged against an optional byte budget.
// A zero budget means unlimited.
type Arena struct {
	budget   int
	used     int
	released bool
}

// New constructs an arena without a byte budget.
func New() *Arena {
	return &Arena{}
}

// NewWithBudget constructs an arena that fails allocations once the given
// number of bytes has been handed out.
func NewWithBudget(bytes int) *Arena {
	return &Arena{budget: bytes}
}

// Used returns the number of bytes charged so far.
func (a *Arena) Used() int {
	return a.used
}

// Released reports whether the arena has been torn down.
func (a *Arena) Released() bool {
	return a.released
}

// Release tears down the arena. Everything allocated from it is invalid
// afterwards; allocating from a released arena panics.
func (a *Arena) Release() {
	a.released = true
	a.used = 0
}

func (a *Arena) reserve(bytes int) error {
	if a.released {
		panic("arena: allocation after Release")
	}
	if a.budget > 0 && a.used+bytes > a.budget {
		return ErrOutOfMemory
	}
	a.used += bytes
	return nil
}

// Make allocates a slice of n elements charged to the arena.
func Make[T any](a *Arena, n int) ([]T, error) {
	var zero T
	if err := a.reserve(n * int(unsafe.Sizeof(zero))); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// Bytes allocates a copy of b charged to the arena.
func (a *Arena) Bytes(b []byte) ([]byte, error) {
	if err := a.reserve(len(b)); err != nil {
		return nil, err
	}
	cpy := make([]byte, len(b))
	copy(cpy, b)
	return cpy, nil
}
