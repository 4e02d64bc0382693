package services

import "sync"

// Lazy loads a heavy shared dependency (tagger, embedding client) on first
// use. Safe for concurrent use; a failed load is remembered and returned to
// every caller.
type Lazy[T any] struct {
	once  sync.Once
	load  func() (T, error)
	value T
	err   error
}

func NewLazy[T any](load func() (T, error)) *Lazy[T] {
	return &Lazy[T]{load: load}
}

func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.load()
	})
	return l.value, l.err
}
