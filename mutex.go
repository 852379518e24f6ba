package injector

import (
	"context"
)

// mutex is a mutex that can be acquired with a context.
type mutex struct {
	ch chan struct{}
}

func newMutex() *mutex {
	return &mutex{
		ch: make(chan struct{}, 1),
	}
}

func (m *mutex) lock(ctx context.Context) error {
	select {
	case m.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck // We don't need to wrap.
	}
}

func (m *mutex) unlock() {
	<-m.ch
}
