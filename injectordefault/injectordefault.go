// Package injectordefault provides a process-wide default [injector.Container].
//
// The default container is created on first use.
// Tests should call [Teardown] to start from an empty container.
package injectordefault

import (
	"context"
	"sync"

	"github.com/pierrre/injector"
)

var (
	mu  sync.Mutex
	ctn *injector.Container
)

// Container returns the default [injector.Container].
//
// It is created on first call, and after [Teardown].
func Container() *injector.Container {
	mu.Lock()
	defer mu.Unlock()
	if ctn == nil {
		ctn = injector.New()
	}
	return ctn
}

// Set replaces the default [injector.Container].
//
// If c is nil, a new container is created on next call to [Container].
// The previous container is not closed.
func Set(c *injector.Container) {
	mu.Lock()
	defer mu.Unlock()
	ctn = c
}

// Teardown closes and drops the default [injector.Container].
//
// The next call to [Container] returns a new empty container.
func Teardown(ctx context.Context) error {
	mu.Lock()
	c := ctn
	ctn = nil
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close(ctx) //nolint:wrapcheck // It's from the same module.
}

// Register calls [injector.Register] with the default [injector.Container].
func Register[S any](name string, f injector.Factory[S]) error {
	return injector.Register(Container(), name, f)
}

// MustRegister calls [injector.MustRegister] with the default [injector.Container].
func MustRegister[S any](name string, f injector.Factory[S]) {
	injector.MustRegister(Container(), name, f)
}

// Resolve calls [injector.Resolve] with the default [injector.Container].
func Resolve[S any](ctx context.Context, name string) (S, error) {
	return injector.Resolve[S](ctx, Container(), name)
}

// MustResolve calls [injector.MustResolve] with the default [injector.Container].
func MustResolve[S any](ctx context.Context, name string) S {
	return injector.MustResolve[S](ctx, Container(), name)
}

// Inject calls [injector.Inject] with the default [injector.Container].
func Inject[R any](ctx context.Context, target func(deps injector.Dependencies) R, names ...string) (R, error) {
	return injector.Inject(ctx, Container(), target, names...)
}

// MustInject calls [injector.MustInject] with the default [injector.Container].
func MustInject[R any](ctx context.Context, target func(deps injector.Dependencies) R, names ...string) R {
	return injector.MustInject(ctx, Container(), target, names...)
}

// Reset calls [injector.Container.Reset] on the default [injector.Container].
func Reset(name string) {
	Container().Reset(name)
}

// ResetAll calls [injector.Container.ResetAll] on the default [injector.Container].
func ResetAll() {
	Container().ResetAll()
}
