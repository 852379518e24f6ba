package injector

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Container contains named dependencies.
//
// Each dependency is built lazily by its [Factory] on first resolution, and the instance is cached until the dependency is reset.
//
// The zero value is an empty container ready to use.
// A Container must not be copied after first use.
type Container struct {
	entries entryMap
	logger  atomic.Pointer[zerolog.Logger]
}

// New returns a new empty [Container].
func New() *Container {
	return new(Container)
}

// SetLogger sets the logger used by the [Container].
//
// By default, nothing is logged.
func (c *Container) SetLogger(l zerolog.Logger) {
	c.logger.Store(&l)
}

var nopLogger = zerolog.Nop()

func (c *Container) log() *zerolog.Logger {
	l := c.logger.Load()
	if l == nil {
		return &nopLogger
	}
	return l
}

// Register registers a dependency [Factory] in the [Container].
//
// The factory is not called.
// If the name is already registered, it returns a [*DependencyError] wrapping [ErrAlreadyRegistered], and the existing factory is kept.
//
// See [Register] for the typed version.
func (c *Container) Register(name string, f Factory[any]) error {
	return c.register(name, reflect.TypeFor[any](), f)
}

func (c *Container) register(name string, typ reflect.Type, f Factory[any]) (err error) {
	defer wrapReturnDependencyError(&err, name)
	e := newEntry(name, typ, f)
	err = c.entries.set(name, e)
	if err != nil {
		return err
	}
	c.log().Debug().Str("dependency", name).Msg("dependency registered")
	return nil
}

// Resolve returns a dependency from the [Container].
//
// The first call builds the instance with the factory and caches it.
// Following calls return the same instance.
// Concurrent calls for a dependency that is not built yet wait for the factory, which is called once.
//
// If the name is not registered, or was registered with a nil factory, it returns a [*DependencyError] wrapping [ErrNotRegistered].
// If the factory panics, it returns a [*DependencyError] wrapping [*PanicError], and nothing is cached.
// If the context is canceled while waiting for another call, it returns the context error.
//
// A factory that fails to resolve another dependency with a Must function panics.
// The returned error is then a chain: [errors.As] finds the outer [*DependencyError] (this name) first,
// and the failing dependency is the innermost one, reachable by unwrapping the [*PanicError].
// [errors.Is] with [ErrNotRegistered] matches anywhere in the chain.
//
// See [Resolve] for the typed version.
func (c *Container) Resolve(ctx context.Context, name string) (v any, err error) {
	defer wrapReturnDependencyError(&err, name)
	e, err := c.entries.get(name)
	if err != nil {
		return nil, err
	}
	return e.get(ctx, c.log())
}

// Inject calls [Inject] with [Container].
func (c *Container) Inject(ctx context.Context, target func(deps Dependencies) any, names ...string) (any, error) {
	return Inject(ctx, c, target, names...)
}

// Reset removes a dependency (factory and cached instance) from the [Container].
//
// The name can be registered again after this call.
// It does nothing if the name is not registered.
// The cached instance is not closed.
func (c *Container) Reset(name string) {
	ok := c.entries.delete(name)
	if ok {
		c.log().Debug().Str("dependency", name).Msg("dependency reset")
	}
}

// ResetAll removes all dependencies from the [Container].
//
// The cached instances are not closed.
func (c *Container) ResetAll() {
	n := c.entries.clear()
	c.log().Debug().Int("count", n).Msg("dependencies reset")
}

// Has returns true if the name is registered in the [Container].
func (c *Container) Has(name string) bool {
	_, err := c.entries.get(name)
	return err == nil
}

// Resolved returns true if the dependency is registered and its instance is cached.
func (c *Container) Resolved(name string) bool {
	e, err := c.entries.get(name)
	if err != nil {
		return false
	}
	return e.initialized.Load()
}

// Names returns the sorted names of the registered dependencies.
func (c *Container) Names() []string {
	return c.entries.names()
}

// Close closes the cached instances of the [Container], sorted by name.
//
// Instances implementing [Closer] or [io.Closer] are closed.
// The cached instances are removed, but the factories are kept.
// The instances must not be used after this call.
//
// The [Container] can be used again after being closed.
func (c *Container) Close(ctx context.Context) error {
	es := c.entries.getValues()
	var errs []error
	for _, e := range es {
		err := e.close(ctx, c.log())
		if err != nil {
			err = wrapDependencyError(err, e.name)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
