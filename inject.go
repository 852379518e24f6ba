package injector

import (
	"context"
)

// Dependencies contains resolved dependencies by name.
//
// It is built by [Inject] for each call.
type Dependencies map[string]any

// Names returns the sorted names of the dependencies.
func (deps Dependencies) Names() []string {
	return sortedKeys(deps)
}

// Lookup returns a typed dependency from [Dependencies].
//
// If the name is missing, it returns a [*DependencyError] wrapping [ErrNotRegistered].
// If the instance is not of type S, it returns a [*DependencyError] wrapping a [*TypeError].
func Lookup[S any](deps Dependencies, name string) (S, error) {
	v, ok := deps[name]
	if !ok {
		var zero S
		return zero, wrapDependencyError(ErrNotRegistered, name)
	}
	return convert[S](v, name)
}

// MustLookup calls [Lookup] with [Must].
func MustLookup[S any](deps Dependencies, name string) S {
	return Must(Lookup[S](deps, name))
}

// Inject resolves the named dependencies from a [Container] and calls the target with them.
//
// The names are resolved in order.
// Passing them one by one or as a slice with "names..." is the same.
//
// If a dependency can't be resolved, its error is returned unchanged and the target is not called.
// Otherwise, the target is called once with exactly the requested dependencies, and its result is returned.
//
// It panics if the target is nil, before anything is resolved.
func Inject[R any](ctx context.Context, ctn *Container, target func(deps Dependencies) R, names ...string) (R, error) {
	if target == nil {
		panic("injector: nil target")
	}
	deps := make(Dependencies, len(names))
	for _, name := range names {
		v, err := ctn.Resolve(ctx, name)
		if err != nil {
			var zero R
			return zero, err
		}
		deps[name] = v
	}
	return target(deps), nil
}

// MustInject calls [Inject] with [Must].
func MustInject[R any](ctx context.Context, ctn *Container, target func(deps Dependencies) R, names ...string) R {
	return Must(Inject(ctx, ctn, target, names...))
}
