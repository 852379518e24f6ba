// Package injector provides a dependency injection container.
//
// Dependencies are registered by name with a [Factory].
// They are built lazily on first resolution, then cached: each [Container] holds one instance per name.
//
// The name is a plain string, so the compiler can't check that a dependency exists or has the expected type.
// The typed functions ([Register], [Resolve], [Lookup]) check the type at runtime and return a [*TypeError] if it doesn't match.
package injector

import (
	"context"
	"maps"
	"reflect"
	"slices"
)

// Factory builds a dependency instance.
//
// It is called at most once per registration, on first resolution.
type Factory[S any] func() S

// Register registers a typed dependency [Factory] in a [Container].
//
// See [Container.Register].
func Register[S any](ctn *Container, name string, f Factory[S]) error {
	var fa Factory[any]
	if f != nil {
		fa = func() any {
			return f()
		}
	}
	return ctn.register(name, reflect.TypeFor[S](), fa)
}

// MustRegister calls [Register] and panics if there is an error.
func MustRegister[S any](ctn *Container, name string, f Factory[S]) {
	err := Register(ctn, name, f)
	if err != nil {
		panic(err)
	}
}

// Resolve returns a typed dependency from a [Container].
//
// If the instance is not of type S, it returns a [*DependencyError] wrapping a [*TypeError].
//
// See [Container.Resolve], including how errors of nested resolutions are reported.
func Resolve[S any](ctx context.Context, ctn *Container, name string) (S, error) {
	v, err := ctn.Resolve(ctx, name)
	if err != nil {
		var zero S
		return zero, err
	}
	return convert[S](v, name)
}

// MustResolve calls [Resolve] with [Must].
func MustResolve[S any](ctx context.Context, ctn *Container, name string) S {
	return Must(Resolve[S](ctx, ctn, name))
}

// ResolveAll returns all dependencies registered with type S by [Register].
//
// The key of the map is the name of the dependency.
func ResolveAll[S any](ctx context.Context, ctn *Container) (map[string]S, error) {
	typ := reflect.TypeFor[S]()
	var names []string
	for _, e := range ctn.entries.getValues() {
		if e.typ == typ {
			names = append(names, e.name)
		}
	}
	var ss map[string]S
	if len(names) > 0 {
		ss = make(map[string]S, len(names))
	}
	for _, name := range names {
		s, err := Resolve[S](ctx, ctn, name)
		if err != nil {
			return nil, err
		}
		ss[name] = s
	}
	return ss, nil
}

func convert[S any](v any, name string) (S, error) {
	s, ok := v.(S)
	if ok {
		return s, nil
	}
	if v == nil && reflect.TypeFor[S]().Kind() == reflect.Interface {
		return s, nil
	}
	return s, wrapDependencyError(newTypeError[S](v), name)
}

// Must is a helper to call a function and panics if it returns an error.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// sortedKeys returns the sorted keys of a map.
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
