package injector

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/pierrre/go-libs/reflectutil"
)

var (
	// ErrNotRegistered is returned when a dependency is not registered.
	ErrNotRegistered = errors.New("not registered")
	// ErrAlreadyRegistered is returned when a dependency is already registered.
	ErrAlreadyRegistered = errors.New("already registered")
)

// DependencyError represents an error related to a dependency.
//
// Use [errors.Is] with [ErrNotRegistered] or [ErrAlreadyRegistered] to check the cause.
type DependencyError struct {
	error
	Name string
}

func (err *DependencyError) Unwrap() error {
	return err.error
}

func (err *DependencyError) Error() string {
	return fmt.Sprintf("dependency %q: %v", err.Name, err.error)
}

func wrapDependencyError(err error, name string) error {
	if err == nil {
		return nil
	}
	return &DependencyError{
		error: err,
		Name:  name,
	}
}

// wrapReturnDependencyError is deferred by functions with a named error result.
func wrapReturnDependencyError(perr *error, name string) { //nolint:gocritic // We need a pointer of error.
	err := *perr
	*perr = wrapDependencyError(err, name)
}

// TypeError is returned when a dependency is not of the requested type.
type TypeError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func newTypeError[S any](v any) *TypeError {
	return &TypeError{
		Expected: reflect.TypeFor[S](),
		Actual:   reflect.TypeOf(v),
	}
}

func (err *TypeError) Error() string {
	return fmt.Sprintf("type %s does not match %s", typeName(err.Actual), typeName(err.Expected))
}

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	return reflectutil.TypeFullName(typ)
}

// PanicError is returned when a factory or a [Closer] panics.
//
// Recovered is the value passed to panic.
// If it is an error, it is returned by Unwrap, so [errors.Is] and [errors.As] see through it.
type PanicError struct {
	Recovered any
}

func (err *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", err.Recovered)
}

func (err *PanicError) Unwrap() error {
	errw, _ := err.Recovered.(error)
	return errw
}

// recoverPanicToError must be deferred directly.
func recoverPanicToError(perr *error) { //nolint:gocritic // We need a pointer of error.
	r := recover()
	if r != nil {
		*perr = &PanicError{
			Recovered: r,
		}
	}
}
