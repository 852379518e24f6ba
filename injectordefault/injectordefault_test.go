package injectordefault

import (
	"context"
	"fmt"
	"testing"

	"github.com/pierrre/assert"
	"github.com/pierrre/injector"
)

func Example() {
	ctx := context.Background()
	defer Teardown(ctx) //nolint:errcheck // Example.
	MustRegister("depA", func() string {
		fmt.Println("build")
		return "Bob"
	})
	s := MustInject(ctx, func(deps injector.Dependencies) string {
		return "Hello " + injector.MustLookup[string](deps, "depA")
	}, "depA")
	fmt.Println(s)
	fmt.Println(MustResolve[string](ctx, "depA"))
	// Output:
	// build
	// Hello Bob
	// Bob
}

func Test(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		assert.NoError(t, Teardown(context.Background()))
	})
	factoryCallCount := 0
	err := Register("a", func() string {
		factoryCallCount++
		return "test"
	})
	assert.NoError(t, err)
	for range 5 {
		s, err := Resolve[string](ctx, "a")
		assert.NoError(t, err)
		assert.Equal(t, s, "test")
	}
	assert.Equal(t, factoryCallCount, 1)
	assert.Equal(t, Container(), Container())
}

func TestTeardown(t *testing.T) {
	ctx := t.Context()
	MustRegister("a", func() string {
		return "test"
	})
	ctn := Container()
	err := Teardown(ctx)
	assert.NoError(t, err)
	assert.Equal(t, Container() == ctn, false)
	_, err = Resolve[string](ctx, "a")
	assert.ErrorIs(t, err, injector.ErrNotRegistered)
	err = Teardown(ctx)
	assert.NoError(t, err)
	err = Teardown(ctx)
	assert.NoError(t, err)
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		Set(nil)
	})
	ctn := injector.New()
	injector.MustRegister(ctn, "a", func() string {
		return "test"
	})
	Set(ctn)
	assert.Equal(t, Container(), ctn)
	s := MustResolve[string](ctx, "a")
	assert.Equal(t, s, "test")
	Set(nil)
	assert.Equal(t, Container() == ctn, false)
}

func TestRegisterErrorAlreadyRegistered(t *testing.T) {
	t.Cleanup(func() {
		assert.NoError(t, Teardown(context.Background()))
	})
	MustRegister("a", func() string {
		return ""
	})
	err := Register("a", func() string {
		return ""
	})
	assert.ErrorIs(t, err, injector.ErrAlreadyRegistered)
	assert.Panics(t, func() {
		MustRegister("a", func() string {
			return ""
		})
	})
}

func TestMustResolvePanic(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		assert.NoError(t, Teardown(context.Background()))
	})
	assert.Panics(t, func() {
		MustResolve[string](ctx, "a")
	})
}

func TestInject(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		assert.NoError(t, Teardown(context.Background()))
	})
	MustRegister("a", func() string {
		return "A"
	})
	deps, err := Inject(ctx, func(deps injector.Dependencies) injector.Dependencies {
		return deps
	}, "a")
	assert.NoError(t, err)
	assert.DeepEqual(t, deps, injector.Dependencies{"a": "A"})
	_, err = Inject(ctx, func(deps injector.Dependencies) injector.Dependencies {
		return deps
	}, "b")
	assert.ErrorIs(t, err, injector.ErrNotRegistered)
}

func TestReset(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		assert.NoError(t, Teardown(context.Background()))
	})
	MustRegister("a", func() string {
		return "old"
	})
	MustRegister("b", func() string {
		return "b"
	})
	assert.Equal(t, MustResolve[string](ctx, "a"), "old")
	Reset("a")
	MustRegister("a", func() string {
		return "new"
	})
	assert.Equal(t, MustResolve[string](ctx, "a"), "new")
	ResetAll()
	assert.DeepEqual(t, Container().Names(), []string(nil))
}
