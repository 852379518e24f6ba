package injector

import (
	"cmp"
	"context"
	"io"
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Closer is implemented by dependencies that must be closed by [Container.Close].
//
// Dependencies implementing [io.Closer] are closed too.
type Closer interface {
	Close(ctx context.Context) error
}

type entry struct {
	mu          *mutex
	name        string
	typ         reflect.Type
	factory     Factory[any]
	initialized atomic.Bool
	instance    any
}

func newEntry(name string, typ reflect.Type, f Factory[any]) *entry {
	return &entry{
		mu:      newMutex(),
		name:    name,
		typ:     typ,
		factory: f,
	}
}

func (e *entry) get(ctx context.Context, logger *zerolog.Logger) (any, error) {
	err := e.mu.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer e.mu.unlock()
	err = e.ensureInitialized(logger)
	if err != nil {
		return nil, err
	}
	return e.instance, nil
}

func (e *entry) ensureInitialized(logger *zerolog.Logger) error {
	if e.initialized.Load() {
		return nil
	}
	start := time.Now()
	v, err := e.build()
	if err != nil {
		logger.Error().Err(err).Str("dependency", e.name).Msg("dependency factory failed")
		return err
	}
	e.instance = v
	e.initialized.Store(true)
	logger.Debug().Str("dependency", e.name).Dur("duration", time.Since(start)).Msg("dependency initialized")
	return nil
}

func (e *entry) build() (v any, err error) {
	if e.factory == nil {
		return nil, ErrNotRegistered
	}
	defer recoverPanicToError(&err)
	return e.factory(), nil
}

func (e *entry) close(ctx context.Context, logger *zerolog.Logger) (err error) {
	err = e.mu.lock(ctx)
	if err != nil {
		return err
	}
	defer e.mu.unlock()
	if !e.initialized.Load() {
		return nil
	}
	defer recoverPanicToError(&err)
	// The slot is cleared even if Close panics.
	defer func() {
		e.initialized.Store(false)
		e.instance = nil
	}()
	switch cl := e.instance.(type) {
	case Closer:
		err = cl.Close(ctx)
	case io.Closer:
		err = cl.Close()
	}
	logger.Debug().Str("dependency", e.name).Msg("dependency closed")
	return err
}

type entryMap struct {
	mu sync.Mutex
	m  map[string]*entry
}

func (m *entryMap) set(name string, e *entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.m == nil {
		m.m = make(map[string]*entry)
	}
	_, ok := m.m[name]
	if ok {
		return ErrAlreadyRegistered
	}
	m.m[name] = e
	return nil
}

func (m *entryMap) get(name string) (*entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.m[name]
	if !ok {
		return nil, ErrNotRegistered
	}
	return e, nil
}

func (m *entryMap) delete(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.m[name]
	delete(m.m, name)
	return ok
}

func (m *entryMap) clear() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.m)
	m.m = nil
	return n
}

func (m *entryMap) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeys(m.m)
}

// getValues returns the entries sorted by name.
func (m *entryMap) getValues() []*entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	es := slices.Collect(maps.Values(m.m))
	slices.SortFunc(es, func(a, b *entry) int {
		return cmp.Compare(a.name, b.name)
	})
	return es
}
