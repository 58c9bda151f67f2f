package loopback

import (
	"fmt"
	"os"
	"sync"

	"github.com/glint-dev/glint-sdk/domain/ports"
)

// Loader implements ports.LibraryLoader against a loopback Runtime.
// Opening a library records its path; binding hands out the runtime.
type Loader struct {
	rt     *Runtime
	strict bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStrictPaths makes Open fail when the library file does not
// exist, matching a real dynamic loader.
func WithStrictPaths() LoaderOption {
	return func(l *Loader) {
		l.strict = true
	}
}

// NewLoader creates a Loader that binds libraries to rt.
func NewLoader(rt *Runtime, opts ...LoaderOption) *Loader {
	l := &Loader{rt: rt}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open loads the shared library at path.
func (l *Loader) Open(path string) (ports.Library, error) {
	if l.strict {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to load shared library %q: %w", path, err)
		}
	}
	return &library{path: path}, nil
}

// Bind resolves symbols from both libraries and returns the runtime.
func (l *Loader) Bind(base, windowing ports.Library) (ports.GUIRuntime, error) {
	if base == nil || windowing == nil {
		return nil, fmt.Errorf("both shared libraries are required for symbol binding")
	}
	return l.rt, nil
}

type library struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// Close unloads the library. Idempotent.
func (h *library) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}
