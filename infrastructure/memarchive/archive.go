// Package memarchive provides an in-memory bundle archive adapter,
// used by build tooling and tests in place of a real on-disk bundle.
package memarchive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glint-dev/glint-sdk/domain/ports"
)

// Archive is an ordered in-memory table of contents. It implements
// ports.Archive.
type Archive struct {
	entries []record
}

type record struct {
	name string
	data []byte
	kind byte
}

// New creates an empty Archive.
func New() *Archive {
	return &Archive{}
}

// Add appends an entry. The data is copied.
func (a *Archive) Add(name string, kind byte, data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)
	a.entries = append(a.entries, record{name: name, kind: kind, data: buf})
}

// FindByKind returns the first entry tagged with kind.
func (a *Archive) FindByKind(kind byte) (ports.ArchiveEntry, bool) {
	for _, r := range a.entries {
		if r.kind == kind {
			return ports.ArchiveEntry{Name: r.name, Kind: r.kind}, true
		}
	}
	return ports.ArchiveEntry{}, false
}

// FindByName returns the entry with the given name.
func (a *Archive) FindByName(name string) (ports.ArchiveEntry, bool) {
	for _, r := range a.entries {
		if r.name == name {
			return ports.ArchiveEntry{Name: r.name, Kind: r.kind}, true
		}
	}
	return ports.ArchiveEntry{}, false
}

// ExtractToMemory returns a copy of the entry's data.
func (a *Archive) ExtractToMemory(e ports.ArchiveEntry) ([]byte, error) {
	r, ok := a.lookup(e)
	if !ok {
		return nil, fmt.Errorf("archive entry %q not found", e.Name)
	}
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out, nil
}

// ExtractToDir writes the entry's data into dir under the entry name.
// Subdirectories in the entry name are created as needed.
func (a *Archive) ExtractToDir(e ports.ArchiveEntry, dir string) error {
	r, ok := a.lookup(e)
	if !ok {
		return fmt.Errorf("archive entry %q not found", e.Name)
	}
	target := filepath.Join(dir, filepath.FromSlash(r.name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", r.name, err)
	}
	if err := os.WriteFile(target, r.data, 0o644); err != nil {
		return fmt.Errorf("failed to extract %q: %w", r.name, err)
	}
	return nil
}

func (a *Archive) lookup(e ports.ArchiveEntry) (record, bool) {
	for _, r := range a.entries {
		if r.name == e.Name && r.kind == e.Kind {
			return r, true
		}
	}
	return record{}, false
}
