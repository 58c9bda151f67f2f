package ports

// Entry kinds used by the bundle archive's table of contents.
const (
	// EntryKindSplash tags the single record holding splash
	// resources (header, script, image, requirements list).
	EntryKindSplash byte = 's'

	// EntryKindData tags ordinary data files, including splash
	// requirements referenced by name.
	EntryKindData byte = 'd'
)

// ArchiveEntry describes one record in the bundle archive.
type ArchiveEntry struct {
	Name string
	Kind byte
}

// Archive is the bundle archive collaborator. Implementations must be
// safe for sequential use from a single goroutine; the session never
// calls an Archive concurrently.
type Archive interface {
	// FindByKind returns the first entry tagged with kind.
	FindByKind(kind byte) (ArchiveEntry, bool)

	// FindByName returns the entry with the given name.
	FindByName(name string) (ArchiveEntry, bool)

	// ExtractToMemory decompresses the entry into a fresh buffer
	// owned by the caller.
	ExtractToMemory(e ArchiveEntry) ([]byte, error)

	// ExtractToDir writes the entry's content into dir under the
	// entry's own name.
	ExtractToDir(e ArchiveEntry, dir string) error
}
