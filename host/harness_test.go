package host

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-dev/glint-sdk/domain/entities"
	"github.com/glint-dev/glint-sdk/domain/ports"
	"github.com/glint-dev/glint-sdk/infrastructure/loopback"
	"github.com/glint-dev/glint-sdk/infrastructure/memarchive"
	glintlog "github.com/glint-dev/glint-sdk/log"
)

func testManifest() *entities.Manifest {
	return &entities.Manifest{
		BaseLibrary:      "base.lib",
		WindowingLibrary: "window.lib",
		SupportDir:       "ui",
		Script:           "splash.script",
	}
}

// testArchive builds an archive holding one splash record.
func testArchive(t *testing.T, m *entities.Manifest, script string, image []byte) *memarchive.Archive {
	t.Helper()
	a := memarchive.New()
	require.NoError(t, a.AddSplash(m, []byte(script), image))
	return a
}

// testAppHome lays out an application home directory with the
// windowing init script the find-library override resolves.
func testAppHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ui"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "ui", ports.WindowingInitScript),
		[]byte("# windowing bootstrap\n"), 0o644))
	return dir
}

func quietLogger() *slog.Logger {
	return slog.New(glintlog.NewHandler(io.Discard))
}

// newLoadedSession builds a session in laid-out mode, fully loaded
// against rt and ready to start.
func newLoadedSession(t *testing.T, rt *loopback.Runtime, script string, image []byte, opts ...Option) *Session {
	t.Helper()
	a := testArchive(t, testManifest(), script, image)
	opts = append([]Option{
		WithApplicationHome(testAppHome(t)),
		WithLogger(quietLogger()),
	}, opts...)
	s, err := NewSession(a, opts...)
	require.NoError(t, err)
	require.NoError(t, s.LoadLibraries(loopback.NewLoader(rt)))
	return s
}

// countingArchive records every lookup-by-name, in call order.
type countingArchive struct {
	ports.Archive
	nameLookups []string
}

func (c *countingArchive) FindByName(name string) (ports.ArchiveEntry, bool) {
	c.nameLookups = append(c.nameLookups, name)
	return c.Archive.FindByName(name)
}
