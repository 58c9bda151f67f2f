package glint_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	glint "github.com/glint-dev/glint-sdk"
	"github.com/glint-dev/glint-sdk/domain/entities"
	domerrors "github.com/glint-dev/glint-sdk/domain/errors"
	"github.com/glint-dev/glint-sdk/domain/ports"
	"github.com/glint-dev/glint-sdk/infrastructure/loopback"
	"github.com/glint-dev/glint-sdk/infrastructure/memarchive"
	glintlog "github.com/glint-dev/glint-sdk/log"
)

func testBundle(t *testing.T) (*memarchive.Archive, string) {
	t.Helper()

	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "ui"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(home, "ui", ports.WindowingInitScript),
		[]byte("# windowing bootstrap\n"), 0o644))

	m := &entities.Manifest{
		BaseLibrary:      "base.lib",
		WindowingLibrary: "window.lib",
		SupportDir:       "ui",
		Script:           "splash.script",
	}
	a := memarchive.New()
	require.NoError(t, a.AddSplash(m, []byte("show window\n"), []byte{0x89, 0x50}))
	return a, home
}

func quiet() glint.Option {
	return glint.WithLogger(slog.New(glintlog.NewHandler(io.Discard)))
}

func TestSetupStartFinalize(t *testing.T) {
	archive, home := testBundle(t)
	rt := loopback.NewRuntime()

	session, err := glint.Setup(archive, loopback.NewLoader(rt),
		glint.WithApplicationHome(home), quiet())
	require.NoError(t, err)

	require.NoError(t, session.Start())
	assert.Equal(t, 1, rt.OpenWindowCount())

	session.UpdateProgress("loading payload.bin")

	session.Finalize()
	assert.True(t, rt.Finalized())
	session.Release()
}

func TestSetupWithoutSplashRecord(t *testing.T) {
	archive := memarchive.New()
	rt := loopback.NewRuntime()

	session, err := glint.Setup(archive, loopback.NewLoader(rt), quiet())
	assert.Nil(t, session)
	assert.True(t, domerrors.IsAbsent(err))
}

func TestSetupLibraryLoadFailure(t *testing.T) {
	archive, home := testBundle(t)
	rt := loopback.NewRuntime()

	// Strict paths make the loader fail on the nonexistent library
	// files in the temp home.
	_, err := glint.Setup(archive,
		loopback.NewLoader(rt, loopback.WithStrictPaths()),
		glint.WithApplicationHome(home), quiet())

	var serr *domerrors.SetupError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "libraries", serr.Stage)
}
