package host

import (
	"log/slog"
	"os"
	"path/filepath"
)

// config holds session configuration assembled from Options.
type config struct {
	appHome    string
	executable string
	bundled    bool
	logger     *slog.Logger
}

// Option defines a functional option for configuring a Session.
type Option func(*config)

// WithApplicationHome sets the application's root directory, the base
// against which all splash paths are resolved. Defaults to the
// directory of the running executable.
func WithApplicationHome(dir string) Option {
	return func(c *config) {
		c.appHome = dir
	}
}

// WithBundledLayout selects bundled mode: runtime dependencies are
// extracted into a subdirectory (named by the resource header) under
// the application home, instead of already being laid out there.
func WithBundledLayout() Option {
	return func(c *config) {
		c.bundled = true
	}
}

// WithExecutable sets the host executable path handed to the runtime
// before any other runtime call.
func WithExecutable(path string) Option {
	return func(c *config) {
		c.executable = path
	}
}

// WithLogger sets the logger for session diagnostics. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func defaultConfig() config {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	return config{
		appHome:    filepath.Dir(exe),
		executable: exe,
		logger:     slog.Default(),
	}
}
