package entities

// Resources are the decoded splash payloads, each exclusively owned by
// the session that loaded them. The image buffer is handed off to the
// GUI runtime during startup and nilled out immediately after; a nil
// Image on a started session means ownership has transferred.
type Resources struct {
	// Script is the presentation script text.
	Script []byte

	// Image is the splash image, opaque to the session.
	Image []byte

	// Requirements is the raw NUL-delimited list of archive entry
	// names required on disk in bundled mode.
	Requirements []byte
}

// Paths are the resolved filesystem locations of the runtime's files.
// Immutable once computed.
type Paths struct {
	// DependenciesDir holds the runtime's shared libraries and
	// support scripts: the extraction subdirectory in bundled
	// mode, the application home itself in laid-out mode.
	DependenciesDir string

	// BaseLibrary and WindowingLibrary are the absolute paths of
	// the runtime's two shared libraries.
	BaseLibrary      string
	WindowingLibrary string

	// SupportDir holds the runtime's support scripts.
	SupportDir string
}
