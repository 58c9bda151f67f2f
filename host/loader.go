package host

import (
	"fmt"
	"os"
	"path/filepath"

	domerrors "github.com/glint-dev/glint-sdk/domain/errors"
	"github.com/glint-dev/glint-sdk/domain/ports"
	"github.com/glint-dev/glint-sdk/wireformat"
)

// maxPathLen is the longest path the session will hand to the runtime
// or the filesystem. Joining a header name onto the application home
// must stay below it.
const maxPathLen = 4096

// NewSession locates the splash record in the archive, decodes it, and
// builds a session with owned buffers and resolved paths.
//
// A missing splash record is reported as errors.ErrAbsent: the splash
// feature is optional and absence is not a failure. All other errors
// are fatal to the splash feature only.
func NewSession(archive ports.Archive, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	entry, ok := archive.FindByKind(ports.EntryKindSplash)
	if !ok {
		return nil, domerrors.ErrAbsent
	}

	blob, err := archive.ExtractToMemory(entry)
	if err != nil {
		return nil, &domerrors.ResourceError{Stage: "decode", Err: err}
	}

	hdr, err := wireformat.DecodeHeader(blob)
	if err != nil {
		return nil, &domerrors.ResourceError{Stage: "decode", Err: err}
	}
	cfg.logger.Debug("found splash screen resources",
		"base_lib", hdr.BaseLibName, "windowing_lib", hdr.WindowingLibName)

	s := newSession(cfg)

	if err := s.resolvePaths(hdr); err != nil {
		return nil, err
	}
	if err := s.copyBuffers(blob, hdr); err != nil {
		return nil, err
	}
	// The raw blob is dead once the regions are copied out.

	return s, nil
}

// resolvePaths joins the header's names onto the application home. In
// bundled mode dependencies live in a subdirectory named by the
// header; in laid-out mode they sit in the application home itself.
func (s *Session) resolvePaths(hdr *wireformat.DataHeader) error {
	var err error
	if s.cfg.bundled {
		s.paths.DependenciesDir, err = joinChecked(s.cfg.appHome, hdr.RunDirName)
		if err != nil {
			return &domerrors.ResourceError{Stage: "path", Err: err}
		}
	} else {
		s.paths.DependenciesDir = s.cfg.appHome
	}

	s.paths.BaseLibrary, err = joinChecked(s.paths.DependenciesDir, hdr.BaseLibName)
	if err != nil {
		return &domerrors.ResourceError{Stage: "path", Err: err}
	}
	s.paths.WindowingLibrary, err = joinChecked(s.paths.DependenciesDir, hdr.WindowingLibName)
	if err != nil {
		return &domerrors.ResourceError{Stage: "path", Err: err}
	}

	if hdr.SupportDirName == "" {
		s.paths.SupportDir = s.paths.DependenciesDir
		return nil
	}
	s.paths.SupportDir, err = joinChecked(s.paths.DependenciesDir, hdr.SupportDirName)
	if err != nil {
		return &domerrors.ResourceError{Stage: "path", Err: err}
	}
	return nil
}

// copyBuffers copies the three payload regions into buffers owned by
// the session.
func (s *Session) copyBuffers(blob []byte, hdr *wireformat.DataHeader) error {
	var err error
	if s.resources.Script, err = wireformat.Region(blob, hdr.ScriptOffset, hdr.ScriptLen); err != nil {
		return &domerrors.ResourceError{Stage: "decode", Err: err}
	}
	if s.resources.Image, err = wireformat.Region(blob, hdr.ImageOffset, hdr.ImageLen); err != nil {
		return &domerrors.ResourceError{Stage: "decode", Err: err}
	}
	if s.resources.Requirements, err = wireformat.Region(blob, hdr.RequirementsOffset, hdr.RequirementsLen); err != nil {
		return &domerrors.ResourceError{Stage: "decode", Err: err}
	}
	return nil
}

// ExtractRequirements extracts every entry named in the requirements
// list into the dependencies directory. Only bundled mode needs this;
// in laid-out mode the files are already on disk and the call is a
// no-op.
func (s *Session) ExtractRequirements(archive ports.Archive) error {
	if !s.cfg.bundled {
		return nil
	}

	if err := os.MkdirAll(s.paths.DependenciesDir, 0o755); err != nil {
		return &domerrors.ResourceError{
			Stage: "extract",
			Err:   fmt.Errorf("could not create splash dependencies directory: %w", err),
		}
	}

	err := wireformat.EachRequirement(s.resources.Requirements, func(name string) error {
		entry, ok := archive.FindByName(name)
		if !ok {
			return fmt.Errorf("could not find requirement %q in archive", name)
		}
		if err := archive.ExtractToDir(entry, s.paths.DependenciesDir); err != nil {
			return fmt.Errorf("could not extract requirement %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return &domerrors.ResourceError{Stage: "extract", Err: err}
	}
	return nil
}

// LoadLibraries opens the runtime's two shared libraries and binds
// their symbols. Only after it succeeds is the session startable; the
// fully-loaded flag also decides which teardown path Finalize takes.
func (s *Session) LoadLibraries(loader ports.LibraryLoader) error {
	s.fullyLoaded = false

	s.log.Debug("loading runtime libraries",
		"base", s.paths.BaseLibrary, "windowing", s.paths.WindowingLibrary)

	var err error
	if s.baseLib, err = loader.Open(s.paths.BaseLibrary); err != nil {
		return &domerrors.SetupError{Stage: "libraries", Err: err}
	}
	if s.windowingLib, err = loader.Open(s.paths.WindowingLibrary); err != nil {
		return &domerrors.SetupError{Stage: "libraries", Err: err}
	}

	rt, err := loader.Bind(s.baseLib, s.windowingLib)
	if err != nil {
		return &domerrors.SetupError{Stage: "libraries", Err: err}
	}

	s.rt = rt
	s.fullyLoaded = true
	return nil
}

func joinChecked(dir, name string) (string, error) {
	p := filepath.Join(dir, name)
	if len(p) >= maxPathLen {
		return "", fmt.Errorf("path %q exceeds maximum path length %d", p, maxPathLen)
	}
	return p, nil
}
