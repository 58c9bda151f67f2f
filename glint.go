package glint

import (
	"github.com/glint-dev/glint-sdk/domain/ports"
	"github.com/glint-dev/glint-sdk/host"
)

// Session is the per-process splash session. At most one is live at a
// time.
type Session = host.Session

// Option configures a session.
type Option = host.Option

// Re-exported session options.
var (
	WithApplicationHome = host.WithApplicationHome
	WithBundledLayout   = host.WithBundledLayout
	WithExecutable      = host.WithExecutable
	WithLogger          = host.WithLogger
)

// Setup runs the whole load sequence: locate and decode the splash
// record in the archive, extract its on-disk requirements (bundled
// mode only), and load the runtime's shared libraries. The returned
// session is ready to Start.
//
// If the archive carries no splash record, Setup returns
// errors.ErrAbsent and the caller should continue without a splash
// screen. On a library-load failure the partially loaded session is
// torn down before returning.
func Setup(archive ports.Archive, loader ports.LibraryLoader, opts ...Option) (*Session, error) {
	s, err := host.NewSession(archive, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.ExtractRequirements(archive); err != nil {
		return nil, err
	}
	if err := s.LoadLibraries(loader); err != nil {
		s.Finalize()
		return nil, err
	}
	return s, nil
}
