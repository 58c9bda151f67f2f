package host

import (
	"log/slog"
	"sync"

	"github.com/glint-dev/glint-sdk/domain/entities"
	"github.com/glint-dev/glint-sdk/domain/ports"
)

// Session is the shared state of one splash session. It is exclusively
// owned by the host until the runtime thread is spawned; from then on
// every mutation happens under the status lock, which the runtime
// thread holds for its entire life. At most one session is live per
// process.
type Session struct {
	resources entities.Resources
	paths     entities.Paths

	// Runtime handles. fullyLoaded is true iff both shared
	// libraries opened and every required symbol was bound; it
	// gates which teardown path is legal.
	rt           ports.GUIRuntime
	interp       ports.Interpreter
	threadID     ports.ThreadID
	baseLib      ports.Library
	windowingLib ports.Library
	fullyLoaded  bool

	// statusMu serializes all session mutation from the moment the
	// runtime thread is spawned until teardown completes. The host
	// acquires it before spawning and releases it right after; the
	// runtime thread takes it first thing and holds it until exit,
	// so relay procedures run with it held.
	statusMu sync.Mutex

	// Single-use startup handshake: the host waits on startCond
	// until the runtime thread's setup finishes, success or not.
	startMu   sync.Mutex
	startCond *sync.Cond
	startDone bool

	// Teardown handshake. exitRequested ends the dispatch loop;
	// exitDone lets the host's teardown wait out the runtime
	// thread. threadStarted is written by the host only, so the
	// host can decide whether there is a thread to wait for
	// without peeking at runtime-thread state.
	exitMu        sync.Mutex
	exitCond      *sync.Cond
	exitRequested bool
	exitDone      bool
	threadStarted bool

	// resultMu guards only the per-call synchronous result
	// exchange in the relay, so waiting on one call's result never
	// contends with long-held status-lock work.
	resultMu sync.Mutex

	cfg config
	log *slog.Logger
}

func newSession(cfg config) *Session {
	s := &Session{cfg: cfg, log: cfg.logger}
	s.startCond = sync.NewCond(&s.startMu)
	s.exitCond = sync.NewCond(&s.exitMu)
	return s
}

// Paths returns the session's resolved filesystem paths.
func (s *Session) Paths() entities.Paths {
	return s.paths
}

// Interp returns the runtime's interpreter instance, or nil before
// startup and after teardown. Only relay procedures, which run on the
// runtime thread, may use it.
func (s *Session) Interp() ports.Interpreter {
	return s.interp
}

// Release drops the session's resource buffers. Idempotent and
// nil-safe. Call only after the runtime thread has fully exited and
// the shared libraries are unloaded.
func (s *Session) Release() {
	if s == nil {
		return
	}
	s.resources = entities.Resources{}
}

func (s *Session) signalStarted() {
	s.startMu.Lock()
	s.startDone = true
	s.startCond.Broadcast()
	s.startMu.Unlock()
}

func (s *Session) requestShutdown() {
	s.exitMu.Lock()
	s.exitRequested = true
	s.exitMu.Unlock()
}

func (s *Session) shutdownRequested() bool {
	s.exitMu.Lock()
	defer s.exitMu.Unlock()
	return s.exitRequested
}

func (s *Session) closeLibraries() {
	if s.baseLib != nil {
		if err := s.baseLib.Close(); err != nil {
			s.log.Warn("failed to unload base library", "error", err)
		}
		s.baseLib = nil
	}
	if s.windowingLib != nil {
		if err := s.windowingLib.Close(); err != nil {
			s.log.Warn("failed to unload windowing library", "error", err)
		}
		s.windowingLib = nil
	}
}
