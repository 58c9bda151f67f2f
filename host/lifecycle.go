package host

import (
	"errors"

	domerrors "github.com/glint-dev/glint-sdk/domain/errors"
	"github.com/glint-dev/glint-sdk/domain/ports"
)

// Start spawns the runtime thread and blocks until its environment
// setup has finished, success or not. On return the splash window is
// either on screen or the failure has been logged by the runtime
// thread; either way the session is safe to use from the host.
//
// The session must be fully loaded. A thread-creation failure tears
// the session down before returning.
func (s *Session) Start() error {
	s.statusMu.Lock()

	if !s.fullyLoaded {
		s.statusMu.Unlock()
		return &domerrors.SetupError{
			Stage: "not-loaded",
			Err:   errors.New("runtime libraries are not loaded"),
		}
	}

	s.rt.FindExecutable(s.cfg.executable)

	id, err := s.rt.CreateThread(s.runtimeMain)
	if err != nil {
		s.statusMu.Unlock()
		s.Finalize()
		return &domerrors.ThreadCreateError{Err: err}
	}
	s.threadID = id

	s.exitMu.Lock()
	s.threadStarted = true
	s.exitMu.Unlock()

	// Take the start lock before releasing the status lock, so the
	// runtime thread cannot finish setup between the release and
	// the wait.
	s.startMu.Lock()
	s.statusMu.Unlock()
	for !s.startDone {
		s.startCond.Wait()
	}
	s.startMu.Unlock()

	return nil
}

// Finalize tears the session down. It is nil-safe and picks one of
// three paths:
//
//  1. Not fully loaded: nothing was started, only the shared-library
//     handles need closing.
//  2. Called on the runtime thread: the thread is exiting on its own,
//     so only the interpreter is destroyed here; the caller finishes
//     thread teardown itself.
//  3. Called on a host thread: raise the shutdown flag, wake the
//     dispatch loop, wait out the runtime thread, then finalize the
//     runtime and close the libraries.
func (s *Session) Finalize() {
	if s == nil {
		return
	}

	if !s.fullyLoaded {
		s.closeLibraries()
		return
	}

	if s.threadID != ports.NoThread && s.rt.CurrentThread() == s.threadID {
		if s.interp != nil {
			s.interp.Close()
			s.interp = nil
		}
		return
	}

	s.exitMu.Lock()
	wait := s.threadStarted && !s.exitDone
	if wait {
		s.exitRequested = true
	}
	s.exitMu.Unlock()

	if wait {
		// The loop may be blocked with an empty queue; a nil
		// procedure is a pure wakeup.
		s.Send(true, nil, nil)

		s.exitMu.Lock()
		for !s.exitDone {
			s.exitCond.Wait()
		}
		s.exitMu.Unlock()
	}

	s.rt.Finalize()
	s.closeLibraries()
}
