package host

import (
	"fmt"
	"os"
	"path/filepath"

	domerrors "github.com/glint-dev/glint-sdk/domain/errors"
	"github.com/glint-dev/glint-sdk/domain/ports"
)

// runtimeMain is the entry of the runtime thread. It takes the status
// lock immediately and holds it for the thread's entire life; every
// other accessor of session state blocks until this thread is gone.
func (s *Session) runtimeMain() {
	s.statusMu.Lock()

	s.exitMu.Lock()
	s.exitRequested = false
	s.exitMu.Unlock()

	if err := s.setupEnvironment(); err != nil {
		s.log.Error("failed to set up splash environment", "error", err)
	} else {
		s.publishImage()

		if err := s.interp.Eval(string(s.resources.Script)); err != nil {
			s.log.Error("error while running splash script",
				"error", &domerrors.ScriptError{Err: err})
		}

		s.signalStarted()

		for s.rt.OpenWindowCount() > 0 && !s.shutdownRequested() {
			s.rt.DoOneEvent()
		}
	}

	// Same-thread teardown path: destroys the interpreter only.
	s.Finalize()

	s.statusMu.Unlock()

	// Start must never be left waiting, even when setup fails
	// before the normal signal point.
	s.signalStarted()

	s.rt.FinalizeThread()

	s.exitMu.Lock()
	s.exitDone = true
	s.exitCond.Broadcast()
	s.exitMu.Unlock()
}

// setupEnvironment creates the interpreter and brings up the runtime's
// base and windowing layers inside the minimal environment the command
// overrides provide.
func (s *Session) setupEnvironment() error {
	in, err := s.rt.NewInterp()
	if err != nil {
		return &domerrors.SetupError{Stage: "interp", Err: err}
	}
	s.interp = in

	if s.threadID == ports.NoThread {
		s.threadID = s.rt.CurrentThread()
	}

	if err := s.registerOverrides(); err != nil {
		return &domerrors.SetupError{Stage: "commands", Err: err}
	}

	errBase := s.rt.InitBase(in)
	errWindowing := s.rt.InitWindowing(in)
	if errBase != nil {
		return &domerrors.SetupError{Stage: "init-base", Err: errBase}
	}
	if errWindowing != nil {
		return &domerrors.SetupError{Stage: "init-windowing", Err: errWindowing}
	}
	return nil
}

// registerOverrides replaces the four interpreter commands whose stock
// behavior assumes a full runtime installation. The splash environment
// ships only the windowing init script, so library discovery is pinned
// to the support directory and process-level commands are defanged.
func (s *Session) registerOverrides() error {
	if err := s.interp.RegisterCommand(ports.CmdBootstrapInit, func([]string) error {
		return nil
	}); err != nil {
		return err
	}
	if err := s.interp.RegisterCommand(ports.CmdFindLibrary, s.findLibraryCmd); err != nil {
		return err
	}
	if err := s.interp.RegisterCommand(ports.CmdQuit, func([]string) error {
		s.requestShutdown()
		return nil
	}); err != nil {
		return err
	}
	if err := s.interp.RenameCommand(ports.CmdSource, "_source"); err != nil {
		return err
	}
	return s.interp.RegisterCommand(ports.CmdSource, s.sourceCmd)
}

// findLibraryCmd resolves exactly one support module, the windowing
// init script, out of the session's support directory. Every other
// lookup reports not found; the minimal environment ships nothing
// else.
func (s *Session) findLibraryCmd(args []string) error {
	if len(args) < 5 || args[4] != ports.WindowingInitScript {
		name := "?"
		if len(args) > 1 {
			name = args[1]
		}
		return fmt.Errorf("library %q not found", name)
	}
	if err := s.interp.SetVar(ports.SupportDirVar, s.paths.SupportDir); err != nil {
		return err
	}
	return s.interp.EvalFile(filepath.Join(s.paths.SupportDir, ports.WindowingInitScript))
}

// sourceCmd sources a file if it exists and silently succeeds if it
// does not. The runtime's init scripts source optional files that the
// minimal environment does not ship.
func (s *Session) sourceCmd(args []string) error {
	if len(args) < 2 {
		return nil
	}
	path := args[len(args)-1]
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	forward := append([]string{"_source"}, args[1:]...)
	return s.interp.InvokeCommand(forward)
}

// publishImage hands the splash image to the interpreter and drops the
// session's copy; after this the interpreter owns the only instance.
func (s *Session) publishImage() {
	if s.resources.Image == nil {
		return
	}
	if err := s.interp.SetBinaryVar(ports.ImageDataVar, s.resources.Image); err != nil {
		s.log.Warn("failed to publish splash image", "error", err)
	}
	s.resources.Image = nil
}
