package ports

// ThreadID identifies a thread managed by the GUI runtime. The zero
// value means "no thread".
type ThreadID uint64

// NoThread is the ThreadID of a session whose runtime thread has not
// been created yet.
const NoThread ThreadID = 0

// Event is a unit of work queued onto a runtime thread's dispatcher.
// The dispatcher services events in FIFO order, one per blocking wait.
type Event func()

// CommandFunc handles a command registered on an Interpreter. args
// holds the full command words, args[0] being the command name itself.
type CommandFunc func(args []string) error

// Names of the interpreter commands the session overrides to run the
// runtime in a minimal environment, plus the support script resolved
// by the find-library hook. These are part of the contract between the
// session and a GUIRuntime implementation.
const (
	// CmdBootstrapInit is invoked by the runtime's base
	// initialization to locate its standard library.
	CmdBootstrapInit = "bootstrapInit"

	// CmdFindLibrary is invoked by the windowing layer's
	// initialization to locate supporting script libraries. Its
	// fifth word (index 4) names the init script to source.
	CmdFindLibrary = "findLibrary"

	// CmdSource is the interpreter's file-sourcing primitive.
	CmdSource = "source"

	// CmdQuit ends the interpreter's event loop. The stock
	// implementation terminates the whole process.
	CmdQuit = "exit"

	// WindowingInitScript is the only support module the minimal
	// environment resolves; it lives in the session's support
	// directory.
	WindowingInitScript = "windowing.init"

	// SupportDirVar is the interpreter global the find-library
	// hook sets to the resolved support directory.
	SupportDirVar = "windowing_library"

	// StatusTextVar is the interpreter global refreshed by
	// progress updates; the splash script binds it to the visible
	// status label.
	StatusTextVar = "status_text"

	// ImageDataVar is the interpreter global carrying the splash
	// image bytes for the script to consume.
	ImageDataVar = "_image_data"
)

// Interpreter is one interpreter instance of the GUI runtime. It is
// bound to the thread that created it; only that thread may call its
// methods, with the exception of nothing - cross-thread access goes
// through the event queue.
type Interpreter interface {
	// Eval evaluates script text at the top level.
	Eval(script string) error

	// EvalFile evaluates the script file at path.
	EvalFile(path string) error

	// SetVar sets a global string variable.
	SetVar(name, value string) error

	// GetVar reads a global string variable.
	GetVar(name string) (string, bool)

	// SetBinaryVar sets a global variable to a binary value built
	// from data. The interpreter keeps its own copy of data.
	SetBinaryVar(name string, data []byte) error

	// RegisterCommand installs fn as the command. An existing
	// command with the same name is replaced.
	RegisterCommand(name string, fn CommandFunc) error

	// RenameCommand renames an existing command, keeping its
	// behavior reachable under the new name.
	RenameCommand(oldName, newName string) error

	// InvokeCommand invokes the command named by args[0] with the
	// given words.
	InvokeCommand(args []string) error

	// Close destroys the interpreter instance. Must be called from
	// the owning thread.
	Close()
}

// GUIRuntime is the foreign, single-threaded GUI runtime collaborator.
// Thread creation must go through CreateThread rather than a bare
// goroutine: the runtime binds interpreters and event queues to the
// creating call.
type GUIRuntime interface {
	// FindExecutable primes the runtime with the host executable
	// path. Must be called before any other runtime operation.
	FindExecutable(path string)

	// CreateThread spawns a runtime thread running entry and
	// returns its identity. Fails if the runtime was built without
	// thread support.
	CreateThread(entry func()) (ThreadID, error)

	// CurrentThread reports the identity of the calling thread.
	CurrentThread() ThreadID

	// QueueEvent appends ev to the tail of the thread's event
	// queue. Safe to call from any thread.
	QueueEvent(id ThreadID, ev Event)

	// Alert wakes the thread if it is blocked in DoOneEvent.
	Alert(id ThreadID)

	// DoOneEvent blocks until the calling thread's queue has a
	// pending event, then services exactly one.
	DoOneEvent()

	// NewInterp creates an interpreter bound to the calling thread.
	NewInterp() (Interpreter, error)

	// InitBase runs the runtime's base-layer initialization.
	InitBase(in Interpreter) error

	// InitWindowing runs the windowing-layer initialization.
	InitWindowing(in Interpreter) error

	// OpenWindowCount reports how many top-level windows are open.
	OpenWindowCount() int

	// FinalizeThread releases the calling thread's runtime-local
	// state. Called by a runtime thread just before it exits.
	FinalizeThread()

	// Finalize tears down the runtime's global state. Must not be
	// called from a runtime thread.
	Finalize()
}

// Library is an opened shared-library handle.
type Library interface {
	Close() error
}

// LibraryLoader opens the runtime's two shared libraries and binds
// their symbols into a usable GUIRuntime.
type LibraryLoader interface {
	// Open loads the shared library at path.
	Open(path string) (Library, error)

	// Bind resolves all required symbols from the base and
	// windowing libraries. Only after Bind succeeds is the
	// returned runtime safe to use.
	Bind(base, windowing Library) (GUIRuntime, error)
}
