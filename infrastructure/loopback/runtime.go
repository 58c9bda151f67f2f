package loopback

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/glint-dev/glint-sdk/domain/ports"
)

// Runtime implements ports.GUIRuntime in-process.
type Runtime struct {
	mu         sync.Mutex
	queues     map[ports.ThreadID]*eventQueue
	byGoid     map[uint64]ports.ThreadID
	nextID     ports.ThreadID
	windows    int
	executable string
	finalized  bool

	threaded     bool
	failCommands bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithoutThreads simulates a runtime built without thread support:
// CreateThread always fails.
func WithoutThreads() Option {
	return func(r *Runtime) {
		r.threaded = false
	}
}

// WithFailingCommands makes every RegisterCommand call fail, to
// exercise setup-failure paths.
func WithFailingCommands() Option {
	return func(r *Runtime) {
		r.failCommands = true
	}
}

// NewRuntime creates a loopback runtime with the given options.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		queues:   make(map[ports.ThreadID]*eventQueue),
		byGoid:   make(map[uint64]ports.ThreadID),
		threaded: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindExecutable records the host executable path.
func (r *Runtime) FindExecutable(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executable = path
}

// Executable returns the path recorded by FindExecutable.
func (r *Runtime) Executable() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.executable
}

// CreateThread spawns a runtime thread running entry. The goroutine is
// pinned to an OS thread for the duration of entry, matching the
// thread affinity a real GUI runtime requires.
func (r *Runtime) CreateThread(entry func()) (ports.ThreadID, error) {
	if !r.threaded {
		return ports.NoThread, fmt.Errorf("runtime built without thread support")
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.queues[id] = newEventQueue()
	r.mu.Unlock()

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		g := goid()
		r.mu.Lock()
		r.byGoid[g] = id
		r.mu.Unlock()

		defer func() {
			r.mu.Lock()
			delete(r.byGoid, g)
			r.mu.Unlock()
		}()

		entry()
	}()

	return id, nil
}

// CurrentThread reports the runtime thread identity of the caller, or
// ports.NoThread for threads not created through CreateThread.
func (r *Runtime) CurrentThread() ports.ThreadID {
	g := goid()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byGoid[g]
}

// QueueEvent appends ev to the tail of the thread's queue. It does not
// wake the thread; pair it with Alert.
func (r *Runtime) QueueEvent(id ports.ThreadID, ev ports.Event) {
	if q := r.queue(id); q != nil {
		q.push(ev)
	}
}

// Alert wakes the thread if it is blocked in DoOneEvent.
func (r *Runtime) Alert(id ports.ThreadID) {
	if q := r.queue(id); q != nil {
		q.alert()
	}
}

// DoOneEvent blocks until the calling thread's queue has a pending
// event and services exactly one. An Alert with an empty queue also
// returns, servicing nothing, so callers can re-check their loop
// condition.
func (r *Runtime) DoOneEvent() {
	q := r.queue(r.CurrentThread())
	if q == nil {
		return
	}
	if ev := q.waitOne(); ev != nil {
		ev()
	}
}

// NewInterp creates an interpreter instance.
func (r *Runtime) NewInterp() (ports.Interpreter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized {
		return nil, fmt.Errorf("runtime already finalized")
	}
	return newInterp(r), nil
}

// InitBase runs base-layer initialization, which resolves the standard
// library through the bootstrap command. The minimal environment is
// expected to have overridden it.
func (r *Runtime) InitBase(in ports.Interpreter) error {
	if err := in.InvokeCommand([]string{ports.CmdBootstrapInit}); err != nil {
		return fmt.Errorf("base initialization failed: %w", err)
	}
	return nil
}

// InitWindowing runs windowing-layer initialization. It resolves its
// init script through the find-library command and opens the root
// window on success.
func (r *Runtime) InitWindowing(in ports.Interpreter) error {
	err := in.InvokeCommand([]string{
		ports.CmdFindLibrary,
		"windowing", "1.0", "1.0.0",
		ports.WindowingInitScript,
		"WINDOWING_LIBRARY",
		ports.SupportDirVar,
	})
	if err != nil {
		return fmt.Errorf("windowing initialization failed: %w", err)
	}
	r.SetOpenWindows(1)
	return nil
}

// OpenWindowCount reports the number of simulated top-level windows.
func (r *Runtime) OpenWindowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windows
}

// SetOpenWindows sets the simulated top-level window count.
func (r *Runtime) SetOpenWindows(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows = n
}

// FinalizeThread drops the calling thread's queue.
func (r *Runtime) FinalizeThread() {
	id := r.CurrentThread()
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.queues, id)
}

// Finalize tears down global state. Idempotent.
func (r *Runtime) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalized = true
	r.windows = 0
}

// Finalized reports whether Finalize has run.
func (r *Runtime) Finalized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalized
}

func (r *Runtime) queue(id ports.ThreadID) *eventQueue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queues[id]
}

// eventQueue is one thread's FIFO dispatch queue: a mutex/condition
// pair plus an alerted flag mirroring the wake-without-event case.
type eventQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	events  []ports.Event
	alerted bool
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *eventQueue) push(ev ports.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

func (q *eventQueue) alert() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.alerted = true
	q.cond.Signal()
}

// waitOne blocks until an event is pending or an alert arrives, then
// pops at most one event.
func (q *eventQueue) waitOne() ports.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.events) == 0 && !q.alerted {
		q.cond.Wait()
	}
	q.alerted = false
	if len(q.events) == 0 {
		return nil
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev
}

// goid extracts the current goroutine's id from the runtime stack
// header. Go deliberately hides goroutine identity; the loopback
// adapter needs it only to give each simulated thread a stable name.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Header shape: "goroutine 123 [running]:"
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
