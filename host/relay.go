package host

import (
	"sync"

	"github.com/glint-dev/glint-sdk/domain/ports"
)

// Proc is a procedure relayed onto the runtime thread. It runs with
// the status lock held, on the thread that owns the interpreter, and
// returns a small integer result code.
type Proc func(s *Session, payload any) int

// RelayOK is the result reported for every asynchronous relay call,
// and the conventional success result of a Proc.
const RelayOK = 0

// relayMessage carries one relayed procedure through the runtime's
// event queue. For synchronous calls the sender blocks on done until
// the runtime thread has stored the result.
type relayMessage struct {
	session *Session
	async   bool
	proc    Proc
	payload any

	// Guarded by session.resultMu.
	served bool
	result int
	done   *sync.Cond
}

// Send relays proc onto the runtime thread. Asynchronous calls return
// RelayOK as soon as the message is queued; synchronous calls block,
// without timeout, until the runtime thread has executed proc and
// report its result.
//
// The caller must not hold the status lock: proc runs under it on the
// runtime thread. A nil proc is legal and serves as a pure wakeup of
// the dispatch loop.
func (s *Session) Send(async bool, proc Proc, payload any) int {
	msg := &relayMessage{
		session: s,
		async:   async,
		proc:    proc,
		payload: payload,
	}
	if !async {
		msg.done = sync.NewCond(&s.resultMu)
	}

	s.rt.QueueEvent(s.threadID, msg.dispatch)
	s.rt.Alert(s.threadID)

	if async {
		return RelayOK
	}

	s.resultMu.Lock()
	for !msg.served {
		msg.done.Wait()
	}
	result := msg.result
	s.resultMu.Unlock()
	return result
}

// dispatch runs on the runtime thread, inside its dispatch loop, so
// the status lock is already held by that thread.
func (m *relayMessage) dispatch() {
	result := RelayOK
	if m.proc != nil {
		result = m.proc(m.session, m.payload)
	}

	if m.async {
		return
	}
	s := m.session
	s.resultMu.Lock()
	m.result = result
	m.served = true
	m.done.Signal()
	s.resultMu.Unlock()
}

// UpdateProgress refreshes the splash screen's status text with name,
// typically the module or file currently being loaded. Fire and
// forget: the update is queued asynchronously and the call never
// blocks on the runtime thread.
func (s *Session) UpdateProgress(name string) {
	s.Send(true, setStatusText, name)
}

func setStatusText(s *Session, payload any) int {
	text, _ := payload.(string)
	if err := s.interp.SetVar(ports.StatusTextVar, text); err != nil {
		s.log.Warn("failed to update splash status text", "error", err)
	}
	return RelayOK
}
