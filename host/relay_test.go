package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-dev/glint-sdk/domain/ports"
	"github.com/glint-dev/glint-sdk/infrastructure/loopback"
)

// startedSession spins up a full session whose dispatch loop is
// running, and registers its teardown.
func startedSession(t *testing.T, rt *loopback.Runtime, script string, image []byte) *Session {
	t.Helper()
	s := newLoadedSession(t, rt, script, image)
	require.NoError(t, s.Start())
	t.Cleanup(s.Finalize)
	return s
}

func TestSendSync(t *testing.T) {
	t.Run("returns the procedure's result", func(t *testing.T) {
		s := startedSession(t, loopback.NewRuntime(), "show window", nil)

		got := s.Send(false, func(*Session, any) int { return 7 }, nil)
		assert.Equal(t, 7, got)

		got = s.Send(false, func(*Session, any) int { return 42 }, nil)
		assert.Equal(t, 42, got)
	})

	t.Run("back-to-back calls lose no update", func(t *testing.T) {
		s := startedSession(t, loopback.NewRuntime(), "show window", nil)

		counter := 0
		bump := func(*Session, any) int {
			counter++
			return counter
		}

		assert.Equal(t, 1, s.Send(false, bump, nil))
		assert.Equal(t, 2, s.Send(false, bump, nil))
	})

	t.Run("runs on the runtime thread", func(t *testing.T) {
		rt := loopback.NewRuntime()
		s := startedSession(t, rt, "show window", nil)

		var seen ports.ThreadID
		s.Send(false, func(s *Session, _ any) int {
			seen = s.rt.CurrentThread()
			return RelayOK
		}, nil)
		assert.Equal(t, s.threadID, seen)
	})
}

func TestSendAsync(t *testing.T) {
	t.Run("returns immediately while the runtime thread is busy", func(t *testing.T) {
		s := startedSession(t, loopback.NewRuntime(), "show window", nil)

		gate := make(chan struct{})
		blocked := make(chan int, 1)
		go func() {
			blocked <- s.Send(false, func(*Session, any) int {
				<-gate
				return 9
			}, nil)
		}()

		// The queued updates must complete while the dispatcher is
		// still stuck inside the synchronous procedure above.
		for i := 0; i < 16; i++ {
			assert.Equal(t, RelayOK, s.Send(true, setStatusText, "step"))
		}

		close(gate)
		select {
		case got := <-blocked:
			assert.Equal(t, 9, got)
		case <-time.After(5 * time.Second):
			t.Fatal("synchronous send never completed")
		}
	})
}

func TestUpdateProgress(t *testing.T) {
	s := startedSession(t, loopback.NewRuntime(), "show window", nil)

	s.UpdateProgress("loading payload.bin")

	// A synchronous follow-up serializes behind the async update.
	var text string
	s.Send(false, func(s *Session, _ any) int {
		text, _ = s.interp.GetVar(ports.StatusTextVar)
		return RelayOK
	}, nil)
	assert.Equal(t, "loading payload.bin", text)
}
