package loopback

import (
	"testing"
	"time"

	"github.com/glint-dev/glint-sdk/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThread_NotThreaded(t *testing.T) {
	rt := NewRuntime(WithoutThreads())
	_, err := rt.CreateThread(func() {})
	require.Error(t, err)
}

func TestThreadIdentity(t *testing.T) {
	rt := NewRuntime()

	got := make(chan ports.ThreadID, 1)
	id, err := rt.CreateThread(func() {
		got <- rt.CurrentThread()
	})
	require.NoError(t, err)
	require.NotEqual(t, ports.NoThread, id)

	select {
	case inside := <-got:
		assert.Equal(t, id, inside)
	case <-time.After(5 * time.Second):
		t.Fatal("thread never reported its identity")
	}

	// The calling goroutine is not a runtime thread.
	assert.Equal(t, ports.NoThread, rt.CurrentThread())
}

func TestDispatch_FIFOOrder(t *testing.T) {
	rt := NewRuntime()

	var order []int
	done := make(chan struct{})
	ready := make(chan struct{})

	id, err := rt.CreateThread(func() {
		<-ready
		for i := 0; i < 3; i++ {
			rt.DoOneEvent()
		}
		close(done)
	})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		i := i
		rt.QueueEvent(id, func() { order = append(order, i) })
		rt.Alert(id)
	}
	close(ready)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch loop stalled")
	}
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestDoOneEvent_AlertWithoutEvent(t *testing.T) {
	rt := NewRuntime()

	done := make(chan struct{})
	id, err := rt.CreateThread(func() {
		rt.DoOneEvent() // must return on bare alert
		close(done)
	})
	require.NoError(t, err)

	// Give the thread time to block, then wake it with no event queued.
	time.Sleep(10 * time.Millisecond)
	rt.Alert(id)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("alert did not unblock the event wait")
	}
}

func TestInitBase_RequiresBootstrapOverride(t *testing.T) {
	rt := NewRuntime()
	in, err := rt.NewInterp()
	require.NoError(t, err)

	require.Error(t, rt.InitBase(in), "no bootstrap command registered")

	require.NoError(t, in.RegisterCommand(ports.CmdBootstrapInit, func([]string) error { return nil }))
	require.NoError(t, rt.InitBase(in))
}

func TestInitWindowing_ResolvesInitScript(t *testing.T) {
	rt := NewRuntime()
	in, err := rt.NewInterp()
	require.NoError(t, err)

	var sawScript string
	require.NoError(t, in.RegisterCommand(ports.CmdFindLibrary, func(args []string) error {
		sawScript = args[4]
		return nil
	}))

	require.NoError(t, rt.InitWindowing(in))
	assert.Equal(t, ports.WindowingInitScript, sawScript)
	assert.Equal(t, 1, rt.OpenWindowCount())
}

func TestFinalize_Idempotent(t *testing.T) {
	rt := NewRuntime()
	rt.SetOpenWindows(2)
	rt.Finalize()
	rt.Finalize()
	assert.True(t, rt.Finalized())
	assert.Zero(t, rt.OpenWindowCount())

	_, err := rt.NewInterp()
	require.Error(t, err)
}
