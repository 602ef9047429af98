package mbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corelink/mbox.go/pkg/shm"
)

func TestEvtDropChannelFree(t *testing.T) {
	env := newTestEnv()
	buf := refEvtPool

	env.mb.mm.EvtDrop(buf)

	require.Equal(t, []shm.Ref{buf}, env.queueRefs(refFreeBufQueue))
	require.True(t, env.mb.Memory().Arena().IsEmpty(refLocalFreeBufQueue))
	require.Equal(t, 1, env.drv.ringCount(ChMMReleaseBuffer))
	require.False(t, env.drv.txOn[ChMMReleaseBuffer], "no pending work to mark")
}

func TestEvtDropChannelBusy(t *testing.T) {
	env := newTestEnv()
	env.drv.busy[ChMMReleaseBuffer] = true

	env.mb.mm.EvtDrop(refEvtPool)

	require.Equal(t, []shm.Ref{refEvtPool}, env.queueRefs(refLocalFreeBufQueue))
	require.True(t, env.mb.Memory().Arena().IsEmpty(refFreeBufQueue))
	require.Zero(t, env.drv.ringCount(ChMMReleaseBuffer), "busy channel must not ring")
	require.True(t, env.drv.txOn[ChMMReleaseBuffer], "pending work must be marked")
}

// TestCoalescing drops k buffers while the release channel is busy and
// checks the acknowledgement produces exactly one ring carrying all k.
func TestCoalescing(t *testing.T) {
	for _, k := range []int{1, 2, 5} {
		env := newTestEnv()
		env.drv.busy[ChMMReleaseBuffer] = true

		var want []shm.Ref
		for i := 0; i < k; i++ {
			buf := refEvtPool + shm.Ref(i)
			env.mb.mm.EvtDrop(buf)
			want = append(want, buf)
		}
		require.Zero(t, env.drv.ringCount(ChMMReleaseBuffer))

		// Peer acknowledges the earlier ring.
		env.drv.busy[ChMMReleaseBuffer] = false
		env.mb.TxFreeInterrupt(ChMMReleaseBuffer)

		require.Equal(t, 1, env.drv.ringCount(ChMMReleaseBuffer), "k=%d", k)
		require.Equal(t, want, env.queueRefs(refFreeBufQueue), "k=%d", k)
		require.True(t, env.mb.Memory().Arena().IsEmpty(refLocalFreeBufQueue))
		require.False(t, env.drv.txOn[ChMMReleaseBuffer], "pending mark must clear")
	}
}

func TestFreeBufHandlerNothingPending(t *testing.T) {
	env := newTestEnv()
	env.mb.mm.FreeBufHandler()
	require.Zero(t, env.drv.ringCount(ChMMReleaseBuffer), "empty drain must not ring")
}

// TestConcurrentDropAndAck hammers drops from a consumer goroutine
// against acknowledgements from a dispatch goroutine. Both paths drain
// the staging queue; without serializing them a drain can race another
// drain past its emptiness check and every buffer must still land on
// the shared queue exactly once, without panicking.
func TestConcurrentDropAndAck(t *testing.T) {
	for trial := 0; trial < 100; trial++ {
		env := newTestEnv()
		mm := env.mb.mm

		done := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			defer close(done)
			for i := 0; i < evtPoolLen; i++ {
				mm.EvtDrop(refEvtPool + shm.Ref(i))
			}
		}()
		go func() {
			defer wg.Done()
			for {
				env.drv.setBusy(ChMMReleaseBuffer, false)
				mm.FreeBufHandler()
				select {
				case <-done:
					// One more pass for anything staged after
					// the loop's last drain.
					env.drv.setBusy(ChMMReleaseBuffer, false)
					mm.FreeBufHandler()
					return
				default:
				}
			}
		}()
		wg.Wait()

		seen := map[shm.Ref]int{}
		for _, ref := range env.queueRefs(refFreeBufQueue) {
			seen[ref]++
		}
		require.Len(t, seen, evtPoolLen, "trial %d", trial)
		for ref, n := range seen {
			require.Equal(t, 1, n, "trial %d: buffer %d", trial, ref)
		}
		require.True(t, env.mb.Memory().Arena().IsEmpty(refLocalFreeBufQueue))
	}
}

// TestEvtDropInterleaved mixes drops with acknowledgements and verifies
// every buffer lands on the shared queue exactly once.
func TestEvtDropInterleaved(t *testing.T) {
	env := newTestEnv()
	mm := env.mb.mm

	mm.EvtDrop(refEvtPool) // rings, channel now busy
	mm.EvtDrop(refEvtPool + 1)
	mm.EvtDrop(refEvtPool + 2)

	env.drv.busy[ChMMReleaseBuffer] = false
	mm.FreeBufHandler() // rings again, busy again

	mm.EvtDrop(refEvtPool + 3)
	env.drv.busy[ChMMReleaseBuffer] = false
	mm.FreeBufHandler()

	seen := map[shm.Ref]int{}
	for _, ref := range env.queueRefs(refFreeBufQueue) {
		seen[ref]++
	}
	require.Equal(t, map[shm.Ref]int{
		refEvtPool:     1,
		refEvtPool + 1: 1,
		refEvtPool + 2: 1,
		refEvtPool + 3: 1,
	}, seen)
	require.Equal(t, 3, env.drv.ringCount(ChMMReleaseBuffer))
}
