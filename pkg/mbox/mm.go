package mbox

import (
	"sync"

	"github.com/corelink/mbox.go/pkg/ipcc"
	"github.com/corelink/mbox.go/pkg/shm"
)

// MemoryManager owns the shared free queue and the host-private staging
// queue, and coalesces buffer-return doorbell rings: however many buffers
// are dropped between two acknowledgements, the release channel rings
// once. The "work pending" mark is the release channel's acknowledgement
// interrupt enable.
type MemoryManager struct {
	mem *Memory
	drv ipcc.Driver

	// mu is held across a whole drop or acknowledgement. Drops arrive
	// on consumer goroutines while acknowledgements arrive on the
	// interrupt dispatch; on the target the handler runs with
	// interrupts masked and is never concurrent with a drop.
	mu sync.Mutex
}

func newMemoryManager(mem *Memory, drv ipcc.Driver) *MemoryManager {
	a := mem.Arena()
	a.InitHead(refFreeBufQueue)
	a.InitHead(refLocalFreeBufQueue)

	mem.memMgr = MemManagerTable{
		SpareBleBuf:   refBleSpareEvtBuf,
		SpareSysBuf:   refSysSpareEvtBuf,
		BlePool:       refEvtPool,
		BlePoolLen:    evtPoolLen,
		FreeBufQueue:  refFreeBufQueue,
		TracesPool:    shm.Nil,
		TracesPoolLen: 0,
	}

	return &MemoryManager{mem: mem, drv: drv}
}

// EvtDrop returns one released event buffer. Called exactly once per
// buffer, by EvtBox. If a prior release is still unacknowledged the
// buffer stays on the staging queue and the doorbell is not rung;
// the acknowledgement handler picks it up.
func (m *MemoryManager) EvtDrop(ref shm.Ref) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mem.Arena().InsertTail(refLocalFreeBufQueue, ref)

	if m.drv.IsBusy(ChMMReleaseBuffer) {
		// Postpone freeing to the acknowledgement interrupt.
		m.drv.EnableTx(ChMMReleaseBuffer, true)
	} else {
		m.sendFreeBuf()
		m.drv.Ring(ChMMReleaseBuffer)
	}
}

// sendFreeBuf drains the staging queue onto the shared free queue, one
// splice at a time, and reports how many nodes moved. Callers hold mu.
func (m *MemoryManager) sendFreeBuf() int {
	a := m.mem.Arena()
	shared := m.mem.memMgr.FreeBufQueue
	moved := 0
	for !a.IsEmpty(refLocalFreeBufQueue) {
		a.InsertTail(shared, a.RemoveHead(refLocalFreeBufQueue))
		moved++
	}
	return moved
}

// FreeBufHandler handles the release channel acknowledgement. It clears
// the pending mark, drains anything staged while the channel was busy,
// and rings again only if that drain moved nodes and the channel is free.
func (m *MemoryManager) FreeBufHandler() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drv.EnableTx(ChMMReleaseBuffer, false)
	if m.sendFreeBuf() > 0 && !m.drv.IsBusy(ChMMReleaseBuffer) {
		m.drv.Ring(ChMMReleaseBuffer)
	}
}
