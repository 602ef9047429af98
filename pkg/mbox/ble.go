package mbox

import "github.com/corelink/mbox.go/pkg/ipcc"

// EvtQueueCap bounds the software event queue. The bound caps worst-case
// interrupt-to-drain latency; overflowing it means the consumer
// under-drains and is a programming error, not a recoverable condition.
const EvtQueueCap = 32

// Ble is the BLE channel endpoint: one fixed command buffer, one fixed
// ACL data buffer, and the shared event queue drained into a bounded
// software queue.
type Ble struct {
	mem    *Memory
	drv    ipcc.Driver
	mm     *MemoryManager
	events chan *EvtBox
}

func newBle(mem *Memory, drv ipcc.Driver, mm *MemoryManager) *Ble {
	mem.Arena().InitHead(refEvtQueue)

	mem.bleTable = BleTable{
		CmdBuf:     refBleCmdBuf,
		CsBuf:      refCsBuf,
		EvtQueue:   refEvtQueue,
		AclDataBuf: refAclDataBuf,
	}

	drv.EnableRx(ChBleEvent, true)

	return &Ble{
		mem:    mem,
		drv:    drv,
		mm:     mm,
		events: make(chan *EvtBox, EvtQueueCap),
	}
}

// SendCmd copies b into the fixed command buffer, tags it as a command
// packet and rings the command doorbell. Fire-and-forget: a second send
// before the peer consumed the first is a caller-contract violation and
// is not detected here.
func (b *Ble) SendCmd(cmd []byte) error {
	if len(cmd) > CmdMaxLen {
		return ErrCmdTooLong
	}
	b.mem.Cmd(refBleCmdBuf).setSerial(KindBleCmd, cmd)
	b.drv.Ring(ChBleCmd)
	return nil
}

// SendAclData copies data into the fixed ACL buffer, tags it, rings the
// ACL doorbell and unmasks the completion acknowledgement. Same
// single-outstanding caller contract as SendCmd.
func (b *Ble) SendAclData(data []byte) error {
	if len(data) > AclMaxLen {
		return ErrAclTooLong
	}
	b.mem.Acl(refAclDataBuf).setSerial(KindAclData, data)
	b.drv.Ring(ChHciAclData)
	b.drv.EnableTx(ChHciAclData, true)
	return nil
}

// Events returns the pollable software queue of received event handles.
// Each handle must be released exactly once.
func (b *Ble) Events() <-chan *EvtBox {
	return b.events
}

// evtHandler drains the shared event queue into the software queue and
// clears the event channel flag. Invoked by the owning interrupt
// dispatch.
func (b *Ble) evtHandler() {
	a := b.mem.Arena()
	for !a.IsEmpty(refEvtQueue) {
		box := &EvtBox{mm: b.mm, pkt: b.mem.Evt(a.RemoveHead(refEvtQueue))}
		select {
		case b.events <- box:
		default:
			panic("mbox: software event queue overflow")
		}
	}
	b.drv.Clear(ChBleEvent)
}

// aclDataEvtHandler handles the peer-signalled ACL completion by masking
// the acknowledgement interrupt again.
func (b *Ble) aclDataEvtHandler() {
	b.drv.EnableTx(ChHciAclData, false)
}
