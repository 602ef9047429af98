package mbox

import (
	"github.com/corelink/mbox.go/pkg/ipcc"
	"github.com/corelink/mbox.go/pkg/shm"
)

// Mailbox is the single owner of the shared memory tables, queues and
// buffers, created once at startup and threaded through every call.
type Mailbox struct {
	mem *Memory
	drv ipcc.Driver
	mm  *MemoryManager
	ble *Ble
}

// Init builds the mailbox: zeroes all backing storage, initializes every
// shared list head, fills the reference table and second-level tables,
// and enables the doorbell peripheral clock. It must complete before the
// peer is released from hold and runs at most once per boot; there is no
// teardown or re-initialization path and no runtime failure mode.
func Init(drv ipcc.Driver, clk ipcc.ClockControl) *Mailbox {
	mem := newMemory(shm.MaskGuard())

	clk.EnableClock()

	a := mem.Arena()
	a.InitHead(refSysEvtQueue)
	a.InitHead(refTracesEvtQueue)
	mem.sys = SysTable{CmdBuf: refSysCmdBuf, EvtQueue: refSysEvtQueue}
	mem.traces = TracesTable{EvtQueue: refTracesEvtQueue}

	mm := newMemoryManager(mem, drv)
	ble := newBle(mem, drv, mm)

	return &Mailbox{mem: mem, drv: drv, mm: mm, ble: ble}
}

// Memory returns the shared memory owned by the mailbox. The peer core
// discovers everything else through its reference table.
func (m *Mailbox) Memory() *Memory {
	return m.mem
}

// Driver returns the channel driver collaborator.
func (m *Mailbox) Driver() ipcc.Driver {
	return m.drv
}

// SendCmd sends one BLE command. See Ble.SendCmd.
func (m *Mailbox) SendCmd(cmd []byte) error {
	return m.ble.SendCmd(cmd)
}

// SendAclData sends one link-layer data packet. See Ble.SendAclData.
func (m *Mailbox) SendAclData(data []byte) error {
	return m.ble.SendAclData(data)
}

// Events returns the bounded queue of received event handles.
func (m *Mailbox) Events() <-chan *EvtBox {
	return m.ble.Events()
}

// RxInterrupt dispatches a peer-to-host channel interrupt. To be invoked
// by the owning interrupt context only.
func (m *Mailbox) RxInterrupt(ch ipcc.Channel) {
	switch ch {
	case ChBleEvent:
		m.ble.evtHandler()
	}
}

// TxFreeInterrupt dispatches the acknowledgement of a host-to-peer
// channel. To be invoked by the owning interrupt context only.
func (m *Mailbox) TxFreeInterrupt(ch ipcc.Channel) {
	switch ch {
	case ChMMReleaseBuffer:
		m.mm.FreeBufHandler()
	case ChHciAclData:
		m.ble.aclDataEvtHandler()
	}
}
