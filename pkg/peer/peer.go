package peer

import (
	"errors"
	"sync"

	"github.com/golang/glog"

	"github.com/corelink/mbox.go/pkg/ipcc"
	"github.com/corelink/mbox.go/pkg/ipcc/sim"
	"github.com/corelink/mbox.go/pkg/mbox"
	"github.com/corelink/mbox.go/pkg/shm"
)

// Firmware version advertised through the device info table.
const (
	wirelessFwVersion = 0x01010000
	safeBootVersion   = 0x01000000
)

// ErrNoFreeBuf indicates the event pool is exhausted: every buffer is in
// flight to the host and none came back through the free queue yet.
var ErrNoFreeBuf = errors.New("peer: no free event buffer")

// CmdHandler scripts the peer's response to one BLE command. It returns
// the event code and payload of the event the peer emits.
type CmdHandler func(opcode uint16, params []byte) (code byte, payload []byte)

// Firmware is the simulated peer core.
type Firmware struct {
	// OnCmd overrides the default command-complete response. Set it
	// before Boot.
	OnCmd CmdHandler
	// OnAclData observes link-layer data before it is acknowledged.
	OnAclData func(handle uint16, data []byte)

	mem  *mbox.Memory
	port *sim.PeerPort

	mu   sync.Mutex
	free []shm.Ref
}

// Boot reads the reference table, fills the device info table, seeds the
// private free-buffer list from the published pool and starts serving
// host-to-peer rings. Call it only after mailbox initialization, exactly
// once: the reference table is not re-read.
func Boot(mem *mbox.Memory, port *sim.PeerPort) *Firmware {
	f := &Firmware{mem: mem, port: port}

	ref := mem.RefTable()
	ref.DeviceInfo.SafeBoot.Version = safeBootVersion
	ref.DeviceInfo.WirelessFw.Version = wirelessFwVersion

	pool := ref.MemManager.BlePool
	for i := uint32(0); i < ref.MemManager.BlePoolLen; i++ {
		f.free = append(f.free, pool+shm.Ref(i))
	}

	port.SetHandler(f.handle)
	glog.V(2).Infof("peer: booted, %d pool buffers", len(f.free))
	return f
}

// SendEvent emits one asynchronous BLE event toward the host.
func (f *Firmware) SendEvent(code byte, payload []byte) error {
	ref, err := f.allocBuf()
	if err != nil {
		return err
	}
	f.mem.Evt(ref).Set(code, payload)
	f.mem.Arena().InsertTail(f.mem.RefTable().Ble.EvtQueue, ref)
	f.port.Ring(mbox.ChBleEvent)
	return nil
}

func (f *Firmware) allocBuf() (shm.Ref, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.free) == 0 {
		return shm.Nil, ErrNoFreeBuf
	}
	ref := f.free[0]
	f.free = f.free[1:]
	return ref, nil
}

func (f *Firmware) handle(ch ipcc.Channel) {
	switch ch {
	case mbox.ChBleCmd:
		f.handleCmd()
	case mbox.ChHciAclData:
		f.handleAclData()
	case mbox.ChMMReleaseBuffer:
		f.handleRelease()
	}
}

func (f *Firmware) handleCmd() {
	cmd := f.mem.Cmd(f.mem.RefTable().Ble.CmdBuf)
	opcode, params := cmd.Opcode(), cmd.Params()
	glog.V(3).Infof("peer: cmd opcode=%#04x plen=%d", opcode, len(params))

	code, payload := byte(mbox.EvtCmdComplete), defaultCmdComplete(opcode)
	if f.OnCmd != nil {
		code, payload = f.OnCmd(opcode, params)
	}

	// Consume the command buffer before acknowledging; the host may
	// reuse it right after the flag clears.
	f.port.Clear(mbox.ChBleCmd)

	if err := f.SendEvent(code, payload); err != nil {
		glog.Errorf("peer: dropping response for opcode %#04x: %v", opcode, err)
	}
}

// defaultCmdComplete builds a command-complete payload: number of
// commands the host may send(1), echoed opcode(2), success status(1).
func defaultCmdComplete(opcode uint16) []byte {
	return []byte{1, byte(opcode), byte(opcode >> 8), 0x00}
}

func (f *Firmware) handleAclData() {
	acl := f.mem.Acl(f.mem.RefTable().Ble.AclDataBuf)
	glog.V(3).Infof("peer: acl handle=%#04x len=%d", acl.Handle(), acl.DataLen())
	if f.OnAclData != nil {
		f.OnAclData(acl.Handle(), acl.Data())
	}
	f.port.Clear(mbox.ChHciAclData)
}

// handleRelease drains the shared free queue back into the private free
// list, then acknowledges the release doorbell.
func (f *Firmware) handleRelease() {
	a := f.mem.Arena()
	q := f.mem.RefTable().MemManager.FreeBufQueue
	f.mu.Lock()
	n := 0
	for !a.IsEmpty(q) {
		f.free = append(f.free, a.RemoveHead(q))
		n++
	}
	f.mu.Unlock()
	glog.V(3).Infof("peer: reclaimed %d buffers", n)
	f.port.Clear(mbox.ChMMReleaseBuffer)
}

// FreeBuffers reports how many pool buffers the peer currently owns.
func (f *Firmware) FreeBuffers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.free)
}
