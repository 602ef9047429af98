package mbox

import "github.com/corelink/mbox.go/pkg/shm"

// Slot assignment. This is the link-time placement of every shared
// structure: the constants are part of the contract with the peer and a
// wrong value here is a build bug, not a runtime condition.
const (
	refEvtQueue shm.Ref = iota // BLE event queue head
	refSysEvtQueue
	refFreeBufQueue
	refTracesEvtQueue
	refBleCmdBuf
	refSysCmdBuf
	refAclDataBuf
	refCsBuf
	refBleSpareEvtBuf
	refSysSpareEvtBuf
	refEvtPool // first of evtPoolLen contiguous event buffers
)

// evtPoolLen is the number of event buffers the peer allocates from.
const evtPoolLen = 5

// refLocalFreeBufQueue is the host-private staging queue head. It shares
// the arena index space (links must resolve) but is never published
// through the reference table.
const refLocalFreeBufQueue = refEvtPool + evtPoolLen

const numSlots = int(refLocalFreeBufQueue) + 1

// bufSize is the serial region of every slot. Buffers are uniform and
// must hold every packet layout; the command layout is the largest.
const bufSize = cmdSerialSize

var (
	_ [bufSize - evtSerialSize]byte
	_ [bufSize - aclSerialSize]byte
)

// Memory owns the backing storage of every shared structure: the node
// arena (control region) and one fixed serial buffer per slot (payload
// region). For placement purposes this is a linker concern; for lifetime
// purposes the Mailbox owns it.
type Memory struct {
	arena *shm.Arena
	bufs  [numSlots][bufSize]byte

	deviceInfo DeviceInfoTable
	bleTable   BleTable
	thread     ThreadTable
	sys        SysTable
	memMgr     MemManagerTable
	traces     TracesTable
	mac802154  Mac802154Table
	zigbee     ZigbeeTable
	lldTests   LldTestsTable
	bleLld     BleLldTable

	ref RefTable
}

// newMemory zeroes all backing storage and publishes the reference table
// pointers. List heads and table contents are filled by the endpoint
// constructors before the peer leaves hold.
func newMemory(guard shm.Guard) *Memory {
	m := &Memory{arena: shm.NewArena(numSlots, guard)}
	m.thread = ThreadTable{
		NotAckBuf:    shm.Nil,
		CliCmdRspBuf: shm.Nil,
		OtCmdRspBuf:  shm.Nil,
		CliNotBuf:    shm.Nil,
	}
	m.mac802154 = Mac802154Table{CmdRspBuf: shm.Nil, NotAckBuf: shm.Nil, EvtQueue: shm.Nil}
	m.zigbee = ZigbeeTable{NotifM0ToM4Buf: shm.Nil, ApplCmdM4ToM0Buf: shm.Nil, RequestM0ToM4Buf: shm.Nil}
	m.lldTests = LldTestsTable{CliCmdRspBuf: shm.Nil, M0CmdBuf: shm.Nil}
	m.bleLld = BleLldTable{CmdRspBuf: shm.Nil, M0CmdBuf: shm.Nil}
	m.ref = RefTable{
		DeviceInfo: &m.deviceInfo,
		Ble:        &m.bleTable,
		Thread:     &m.thread,
		Sys:        &m.sys,
		MemManager: &m.memMgr,
		Traces:     &m.traces,
		Mac802154:  &m.mac802154,
		Zigbee:     &m.zigbee,
		LldTests:   &m.lldTests,
		BleLld:     &m.bleLld,
	}
	return m
}

// Arena returns the shared node arena.
func (m *Memory) Arena() *shm.Arena {
	return m.arena
}

// RefTable returns the published reference table. The peer reads it once
// at boot; nothing mutates it afterwards.
func (m *Memory) RefTable() *RefTable {
	return &m.ref
}

// Serial returns the serial region of the buffer at ref.
func (m *Memory) Serial(ref shm.Ref) []byte {
	return m.bufs[ref][:]
}

// Cmd returns a command packet view over the buffer at ref.
func (m *Memory) Cmd(ref shm.Ref) CmdPacket {
	return CmdPacket{mem: m, ref: ref}
}

// Evt returns an event packet view over the buffer at ref.
func (m *Memory) Evt(ref shm.Ref) EvtPacket {
	return EvtPacket{mem: m, ref: ref}
}

// Acl returns an ACL data packet view over the buffer at ref.
func (m *Memory) Acl(ref shm.Ref) AclPacket {
	return AclPacket{mem: m, ref: ref}
}
