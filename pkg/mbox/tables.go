package mbox

import "github.com/corelink/mbox.go/pkg/shm"

// RefTable is the root structure published to the peer at a fixed
// placement. The peer reads it exactly once, after leaving hold; it is
// immutable from then on.
type RefTable struct {
	DeviceInfo *DeviceInfoTable
	Ble        *BleTable
	Thread     *ThreadTable
	Sys        *SysTable
	MemManager *MemManagerTable
	Traces     *TracesTable
	Mac802154  *Mac802154Table
	Zigbee     *ZigbeeTable
	LldTests   *LldTestsTable
	BleLld     *BleLldTable
}

// SafeBootInfo reports the safe-boot firmware version.
type SafeBootInfo struct {
	Version uint32
}

// FusInfo reports the firmware upgrade service version.
type FusInfo struct {
	Version    uint32
	MemorySize uint32
	Info       uint32
}

// WirelessFwInfo reports the wireless stack version.
type WirelessFwInfo struct {
	Version    uint32
	MemorySize uint32
	InfoStack  uint32
	Reserved   uint32
}

// DeviceInfoTable is filled by the peer during its boot.
type DeviceInfoTable struct {
	SafeBoot   SafeBootInfo
	Fus        FusInfo
	WirelessFw WirelessFwInfo
}

// BleTable locates the BLE exchange structures.
type BleTable struct {
	CmdBuf     shm.Ref
	CsBuf      shm.Ref
	EvtQueue   shm.Ref
	AclDataBuf shm.Ref
}

// SysTable locates the system-channel exchange structures.
type SysTable struct {
	CmdBuf   shm.Ref
	EvtQueue shm.Ref
}

// MemManagerTable locates the buffer pool and the shared free queue.
type MemManagerTable struct {
	SpareBleBuf   shm.Ref
	SpareSysBuf   shm.Ref
	BlePool       shm.Ref // first of BlePoolLen contiguous slots
	BlePoolLen    uint32
	FreeBufQueue  shm.Ref
	TracesPool    shm.Ref
	TracesPoolLen uint32
}

// TracesTable locates the trace event queue.
type TracesTable struct {
	EvtQueue shm.Ref
}

// ThreadTable locates the thread-stack buffers. Unused while the thread
// stack is not started; all refs stay Nil.
type ThreadTable struct {
	NotAckBuf    shm.Ref
	CliCmdRspBuf shm.Ref
	OtCmdRspBuf  shm.Ref
	CliNotBuf    shm.Ref
}

// Mac802154Table locates the 802.15.4 stack buffers.
type Mac802154Table struct {
	CmdRspBuf shm.Ref
	NotAckBuf shm.Ref
	EvtQueue  shm.Ref
}

// ZigbeeTable locates the zigbee stack buffers.
type ZigbeeTable struct {
	NotifM0ToM4Buf   shm.Ref
	ApplCmdM4ToM0Buf shm.Ref
	RequestM0ToM4Buf shm.Ref
}

// LldTestsTable locates the LLD test buffers.
type LldTestsTable struct {
	CliCmdRspBuf shm.Ref
	M0CmdBuf     shm.Ref
}

// BleLldTable locates the BLE LLD buffers.
type BleLldTable struct {
	CmdRspBuf shm.Ref
	M0CmdBuf  shm.Ref
}
