package mbox

// Packet kind tags, first byte of every serial region. Values are fixed
// by the peer firmware ABI.
const (
	KindBleCmd    byte = 0x01
	KindAclData   byte = 0x02
	KindBleEvt    byte = 0x04
	KindOtCmd     byte = 0x08
	KindOtRsp     byte = 0x09
	KindCliCmd    byte = 0x0a
	KindOtNot     byte = 0x0c
	KindOtAck     byte = 0x0d
	KindCliNot    byte = 0x0e
	KindCliAck    byte = 0x0f
	KindSysCmd    byte = 0x10
	KindSysRsp    byte = 0x11
	KindSysEvt    byte = 0x12
	KindCliRsp    byte = 0x15
	KindM0Cmd     byte = 0x16
	KindLocCmd    byte = 0x20
	KindLocRsp    byte = 0x21
	KindTracesApp byte = 0x40
	KindTracesWl  byte = 0x41
)

// BLE event codes of interest to the transport layer.
const (
	EvtCmdComplete byte = 0x0e
	EvtCmdStatus   byte = 0x0f
	EvtVendor      byte = 0xff
)
