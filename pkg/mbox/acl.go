package mbox

import (
	"encoding/binary"

	"github.com/corelink/mbox.go/pkg/shm"
)

// ACL data serial layout: kind(1) handle(2, little endian) length(2,
// little endian) payload(251).
const (
	aclKindOff    = 0
	aclHandleOff  = 1
	aclLenOff     = 3
	aclPayloadOff = 5

	// AclPayloadSize is the fixed link-layer data capacity.
	AclPayloadSize = 251
	aclSerialSize  = aclPayloadOff + AclPayloadSize

	// AclMaxLen is the most bytes SendAclData accepts: the serial
	// region minus the kind tag.
	AclMaxLen = aclSerialSize - 1
)

// AclPacket is a view over the ACL data buffer in shared memory.
type AclPacket struct {
	mem *Memory
	ref shm.Ref
}

// Kind returns the packet kind tag.
func (p AclPacket) Kind() byte {
	return p.mem.Serial(p.ref)[aclKindOff]
}

// Handle returns the connection handle.
func (p AclPacket) Handle() uint16 {
	return binary.LittleEndian.Uint16(p.mem.Serial(p.ref)[aclHandleOff:])
}

// DataLen returns the declared data length.
func (p AclPacket) DataLen() uint16 {
	return binary.LittleEndian.Uint16(p.mem.Serial(p.ref)[aclLenOff:])
}

// Data returns the declared data bytes, viewing shared memory.
func (p AclPacket) Data() []byte {
	s := p.mem.Serial(p.ref)
	return s[aclPayloadOff : aclPayloadOff+int(p.DataLen())]
}

func (p AclPacket) setSerial(kind byte, b []byte) {
	s := p.mem.Serial(p.ref)
	s[aclKindOff] = kind
	copy(s[aclKindOff+1:], b)
}
