package mbox

import (
	"encoding/binary"

	"github.com/corelink/mbox.go/pkg/shm"
)

// Command serial layout: kind(1) opcode(2, little endian) plen(1)
// payload(255). Byte-exact per the peer ABI.
const (
	cmdKindOff    = 0
	cmdOpcodeOff  = 1
	cmdPLenOff    = 3
	cmdPayloadOff = 4

	// CmdPayloadSize is the fixed command parameter capacity.
	CmdPayloadSize = 255
	cmdSerialSize  = cmdPayloadOff + CmdPayloadSize

	// CmdMaxLen is the most bytes SendCmd accepts: the serial region
	// minus the kind tag.
	CmdMaxLen = cmdSerialSize - 1
)

// CmdPacket is a view over one command buffer in shared memory.
type CmdPacket struct {
	mem *Memory
	ref shm.Ref
}

// Kind returns the packet kind tag.
func (p CmdPacket) Kind() byte {
	return p.mem.Serial(p.ref)[cmdKindOff]
}

// Opcode returns the command opcode.
func (p CmdPacket) Opcode() uint16 {
	return binary.LittleEndian.Uint16(p.mem.Serial(p.ref)[cmdOpcodeOff:])
}

// ParamLen returns the declared parameter length.
func (p CmdPacket) ParamLen() byte {
	return p.mem.Serial(p.ref)[cmdPLenOff]
}

// Params returns the declared parameter bytes, viewing shared memory.
func (p CmdPacket) Params() []byte {
	s := p.mem.Serial(p.ref)
	return s[cmdPayloadOff : cmdPayloadOff+int(s[cmdPLenOff])]
}

// setSerial tags the buffer with kind and copies b after the tag.
// Length checking is the caller's job.
func (p CmdPacket) setSerial(kind byte, b []byte) {
	s := p.mem.Serial(p.ref)
	s[cmdKindOff] = kind
	copy(s[cmdKindOff+1:], b)
}
