package mbox

import "github.com/corelink/mbox.go/pkg/shm"

// Event serial layout: kind(1) evtcode(1) plen(1) payload(255).
const (
	evtKindOff    = 0
	evtCodeOff    = 1
	evtPLenOff    = 2
	evtPayloadOff = 3

	// EvtPayloadSize is the fixed event parameter capacity.
	EvtPayloadSize = 255
	evtSerialSize  = evtPayloadOff + EvtPayloadSize
)

// EvtPacket is a view over one event buffer in shared memory.
type EvtPacket struct {
	mem *Memory
	ref shm.Ref
}

// Kind returns the packet kind tag.
func (p EvtPacket) Kind() byte {
	return p.mem.Serial(p.ref)[evtKindOff]
}

// EvtCode returns the event code.
func (p EvtPacket) EvtCode() byte {
	return p.mem.Serial(p.ref)[evtCodeOff]
}

// PayloadLen returns the declared payload length.
func (p EvtPacket) PayloadLen() byte {
	return p.mem.Serial(p.ref)[evtPLenOff]
}

// Payload returns the declared payload bytes, viewing shared memory.
func (p EvtPacket) Payload() []byte {
	s := p.mem.Serial(p.ref)
	return s[evtPayloadOff : evtPayloadOff+int(s[evtPLenOff])]
}

// Set writes a BLE event into the buffer. Used by the producing core;
// payload longer than the fixed capacity is truncated at the ABI bound.
func (p EvtPacket) Set(code byte, payload []byte) {
	s := p.mem.Serial(p.ref)
	if len(payload) > EvtPayloadSize {
		payload = payload[:EvtPayloadSize]
	}
	s[evtKindOff] = KindBleEvt
	s[evtCodeOff] = code
	s[evtPLenOff] = byte(len(payload))
	copy(s[evtPayloadOff:], payload)
}

// Evt is a value copy of one event, safe to inspect after the backing
// buffer has been returned to the pool.
type Evt struct {
	Kind    byte
	Code    byte
	Payload []byte
}

// EvtBox is the single-ownership handle around one received event buffer.
// It owns the obligation to return the buffer to the pool exactly once.
// Holding two handles to the same buffer is a caller error; handles are
// not duplicable through this API.
type EvtBox struct {
	mm       *MemoryManager
	pkt      EvtPacket
	released bool
}

// Kind returns the packet kind tag without copying.
func (b *EvtBox) Kind() byte {
	return b.pkt.Kind()
}

// EvtCode returns the event code without copying.
func (b *EvtBox) EvtCode() byte {
	return b.pkt.EvtCode()
}

// Payload returns the payload bytes, viewing shared memory. The view is
// valid only until Release.
func (b *EvtBox) Payload() []byte {
	return b.pkt.Payload()
}

// Copy returns a value copy of the event for inspection outside shared
// memory.
func (b *EvtBox) Copy() Evt {
	payload := make([]byte, len(b.pkt.Payload()))
	copy(payload, b.pkt.Payload())
	return Evt{Kind: b.pkt.Kind(), Code: b.pkt.EvtCode(), Payload: payload}
}

// Release returns the buffer to the memory manager. The first call
// transfers ownership; later calls do nothing, so the buffer reaches the
// pool exactly once per box.
func (b *EvtBox) Release() {
	if b.released {
		return
	}
	b.released = true
	b.mm.EvtDrop(b.pkt.ref)
}

// WithEvt runs fn with the box and releases it on every exit path,
// including a panic in fn.
func WithEvt(b *EvtBox, fn func(*EvtBox)) {
	defer b.Release()
	fn(b)
}
