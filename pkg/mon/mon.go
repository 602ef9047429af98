package mon

import (
	"context"
	"encoding/hex"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/corelink/mbox.go/pkg/mbox"
)

// Monitor drains the mailbox event queue, logs each event and publishes
// the raw event bytes. It must keep draining: the software event queue is
// bounded and overflow is fatal to the driver.
type Monitor struct {
	Mailbox *mbox.Mailbox
	Pub     *Publisher
	Topic   string
}

// New creates a Monitor publishing to "<machine-id>/evt".
func New(mb *mbox.Mailbox, pub *Publisher) *Monitor {
	return &Monitor{
		Mailbox: mb,
		Pub:     pub,
		Topic:   MachineID() + "/evt",
	}
}

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		panic(err)
	}
	return id
}

// Run implements run.Runnable.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case box := <-m.Mailbox.Events():
			mbox.WithEvt(box, func(b *mbox.EvtBox) {
				m.publish(b.Copy())
			})
		}
	}
}

func (m *Monitor) publish(evt mbox.Evt) {
	raw := Encode(evt)
	glog.V(1).Infof("evt code=%#02x plen=%d %s", evt.Code, len(evt.Payload), hex.EncodeToString(evt.Payload))
	if m.Pub != nil {
		m.Pub.Pub(m.Topic, raw)
	}
}

// Encode lays an event out as its raw ABI bytes: kind, event code,
// payload length, payload.
func Encode(evt mbox.Evt) []byte {
	raw := make([]byte, 3+len(evt.Payload))
	raw[0], raw[1], raw[2] = evt.Kind, evt.Code, byte(len(evt.Payload))
	copy(raw[3:], evt.Payload)
	return raw
}
