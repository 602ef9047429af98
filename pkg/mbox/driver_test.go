package mbox

import (
	"sync"

	"github.com/corelink/mbox.go/pkg/ipcc"
	"github.com/corelink/mbox.go/pkg/shm"
)

// testDriver is a recording channel driver with directly settable flag
// state, giving tests full control over interleavings. Concurrent tests
// go through the locked methods; single-goroutine tests may poke the
// fields directly.
type testDriver struct {
	mu     sync.Mutex
	busy   map[ipcc.Channel]bool
	rxOn   map[ipcc.Channel]bool
	txOn   map[ipcc.Channel]bool
	rings  []ipcc.Channel
	clears []ipcc.Channel
}

func newTestDriver() *testDriver {
	return &testDriver{
		busy: make(map[ipcc.Channel]bool),
		rxOn: make(map[ipcc.Channel]bool),
		txOn: make(map[ipcc.Channel]bool),
	}
}

func (d *testDriver) Ring(ch ipcc.Channel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rings = append(d.rings, ch)
	d.busy[ch] = true
}

func (d *testDriver) Clear(ch ipcc.Channel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clears = append(d.clears, ch)
}

func (d *testDriver) IsBusy(ch ipcc.Channel) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy[ch]
}

func (d *testDriver) EnableRx(ch ipcc.Channel, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rxOn[ch] = on
}

func (d *testDriver) EnableTx(ch ipcc.Channel, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.txOn[ch] = on
}

// setBusy acknowledges or re-arms a channel flag from the test body.
func (d *testDriver) setBusy(ch ipcc.Channel, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.busy[ch] = on
}

func (d *testDriver) ringCount(ch ipcc.Channel) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, r := range d.rings {
		if r == ch {
			n++
		}
	}
	return n
}

type testClock struct {
	enabled bool
}

func (c *testClock) EnableClock() {
	c.enabled = true
}

type testEnv struct {
	drv *testDriver
	clk *testClock
	mb  *Mailbox
}

func newTestEnv() *testEnv {
	env := &testEnv{drv: newTestDriver(), clk: &testClock{}}
	env.mb = Init(env.drv, env.clk)
	return env
}

// queueRefs snapshots a queue's membership without mutating it.
func (e *testEnv) queueRefs(head shm.Ref) []shm.Ref {
	a := e.mb.mem.Arena()
	var out []shm.Ref
	for n := a.Next(head); n != head; n = a.Next(n) {
		out = append(out, n)
	}
	return out
}
