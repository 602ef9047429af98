package sim

import (
	"sync"

	"github.com/golang/glog"

	"github.com/corelink/mbox.go/pkg/ipcc"
)

type hostIRQ struct {
	ch ipcc.Channel
	tx bool // acknowledgement of a host-to-peer channel
}

// Peripheral simulates the doorbell peripheral shared by the two cores.
// One-bit flags per (direction, channel), host-side interrupt masks, and
// one dispatch goroutine per core.
type Peripheral struct {
	mu        sync.Mutex
	clockOn   bool
	c1        [ipcc.NumChannels]bool // host-to-peer flags
	c2        [ipcc.NumChannels]bool // peer-to-host flags
	rxEnabled [ipcc.NumChannels]bool
	txEnabled [ipcc.NumChannels]bool

	hostRx func(ipcc.Channel)
	hostTx func(ipcc.Channel)
	peerRx func(ipcc.Channel)

	hostIRQs chan hostIRQ
	peerIRQs chan ipcc.Channel
	done     chan struct{}
	wg       sync.WaitGroup
}

// New creates a peripheral and starts its dispatch goroutines.
func New() *Peripheral {
	p := &Peripheral{
		hostIRQs: make(chan hostIRQ, 64),
		peerIRQs: make(chan ipcc.Channel, 64),
		done:     make(chan struct{}),
	}
	p.wg.Add(2)
	go p.hostLoop()
	go p.peerLoop()
	return p
}

// Close stops the dispatch goroutines.
func (p *Peripheral) Close() {
	close(p.done)
	p.wg.Wait()
}

// EnableClock implements ipcc.ClockControl.
func (p *Peripheral) EnableClock() {
	p.mu.Lock()
	p.clockOn = true
	p.mu.Unlock()
}

// ClockEnabled reports whether the peripheral clock has been enabled.
func (p *Peripheral) ClockEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clockOn
}

// SetHostHandlers installs the host core's interrupt handlers: rx for
// peer-to-host channels, tx for acknowledgements of host-to-peer channels.
// Must be called before any traffic.
func (p *Peripheral) SetHostHandlers(rx, tx func(ipcc.Channel)) {
	p.mu.Lock()
	p.hostRx, p.hostTx = rx, tx
	p.mu.Unlock()
}

// Host returns the host core's view of the peripheral.
func (p *Peripheral) Host() ipcc.Driver {
	return (*hostPort)(p)
}

// Peer returns the peer core's view of the peripheral.
func (p *Peripheral) Peer() *PeerPort {
	return (*PeerPort)(p)
}

func (p *Peripheral) hostLoop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case irq := <-p.hostIRQs:
			p.mu.Lock()
			rx, tx := p.hostRx, p.hostTx
			p.mu.Unlock()
			if irq.tx {
				glog.V(4).Infof("sim: host tx-free irq ch%d", irq.ch)
				if tx != nil {
					tx(irq.ch)
				}
			} else {
				glog.V(4).Infof("sim: host rx irq ch%d", irq.ch)
				if rx != nil {
					rx(irq.ch)
				}
			}
		}
	}
}

func (p *Peripheral) peerLoop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case ch := <-p.peerIRQs:
			p.mu.Lock()
			rx := p.peerRx
			p.mu.Unlock()
			glog.V(4).Infof("sim: peer rx irq ch%d", ch)
			if rx != nil {
				rx(ch)
			}
		}
	}
}

func (p *Peripheral) postHost(irq hostIRQ) {
	select {
	case p.hostIRQs <- irq:
	case <-p.done:
	}
}

func (p *Peripheral) postPeer(ch ipcc.Channel) {
	select {
	case p.peerIRQs <- ch:
	case <-p.done:
	}
}

func idx(ch ipcc.Channel) int {
	return int(ch) - 1
}

// hostPort implements ipcc.Driver.
type hostPort Peripheral

// Ring implements ipcc.Driver.
func (h *hostPort) Ring(ch ipcc.Channel) {
	p := (*Peripheral)(h)
	p.mu.Lock()
	p.c1[idx(ch)] = true
	p.mu.Unlock()
	p.postPeer(ch)
}

// Clear implements ipcc.Driver.
func (h *hostPort) Clear(ch ipcc.Channel) {
	p := (*Peripheral)(h)
	p.mu.Lock()
	p.c2[idx(ch)] = false
	p.mu.Unlock()
}

// IsBusy implements ipcc.Driver.
func (h *hostPort) IsBusy(ch ipcc.Channel) bool {
	p := (*Peripheral)(h)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.c1[idx(ch)]
}

// EnableRx implements ipcc.Driver. Enabling with the flag already set
// dispatches the interrupt immediately (level-sensitive).
func (h *hostPort) EnableRx(ch ipcc.Channel, on bool) {
	p := (*Peripheral)(h)
	p.mu.Lock()
	p.rxEnabled[idx(ch)] = on
	pend := on && p.c2[idx(ch)]
	p.mu.Unlock()
	if pend {
		p.postHost(hostIRQ{ch: ch})
	}
}

// EnableTx implements ipcc.Driver. Enabling with the flag already clear
// dispatches the acknowledgement immediately (level-sensitive).
func (h *hostPort) EnableTx(ch ipcc.Channel, on bool) {
	p := (*Peripheral)(h)
	p.mu.Lock()
	p.txEnabled[idx(ch)] = on
	pend := on && !p.c1[idx(ch)]
	p.mu.Unlock()
	if pend {
		p.postHost(hostIRQ{ch: ch, tx: true})
	}
}

// PeerPort is the peer core's view of the peripheral.
type PeerPort Peripheral

// SetHandler installs the peer core's handler for host-to-peer rings.
// Must be called before any traffic.
func (pp *PeerPort) SetHandler(fn func(ipcc.Channel)) {
	p := (*Peripheral)(pp)
	p.mu.Lock()
	p.peerRx = fn
	p.mu.Unlock()
}

// Ring sets the peer-to-host flag of ch.
func (pp *PeerPort) Ring(ch ipcc.Channel) {
	p := (*Peripheral)(pp)
	p.mu.Lock()
	p.c2[idx(ch)] = true
	pend := p.rxEnabled[idx(ch)]
	p.mu.Unlock()
	if pend {
		p.postHost(hostIRQ{ch: ch})
	}
}

// Clear clears the host-to-peer flag of ch, acknowledging receipt.
func (pp *PeerPort) Clear(ch ipcc.Channel) {
	p := (*Peripheral)(pp)
	p.mu.Lock()
	p.c1[idx(ch)] = false
	pend := p.txEnabled[idx(ch)]
	p.mu.Unlock()
	if pend {
		p.postHost(hostIRQ{ch: ch, tx: true})
	}
}

// IsBusy reports whether the peer-to-host flag of ch is still set.
func (pp *PeerPort) IsBusy(ch ipcc.Channel) bool {
	p := (*Peripheral)(pp)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.c2[idx(ch)]
}
