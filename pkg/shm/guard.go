package shm

import "sync"

// Guard is the critical section protecting list mutation from the host
// core's own interrupt handlers. It is the generalization of single-core
// interrupt masking: acquired for the minimal scope of a link update,
// never held across a doorbell ring, and useless against the peer core.
type Guard interface {
	// Protect runs fn inside the critical section.
	Protect(fn func())
}

type maskGuard struct {
	mu sync.Mutex
}

// MaskGuard returns the default Guard, backed by a mutex standing in for
// the target's interrupt-masking primitive.
func MaskGuard() Guard {
	return &maskGuard{}
}

// Protect implements Guard.
func (g *maskGuard) Protect(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}
