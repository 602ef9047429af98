// Package peer simulates the fixed-function firmware on the peer core.
package peer

// The real peer is a black box outside this codebase; this simulation
// obeys the same contract: it discovers every shared structure through
// the reference table exactly once at boot, touches a shared queue only
// after the matching doorbell, and allocates event buffers from the pool
// published by the memory-manager table, refilled by draining the shared
// free queue on release-channel rings.
//
// Used by end-to-end tests and the demo binaries.
