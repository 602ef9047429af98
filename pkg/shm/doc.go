// Package shm models the statically placed shared memory exchanged
// between the two processor cores.
package shm

// All structures exchanged with the peer core live in a fixed-capacity
// arena of node slots. Links are slot indices, never raw pointers, so a
// node can be spliced between queues without aliasing shared memory from
// Go. Lists are circular and doubly linked: an empty head points at
// itself in both directions.
//
// Producer/consumer of any one queue is fixed by the transport protocol;
// the guard only serializes the host core against its own interrupt
// handlers and gives no protection against the peer.
