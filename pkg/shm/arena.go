package shm

// Ref addresses one node slot in an Arena.
type Ref uint16

// Nil is the sentinel Ref meaning "no slot".
const Nil Ref = 0xffff

// node carries the intrusive links of one slot. Links of a free-standing
// node are Nil; links of a list member are always valid slot indices.
type node struct {
	next Ref
	prev Ref
}

// Arena is a fixed-capacity pool of node slots. It is sized once at
// creation and never grows; every queue head and every exchanged buffer
// occupies exactly one slot for the lifetime of the mailbox.
type Arena struct {
	nodes []node
	guard Guard
}

// NewArena creates an arena with the given number of slots. All slots
// start unlinked.
func NewArena(slots int, guard Guard) *Arena {
	a := &Arena{
		nodes: make([]node, slots),
		guard: guard,
	}
	for i := range a.nodes {
		a.nodes[i] = node{next: Nil, prev: Nil}
	}
	return a
}

// Slots returns the arena capacity.
func (a *Arena) Slots() int {
	return len(a.nodes)
}

// InitHead makes head an empty list. It must run once, before the head's
// slot is published to the peer.
func (a *Arena) InitHead(head Ref) {
	a.guard.Protect(func() {
		a.nodes[head] = node{next: head, prev: head}
	})
}

// IsEmpty reports whether the list at head has no members.
func (a *Arena) IsEmpty(head Ref) bool {
	var empty bool
	a.guard.Protect(func() {
		empty = a.nodes[head].next == head
	})
	return empty
}

// InsertHead links n as the first member of the list at head.
func (a *Arena) InsertHead(head, n Ref) {
	a.guard.Protect(func() {
		a.nodes[n].next = a.nodes[head].next
		a.nodes[n].prev = head
		a.nodes[head].next = n
		a.nodes[a.nodes[n].next].prev = n
	})
}

// InsertTail links n as the last member of the list at head.
func (a *Arena) InsertTail(head, n Ref) {
	a.guard.Protect(func() {
		a.nodes[n].next = head
		a.nodes[n].prev = a.nodes[head].prev
		a.nodes[head].prev = n
		a.nodes[a.nodes[n].prev].next = n
	})
}

// Remove unlinks n from whatever list it is a member of.
func (a *Arena) Remove(n Ref) {
	a.guard.Protect(func() {
		a.remove(n)
	})
}

func (a *Arena) remove(n Ref) {
	a.nodes[a.nodes[n].prev].next = a.nodes[n].next
	a.nodes[a.nodes[n].next].prev = a.nodes[n].prev
	a.nodes[n] = node{next: Nil, prev: Nil}
}

// RemoveHead unlinks and returns the first member of the list at head.
// The list must not be empty; check IsEmpty first.
func (a *Arena) RemoveHead(head Ref) Ref {
	var n Ref
	a.guard.Protect(func() {
		n = a.nodes[head].next
		if n == head {
			panic("shm: RemoveHead on empty list")
		}
		a.remove(n)
	})
	return n
}

// RemoveTail unlinks and returns the last member of the list at head.
// The list must not be empty; check IsEmpty first.
func (a *Arena) RemoveTail(head Ref) Ref {
	var n Ref
	a.guard.Protect(func() {
		n = a.nodes[head].prev
		if n == head {
			panic("shm: RemoveTail on empty list")
		}
		a.remove(n)
	})
	return n
}

// InsertAfter links n immediately after ref.
func (a *Arena) InsertAfter(n, ref Ref) {
	a.guard.Protect(func() {
		a.nodes[n].next = a.nodes[ref].next
		a.nodes[n].prev = ref
		a.nodes[ref].next = n
		a.nodes[a.nodes[n].next].prev = n
	})
}

// InsertBefore links n immediately before ref.
func (a *Arena) InsertBefore(n, ref Ref) {
	a.guard.Protect(func() {
		a.nodes[n].next = ref
		a.nodes[n].prev = a.nodes[ref].prev
		a.nodes[ref].prev = n
		a.nodes[a.nodes[n].prev].next = n
	})
}

// Size walks the list at head and returns the number of members.
func (a *Arena) Size(head Ref) int {
	var size int
	a.guard.Protect(func() {
		for n := a.nodes[head].next; n != head; n = a.nodes[n].next {
			size++
		}
	})
	return size
}

// Next returns the member following ref (the head itself when ref is the
// last member).
func (a *Arena) Next(ref Ref) Ref {
	var n Ref
	a.guard.Protect(func() {
		n = a.nodes[ref].next
	})
	return n
}

// Prev returns the member preceding ref (the head itself when ref is the
// first member).
func (a *Arena) Prev(ref Ref) Ref {
	var n Ref
	a.guard.Protect(func() {
		n = a.nodes[ref].prev
	})
	return n
}
