package shm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkConsistent verifies the list at head is circular and doubly
// consistent: next(prev(n)) == n and prev(next(n)) == n for every
// reachable node, and IsEmpty agrees with Size.
func checkConsistent(t *testing.T, a *Arena, head Ref) {
	t.Helper()
	n := head
	steps := 0
	for {
		next := a.Next(n)
		require.Equal(t, n, a.Prev(next), "prev(next(n)) != n")
		require.Equal(t, n, a.Next(a.Prev(n)), "next(prev(n)) != n")
		n = next
		steps++
		require.True(t, steps <= a.Slots()+1, "walk does not close")
		if n == head {
			break
		}
	}
	require.Equal(t, a.IsEmpty(head), a.Size(head) == 0)
}

func newTestArena(slots int) *Arena {
	return NewArena(slots, MaskGuard())
}

func TestInitHeadEmpty(t *testing.T) {
	a := newTestArena(4)
	a.InitHead(0)
	require.True(t, a.IsEmpty(0))
	require.Equal(t, 0, a.Size(0))
	require.Equal(t, Ref(0), a.Next(0))
	require.Equal(t, Ref(0), a.Prev(0))
	checkConsistent(t, a, 0)
}

func TestRoundTripOrder(t *testing.T) {
	const head Ref = 0
	nodes := []Ref{1, 2, 3, 4, 5}

	testCases := []struct {
		name   string
		insert func(a *Arena, n Ref)
		expect []Ref
	}{
		{"fifo tail-insert head-remove", func(a *Arena, n Ref) { a.InsertTail(head, n) }, []Ref{1, 2, 3, 4, 5}},
		{"lifo head-insert head-remove", func(a *Arena, n Ref) { a.InsertHead(head, n) }, []Ref{5, 4, 3, 2, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestArena(6)
			a.InitHead(head)
			for _, n := range nodes {
				tc.insert(a, n)
				checkConsistent(t, a, head)
			}
			require.Equal(t, len(nodes), a.Size(head))
			var got []Ref
			for !a.IsEmpty(head) {
				got = append(got, a.RemoveHead(head))
				checkConsistent(t, a, head)
			}
			require.Equal(t, tc.expect, got)
			require.True(t, a.IsEmpty(head))
		})
	}
}

func TestRemoveNode(t *testing.T) {
	a := newTestArena(6)
	a.InitHead(0)
	for _, n := range []Ref{1, 2, 3, 4, 5} {
		a.InsertTail(0, n)
	}

	a.Remove(3)
	checkConsistent(t, a, 0)
	require.Equal(t, 4, a.Size(0))

	a.Remove(1)
	a.Remove(5)
	checkConsistent(t, a, 0)
	require.Equal(t, []Ref{2, 4}, drain(a, 0))
}

func TestRemoveTail(t *testing.T) {
	a := newTestArena(4)
	a.InitHead(0)
	a.InsertTail(0, 1)
	a.InsertTail(0, 2)
	a.InsertTail(0, 3)

	require.Equal(t, Ref(3), a.RemoveTail(0))
	require.Equal(t, Ref(2), a.RemoveTail(0))
	checkConsistent(t, a, 0)
	require.Equal(t, []Ref{1}, drain(a, 0))
}

func TestInsertAfterBefore(t *testing.T) {
	a := newTestArena(6)
	a.InitHead(0)
	a.InsertTail(0, 1)
	a.InsertTail(0, 4)

	a.InsertAfter(2, 1)
	checkConsistent(t, a, 0)
	a.InsertBefore(3, 4)
	checkConsistent(t, a, 0)
	a.InsertBefore(5, a.Next(0)) // before the first member
	checkConsistent(t, a, 0)

	require.Equal(t, []Ref{5, 1, 2, 3, 4}, drain(a, 0))
}

func TestRemoveOnEmptyPanics(t *testing.T) {
	a := newTestArena(2)
	a.InitHead(0)
	require.Panics(t, func() { a.RemoveHead(0) })
	require.Panics(t, func() { a.RemoveTail(0) })
}

// TestRandomOps drives a long random operation sequence against a slice
// model and checks structural consistency after every step.
func TestRandomOps(t *testing.T) {
	const head Ref = 0
	const slots = 17

	a := newTestArena(slots)
	a.InitHead(head)
	rng := rand.New(rand.NewSource(42))

	var model []Ref
	var free []Ref
	for n := Ref(1); n < slots; n++ {
		free = append(free, n)
	}

	removeFromModel := func(n Ref) {
		for i, m := range model {
			if m == n {
				model = append(model[:i], model[i+1:]...)
				return
			}
		}
		t.Fatalf("node %d not in model", n)
	}

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(5); {
		case op <= 1 && len(free) > 0: // insert
			n := free[len(free)-1]
			free = free[:len(free)-1]
			if op == 0 {
				a.InsertHead(head, n)
				model = append([]Ref{n}, model...)
			} else {
				a.InsertTail(head, n)
				model = append(model, n)
			}
		case op == 2 && len(model) > 0:
			n := a.RemoveHead(head)
			require.Equal(t, model[0], n)
			removeFromModel(n)
			free = append(free, n)
		case op == 3 && len(model) > 0:
			n := a.RemoveTail(head)
			require.Equal(t, model[len(model)-1], n)
			removeFromModel(n)
			free = append(free, n)
		case op == 4 && len(model) > 0:
			n := model[rng.Intn(len(model))]
			a.Remove(n)
			removeFromModel(n)
			free = append(free, n)
		}
		checkConsistent(t, a, head)
		require.Equal(t, len(model), a.Size(head))
	}

	for !a.IsEmpty(head) {
		n := a.RemoveHead(head)
		require.Equal(t, model[0], n)
		removeFromModel(n)
	}
	require.Empty(t, model)
}

func drain(a *Arena, head Ref) []Ref {
	var out []Ref
	for !a.IsEmpty(head) {
		out = append(out, a.RemoveHead(head))
	}
	return out
}
