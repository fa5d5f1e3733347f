// ABOUTME: Tests for weak-list pruning
// ABOUTME: Covers dead heads, alternating survivors, relocation, and order preservation

package visit

import (
	"testing"

	"github.com/prateek/gcvisit/heapobj"
)

// retainFunc adapts a function to the WeakRetainer interface.
type retainFunc func(heapobj.Ref) heapobj.Ref

func (f retainFunc) RetainAs(obj heapobj.Ref) heapobj.Ref { return f(obj) }

func makeWeakList(n int) []*heapobj.Object {
	ti := &heapobj.TypeInfo{Tag: heapobj.TagWeakCell, Name: "WeakCell", Body: heapobj.FlexPointerBody{}}
	nodes := make([]*heapobj.Object, n)
	for i := range nodes {
		nodes[i] = &heapobj.Object{ID: heapobj.ObjID(i), Map: ti}
	}
	for i := 0; i < n-1; i++ {
		nodes[i].Next = nodes[i+1]
	}
	return nodes
}

func collectList(head heapobj.Ref) []heapobj.ObjID {
	var ids []heapobj.ObjID
	for n := head; n != nil; n = n.Next {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestPruneKeepsEverything(t *testing.T) {
	nodes := makeWeakList(4)
	head := PruneWeakList(nodes[0], NextField{}, retainFunc(func(obj heapobj.Ref) heapobj.Ref {
		return obj
	}))

	got := collectList(head)
	if len(got) != 4 {
		t.Fatalf("Expected all 4 nodes retained, got %v", got)
	}
	for i, id := range got {
		if id != heapobj.ObjID(i) {
			t.Errorf("Expected node %d at position %d, got %d", i, i, id)
		}
	}
}

func TestPruneEvenIndexedDead(t *testing.T) {
	// With every even-indexed node dead, the new head is the first
	// odd-indexed node and survivors keep their relative order.
	nodes := makeWeakList(6)
	head := PruneWeakList(nodes[0], NextField{}, retainFunc(func(obj heapobj.Ref) heapobj.Ref {
		if obj.ID%2 == 0 {
			return nil
		}
		return obj
	}))

	got := collectList(head)
	want := []heapobj.ObjID{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("Expected survivors %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestPruneAllDead(t *testing.T) {
	nodes := makeWeakList(3)
	head := PruneWeakList(nodes[0], NextField{}, retainFunc(func(obj heapobj.Ref) heapobj.Ref {
		return nil
	}))
	if head != nil {
		t.Errorf("Expected nil head when every node is dead, got %v", head.ID)
	}
}

func TestPruneEmptyList(t *testing.T) {
	head := PruneWeakList(nil, NextField{}, retainFunc(func(obj heapobj.Ref) heapobj.Ref {
		return obj
	}))
	if head != nil {
		t.Error("Expected nil head for an empty list")
	}
}

func TestPruneTailIsTerminated(t *testing.T) {
	nodes := makeWeakList(4)
	// Kill the last node; the surviving tail's link must be cleared, not
	// left dangling at the dead node.
	head := PruneWeakList(nodes[0], NextField{}, retainFunc(func(obj heapobj.Ref) heapobj.Ref {
		if obj == nodes[3] {
			return nil
		}
		return obj
	}))

	got := collectList(head)
	if len(got) != 3 {
		t.Fatalf("Expected 3 survivors, got %v", got)
	}
	if nodes[2].Next != nil {
		t.Error("Expected the new tail's link to be cleared")
	}
}

func TestPruneWithRelocation(t *testing.T) {
	// The retainer relocates every node; links must be read through the
	// relocated copies, never through the stale originals.
	nodes := makeWeakList(3)
	moved := make(map[heapobj.ObjID]*heapobj.Object)
	for _, n := range nodes {
		moved[n.ID] = &heapobj.Object{ID: n.ID + 100, Map: n.Map, Next: n.Next}
	}
	// Relocated copies link to relocated copies, as compaction would
	// leave them once forwarding is applied.
	moved[0].Next = moved[1]
	moved[1].Next = moved[2]
	for _, n := range nodes {
		// Poison the stale copies: following a stale link would visit a
		// node that is not part of the relocated list.
		n.Next = &heapobj.Object{ID: 999}
	}

	head := PruneWeakList(nodes[0], NextField{}, retainFunc(func(obj heapobj.Ref) heapobj.Ref {
		if obj.ID >= 100 {
			// Already the relocated copy.
			return obj
		}
		return moved[obj.ID]
	}))

	got := collectList(head)
	want := []heapobj.ObjID{100, 101, 102}
	if len(got) != len(want) {
		t.Fatalf("Expected relocated list %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

// sideLink threads a list through the Code slot instead of Next.
type sideLink struct{}

func (sideLink) Next(obj heapobj.Ref) heapobj.Ref          { return obj.Code }
func (sideLink) SetNext(obj heapobj.Ref, next heapobj.Ref) { obj.Code = next }

func TestPruneWithAlternateLinkField(t *testing.T) {
	ti := &heapobj.TypeInfo{Tag: heapobj.TagAllocationSite, Name: "AllocationSite", Body: heapobj.FlexPointerBody{}}
	a := &heapobj.Object{ID: 1, Map: ti}
	b := &heapobj.Object{ID: 2, Map: ti}
	c := &heapobj.Object{ID: 3, Map: ti}
	a.Code = b
	b.Code = c

	head := PruneWeakList(a, sideLink{}, retainFunc(func(obj heapobj.Ref) heapobj.Ref {
		if obj == b {
			return nil
		}
		return obj
	}))

	if head != a || a.Code != c || c.Code != nil {
		t.Errorf("Expected a -> c after pruning b, got head %v", head.ID)
	}
}
