// ABOUTME: Static visitor for linear new-space iteration, returning each object's byte size
// ABOUTME: Categories that cannot appear in new space are registered as fatal sentinels

package visit

import (
	"fmt"

	"github.com/prateek/gcvisit/heapobj"
)

// NewSpaceVisitor performs a single traversal pass over young-generation
// objects. IterateBody returns the visited object's byte size so the
// caller can advance a linear cursor; no marking is performed.
//
// The visitor is generic over S, the traversal strategy supplying the
// per-slot primitives, so the body walks specialize per concrete strategy
// at compile time instead of dispatching virtually per slot.
type NewSpaceVisitor[S heapobj.SlotVisitor] struct {
	self  S
	table DispatchTable[int]
}

// NewNewSpaceVisitor builds a new-space visitor around the given slot
// strategy and populates its dispatch table. The table is built once here
// and read-only afterwards, except through Table().CopyFrom.
func NewNewSpaceVisitor[S heapobj.SlotVisitor](self S) *NewSpaceVisitor[S] {
	v := &NewSpaceVisitor[S]{self: self}
	v.initialize()
	return v
}

// IterateBody visits one object and returns its size in bytes.
func (v *NewSpaceVisitor[S]) IterateBody(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return v.table.GetVisitor(t)(t, obj)
}

// Table exposes the dispatch table for duplication by the owning
// collector.
func (v *NewSpaceVisitor[S]) Table() *DispatchTable[int] {
	return &v.table
}

func (v *NewSpaceVisitor[S]) initialize() {
	flexible := func(t *heapobj.TypeInfo, obj *heapobj.Object) int {
		return VisitFlexibleBody(v.self, t, obj)
	}
	sizeOnly := func(t *heapobj.TypeInfo, obj *heapobj.Object) int {
		// Raw payload shapes: compute the size, enumerate nothing.
		return t.Body.SizeOf(t, obj)
	}

	// Plain data objects carry no references. The specialized ids return
	// their constant size directly; the generic id reads it off the
	// descriptor.
	for id := IdDataObject2; id < IdDataObjectGeneric; id++ {
		size := (MinSpecializedWords + int(id-IdDataObject2)) * heapobj.WordSize
		v.table.Register(id, func(t *heapobj.TypeInfo, obj *heapobj.Object) int {
			return size
		})
	}
	v.table.Register(IdDataObjectGeneric, sizeOnly)

	for id := IdJSObject2; id <= IdJSObjectGeneric; id++ {
		v.table.Register(id, flexible)
	}
	for id := IdStruct2; id <= IdStructGeneric; id++ {
		v.table.Register(id, flexible)
	}

	v.table.Register(IdByteArray, sizeOnly)
	v.table.Register(IdSeqOneByteString, sizeOnly)
	v.table.Register(IdSeqTwoByteString, sizeOnly)
	v.table.Register(IdFixedDoubleArray, sizeOnly)
	v.table.Register(IdFixedTypedArray, sizeOnly)
	v.table.Register(IdFreeSpace, sizeOnly)

	v.table.Register(IdAllocationSite, flexible)
	v.table.Register(IdConsString, flexible)
	v.table.Register(IdFixedArray, flexible)
	v.table.Register(IdJSAPIObject, flexible)
	v.table.Register(IdJSArrayBuffer, flexible)
	v.table.Register(IdJSFunction, flexible)
	v.table.Register(IdJSRegExp, flexible)
	v.table.Register(IdJSWeakCollection, flexible)
	v.table.Register(IdOddball, flexible)
	v.table.Register(IdShortcutCandidate, flexible)
	v.table.Register(IdSlicedString, flexible)
	v.table.Register(IdSmallOrderedHashMap, flexible)
	v.table.Register(IdSmallOrderedHashSet, flexible)
	v.table.Register(IdSymbol, flexible)
	v.table.Register(IdThinString, flexible)

	// These categories are allocated in old space only. Finding one while
	// scanning new space means a layout assumption broke; fail immediately
	// instead of corrupting the pass.
	for _, id := range []VisitorId{
		IdBytecodeArray, IdCell, IdCode, IdMap, IdNativeContext,
		IdPropertyCell, IdSharedFunctionInfo, IdTransitionArray, IdWeakCell,
	} {
		v.table.Register(id, unreachableVisitor[int](id))
	}
}

// unreachableVisitor returns a sentinel callback for a category a visitor
// flavor deliberately does not handle.
func unreachableVisitor[R any](id VisitorId) Callback[R] {
	return func(t *heapobj.TypeInfo, obj *heapobj.Object) R {
		panic(fmt.Sprintf("visit: %s object cannot appear in new space", id))
	}
}
