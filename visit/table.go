// ABOUTME: Fixed-size dispatch table of atomically-stored callbacks indexed by VisitorId
// ABOUTME: Duplication is element-wise through the atomic cell API so readers never see torn entries

package visit

import (
	"fmt"

	"github.com/prateek/gcvisit/atomics"
	"github.com/prateek/gcvisit/heapobj"
)

// Callback is one dispatch-table entry: a traversal function for a single
// shape category, returning R (byte size for new-space visitors, nothing
// for marking visitors).
type Callback[R any] func(t *heapobj.TypeInfo, obj *heapobj.Object) R

// DispatchTable maps every VisitorId to a callback. A table is populated
// once during visitor initialization and treated as read-only afterwards;
// the only later mutation is CopyFrom, which is safe to race against
// concurrent readers of the destination.
type DispatchTable[R any] struct {
	callbacks [IdCount]atomics.Pointer[Callback[R]]
}

// Register stores a callback at slot id, last write wins. Valid before
// concurrent readers exist, or under external synchronization by the
// owning collector.
func (dt *DispatchTable[R]) Register(id VisitorId, cb Callback[R]) {
	if id < 0 || id >= IdCount {
		panic(fmt.Sprintf("visit: register out of range id %d", int(id)))
	}
	dt.callbacks[id].SetValue(&cb)
}

// GetVisitorById returns the callback registered at slot id. An empty slot
// means the id was deliberately left unhandled by this visitor flavor;
// invoking it is a configuration bug, so the lookup panics rather than
// silently doing nothing.
func (dt *DispatchTable[R]) GetVisitorById(id VisitorId) Callback[R] {
	if id < 0 || id >= IdCount {
		panic(fmt.Sprintf("visit: lookup out of range id %d", int(id)))
	}
	cb := dt.callbacks[id].Value()
	if cb == nil {
		panic(fmt.Sprintf("visit: no visitor registered for id %s", id))
	}
	return *cb
}

// GetVisitor resolves the visitor id for t and returns its callback.
func (dt *DispatchTable[R]) GetVisitor(t *heapobj.TypeInfo) Callback[R] {
	return dt.GetVisitorById(AssignIdForType(t))
}

// CopyFrom duplicates every slot of other into this table. The copy is
// performed slot by slot through the atomic cell API, never as a bulk raw
// copy, so a concurrent reader of this table observes for every slot
// either the pre-copy or the post-copy entry and never an intermediate
// bit pattern.
func (dt *DispatchTable[R]) CopyFrom(other *DispatchTable[R]) {
	for i := range dt.callbacks {
		dt.callbacks[i].SetValue(other.callbacks[i].Value())
	}
}
