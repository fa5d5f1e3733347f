// ABOUTME: Generic fixed-size and variable-size body traversal strategies
// ABOUTME: Written once over a per-slot capability and monomorphized per concrete visitor

package visit

import "github.com/prateek/gcvisit/heapobj"

// VisitFixedBody traverses an object of a fixed-size shape: the descriptor
// exposes a constant size and the strategy returns it after enumerating
// the body's reference slots through self.
func VisitFixedBody[S heapobj.SlotVisitor](self S, body heapobj.FixedBodyDescriptor, t *heapobj.TypeInfo, obj *heapobj.Object) int {
	size := body.FixedSize()
	body.IterateBody(t, obj, size, self)
	return size
}

// VisitFlexibleBody traverses an object of a variable-size shape: the
// descriptor first computes the size, then enumerates the reference slots
// within it. Returns the computed size.
func VisitFlexibleBody[S heapobj.SlotVisitor](self S, t *heapobj.TypeInfo, obj *heapobj.Object) int {
	size := t.Body.SizeOf(t, obj)
	t.Body.IterateBody(t, obj, size, self)
	return size
}
