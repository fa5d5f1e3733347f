// ABOUTME: Heap object representation with header slot, body slots, and an atomic mark word
// ABOUTME: Defines Ref, the reference type whose slots traversal callbacks may rewrite in place

package heapobj

import "github.com/prateek/gcvisit/atomics"

// ObjID is a unique identifier for a heap object, used for diagnostics and
// tests; the traversal engine itself only follows references.
type ObjID uint64

// Ref is a reference to a heap object. Slots are addressed as *Ref so a
// traversal callback can rewrite the slot in place (relocation, weak
// clearing) without knowing where the slot lives.
type Ref = *Object

// Object is a single heap object. The header holds the type pointer (Map),
// which has its own visiting rules distinct from body slots. The body is
// modeled as a slice of reference slots followed by raw payload words; the
// object's body descriptor decides which of these the traversal engine
// sees.
type Object struct {
	ID  ObjID     // Diagnostic identifier
	Map *TypeInfo // Header type-pointer slot

	Refs  []Ref     // Body reference slots
	Words []uintptr // Raw inline payload (unboxed fields, character data)

	// Next is the intrusive weak link used by weak lists and by the weak
	// next-code link of code objects. It is non-owning: the referenced
	// object may be collected or relocated between list construction and
	// traversal.
	Next Ref

	// Code is the code-entry slot of functions and shared function info
	// objects, visited through VisitCodeEntry rather than as a body slot.
	Code Ref

	// Reloc is the relocation table of code objects.
	Reloc []RelocEntry

	flags uintptr
}

const flagMarked uintptr = 1 << 0

// TryMark atomically sets the mark bit. Returns false if the object was
// already marked, so exactly one marker wins under concurrent marking.
func (o *Object) TryMark() bool {
	return atomics.SetBitsWord(&o.flags, flagMarked, flagMarked)
}

// Marked reports whether the mark bit is set.
func (o *Object) Marked() bool {
	return atomics.AcquireLoadWord(&o.flags)&flagMarked != 0
}

// ClearMark clears the mark bit.
func (o *Object) ClearMark() {
	atomics.SetBitsWord(&o.flags, 0, flagMarked)
}

// ComputedSize returns the object's size in bytes derived from its slot
// and payload counts: one header word plus the body words.
func (o *Object) ComputedSize() int {
	return (1 + len(o.Refs) + len(o.Words)) * WordSize
}

// EmbedderTracer continues tracing outside this heap's boundary for
// objects wrapping foreign/embedder state. The marking visitor notifies it
// after the generic body walk of an API object when InUse reports true.
type EmbedderTracer interface {
	InUse() bool
	TraceWrapper(obj *Object)
}

// WeakRetainer is the collector's policy for weakly-held objects. RetainAs
// returns the (possibly relocated) reference to keep, or nil when the
// object is dead and must be unlinked.
type WeakRetainer interface {
	RetainAs(obj Ref) Ref
}
