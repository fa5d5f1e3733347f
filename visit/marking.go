// ABOUTME: Static visitor for full transitive marking with per-category strong/weak overrides
// ABOUTME: Handles weak cells, transition arrays, code relocation tables, functions, and contexts

package visit

import "github.com/prateek/gcvisit/heapobj"

// MarkCallbacks is the traversal strategy a marking visitor is built
// around. Beyond the plain per-slot primitive it distinguishes weak slots,
// code-entry slots, and the strong relocation-entry kinds of code objects.
// The callbacks perform the actual marking side effects (worklist pushes,
// slot recording); the visitor only decides which callback each slot gets.
type MarkCallbacks interface {
	heapobj.SlotVisitor

	// VisitWeakPointer observes a weakly-held reference. The value must
	// not be treated as a strong root; clearing it when unreachable is
	// the collector's decision, made later.
	VisitWeakPointer(host *heapobj.Object, slot *heapobj.Ref)

	// VisitCodeEntry observes the code-entry slot of a function or shared
	// function info object.
	VisitCodeEntry(host *heapobj.Object, slot *heapobj.Ref)

	// VisitEmbeddedObject observes a heap object embedded in code.
	VisitEmbeddedObject(host *heapobj.Object, entry *heapobj.RelocEntry)

	// VisitCodeTarget observes a code-to-code reference.
	VisitCodeTarget(host *heapobj.Object, entry *heapobj.RelocEntry)

	// VisitCellTarget observes a code-to-cell reference.
	VisitCellTarget(host *heapobj.Object, entry *heapobj.RelocEntry)

	// VisitDebugTarget observes a debug-target code reference.
	VisitDebugTarget(host *heapobj.Object, entry *heapobj.RelocEntry)
}

// MarkingVisitor performs the traversal step of transitive heap marking.
// IterateBody returns nothing; all effects flow through the S callbacks.
type MarkingVisitor[S MarkCallbacks] struct {
	self   S
	tracer heapobj.EmbedderTracer
	table  DispatchTable[struct{}]
}

// NewMarkingVisitor builds a marking visitor around the given strategy.
// tracer may be nil when no embedder tracing is active. The dispatch table
// is built once here and read-only afterwards, except through
// Table().CopyFrom.
func NewMarkingVisitor[S MarkCallbacks](self S, tracer heapobj.EmbedderTracer) *MarkingVisitor[S] {
	v := &MarkingVisitor[S]{self: self, tracer: tracer}
	v.initialize()
	return v
}

// IterateBody visits one object, invoking the strategy's callbacks for
// every reference the object holds.
func (v *MarkingVisitor[S]) IterateBody(t *heapobj.TypeInfo, obj *heapobj.Object) {
	v.table.GetVisitor(t)(t, obj)
}

// Table exposes the dispatch table for duplication by the owning
// collector.
func (v *MarkingVisitor[S]) Table() *DispatchTable[struct{}] {
	return &v.table
}

func (v *MarkingVisitor[S]) initialize() {
	done := struct{}{}
	flexible := func(t *heapobj.TypeInfo, obj *heapobj.Object) struct{} {
		VisitFlexibleBody(v.self, t, obj)
		return done
	}
	dataOnly := func(t *heapobj.TypeInfo, obj *heapobj.Object) struct{} {
		return done
	}
	wrap := func(fn func(t *heapobj.TypeInfo, obj *heapobj.Object)) Callback[struct{}] {
		return func(t *heapobj.TypeInfo, obj *heapobj.Object) struct{} {
			fn(t, obj)
			return done
		}
	}

	// Shapes without references need no marking work at all.
	for id := IdDataObject2; id <= IdDataObjectGeneric; id++ {
		v.table.Register(id, dataOnly)
	}
	v.table.Register(IdByteArray, dataOnly)
	v.table.Register(IdSeqOneByteString, dataOnly)
	v.table.Register(IdSeqTwoByteString, dataOnly)
	v.table.Register(IdFixedDoubleArray, dataOnly)
	v.table.Register(IdFixedTypedArray, dataOnly)
	v.table.Register(IdFreeSpace, dataOnly)

	for id := IdJSObject2; id <= IdJSObjectGeneric; id++ {
		v.table.Register(id, flexible)
	}
	for id := IdStruct2; id <= IdStructGeneric; id++ {
		v.table.Register(id, flexible)
	}

	v.table.Register(IdAllocationSite, flexible)
	v.table.Register(IdBytecodeArray, flexible)
	v.table.Register(IdCell, flexible)
	v.table.Register(IdConsString, flexible)
	v.table.Register(IdFixedArray, flexible)
	v.table.Register(IdJSArrayBuffer, flexible)
	v.table.Register(IdJSRegExp, flexible)
	v.table.Register(IdOddball, flexible)
	v.table.Register(IdPropertyCell, flexible)
	v.table.Register(IdShortcutCandidate, flexible)
	v.table.Register(IdSlicedString, flexible)
	v.table.Register(IdSmallOrderedHashMap, flexible)
	v.table.Register(IdSmallOrderedHashSet, flexible)
	v.table.Register(IdSymbol, flexible)
	v.table.Register(IdThinString, flexible)

	// Categories whose reference semantics a generic body walk cannot
	// express.
	v.table.Register(IdWeakCell, wrap(v.visitWeakCell))
	v.table.Register(IdTransitionArray, wrap(v.visitTransitionArray))
	v.table.Register(IdCode, wrap(v.visitCode))
	v.table.Register(IdSharedFunctionInfo, wrap(v.visitWithCodeEntry))
	v.table.Register(IdJSFunction, wrap(v.visitWithCodeEntry))
	v.table.Register(IdNativeContext, wrap(v.visitNativeContext))
	v.table.Register(IdJSWeakCollection, wrap(v.visitWeakCollection))
	v.table.Register(IdJSAPIObject, wrap(v.visitAPIObject))
	v.table.Register(IdMap, wrap(v.visitMapObject))
}

// visitWeakCell visits the cell's value without treating it as a strong
// root. The weak next link is maintained by the collector and skipped.
func (v *MarkingVisitor[S]) visitWeakCell(t *heapobj.TypeInfo, obj *heapobj.Object) {
	if len(obj.Refs) > heapobj.WeakCellValueSlot {
		v.self.VisitWeakPointer(obj, &obj.Refs[heapobj.WeakCellValueSlot])
	}
}

// visitTransitionArray visits the prototype-transitions slot strongly and
// every transition target weakly: the array is strongly reachable, but a
// target dying must not be kept alive by its transition entry.
func (v *MarkingVisitor[S]) visitTransitionArray(t *heapobj.TypeInfo, obj *heapobj.Object) {
	for i := range obj.Refs {
		if i == heapobj.TransitionPrototypeSlot {
			v.self.VisitPointer(obj, &obj.Refs[i])
		} else {
			v.self.VisitWeakPointer(obj, &obj.Refs[i])
		}
	}
}

// visitCode walks the code object's header slots, then its relocation
// table. Embedded objects, code targets, cell targets, and debug targets
// are strong; position-independent and runtime-only entries are skipped.
// The weak next-code link (obj.Next) is deliberately not visited.
func (v *MarkingVisitor[S]) visitCode(t *heapobj.TypeInfo, obj *heapobj.Object) {
	for i := range obj.Refs {
		v.self.VisitPointer(obj, &obj.Refs[i])
	}
	for i := range obj.Reloc {
		entry := &obj.Reloc[i]
		switch entry.Kind {
		case heapobj.RelocEmbeddedObject:
			v.self.VisitEmbeddedObject(obj, entry)
		case heapobj.RelocCodeTarget:
			v.self.VisitCodeTarget(obj, entry)
		case heapobj.RelocCellTarget:
			v.self.VisitCellTarget(obj, entry)
		case heapobj.RelocDebugTarget:
			v.self.VisitDebugTarget(obj, entry)
		case heapobj.RelocExternalReference, heapobj.RelocInternalReference, heapobj.RelocRuntimeEntry:
			// Not heap references.
		}
	}
}

// visitWithCodeEntry walks the body generically, then hands the code-entry
// slot to the strategy. Functions and shared function info keep their code
// reference outside the ordinary body slots because code liveness follows
// different rules (flushing, aging).
func (v *MarkingVisitor[S]) visitWithCodeEntry(t *heapobj.TypeInfo, obj *heapobj.Object) {
	VisitFlexibleBody(v.self, t, obj)
	if obj.Code != nil {
		v.self.VisitCodeEntry(obj, &obj.Code)
	}
}

// visitNativeContext visits the leading slots strongly and the trailing
// weak window (optimized-code list, next context link) weakly.
func (v *MarkingVisitor[S]) visitNativeContext(t *heapobj.TypeInfo, obj *heapobj.Object) {
	strong := len(obj.Refs) - heapobj.NativeContextWeakTail
	if strong < 0 {
		strong = len(obj.Refs)
	}
	for i := 0; i < strong; i++ {
		v.self.VisitPointer(obj, &obj.Refs[i])
	}
	for i := strong; i < len(obj.Refs); i++ {
		v.self.VisitWeakPointer(obj, &obj.Refs[i])
	}
}

// visitWeakCollection visits the backing table weakly and everything else
// strongly. Entry liveness is established by the collector's ephemeron
// processing, not by this walk.
func (v *MarkingVisitor[S]) visitWeakCollection(t *heapobj.TypeInfo, obj *heapobj.Object) {
	for i := range obj.Refs {
		if i == heapobj.WeakCollectionTableSlot {
			v.self.VisitWeakPointer(obj, &obj.Refs[i])
		} else {
			v.self.VisitPointer(obj, &obj.Refs[i])
		}
	}
}

// visitAPIObject walks the wrapper generically, then notifies the embedder
// tracer so tracing continues outside this heap's boundary.
func (v *MarkingVisitor[S]) visitAPIObject(t *heapobj.TypeInfo, obj *heapobj.Object) {
	VisitFlexibleBody(v.self, t, obj)
	if v.tracer != nil && v.tracer.InUse() {
		v.tracer.TraceWrapper(obj)
	}
}

// visitMapObject marks map contents, treating the transitions slot weakly
// even though the map itself is strongly reachable.
func (v *MarkingVisitor[S]) visitMapObject(t *heapobj.TypeInfo, obj *heapobj.Object) {
	for i := range obj.Refs {
		if i == heapobj.MapTransitionsSlot {
			v.self.VisitWeakPointer(obj, &obj.Refs[i])
		} else {
			v.self.VisitPointer(obj, &obj.Refs[i])
		}
	}
}
