// ABOUTME: Dynamic (virtually dispatched) visitor alternative to the static dispatch tables
// ABOUTME: Defaults delegate to the shared body strategies so dispatch style never changes results

package visit

import (
	"fmt"

	"github.com/prateek/gcvisit/heapobj"
)

// CategoryVisitor is the dynamic-dispatch alternative to the static
// visitors: one overridable method per object category plus the
// ShouldVisit guard and the VisitMapPointer header hook. Embed Defaults to
// inherit body-traversal behavior for every category you do not override.
//
// Every method returns the visited object's size in bytes.
type CategoryVisitor interface {
	// ShouldVisit lets an implementation suppress body traversal (for
	// example, of already-visited objects) without reimplementing every
	// category method. When it returns false the dispatch returns 0
	// without touching the object.
	ShouldVisit(obj *heapobj.Object) bool

	// VisitMapPointer processes the header's type-pointer slot, whose
	// reference-marking rules differ from ordinary body slots.
	VisitMapPointer(host *heapobj.Object, mapSlot **heapobj.TypeInfo)

	VisitAllocationSite(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitByteArray(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitBytecodeArray(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitCell(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitCode(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitConsString(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitDataObject(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitFixedArray(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitFixedDoubleArray(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitFixedTypedArray(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitFreeSpace(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitJSAPIObject(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitJSArrayBuffer(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitJSFunction(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitJSObject(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitJSRegExp(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitJSWeakCollection(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitMap(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitNativeContext(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitOddball(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitPropertyCell(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitSeqOneByteString(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitSeqTwoByteString(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitSharedFunctionInfo(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitShortcutCandidate(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitSlicedString(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitSmallOrderedHashMap(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitSmallOrderedHashSet(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitStruct(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitSymbol(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitThinString(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitTransitionArray(t *heapobj.TypeInfo, obj *heapobj.Object) int
	VisitWeakCell(t *heapobj.TypeInfo, obj *heapobj.Object) int
}

// Visit infers the object's category from its header type descriptor and
// dispatches to the matching method of v.
func Visit(v CategoryVisitor, obj *heapobj.Object) int {
	t := obj.Map
	return VisitWithId(v, AssignIdForType(t), t, obj)
}

// VisitWithId dispatches directly given an already-resolved visitor id.
// The ShouldVisit guard runs first; when it passes, the header's
// type-pointer slot is handed to VisitMapPointer before the category
// method walks the body.
func VisitWithId(v CategoryVisitor, id VisitorId, t *heapobj.TypeInfo, obj *heapobj.Object) int {
	if !v.ShouldVisit(obj) {
		return 0
	}
	v.VisitMapPointer(obj, &obj.Map)
	switch {
	case id >= IdDataObject2 && id <= IdDataObjectGeneric:
		return v.VisitDataObject(t, obj)
	case id >= IdJSObject2 && id <= IdJSObjectGeneric:
		return v.VisitJSObject(t, obj)
	case id >= IdStruct2 && id <= IdStructGeneric:
		return v.VisitStruct(t, obj)
	}
	switch id {
	case IdAllocationSite:
		return v.VisitAllocationSite(t, obj)
	case IdByteArray:
		return v.VisitByteArray(t, obj)
	case IdBytecodeArray:
		return v.VisitBytecodeArray(t, obj)
	case IdCell:
		return v.VisitCell(t, obj)
	case IdCode:
		return v.VisitCode(t, obj)
	case IdConsString:
		return v.VisitConsString(t, obj)
	case IdFixedArray:
		return v.VisitFixedArray(t, obj)
	case IdFixedDoubleArray:
		return v.VisitFixedDoubleArray(t, obj)
	case IdFixedTypedArray:
		return v.VisitFixedTypedArray(t, obj)
	case IdFreeSpace:
		return v.VisitFreeSpace(t, obj)
	case IdJSAPIObject:
		return v.VisitJSAPIObject(t, obj)
	case IdJSArrayBuffer:
		return v.VisitJSArrayBuffer(t, obj)
	case IdJSFunction:
		return v.VisitJSFunction(t, obj)
	case IdJSRegExp:
		return v.VisitJSRegExp(t, obj)
	case IdJSWeakCollection:
		return v.VisitJSWeakCollection(t, obj)
	case IdMap:
		return v.VisitMap(t, obj)
	case IdNativeContext:
		return v.VisitNativeContext(t, obj)
	case IdOddball:
		return v.VisitOddball(t, obj)
	case IdPropertyCell:
		return v.VisitPropertyCell(t, obj)
	case IdSeqOneByteString:
		return v.VisitSeqOneByteString(t, obj)
	case IdSeqTwoByteString:
		return v.VisitSeqTwoByteString(t, obj)
	case IdSharedFunctionInfo:
		return v.VisitSharedFunctionInfo(t, obj)
	case IdShortcutCandidate:
		return v.VisitShortcutCandidate(t, obj)
	case IdSlicedString:
		return v.VisitSlicedString(t, obj)
	case IdSmallOrderedHashMap:
		return v.VisitSmallOrderedHashMap(t, obj)
	case IdSmallOrderedHashSet:
		return v.VisitSmallOrderedHashSet(t, obj)
	case IdSymbol:
		return v.VisitSymbol(t, obj)
	case IdThinString:
		return v.VisitThinString(t, obj)
	case IdTransitionArray:
		return v.VisitTransitionArray(t, obj)
	case IdWeakCell:
		return v.VisitWeakCell(t, obj)
	}
	panic(fmt.Sprintf("visit: dynamic dispatch on invalid id %s", id))
}

// Defaults supplies the default per-category behavior: delegate to the
// same fixed and flexible body-traversal strategies the static visitors
// use, so switching between dispatch styles never changes traversal
// results. Embed it in a concrete visitor and override only the categories
// that need custom handling.
type Defaults struct {
	// Slots receives the per-slot callbacks of the default body walks.
	Slots heapobj.SlotVisitor
}

// ShouldVisit always traverses by default.
func (d *Defaults) ShouldVisit(obj *heapobj.Object) bool { return true }

// VisitMapPointer ignores the header slot by default.
func (d *Defaults) VisitMapPointer(host *heapobj.Object, mapSlot **heapobj.TypeInfo) {}

func (d *Defaults) visitBody(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	if fixed, ok := t.Body.(heapobj.FixedBodyDescriptor); ok {
		return VisitFixedBody(d.Slots, fixed, t, obj)
	}
	return VisitFlexibleBody(d.Slots, t, obj)
}

func (d *Defaults) visitSizeOnly(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return t.Body.SizeOf(t, obj)
}

func (d *Defaults) VisitAllocationSite(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitByteArray(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitSizeOnly(t, obj)
}

func (d *Defaults) VisitBytecodeArray(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitCell(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitCode(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitConsString(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitDataObject(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitSizeOnly(t, obj)
}

func (d *Defaults) VisitFixedArray(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitFixedDoubleArray(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitSizeOnly(t, obj)
}

func (d *Defaults) VisitFixedTypedArray(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitSizeOnly(t, obj)
}

func (d *Defaults) VisitFreeSpace(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitSizeOnly(t, obj)
}

func (d *Defaults) VisitJSAPIObject(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitJSArrayBuffer(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitJSFunction(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitJSObject(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitJSRegExp(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitJSWeakCollection(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitMap(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitNativeContext(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitOddball(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitPropertyCell(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitSeqOneByteString(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitSizeOnly(t, obj)
}

func (d *Defaults) VisitSeqTwoByteString(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitSizeOnly(t, obj)
}

func (d *Defaults) VisitSharedFunctionInfo(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitShortcutCandidate(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	// Shortcut candidates are cons strings the scavenger may shortcut;
	// their traversal is identical.
	return d.VisitConsString(t, obj)
}

func (d *Defaults) VisitSlicedString(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitSmallOrderedHashMap(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitSmallOrderedHashSet(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitStruct(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitSymbol(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitThinString(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitTransitionArray(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}

func (d *Defaults) VisitWeakCell(t *heapobj.TypeInfo, obj *heapobj.Object) int {
	return d.visitBody(t, obj)
}
