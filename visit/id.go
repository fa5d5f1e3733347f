// ABOUTME: Visitor-id enumeration and the pure assignment function mapping shapes to ids
// ABOUTME: Plain-shape categories map through a size formula onto contiguous specialized ranges

// Package visit implements the heap-object traversal and dispatch engine:
// visitor-id assignment, atomically-stored dispatch tables, fixed and
// flexible body traversal strategies, the static new-space and marking
// visitors, a dynamic visitor with default per-category behavior, and
// weak-list pruning.
package visit

import (
	"fmt"

	"github.com/prateek/gcvisit/heapobj"
)

// VisitorId selects an object's traversal strategy. Every id fits in one
// byte; ids for size-specialized plain shapes form contiguous ranges
// ordered by increasing word count.
type VisitorId int

const (
	IdAllocationSite VisitorId = iota
	IdByteArray
	IdBytecodeArray
	IdCell
	IdCode
	IdConsString

	// Specialized data-object ids, one per instance size in words,
	// declared in linear order without holes so an id can be computed
	// from a size, the base id, and the generic id.
	IdDataObject2
	IdDataObject3
	IdDataObject4
	IdDataObject5
	IdDataObject6
	IdDataObject7
	IdDataObject8
	IdDataObjectGeneric

	IdFixedArray
	IdFixedDoubleArray
	IdFixedTypedArray
	IdFreeSpace
	IdJSAPIObject
	IdJSArrayBuffer
	IdJSFunction

	IdJSObject2
	IdJSObject3
	IdJSObject4
	IdJSObject5
	IdJSObject6
	IdJSObject7
	IdJSObject8
	IdJSObjectGeneric

	IdJSRegExp
	IdJSWeakCollection
	IdMap
	IdNativeContext
	IdOddball
	IdPropertyCell
	IdSeqOneByteString
	IdSeqTwoByteString
	IdSharedFunctionInfo
	IdShortcutCandidate
	IdSlicedString
	IdSmallOrderedHashMap
	IdSmallOrderedHashSet

	IdStruct2
	IdStruct3
	IdStruct4
	IdStruct5
	IdStruct6
	IdStruct7
	IdStruct8
	IdStructGeneric

	IdSymbol
	IdThinString
	IdTransitionArray
	IdWeakCell

	IdCount
)

// Bounds of the size-specialized ranges, in words.
const (
	MinSpecializedWords = 2
	MaxSpecializedWords = 8
)

func init() {
	// Visitor ids must fit in one byte.
	if IdCount > 256 {
		panic(fmt.Sprintf("visit: %d visitor ids exceed the one-byte limit", int(IdCount)))
	}
}

// ForSize computes the specialized visitor id for a plain shape of the
// given instance size. Sizes of maxWords words or fewer (and at least
// MinSpecializedWords) map onto base + (words - MinSpecializedWords);
// anything outside that range, or any shape with unboxed inline fields,
// maps to the generic id. The specialized fast path assumes every inline
// word is itself a reference, which does not hold for unboxed data.
func ForSize(base, generic VisitorId, maxWords, instanceSize int, hasUnboxedFields bool) VisitorId {
	if hasUnboxedFields {
		return generic
	}
	words := instanceSize / heapobj.WordSize
	if words >= MinSpecializedWords && words <= maxWords {
		return base + VisitorId(words-MinSpecializedWords)
	}
	return generic
}

// AssignId determines which visitor should be used for an object of the
// given shape. It is pure and allocation-free; it runs once per object
// visited. An unknown tag is a configuration bug and panics.
func AssignId(tag heapobj.TypeTag, instanceSize int, hasUnboxedFields bool) VisitorId {
	switch tag {
	case heapobj.TagDataObject:
		return ForSize(IdDataObject2, IdDataObjectGeneric, MaxSpecializedWords, instanceSize, hasUnboxedFields)
	case heapobj.TagJSObject:
		return ForSize(IdJSObject2, IdJSObjectGeneric, MaxSpecializedWords, instanceSize, hasUnboxedFields)
	case heapobj.TagStruct:
		return ForSize(IdStruct2, IdStructGeneric, MaxSpecializedWords, instanceSize, hasUnboxedFields)
	case heapobj.TagAllocationSite:
		return IdAllocationSite
	case heapobj.TagByteArray:
		return IdByteArray
	case heapobj.TagBytecodeArray:
		return IdBytecodeArray
	case heapobj.TagCell:
		return IdCell
	case heapobj.TagCode:
		return IdCode
	case heapobj.TagConsString:
		return IdConsString
	case heapobj.TagFixedArray:
		return IdFixedArray
	case heapobj.TagFixedDoubleArray:
		return IdFixedDoubleArray
	case heapobj.TagFixedTypedArray:
		return IdFixedTypedArray
	case heapobj.TagFreeSpace:
		return IdFreeSpace
	case heapobj.TagJSAPIObject:
		return IdJSAPIObject
	case heapobj.TagJSArrayBuffer:
		return IdJSArrayBuffer
	case heapobj.TagJSFunction:
		return IdJSFunction
	case heapobj.TagJSRegExp:
		return IdJSRegExp
	case heapobj.TagJSWeakCollection:
		return IdJSWeakCollection
	case heapobj.TagMap:
		return IdMap
	case heapobj.TagNativeContext:
		return IdNativeContext
	case heapobj.TagOddball:
		return IdOddball
	case heapobj.TagPropertyCell:
		return IdPropertyCell
	case heapobj.TagSeqOneByteString:
		return IdSeqOneByteString
	case heapobj.TagSeqTwoByteString:
		return IdSeqTwoByteString
	case heapobj.TagSharedFunctionInfo:
		return IdSharedFunctionInfo
	case heapobj.TagShortcutCandidate:
		return IdShortcutCandidate
	case heapobj.TagSlicedString:
		return IdSlicedString
	case heapobj.TagSmallOrderedHashMap:
		return IdSmallOrderedHashMap
	case heapobj.TagSmallOrderedHashSet:
		return IdSmallOrderedHashSet
	case heapobj.TagSymbol:
		return IdSymbol
	case heapobj.TagThinString:
		return IdThinString
	case heapobj.TagTransitionArray:
		return IdTransitionArray
	case heapobj.TagWeakCell:
		return IdWeakCell
	}
	panic(fmt.Sprintf("visit: no visitor id for type tag %d", int(tag)))
}

// AssignIdForType determines the visitor id for an object described by t.
func AssignIdForType(t *heapobj.TypeInfo) VisitorId {
	return AssignId(t.Tag, t.InstanceSize, t.HasUnboxedFields)
}

// String returns the id's name.
func (id VisitorId) String() string {
	switch {
	case id >= IdDataObject2 && id < IdDataObjectGeneric:
		return fmt.Sprintf("DataObject%d", MinSpecializedWords+int(id-IdDataObject2))
	case id >= IdJSObject2 && id < IdJSObjectGeneric:
		return fmt.Sprintf("JSObject%d", MinSpecializedWords+int(id-IdJSObject2))
	case id >= IdStruct2 && id < IdStructGeneric:
		return fmt.Sprintf("Struct%d", MinSpecializedWords+int(id-IdStruct2))
	}
	switch id {
	case IdAllocationSite:
		return "AllocationSite"
	case IdByteArray:
		return "ByteArray"
	case IdBytecodeArray:
		return "BytecodeArray"
	case IdCell:
		return "Cell"
	case IdCode:
		return "Code"
	case IdConsString:
		return "ConsString"
	case IdDataObjectGeneric:
		return "DataObjectGeneric"
	case IdFixedArray:
		return "FixedArray"
	case IdFixedDoubleArray:
		return "FixedDoubleArray"
	case IdFixedTypedArray:
		return "FixedTypedArray"
	case IdFreeSpace:
		return "FreeSpace"
	case IdJSAPIObject:
		return "JSAPIObject"
	case IdJSArrayBuffer:
		return "JSArrayBuffer"
	case IdJSFunction:
		return "JSFunction"
	case IdJSObjectGeneric:
		return "JSObjectGeneric"
	case IdJSRegExp:
		return "JSRegExp"
	case IdJSWeakCollection:
		return "JSWeakCollection"
	case IdMap:
		return "Map"
	case IdNativeContext:
		return "NativeContext"
	case IdOddball:
		return "Oddball"
	case IdPropertyCell:
		return "PropertyCell"
	case IdSeqOneByteString:
		return "SeqOneByteString"
	case IdSeqTwoByteString:
		return "SeqTwoByteString"
	case IdSharedFunctionInfo:
		return "SharedFunctionInfo"
	case IdShortcutCandidate:
		return "ShortcutCandidate"
	case IdSlicedString:
		return "SlicedString"
	case IdSmallOrderedHashMap:
		return "SmallOrderedHashMap"
	case IdSmallOrderedHashSet:
		return "SmallOrderedHashSet"
	case IdStructGeneric:
		return "StructGeneric"
	case IdSymbol:
		return "Symbol"
	case IdThinString:
		return "ThinString"
	case IdTransitionArray:
		return "TransitionArray"
	case IdWeakCell:
		return "WeakCell"
	}
	return fmt.Sprintf("VisitorId(%d)", int(id))
}
