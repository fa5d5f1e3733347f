// ABOUTME: Type descriptors consumed by the traversal engine
// ABOUTME: Defines TypeTag, the closed shape enumeration, and TypeInfo, the per-type descriptor

// Package heapobj defines the object-model contract the traversal engine
// consumes: type descriptors, heap objects with header and body slots,
// body descriptors describing size and reference-slot layout, relocation
// entries for code objects, and the retainer and tracer hooks supplied by
// the surrounding collector.
package heapobj

// WordSize is the size of a tagged reference slot in bytes. It is fixed by
// the object-model contract rather than derived from the host platform so
// visitor-id assignment is deterministic everywhere.
const WordSize = 8

// TypeTag identifies an object's shape category. The enumeration is
// closed: the traversal engine assigns exactly one visitor id per tag (or
// a size-specialized id for the plain-shape tags) and panics on anything
// outside it.
type TypeTag int

const (
	TagAllocationSite TypeTag = iota
	TagByteArray
	TagBytecodeArray
	TagCell
	TagCode
	TagConsString
	TagDataObject
	TagFixedArray
	TagFixedDoubleArray
	TagFixedTypedArray
	TagFreeSpace
	TagJSAPIObject
	TagJSArrayBuffer
	TagJSFunction
	TagJSObject
	TagJSRegExp
	TagJSWeakCollection
	TagMap
	TagNativeContext
	TagOddball
	TagPropertyCell
	TagSeqOneByteString
	TagSeqTwoByteString
	TagSharedFunctionInfo
	TagShortcutCandidate
	TagSlicedString
	TagSmallOrderedHashMap
	TagSmallOrderedHashSet
	TagStruct
	TagSymbol
	TagThinString
	TagTransitionArray
	TagWeakCell

	TagCount
)

var tagNames = [TagCount]string{
	"AllocationSite", "ByteArray", "BytecodeArray", "Cell", "Code",
	"ConsString", "DataObject", "FixedArray", "FixedDoubleArray",
	"FixedTypedArray", "FreeSpace", "JSAPIObject", "JSArrayBuffer",
	"JSFunction", "JSObject", "JSRegExp", "JSWeakCollection", "Map",
	"NativeContext", "Oddball", "PropertyCell", "SeqOneByteString",
	"SeqTwoByteString", "SharedFunctionInfo", "ShortcutCandidate",
	"SlicedString", "SmallOrderedHashMap", "SmallOrderedHashSet", "Struct",
	"Symbol", "ThinString", "TransitionArray", "WeakCell",
}

// String returns the tag's shape category name.
func (t TypeTag) String() string {
	if t < 0 || t >= TagCount {
		return "TypeTag(invalid)"
	}
	return tagNames[t]
}

// TypeInfo is the per-type descriptor the engine reads off an object's
// header. It plays the role of the object's map: the traversal engine
// never inspects an object without going through its TypeInfo.
type TypeInfo struct {
	Tag  TypeTag // Shape category
	Name string  // Diagnostic name (e.g. "FixedArray", "Point")

	// InstanceSize is the object's size in bytes for fixed shapes, or 0
	// when the size depends on the individual object and must be computed
	// by the body descriptor.
	InstanceSize int

	// HasUnboxedFields is set when raw (non-reference) data is embedded
	// between the object's inline fields, so a walk that treats every
	// inline word as a reference would misread the object.
	HasUnboxedFields bool

	// Body describes the object's size and reference-slot layout.
	Body BodyDescriptor
}

// Slot layout conventions fixed by the object model. The marking visitor's
// category overrides rely on them.
const (
	// WeakCellValueSlot is the body slot of a weak cell holding its
	// weakly-referenced value.
	WeakCellValueSlot = 0

	// TransitionPrototypeSlot is the one strongly-visited body slot of a
	// transition array; every later slot is a weak transition target.
	TransitionPrototypeSlot = 0

	// WeakCollectionTableSlot is the weakly-visited backing-table slot of
	// a weak collection.
	WeakCollectionTableSlot = 0

	// MapTransitionsSlot is the weakly-visited transitions slot of a map
	// object.
	MapTransitionsSlot = 0

	// NativeContextWeakTail is the number of trailing body slots of a
	// native context holding weak links (optimized-code list, next
	// context link).
	NativeContextWeakTail = 2
)
