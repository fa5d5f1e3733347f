// ABOUTME: Body descriptor capability describing an object's size and reference-slot layout
// ABOUTME: Provides the stock descriptors for pointer-only, mixed, and data-only shapes

package heapobj

// SlotVisitor is the per-slot primitive a body descriptor invokes while
// enumerating an object's reference slots.
type SlotVisitor interface {
	// VisitPointer is called exactly once per declared reference slot.
	// The callback may rewrite the slot through the given address.
	VisitPointer(host *Object, slot *Ref)
}

// BodyDescriptor describes a shape's size and reference-slot layout.
//
// IterateBody must invoke the visitor exactly once per declared reference
// slot, cover no address outside [object, object+size), and enumerate in
// the same order on every call over an unmodified object.
type BodyDescriptor interface {
	// SizeOf computes the object's size in bytes.
	SizeOf(t *TypeInfo, obj *Object) int

	// IterateBody enumerates the object's reference slots within the
	// given size.
	IterateBody(t *TypeInfo, obj *Object, size int, v SlotVisitor)
}

// FixedBodyDescriptor is a BodyDescriptor for shapes whose size is a
// per-type constant.
type FixedBodyDescriptor interface {
	BodyDescriptor
	FixedSize() int
}

// FixedPointerBody describes a fixed-size shape whose body slots are all
// tagged references.
type FixedPointerBody struct {
	Size int // Instance size in bytes
}

func (b FixedPointerBody) FixedSize() int { return b.Size }

func (b FixedPointerBody) SizeOf(t *TypeInfo, obj *Object) int { return b.Size }

func (b FixedPointerBody) IterateBody(t *TypeInfo, obj *Object, size int, v SlotVisitor) {
	for i := range obj.Refs {
		v.VisitPointer(obj, &obj.Refs[i])
	}
}

// FlexPointerBody describes a variable-size shape whose body slots are all
// tagged references (fixed arrays, contexts, structs without raw fields).
type FlexPointerBody struct{}

func (FlexPointerBody) SizeOf(t *TypeInfo, obj *Object) int {
	if t.InstanceSize > 0 {
		return t.InstanceSize
	}
	return obj.ComputedSize()
}

func (FlexPointerBody) IterateBody(t *TypeInfo, obj *Object, size int, v SlotVisitor) {
	for i := range obj.Refs {
		v.VisitPointer(obj, &obj.Refs[i])
	}
}

// MixedBody describes a shape holding a reference-slot prefix followed by
// raw payload words (objects with unboxed inline fields). Only the
// reference prefix is enumerated; the raw words are never treated as
// references.
type MixedBody struct{}

func (MixedBody) SizeOf(t *TypeInfo, obj *Object) int {
	if t.InstanceSize > 0 {
		return t.InstanceSize
	}
	return obj.ComputedSize()
}

func (MixedBody) IterateBody(t *TypeInfo, obj *Object, size int, v SlotVisitor) {
	for i := range obj.Refs {
		v.VisitPointer(obj, &obj.Refs[i])
	}
}

// DataOnlyBody describes a shape with no reference slots at all (byte
// arrays, sequential strings, free space). Size is derived from the raw
// payload when the type has no fixed instance size.
type DataOnlyBody struct{}

func (DataOnlyBody) SizeOf(t *TypeInfo, obj *Object) int {
	if t.InstanceSize > 0 {
		return t.InstanceSize
	}
	return obj.ComputedSize()
}

func (DataOnlyBody) IterateBody(t *TypeInfo, obj *Object, size int, v SlotVisitor) {
	// No reference slots.
}
