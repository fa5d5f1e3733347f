// ABOUTME: Tests for the new-space scavenge visitor
// ABOUTME: Validates returned sizes, slot callbacks, specializations, and unreachable sentinels

package visit

import (
	"testing"

	"github.com/prateek/gcvisit/heapobj"
)

// pointerRecorder records every pointer slot handed to it, in order.
type pointerRecorder struct {
	targets []heapobj.Ref
	slots   []*heapobj.Ref
}

func (r *pointerRecorder) VisitPointer(host *heapobj.Object, slot *heapobj.Ref) {
	r.targets = append(r.targets, *slot)
	r.slots = append(r.slots, slot)
}

func fixedArrayType() *heapobj.TypeInfo {
	return &heapobj.TypeInfo{
		Tag:  heapobj.TagFixedArray,
		Name: "FixedArray",
		Body: heapobj.FlexPointerBody{},
	}
}

func dataObjectType(words int) *heapobj.TypeInfo {
	return &heapobj.TypeInfo{
		Tag:          heapobj.TagDataObject,
		Name:         "DataObject",
		InstanceSize: words * heapobj.WordSize,
		Body:         heapobj.DataOnlyBody{},
	}
}

func TestNewSpaceVisitFixedArray(t *testing.T) {
	rec := &pointerRecorder{}
	v := NewNewSpaceVisitor(rec)

	ti := fixedArrayType()
	child := &heapobj.Object{ID: 2, Map: dataObjectType(2)}
	arr := &heapobj.Object{ID: 1, Map: ti, Refs: []heapobj.Ref{child, nil, child}}

	size := v.IterateBody(ti, arr)
	if want := arr.ComputedSize(); size != want {
		t.Errorf("Expected size %d, got %d", want, size)
	}
	if len(rec.targets) != 3 {
		t.Errorf("Expected 3 slot visits, got %d", len(rec.targets))
	}
}

func TestNewSpaceDataObjectSpecializedSize(t *testing.T) {
	rec := &pointerRecorder{}
	v := NewNewSpaceVisitor(rec)

	for words := MinSpecializedWords; words <= MaxSpecializedWords; words++ {
		ti := dataObjectType(words)
		obj := &heapobj.Object{ID: heapobj.ObjID(words), Map: ti}
		size := v.IterateBody(ti, obj)
		if size != words*heapobj.WordSize {
			t.Errorf("Expected %d bytes for %d-word data object, got %d", words*heapobj.WordSize, words, size)
		}
	}
	if len(rec.targets) != 0 {
		t.Errorf("Expected no slot visits for data objects, got %d", len(rec.targets))
	}
}

func TestNewSpaceDataObjectGenericSize(t *testing.T) {
	rec := &pointerRecorder{}
	v := NewNewSpaceVisitor(rec)

	ti := dataObjectType(MaxSpecializedWords + 4)
	obj := &heapobj.Object{ID: 1, Map: ti}
	if size := v.IterateBody(ti, obj); size != (MaxSpecializedWords+4)*heapobj.WordSize {
		t.Errorf("Expected generic data visitor to read the instance size, got %d", size)
	}
}

func TestNewSpaceRawShapesReturnSizeWithoutVisits(t *testing.T) {
	rec := &pointerRecorder{}
	v := NewNewSpaceVisitor(rec)

	ti := &heapobj.TypeInfo{
		Tag:  heapobj.TagSeqOneByteString,
		Name: "SeqOneByteString",
		Body: heapobj.DataOnlyBody{},
	}
	str := &heapobj.Object{ID: 1, Map: ti, Words: make([]uintptr, 4)}

	size := v.IterateBody(ti, str)
	if want := str.ComputedSize(); size != want {
		t.Errorf("Expected size %d, got %d", want, size)
	}
	if len(rec.targets) != 0 {
		t.Errorf("Expected no slot visits for a sequential string, got %d", len(rec.targets))
	}
}

func TestNewSpaceLinearCursorAdvance(t *testing.T) {
	// A scavenge pass walks a packed region by advancing a cursor by each
	// returned size; the sizes must sum to exactly the region's extent.
	rec := &pointerRecorder{}
	v := NewNewSpaceVisitor(rec)

	region := []*heapobj.Object{
		{ID: 1, Map: dataObjectType(2)},
		{ID: 2, Map: fixedArrayType(), Refs: make([]heapobj.Ref, 3)},
		{ID: 3, Map: dataObjectType(5)},
	}

	total := 0
	for _, obj := range region {
		total += v.IterateBody(obj.Map, obj)
	}

	want := 2*heapobj.WordSize + (1+3)*heapobj.WordSize + 5*heapobj.WordSize
	if total != want {
		t.Errorf("Expected cursor to advance %d bytes, got %d", want, total)
	}
}

func TestNewSpaceCodeObjectIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected fatal sentinel for a code object in new space")
		}
	}()

	rec := &pointerRecorder{}
	v := NewNewSpaceVisitor(rec)

	ti := &heapobj.TypeInfo{Tag: heapobj.TagCode, Name: "Code", Body: heapobj.FlexPointerBody{}}
	v.IterateBody(ti, &heapobj.Object{ID: 1, Map: ti})
}

func TestNewSpaceTableCopyFrom(t *testing.T) {
	recA := &pointerRecorder{}
	recB := &pointerRecorder{}
	a := NewNewSpaceVisitor(recA)
	b := NewNewSpaceVisitor(recB)

	b.Table().CopyFrom(a.Table())

	// After duplication, b dispatches through a's entries: slot callbacks
	// land on recA.
	ti := fixedArrayType()
	arr := &heapobj.Object{ID: 1, Map: ti, Refs: make([]heapobj.Ref, 2)}
	b.IterateBody(ti, arr)

	if len(recA.targets) != 2 {
		t.Errorf("Expected copied entries to use the source strategy, got %d visits", len(recA.targets))
	}
	if len(recB.targets) != 0 {
		t.Errorf("Expected destination strategy to be unused, got %d visits", len(recB.targets))
	}
}
