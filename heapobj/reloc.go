// ABOUTME: Relocation table entries embedded in code objects
// ABOUTME: Distinguishes strong heap references from position-independent and runtime-only entries

package heapobj

// RelocKind classifies a relocation entry of a code object. The marking
// visitor traverses the strong kinds and skips the rest entirely.
type RelocKind int

const (
	// RelocEmbeddedObject is a heap-object reference embedded in code.
	RelocEmbeddedObject RelocKind = iota
	// RelocCodeTarget references another code object.
	RelocCodeTarget
	// RelocCellTarget references a data cell.
	RelocCellTarget
	// RelocDebugTarget references a code object installed for debugging.
	RelocDebugTarget
	// RelocExternalReference is a position-independent address outside the
	// heap; never traversed.
	RelocExternalReference
	// RelocInternalReference is a position-independent address inside the
	// same code object; never traversed.
	RelocInternalReference
	// RelocRuntimeEntry is a runtime-only entry; never traversed.
	RelocRuntimeEntry

	relocKindCount
)

var relocKindNames = [relocKindCount]string{
	"EmbeddedObject", "CodeTarget", "CellTarget", "DebugTarget",
	"ExternalReference", "InternalReference", "RuntimeEntry",
}

// String returns the relocation kind name.
func (k RelocKind) String() string {
	if k < 0 || k >= relocKindCount {
		return "RelocKind(invalid)"
	}
	return relocKindNames[k]
}

// IsStrong reports whether entries of this kind hold a heap reference the
// marking visitor must traverse.
func (k RelocKind) IsStrong() bool {
	switch k {
	case RelocEmbeddedObject, RelocCodeTarget, RelocCellTarget, RelocDebugTarget:
		return true
	}
	return false
}

// RelocEntry is one entry of a code object's relocation table. Strong
// kinds carry a Target reference; the skipped kinds carry only a raw
// address.
type RelocEntry struct {
	Kind   RelocKind
	Target Ref     // Heap reference for strong kinds
	Addr   uintptr // Raw address for position-independent and runtime kinds
}
