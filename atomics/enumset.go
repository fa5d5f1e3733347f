// ABOUTME: Atomic bit set over a closed enumeration no wider than the native word
// ABOUTME: Mutations are CAS retry loops; RemoveAll is a single release store of zero

package atomics

import (
	"fmt"
	"sync/atomic"
)

// WordBits is the number of bits in the native word backing an EnumSet.
const WordBits = 32 << (^uintptr(0) >> 63)

// CheckCapacity panics unless every member of an enumeration whose last
// value is last fits in the word backing an EnumSet. Call it from package
// init so capacity misuse is rejected before any set is touched.
func CheckCapacity(last int) {
	if last < 0 || last >= WordBits {
		panic(fmt.Sprintf("atomics: enum with last value %d does not fit in a %d-bit word", last, WordBits))
	}
}

// EnumSet is an atomic bit set over a closed enumeration E. Members must
// lie in [0, WordBits). Add, Remove, and Intersect are CAS retry loops over
// the whole word, so concurrent mutations linearize; no read ever observes
// a torn bit pattern.
type EnumSet[E ~int] struct {
	bits uintptr
}

func mask[E ~int](e E) uintptr {
	return uintptr(1) << e
}

// Bits returns a snapshot of the underlying word.
func (s *EnumSet[E]) Bits() uintptr {
	return atomic.LoadUintptr(&s.bits)
}

// IsEmpty reports whether no member is present.
func (s *EnumSet[E]) IsEmpty() bool {
	return s.Bits() == 0
}

// Contains reports whether e is present.
func (s *EnumSet[E]) Contains(e E) bool {
	return s.Bits()&mask(e) != 0
}

// ContainsAnyOf reports whether this set and other share any member.
func (s *EnumSet[E]) ContainsAnyOf(other *EnumSet[E]) bool {
	return s.Bits()&other.Bits() != 0
}

// Equal reports whether both sets hold exactly the same members.
func (s *EnumSet[E]) Equal(other *EnumSet[E]) bool {
	return s.Bits() == other.Bits()
}

// Union returns a new, unshared set holding the members of both sets.
func (s *EnumSet[E]) Union(other *EnumSet[E]) *EnumSet[E] {
	return &EnumSet[E]{bits: s.Bits() | other.Bits()}
}

func (s *EnumSet[E]) update(apply func(old uintptr) uintptr) {
	for {
		old := atomic.LoadUintptr(&s.bits)
		if atomic.CompareAndSwapUintptr(&s.bits, old, apply(old)) {
			return
		}
	}
}

// Add inserts e.
func (s *EnumSet[E]) Add(e E) {
	m := mask(e)
	s.update(func(old uintptr) uintptr { return old | m })
}

// AddAll inserts every member of other.
func (s *EnumSet[E]) AddAll(other *EnumSet[E]) {
	m := other.Bits()
	s.update(func(old uintptr) uintptr { return old | m })
}

// Remove deletes e.
func (s *EnumSet[E]) Remove(e E) {
	m := mask(e)
	s.update(func(old uintptr) uintptr { return old &^ m })
}

// Intersect keeps only members also present in other.
func (s *EnumSet[E]) Intersect(other *EnumSet[E]) {
	m := other.Bits()
	s.update(func(old uintptr) uintptr { return old & m })
}

// RemoveAll clears the set with a single release store.
func (s *EnumSet[E]) RemoveAll() {
	atomic.StoreUintptr(&s.bits, 0)
}
