// ABOUTME: Lock-free scalar, bitmask, and pointer cells with documented ordering contracts
// ABOUTME: These cells are the only primitives in this module safe under unsynchronized access

// Package atomics provides the atomic primitive library used by the
// traversal engine: counter cells, relaxed word cells, bitmask cells,
// typed pointer cells, an atomic enum bit set, and type-erased accessors
// for word-shaped memory locations.
//
// Every cell's operations are linearizable with respect to each other on
// the same cell. The documented ordering (acquire/release vs relaxed) is a
// floor, not a ceiling: Go's sync/atomic operations are sequentially
// consistent, which satisfies every contract below. Callers must not rely
// on more ordering than a cell documents.
package atomics

import "sync/atomic"

// Number is a counter cell with acquire/release semantics. Value loads
// with acquire ordering, SetValue stores with release ordering, and
// Increment/Decrement are full read-modify-write operations. Used where
// cross-thread visibility ordering matters.
type Number struct {
	v int64
}

// Value returns the current value with acquire ordering.
func (n *Number) Value() int64 {
	return atomic.LoadInt64(&n.v)
}

// SetValue stores a new value with release ordering.
func (n *Number) SetValue(value int64) {
	atomic.StoreInt64(&n.v, value)
}

// Increment adds delta and returns the value after incrementing.
func (n *Number) Increment(delta int64) int64 {
	return atomic.AddInt64(&n.v, delta)
}

// Decrement subtracts delta and returns the value after decrementing.
func (n *Number) Decrement(delta int64) int64 {
	return atomic.AddInt64(&n.v, -delta)
}

// Word is a relaxed-contract word cell. Callers get atomicity of the
// single field update but no cross-field ordering guarantees. Used for hot
// counters and flags where any interleaving is tolerated.
type Word struct {
	v uintptr
}

// Value returns the current word.
func (w *Word) Value() uintptr {
	return atomic.LoadUintptr(&w.v)
}

// SetValue stores a new word.
func (w *Word) SetValue(value uintptr) {
	atomic.StoreUintptr(&w.v, value)
}

// TrySetValue atomically replaces old with new and reports whether the
// swap happened.
func (w *Word) TrySetValue(old, new uintptr) bool {
	return atomic.CompareAndSwapUintptr(&w.v, old, new)
}

// Flags is a word cell supporting masked bit updates. SetBits is a
// compare-and-swap retry loop, so no update is ever lost under contention;
// it is not wait-free.
type Flags struct {
	v uintptr
}

// Value returns the current flag word with acquire ordering.
func (f *Flags) Value() uintptr {
	return atomic.LoadUintptr(&f.v)
}

// SetValue stores a new flag word with release ordering.
func (f *Flags) SetValue(value uintptr) {
	atomic.StoreUintptr(&f.v, value)
}

// TrySetValue atomically replaces old with new and reports whether the
// swap happened.
func (f *Flags) TrySetValue(old, new uintptr) bool {
	return atomic.CompareAndSwapUintptr(&f.v, old, new)
}

// SetBits replaces the bits selected by mask with the given bits, leaving
// all other bits untouched. Retries until the update lands. Panics if bits
// lie outside mask: that is a caller bug, not a runtime condition.
func (f *Flags) SetBits(bits, mask uintptr) {
	if bits&^mask != 0 {
		panic("atomics: SetBits bits outside mask")
	}
	for {
		old := atomic.LoadUintptr(&f.v)
		new := (old &^ mask) | bits
		if atomic.CompareAndSwapUintptr(&f.v, old, new) {
			return
		}
	}
}

// SetBit sets the single bit at the given position.
func (f *Flags) SetBit(bit int) {
	f.SetBits(uintptr(1)<<bit, uintptr(1)<<bit)
}

// ClearBit clears the single bit at the given position.
func (f *Flags) ClearBit(bit int) {
	f.SetBits(0, uintptr(1)<<bit)
}

// Pointer is a typed pointer cell with acquire/release semantics. It backs
// dispatch-table slots: a concurrent reader observes either the old or the
// new pointer, never a torn value.
type Pointer[T any] struct {
	p atomic.Pointer[T]
}

// Value returns the current pointer with acquire ordering.
func (p *Pointer[T]) Value() *T {
	return p.p.Load()
}

// SetValue stores a new pointer with release ordering.
func (p *Pointer[T]) SetValue(value *T) {
	p.p.Store(value)
}

// TrySetValue atomically replaces old with new and reports whether the
// swap happened.
func (p *Pointer[T]) TrySetValue(old, new *T) bool {
	return p.p.CompareAndSwap(old, new)
}
