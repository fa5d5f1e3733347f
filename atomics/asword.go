// ABOUTME: Type-erased atomic accessors for word-shaped and uint32-shaped locations
// ABOUTME: Reinterprets a same-width typed field as an atomic word to apply cell operations

package atomics

import (
	"sync/atomic"
	"unsafe"
)

// WordShaped constrains the typed fields the word accessors may address.
// The constraint guarantees the location has exactly the width of an
// atomic word.
type WordShaped interface {
	~uintptr
}

// Uint32Shaped constrains the typed fields the 32-bit accessors may
// address.
type Uint32Shaped interface {
	~uint32
}

// AcquireLoadWord loads the word at addr with acquire ordering.
func AcquireLoadWord[T WordShaped](addr *T) T {
	return T(atomic.LoadUintptr((*uintptr)(unsafe.Pointer(addr))))
}

// RelaxedLoadWord loads the word at addr with relaxed ordering.
func RelaxedLoadWord[T WordShaped](addr *T) T {
	return T(atomic.LoadUintptr((*uintptr)(unsafe.Pointer(addr))))
}

// ReleaseStoreWord stores value at addr with release ordering.
func ReleaseStoreWord[T WordShaped](addr *T, value T) {
	atomic.StoreUintptr((*uintptr)(unsafe.Pointer(addr)), uintptr(value))
}

// RelaxedStoreWord stores value at addr with relaxed ordering.
func RelaxedStoreWord[T WordShaped](addr *T, value T) {
	atomic.StoreUintptr((*uintptr)(unsafe.Pointer(addr)), uintptr(value))
}

// CompareAndSwapWord atomically replaces old with new at addr and reports
// whether the swap happened.
func CompareAndSwapWord[T WordShaped](addr *T, old, new T) bool {
	return atomic.CompareAndSwapUintptr((*uintptr)(unsafe.Pointer(addr)), uintptr(old), uintptr(new))
}

// SetBitsWord atomically sets the bits selected by mask to the given value.
// Returns false without writing if the bits are already set as needed,
// avoiding needless contention on the cache line. Panics if bits lie
// outside mask.
func SetBitsWord[T WordShaped](addr *T, bits, mask T) bool {
	if bits&^mask != 0 {
		panic("atomics: SetBitsWord bits outside mask")
	}
	for {
		old := RelaxedLoadWord(addr)
		if old&mask == bits {
			return false
		}
		if CompareAndSwapWord(addr, old, (old&^mask)|bits) {
			return true
		}
	}
}

// AcquireLoadUint32 loads the 32-bit field at addr with acquire ordering.
func AcquireLoadUint32[T Uint32Shaped](addr *T) T {
	return T(atomic.LoadUint32((*uint32)(unsafe.Pointer(addr))))
}

// RelaxedLoadUint32 loads the 32-bit field at addr with relaxed ordering.
func RelaxedLoadUint32[T Uint32Shaped](addr *T) T {
	return T(atomic.LoadUint32((*uint32)(unsafe.Pointer(addr))))
}

// ReleaseStoreUint32 stores value at addr with release ordering.
func ReleaseStoreUint32[T Uint32Shaped](addr *T, value T) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), uint32(value))
}

// CompareAndSwapUint32 atomically replaces old with new at addr and
// reports whether the swap happened.
func CompareAndSwapUint32[T Uint32Shaped](addr *T, old, new T) bool {
	return atomic.CompareAndSwapUint32((*uint32)(unsafe.Pointer(addr)), uint32(old), uint32(new))
}

// SetBitsUint32 atomically sets the bits selected by mask to the given
// value. Returns false without writing if the bits are already set as
// needed. Panics if bits lie outside mask.
func SetBitsUint32[T Uint32Shaped](addr *T, bits, mask T) bool {
	if bits&^mask != 0 {
		panic("atomics: SetBitsUint32 bits outside mask")
	}
	for {
		old := RelaxedLoadUint32(addr)
		if old&mask == bits {
			return false
		}
		if CompareAndSwapUint32(addr, old, (old&^mask)|bits) {
			return true
		}
	}
}
