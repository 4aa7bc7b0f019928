package atomik

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Width-1 operations. Go has no native byte-wide atomics, so the byte is
// operated on through the aligned 32-bit word containing it, splicing
// the target bits with a CAS and leaving the neighbor bits untouched.
// The cell's storage is 8-byte aligned and its footprint is rounded up
// to 8 bytes, so the containing word never leaves cell-owned memory.

// word8 returns the aligned word containing addr and the bit offset of
// the byte within it.
//
//go:nosplit
func word8(addr unsafe.Pointer) (*uint32, uint) {
	word := (*uint32)(unsafe.Pointer(uintptr(addr) &^ 3))
	shift := (uintptr(addr) & 3) * 8
	if cpu.IsBigEndian {
		shift = 24 - shift
	}
	return word, uint(shift)
}

//go:nosplit
func load8[T any](addr *T, order Ordering) T {
	word, shift := word8(unsafe.Pointer(addr))
	var w uint32
	if order == Relaxed {
		w = relaxedLoad32(word)
	} else {
		w = atomic.LoadUint32(word)
	}
	b := uint8(w >> shift)
	return *(*T)(unsafe.Pointer(&b))
}

func store8[T any](addr *T, val T, _ Ordering) {
	word, shift := word8(unsafe.Pointer(addr))
	des := uint32(*(*uint8)(unsafe.Pointer(&val))) << shift
	mask := uint32(0xff) << shift
	for {
		w := atomic.LoadUint32(word)
		if atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
			return
		}
	}
}

func swap8[T any](addr *T, val T, _ Ordering) T {
	word, shift := word8(unsafe.Pointer(addr))
	des := uint32(*(*uint8)(unsafe.Pointer(&val))) << shift
	mask := uint32(0xff) << shift
	for {
		w := atomic.LoadUint32(word)
		if atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
			b := uint8((w & mask) >> shift)
			return *(*T)(unsafe.Pointer(&b))
		}
	}
}

func cas8[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	word, shift := word8(unsafe.Pointer(addr))
	exp := uint32(*(*uint8)(unsafe.Pointer(&old))) << shift
	des := uint32(*(*uint8)(unsafe.Pointer(&new))) << shift
	mask := uint32(0xff) << shift
	for {
		w := atomic.LoadUint32(word)
		if w&mask != exp {
			b := uint8((w & mask) >> shift)
			return *(*T)(unsafe.Pointer(&b)), false
		}
		if atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
			return old, true
		}
		// neighbor bits raced while the byte itself still matched
	}
}

// casWeak8 makes a single word-CAS attempt; interference on neighbor
// bits surfaces as a spurious failure.
func casWeak8[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	word, shift := word8(unsafe.Pointer(addr))
	exp := uint32(*(*uint8)(unsafe.Pointer(&old))) << shift
	des := uint32(*(*uint8)(unsafe.Pointer(&new))) << shift
	mask := uint32(0xff) << shift
	w := atomic.LoadUint32(word)
	if w&mask == exp && atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
		return old, true
	}
	b := uint8((w & mask) >> shift)
	return *(*T)(unsafe.Pointer(&b)), false
}
