package atomik

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Width-2 operations, word-emulated like atomic_ops8.go. The location is
// at least 2-byte aligned within the cell, so the halfword never
// straddles its containing 32-bit word.

//go:nosplit
func word16(addr unsafe.Pointer) (*uint32, uint) {
	word := (*uint32)(unsafe.Pointer(uintptr(addr) &^ 3))
	shift := (uintptr(addr) & 3) * 8
	if cpu.IsBigEndian {
		shift = 16 - shift
	}
	return word, uint(shift)
}

//go:nosplit
func load16[T any](addr *T, order Ordering) T {
	word, shift := word16(unsafe.Pointer(addr))
	var w uint32
	if order == Relaxed {
		w = relaxedLoad32(word)
	} else {
		w = atomic.LoadUint32(word)
	}
	h := uint16(w >> shift)
	return *(*T)(unsafe.Pointer(&h))
}

func store16[T any](addr *T, val T, _ Ordering) {
	word, shift := word16(unsafe.Pointer(addr))
	des := uint32(*(*uint16)(unsafe.Pointer(&val))) << shift
	mask := uint32(0xffff) << shift
	for {
		w := atomic.LoadUint32(word)
		if atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
			return
		}
	}
}

func swap16[T any](addr *T, val T, _ Ordering) T {
	word, shift := word16(unsafe.Pointer(addr))
	des := uint32(*(*uint16)(unsafe.Pointer(&val))) << shift
	mask := uint32(0xffff) << shift
	for {
		w := atomic.LoadUint32(word)
		if atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
			h := uint16((w & mask) >> shift)
			return *(*T)(unsafe.Pointer(&h))
		}
	}
}

func cas16[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	word, shift := word16(unsafe.Pointer(addr))
	exp := uint32(*(*uint16)(unsafe.Pointer(&old))) << shift
	des := uint32(*(*uint16)(unsafe.Pointer(&new))) << shift
	mask := uint32(0xffff) << shift
	for {
		w := atomic.LoadUint32(word)
		if w&mask != exp {
			h := uint16((w & mask) >> shift)
			return *(*T)(unsafe.Pointer(&h)), false
		}
		if atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
			return old, true
		}
	}
}

func casWeak16[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	word, shift := word16(unsafe.Pointer(addr))
	exp := uint32(*(*uint16)(unsafe.Pointer(&old))) << shift
	des := uint32(*(*uint16)(unsafe.Pointer(&new))) << shift
	mask := uint32(0xffff) << shift
	w := atomic.LoadUint32(word)
	if w&mask == exp && atomic.CompareAndSwapUint32(word, w, w&^mask|des) {
		return old, true
	}
	h := uint16((w & mask) >> shift)
	return *(*T)(unsafe.Pointer(&h)), false
}
