package atomik

import (
	"sync/atomic"
	"unsafe"
)

// Width-8 operations: the location is reinterpreted as *uint64 and all
// work is delegated to sync/atomic. The cell layout guarantees 8-byte
// alignment of the location, so these are valid on 32-bit targets too.
// Together with the other atomic_ops* files this is the only place that
// reinterprets raw bytes; everything above treats the cell as opaque.

//go:nosplit
func load64[T any](addr *T, order Ordering) T {
	p := (*uint64)(unsafe.Pointer(addr))
	var u uint64
	if order == Relaxed {
		u = relaxedLoad64(p)
	} else {
		u = atomic.LoadUint64(p)
	}
	return *(*T)(unsafe.Pointer(&u))
}

//go:nosplit
func store64[T any](addr *T, val T, order Ordering) {
	p := (*uint64)(unsafe.Pointer(addr))
	u := *(*uint64)(unsafe.Pointer(&val))
	if order == Relaxed {
		relaxedStore64(p, u)
	} else {
		atomic.StoreUint64(p, u)
	}
}

//go:nosplit
func swap64[T any](addr *T, val T, _ Ordering) T {
	u := atomic.SwapUint64((*uint64)(unsafe.Pointer(addr)), *(*uint64)(unsafe.Pointer(&val)))
	return *(*T)(unsafe.Pointer(&u))
}

func cas64[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	p := (*uint64)(unsafe.Pointer(addr))
	exp := *(*uint64)(unsafe.Pointer(&old))
	des := *(*uint64)(unsafe.Pointer(&new))
	for {
		cur := atomic.LoadUint64(p)
		if cur != exp {
			return *(*T)(unsafe.Pointer(&cur)), false
		}
		if atomic.CompareAndSwapUint64(p, exp, des) {
			return old, true
		}
	}
}

// casWeak64 makes a single attempt; a failure between the load and the
// CAS is reported as-is even if the value has meanwhile returned to the
// expected bits.
func casWeak64[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	p := (*uint64)(unsafe.Pointer(addr))
	exp := *(*uint64)(unsafe.Pointer(&old))
	des := *(*uint64)(unsafe.Pointer(&new))
	if atomic.CompareAndSwapUint64(p, exp, des) {
		return old, true
	}
	cur := atomic.LoadUint64(p)
	return *(*T)(unsafe.Pointer(&cur)), false
}
