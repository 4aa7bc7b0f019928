package atomik

import (
	"sync/atomic"
	"unsafe"
)

// Width-4 operations, see atomic_ops64.go.

//go:nosplit
func load32[T any](addr *T, order Ordering) T {
	p := (*uint32)(unsafe.Pointer(addr))
	var u uint32
	if order == Relaxed {
		u = relaxedLoad32(p)
	} else {
		u = atomic.LoadUint32(p)
	}
	return *(*T)(unsafe.Pointer(&u))
}

//go:nosplit
func store32[T any](addr *T, val T, order Ordering) {
	p := (*uint32)(unsafe.Pointer(addr))
	u := *(*uint32)(unsafe.Pointer(&val))
	if order == Relaxed {
		relaxedStore32(p, u)
	} else {
		atomic.StoreUint32(p, u)
	}
}

//go:nosplit
func swap32[T any](addr *T, val T, _ Ordering) T {
	u := atomic.SwapUint32((*uint32)(unsafe.Pointer(addr)), *(*uint32)(unsafe.Pointer(&val)))
	return *(*T)(unsafe.Pointer(&u))
}

func cas32[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	p := (*uint32)(unsafe.Pointer(addr))
	exp := *(*uint32)(unsafe.Pointer(&old))
	des := *(*uint32)(unsafe.Pointer(&new))
	for {
		cur := atomic.LoadUint32(p)
		if cur != exp {
			return *(*T)(unsafe.Pointer(&cur)), false
		}
		if atomic.CompareAndSwapUint32(p, exp, des) {
			return old, true
		}
	}
}

func casWeak32[T any](addr *T, old, new T, _, _ Ordering) (T, bool) {
	p := (*uint32)(unsafe.Pointer(addr))
	exp := *(*uint32)(unsafe.Pointer(&old))
	des := *(*uint32)(unsafe.Pointer(&new))
	if atomic.CompareAndSwapUint32(p, exp, des) {
		return old, true
	}
	cur := atomic.LoadUint32(p)
	return *(*T)(unsafe.Pointer(&cur)), false
}
