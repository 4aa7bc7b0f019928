package atomik

import (
	"reflect"
	"sync/atomic"
	"unsafe"
)

// The generic cell deliberately has no arithmetic methods: and/or/add/
// min only mean something for integers, unlike the purely bit-pattern
// load/store/swap/CAS surface. The fetch operations are therefore
// package-level functions over closed constraint sets.

// Integer is the closed set of types eligible for the arithmetic fetch
// operations. Add and Sub wrap with two's-complement/modulo semantics;
// Min and Max use the natural signed or unsigned order of T.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Logical additionally admits bool for the bitwise fetch operations,
// which act on raw bit patterns.
type Logical interface {
	Integer | ~bool
}

// bitsOf zero-extends the bit pattern of v into a uint64.
//
//go:nosplit
func bitsOf[T any](v T) uint64 {
	switch unsafe.Sizeof(v) {
	case 1:
		return uint64(*(*uint8)(unsafe.Pointer(&v)))
	case 2:
		return uint64(*(*uint16)(unsafe.Pointer(&v)))
	case 4:
		return uint64(*(*uint32)(unsafe.Pointer(&v)))
	default:
		return *(*uint64)(unsafe.Pointer(&v))
	}
}

// fromBits truncates u to T's width and reinterprets it as T.
//
//go:nosplit
func fromBits[T any](u uint64) T {
	var v T
	switch unsafe.Sizeof(v) {
	case 1:
		b := uint8(u)
		return *(*T)(unsafe.Pointer(&b))
	case 2:
		h := uint16(u)
		return *(*T)(unsafe.Pointer(&h))
	case 4:
		w := uint32(u)
		return *(*T)(unsafe.Pointer(&w))
	default:
		return *(*T)(unsafe.Pointer(&u))
	}
}

// fetchBitop retries op over the raw bit pattern until the exchange
// lands, returning the previous value.
func fetchBitop[T Logical](a *Atomic[T], v T, order Ordering, op func(old, operand uint64) uint64) T {
	order.checkRMW()
	operand := bitsOf(v)
	cur := a.Load(Relaxed)
	for {
		next := fromBits[T](op(bitsOf(cur), operand))
		prev, swapped := a.CompareExchangeWeak(cur, next, order, Relaxed)
		if swapped {
			return prev
		}
		cur = prev
	}
}

// FetchAnd atomically replaces the value with its bitwise AND with v
// and returns the previous value. All orderings are valid.
func FetchAnd[T Logical](a *Atomic[T], v T, order Ordering) T {
	return fetchBitop(a, v, order, func(old, operand uint64) uint64 {
		return old & operand
	})
}

// FetchOr atomically replaces the value with its bitwise OR with v and
// returns the previous value.
func FetchOr[T Logical](a *Atomic[T], v T, order Ordering) T {
	return fetchBitop(a, v, order, func(old, operand uint64) uint64 {
		return old | operand
	})
}

// FetchXor atomically replaces the value with its bitwise XOR with v
// and returns the previous value.
func FetchXor[T Logical](a *Atomic[T], v T, order Ordering) T {
	return fetchBitop(a, v, order, func(old, operand uint64) uint64 {
		return old ^ operand
	})
}

// FetchNand atomically replaces the value with the complement of its
// bitwise AND with v and returns the previous value. For bool types the
// result is the logical NAND, so the stored byte stays a valid bool.
func FetchNand[T Logical](a *Atomic[T], v T, order Ordering) T {
	if isBool[T]() {
		return fetchBitop(a, v, order, func(old, operand uint64) uint64 {
			if old&1 != 0 && operand&1 != 0 {
				return 0
			}
			return 1
		})
	}
	return fetchBitop(a, v, order, func(old, operand uint64) uint64 {
		return ^(old & operand)
	})
}

func isBool[T any]() bool {
	var z T
	return reflect.TypeOf(z).Kind() == reflect.Bool
}

// FetchAdd atomically adds delta, wrapping at T's width, and returns
// the previous value. Full-word widths go through the native add;
// sub-word widths retry a weak compare-exchange.
func FetchAdd[T Integer](a *Atomic[T], delta T, order Ordering) T {
	order.checkRMW()
	switch unsafe.Sizeof(delta) {
	case 4:
		d := uint32(bitsOf(delta))
		return fromBits[T](uint64(atomic.AddUint32((*uint32)(unsafe.Pointer(&a.buf)), d) - d))
	case 8:
		d := bitsOf(delta)
		return fromBits[T](atomic.AddUint64((*uint64)(unsafe.Pointer(&a.buf)), d) - d)
	}
	cur := a.Load(Relaxed)
	for {
		prev, swapped := a.CompareExchangeWeak(cur, cur+delta, order, Relaxed)
		if swapped {
			return prev
		}
		cur = prev
	}
}

// FetchSub atomically subtracts delta, wrapping at T's width, and
// returns the previous value.
func FetchSub[T Integer](a *Atomic[T], delta T, order Ordering) T {
	return FetchAdd(a, -delta, order)
}

// FetchMax atomically replaces the value with the maximum of itself and
// v, returning the previous value. The exchange is attempted even when
// the stored value already wins, so the requested ordering applies to
// the whole read-modify-write on every path.
func FetchMax[T Integer](a *Atomic[T], v T, order Ordering) T {
	order.checkRMW()
	cur := a.Load(Relaxed)
	for {
		next := cur
		if next < v {
			next = v
		}
		prev, swapped := a.CompareExchangeWeak(cur, next, order, Relaxed)
		if swapped {
			return prev
		}
		cur = prev
	}
}

// FetchMin atomically replaces the value with the minimum of itself and
// v, returning the previous value.
func FetchMin[T Integer](a *Atomic[T], v T, order Ordering) T {
	order.checkRMW()
	cur := a.Load(Relaxed)
	for {
		next := cur
		if next > v {
			next = v
		}
		prev, swapped := a.CompareExchangeWeak(cur, next, order, Relaxed)
		if swapped {
			return prev
		}
		cur = prev
	}
}
