// Package atomik provides a generic atomic cell which allows any type T
// to be used as a lock-free atomic value, as long as T's size is one of
// the natively atomic widths: 1, 2, 4 or 8 bytes.
//
// The cell moves raw bit patterns and never interprets them, so T does
// not need to be an integer: a small struct, an enum-like named type or
// a bool all work. Atomicity always bottoms out in sync/atomic; widths
// without a native Go primitive (1 and 2 bytes) are emulated on the
// containing aligned 32-bit word.
//
// With the exception of the Fetch* functions, every operation is
// available for generic T. Bitwise and arithmetic fetch operations make
// sense only for integer-like types and are therefore provided as
// package-level functions over the Integer and Logical constraints.
package atomik

import (
	"strconv"
	"sync/atomic"
	"unsafe"
)

// Atomic is a single-value generic atomic cell.
//
// The zero value holds the zero T and is ready to use. An Atomic must
// not be copied after first use, and types containing Go pointers must
// not be stored in it: the cell bypasses the write barrier.
type Atomic[T any] struct {
	// The zero-length field forces 8-byte alignment of buf on every
	// target and rounds the struct footprint up to 8 bytes, keeping the
	// word-emulation of sub-word cells inside cell-owned storage.
	_   [0]atomic.Uint64
	buf T
}

// New creates a cell holding v.
//
// Go cannot reject an unsupported layout at compile time for a type
// parameter, so New panics instead: any T whose size is not 1, 2, 4 or
// 8 bytes fails here, before the cell can be shared. Zero-value cells
// of an unsupported T panic on their first operation. Alignment needs
// no check, the cell's own layout provides it for every width.
func New[T any](v T) *Atomic[T] {
	switch unsafe.Sizeof(v) {
	case 1, 2, 4, 8:
	default:
		panic(badSize(unsafe.Sizeof(v)))
	}
	return &Atomic[T]{buf: v}
}

func badSize(n uintptr) string {
	return "atomik: unsupported type size " + strconv.Itoa(int(n)) + ", must be 1, 2, 4 or 8 bytes"
}

// Load atomically reads the value.
//
// Panics if order is Release or AcqRel.
func (a *Atomic[T]) Load(order Ordering) T {
	order.checkLoad()
	switch unsafe.Sizeof(a.buf) {
	case 1:
		return load8(&a.buf, order)
	case 2:
		return load16(&a.buf, order)
	case 4:
		return load32(&a.buf, order)
	case 8:
		return load64(&a.buf, order)
	}
	panic(badSize(unsafe.Sizeof(a.buf)))
}

// Store atomically writes v.
//
// Panics if order is Acquire or AcqRel.
func (a *Atomic[T]) Store(v T, order Ordering) {
	order.checkStore()
	switch unsafe.Sizeof(a.buf) {
	case 1:
		store8(&a.buf, v, order)
	case 2:
		store16(&a.buf, v, order)
	case 4:
		store32(&a.buf, v, order)
	case 8:
		store64(&a.buf, v, order)
	default:
		panic(badSize(unsafe.Sizeof(a.buf)))
	}
}

// Swap atomically stores v and returns the previous value. All
// orderings are valid.
func (a *Atomic[T]) Swap(v T, order Ordering) T {
	order.checkRMW()
	switch unsafe.Sizeof(a.buf) {
	case 1:
		return swap8(&a.buf, v, order)
	case 2:
		return swap16(&a.buf, v, order)
	case 4:
		return swap32(&a.buf, v, order)
	case 8:
		return swap64(&a.buf, v, order)
	}
	panic(badSize(unsafe.Sizeof(a.buf)))
}

// CompareExchange stores new if the current bit pattern equals old's.
// It returns the value the cell held immediately before the attempt and
// whether the store happened; on success the returned value equals old.
//
// The comparison is on bit patterns, not on T's equality. failure
// applies to the load observed when the comparison fails and panics on
// Release or AcqRel.
func (a *Atomic[T]) CompareExchange(old, new T, success, failure Ordering) (T, bool) {
	success.checkRMW()
	failure.checkFailure()
	switch unsafe.Sizeof(a.buf) {
	case 1:
		return cas8(&a.buf, old, new, success, failure)
	case 2:
		return cas16(&a.buf, old, new, success, failure)
	case 4:
		return cas32(&a.buf, old, new, success, failure)
	case 8:
		return cas64(&a.buf, old, new, success, failure)
	}
	panic(badSize(unsafe.Sizeof(a.buf)))
}

// CompareExchangeWeak is CompareExchange that is additionally allowed
// to fail spuriously, reporting failure with a current value equal to
// old. Callers needing progress must retry in a loop; in exchange a
// single attempt can be cheaper, in particular for the word-emulated
// 1- and 2-byte widths where neighbor-bit traffic aborts the exchange.
func (a *Atomic[T]) CompareExchangeWeak(old, new T, success, failure Ordering) (T, bool) {
	success.checkRMW()
	failure.checkFailure()
	switch unsafe.Sizeof(a.buf) {
	case 1:
		return casWeak8(&a.buf, old, new, success, failure)
	case 2:
		return casWeak16(&a.buf, old, new, success, failure)
	case 4:
		return casWeak32(&a.buf, old, new, success, failure)
	case 8:
		return casWeak64(&a.buf, old, new, success, failure)
	}
	panic(badSize(unsafe.Sizeof(a.buf)))
}

// FetchUpdate retries an arbitrary read-modify-write built from f.
//
// The current value is loaded with the failure ordering, then f is
// applied to every freshly observed value: when f returns (next, true)
// a weak compare-exchange of next is attempted with the success
// ordering; when it returns (_, false) FetchUpdate stops without
// writing and returns the last observed value and false. On a
// successful exchange it returns the previous value and true.
//
// f may be called multiple times under contention and must be free of
// side effects. Pathological contention can keep a caller retrying
// indefinitely; that spin is inherent to lock-free read-modify-write,
// not a timeout-guarded wait.
func (a *Atomic[T]) FetchUpdate(success, failure Ordering, f func(T) (T, bool)) (T, bool) {
	success.checkRMW()
	cur := a.Load(failure)
	for {
		next, ok := f(cur)
		if !ok {
			return cur, false
		}
		prev, swapped := a.CompareExchangeWeak(cur, next, success, failure)
		if swapped {
			return prev, true
		}
		cur = prev
	}
}

// Raw returns a plain pointer to the stored value, bypassing all
// atomicity. It is only safe while the caller is the sole goroutine
// with access to the cell.
func (a *Atomic[T]) Raw() *T {
	return &a.buf
}

// Unwrap reads the value non-atomically, conceptually consuming the
// cell. Like Raw, it requires that no other goroutine can reach the
// cell anymore.
func (a *Atomic[T]) Unwrap() T {
	return a.buf
}
