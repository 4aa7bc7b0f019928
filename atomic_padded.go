package atomik

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is used in structure padding to prevent false sharing.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// PaddedAtomic is an Atomic surrounded by cache-line padding, for cells
// that sit side by side in arrays or hot structs and would otherwise
// share a line with their neighbors.
type PaddedAtomic[T any] struct {
	_ cpu.CacheLinePad
	Atomic[T]
	_ cpu.CacheLinePad
}

// NewPadded creates a padded cell holding v. Layout validation is the
// same as New's.
func NewPadded[T any](v T) *PaddedAtomic[T] {
	p := &PaddedAtomic[T]{}
	switch unsafe.Sizeof(v) {
	case 1, 2, 4, 8:
	default:
		panic(badSize(unsafe.Sizeof(v)))
	}
	p.buf = v
	return p
}
