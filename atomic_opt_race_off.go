//go:build !race

package atomik

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

// Detect TSO architectures; on TSO, plain reads/writes of native
// word-sized integers are already atomic and totally ordered enough for
// Relaxed semantics
const isTSO = runtime.GOARCH == "amd64" ||
	runtime.GOARCH == "386" ||
	runtime.GOARCH == "s390x"

// TSO: plain load for Relaxed-ordered reads; non-TSO falls back to the
// sequentially consistent primitive
//
//go:nosplit
func relaxedLoad32(addr *uint32) uint32 {
	//goland:noinspection ALL
	if isTSO {
		return *addr
	} else {
		return atomic.LoadUint32(addr)
	}
}

//go:nosplit
func relaxedLoad64(addr *uint64) uint64 {
	//goland:noinspection ALL
	if isTSO && bits.UintSize >= 64 {
		return *addr
	} else {
		return atomic.LoadUint64(addr)
	}
}

// TSO: plain store for Relaxed-ordered writes; non-TSO falls back to the
// sequentially consistent primitive
//
//go:nosplit
func relaxedStore32(addr *uint32, val uint32) {
	//goland:noinspection ALL
	if isTSO {
		*addr = val
	} else {
		atomic.StoreUint32(addr, val)
	}
}

//go:nosplit
func relaxedStore64(addr *uint64, val uint64) {
	//goland:noinspection ALL
	if isTSO && bits.UintSize >= 64 {
		*addr = val
	} else {
		atomic.StoreUint64(addr, val)
	}
}
