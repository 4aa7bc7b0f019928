//go:build race

package atomik

import "sync/atomic"

// Under race detector, disable TSO optimizations and use conservative
// atomic loads/stores
const isTSO = false

// Conservative: atomic load to satisfy race detector
//
//go:nosplit
func relaxedLoad32(addr *uint32) uint32 {
	return atomic.LoadUint32(addr)
}

//go:nosplit
func relaxedLoad64(addr *uint64) uint64 {
	return atomic.LoadUint64(addr)
}

// Conservative: atomic store to satisfy race detector
//
//go:nosplit
func relaxedStore32(addr *uint32, val uint32) {
	atomic.StoreUint32(addr, val)
}

//go:nosplit
func relaxedStore64(addr *uint64, val uint64) {
	atomic.StoreUint64(addr, val)
}
