package atomik

import "strconv"

// Ordering specifies the memory ordering of an atomic operation.
//
// Go's sync/atomic primitives are sequentially consistent, so every
// ordering is forwarded to the strongest primitive the platform offers;
// an operation is never weaker than requested. Relaxed loads and stores
// may take a direct (plain) path on TSO architectures outside the race
// detector. Orderings that are meaningless for an operation kind are
// rejected with a panic rather than silently downgraded.
type Ordering uint8

const (
	// Relaxed imposes no ordering constraints beyond atomicity itself.
	Relaxed Ordering = iota
	// Acquire makes the load part of the operation observe all writes
	// released before a matching Release store.
	Acquire
	// Release publishes all prior writes to any matching Acquire load.
	Release
	// AcqRel combines Acquire and Release; meaningful only for
	// read-modify-write operations.
	AcqRel
	// SeqCst additionally participates in a single total order over all
	// SeqCst operations.
	SeqCst
)

func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "Relaxed"
	case Acquire:
		return "Acquire"
	case Release:
		return "Release"
	case AcqRel:
		return "AcqRel"
	case SeqCst:
		return "SeqCst"
	}
	return "Ordering(" + strconv.Itoa(int(o)) + ")"
}

// checkLoad validates o for a pure read. Release and AcqRel have no
// meaning for an operation that never writes.
func (o Ordering) checkLoad() {
	switch o {
	case Relaxed, Acquire, SeqCst:
	case Release, AcqRel:
		panic("atomik: invalid ordering for load: " + o.String())
	default:
		panic("atomik: unknown ordering: " + o.String())
	}
}

// checkStore validates o for a pure write. Acquire and AcqRel have no
// meaning for an operation that never reads.
func (o Ordering) checkStore() {
	switch o {
	case Relaxed, Release, SeqCst:
	case Acquire, AcqRel:
		panic("atomik: invalid ordering for store: " + o.String())
	default:
		panic("atomik: unknown ordering: " + o.String())
	}
}

// checkRMW validates o for a read-modify-write; every ordering is valid.
func (o Ordering) checkRMW() {
	switch o {
	case Relaxed, Acquire, Release, AcqRel, SeqCst:
	default:
		panic("atomik: unknown ordering: " + o.String())
	}
}

// checkFailure validates o as a compare-exchange failure ordering; the
// failure path never writes, so the same set as checkLoad applies.
func (o Ordering) checkFailure() {
	switch o {
	case Relaxed, Acquire, SeqCst:
	case Release, AcqRel:
		panic("atomik: invalid failure ordering for compare_exchange: " + o.String())
	default:
		panic("atomik: unknown ordering: " + o.String())
	}
}
