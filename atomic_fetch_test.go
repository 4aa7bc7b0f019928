package atomik

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBitwise_Uint8(t *testing.T) {
	a := New(uint8(0b1100_1010))
	require.Equal(t, uint8(0b1100_1010), FetchAnd(a, uint8(0b1111_0000), SeqCst))
	require.Equal(t, uint8(0b1100_0000), a.Load(SeqCst))

	require.Equal(t, uint8(0b1100_0000), FetchOr(a, uint8(0b0000_0101), SeqCst))
	require.Equal(t, uint8(0b1100_0101), a.Load(SeqCst))

	require.Equal(t, uint8(0b1100_0101), FetchXor(a, uint8(0b1111_1111), SeqCst))
	require.Equal(t, uint8(0b0011_1010), a.Load(SeqCst))

	a.Store(0xff, SeqCst)
	require.Equal(t, uint8(0xff), FetchNand(a, uint8(0x0f), SeqCst))
	require.Equal(t, uint8(0xf0), a.Load(SeqCst))
}

func TestFetchBitwise_Uint64(t *testing.T) {
	a := New(uint64(0xdeadbeef_cafebabe))
	mask := uint64(0xffffffff_00000000)

	require.Equal(t, uint64(0xdeadbeef_cafebabe), FetchAnd(a, mask, AcqRel))
	require.Equal(t, uint64(0xdeadbeef_00000000), a.Load(SeqCst))

	require.Equal(t, uint64(0xdeadbeef_00000000), FetchOr(a, uint64(0xbabe), Release))
	require.Equal(t, uint64(0xdeadbeef_0000babe), a.Load(SeqCst))

	prev := a.Load(SeqCst)
	require.Equal(t, prev, FetchXor(a, ^uint64(0), SeqCst))
	require.Equal(t, ^prev, a.Load(SeqCst))

	a.Store(^uint64(0), SeqCst)
	require.Equal(t, ^uint64(0), FetchNand(a, ^uint64(0), SeqCst))
	require.Equal(t, uint64(0), a.Load(SeqCst))
}

func TestFetchBitwise_Bool(t *testing.T) {
	a := New(true)

	require.True(t, FetchAnd(a, false, SeqCst))
	require.False(t, a.Load(SeqCst))

	require.False(t, FetchOr(a, true, SeqCst))
	require.True(t, a.Load(SeqCst))

	require.True(t, FetchXor(a, true, SeqCst))
	require.False(t, a.Load(SeqCst))

	// logical NAND: the stored value stays a valid bool
	require.False(t, FetchNand(a, true, SeqCst))
	require.True(t, a.Load(SeqCst))
	require.True(t, FetchNand(a, true, SeqCst))
	require.False(t, a.Load(SeqCst))
	require.False(t, FetchNand(a, false, SeqCst))
	require.True(t, a.Load(SeqCst))
}

func TestFetchAdd_Wraparound(t *testing.T) {
	u8 := New(uint8(math.MaxUint8))
	require.Equal(t, uint8(math.MaxUint8), FetchAdd(u8, 1, SeqCst))
	require.Equal(t, uint8(0), u8.Load(SeqCst))

	i8 := New(int8(math.MaxInt8))
	require.Equal(t, int8(math.MaxInt8), FetchAdd(i8, 1, SeqCst))
	require.Equal(t, int8(math.MinInt8), i8.Load(SeqCst))

	u16 := New(uint16(math.MaxUint16))
	FetchAdd(u16, 1, SeqCst)
	require.Equal(t, uint16(0), u16.Load(SeqCst))

	u32 := New(uint32(math.MaxUint32))
	FetchAdd(u32, 1, SeqCst)
	require.Equal(t, uint32(0), u32.Load(SeqCst))

	i64 := New(int64(math.MaxInt64))
	require.Equal(t, int64(math.MaxInt64), FetchAdd(i64, 1, SeqCst))
	require.Equal(t, int64(math.MinInt64), i64.Load(SeqCst))
}

func TestFetchSub(t *testing.T) {
	u8 := New(uint8(0))
	require.Equal(t, uint8(0), FetchSub(u8, 1, SeqCst))
	require.Equal(t, uint8(math.MaxUint8), u8.Load(SeqCst))

	i32 := New(int32(-3))
	require.Equal(t, int32(-3), FetchSub(i32, 7, SeqCst))
	require.Equal(t, int32(-10), i32.Load(SeqCst))

	u64 := New(uint64(100))
	require.Equal(t, uint64(100), FetchSub(u64, 1, Relaxed))
	require.Equal(t, uint64(99), u64.Load(SeqCst))
}

func TestFetchAdd_AllWidths(t *testing.T) {
	t.Run("int16", func(t *testing.T) {
		a := New(int16(-100))
		var want int16 = -100
		for d := int16(1); d <= 10; d++ {
			require.Equal(t, want, FetchAdd(a, d, SeqCst))
			want += d
		}
		require.Equal(t, want, a.Load(SeqCst))
	})
	t.Run("int", func(t *testing.T) {
		a := New(7)
		require.Equal(t, 7, FetchAdd(a, -10, SeqCst))
		require.Equal(t, -3, a.Load(SeqCst))
	})
	t.Run("uintptr", func(t *testing.T) {
		a := New(uintptr(1))
		require.Equal(t, uintptr(1), FetchAdd(a, 2, SeqCst))
		require.Equal(t, uintptr(3), a.Load(SeqCst))
	})
	t.Run("named-uint8", func(t *testing.T) {
		a := New(color(250))
		require.Equal(t, color(250), FetchAdd(a, 10, SeqCst))
		require.Equal(t, color(4), a.Load(SeqCst))
	})
}

func TestFetchMinMax(t *testing.T) {
	t.Run("signed", func(t *testing.T) {
		a := New(int32(-5))
		require.Equal(t, int32(-5), FetchMax(a, 3, SeqCst))
		require.Equal(t, int32(3), a.Load(SeqCst))
		// stored value already wins, no change
		require.Equal(t, int32(3), FetchMax(a, -10, SeqCst))
		require.Equal(t, int32(3), a.Load(SeqCst))

		require.Equal(t, int32(3), FetchMin(a, -7, SeqCst))
		require.Equal(t, int32(-7), a.Load(SeqCst))
		require.Equal(t, int32(-7), FetchMin(a, 0, SeqCst))
		require.Equal(t, int32(-7), a.Load(SeqCst))
	})
	t.Run("unsigned", func(t *testing.T) {
		a := New(uint8(200))
		require.Equal(t, uint8(200), FetchMin(a, 100, SeqCst))
		require.Equal(t, uint8(100), a.Load(SeqCst))
		require.Equal(t, uint8(100), FetchMin(a, 150, SeqCst))
		require.Equal(t, uint8(100), a.Load(SeqCst))

		require.Equal(t, uint8(100), FetchMax(a, 255, SeqCst))
		require.Equal(t, uint8(255), a.Load(SeqCst))
	})
	t.Run("int64", func(t *testing.T) {
		a := New(int64(math.MinInt64))
		require.Equal(t, int64(math.MinInt64), FetchMax(a, math.MaxInt64, SeqCst))
		require.Equal(t, int64(math.MaxInt64), a.Load(SeqCst))
	})
}

// The exchange must run even when the stored value already wins, so
// every ordering is exercised on the no-change path as well.
func TestFetchMinMax_NoChangeStillExchanges(t *testing.T) {
	orders := []Ordering{Relaxed, Acquire, Release, AcqRel, SeqCst}
	for _, o := range orders {
		a := New(int16(50))
		require.Equal(t, int16(50), FetchMax(a, -3, o), "order %v", o)
		require.Equal(t, int16(50), a.Load(SeqCst), "order %v", o)
		require.Equal(t, int16(50), FetchMin(a, 90, o), "order %v", o)
		require.Equal(t, int16(50), a.Load(SeqCst), "order %v", o)

		b := New(uint64(7))
		require.Equal(t, uint64(7), FetchMax(b, 7, o), "order %v", o)
		require.Equal(t, uint64(7), FetchMin(b, 7, o), "order %v", o)
		require.Equal(t, uint64(7), b.Load(SeqCst), "order %v", o)
	}
}

func TestFetchUpdate_NoneLeavesUnchanged(t *testing.T) {
	a := New(uint32(7))
	calls := 0
	cur, ok := a.FetchUpdate(SeqCst, Relaxed, func(x uint32) (uint32, bool) {
		calls++
		assert.Equal(t, uint32(7), x)
		return 0, false
	})
	require.False(t, ok)
	require.Equal(t, uint32(7), cur)
	require.Equal(t, uint32(7), a.Load(SeqCst))
	require.Equal(t, 1, calls)
}

func TestFetchUpdate_IncrementEquivalence(t *testing.T) {
	a := New(uint8(0))
	b := New(uint8(0))
	// crosses the wraparound boundary
	for i := 0; i < 300; i++ {
		prev, ok := a.FetchUpdate(SeqCst, Relaxed, func(x uint8) (uint8, bool) {
			return x + 1, true
		})
		require.True(t, ok)
		require.Equal(t, FetchAdd(b, 1, SeqCst), prev)
	}
	require.Equal(t, b.Load(SeqCst), a.Load(SeqCst))
}

func TestFetchUpdate_Conditional(t *testing.T) {
	// decrement-if-positive, the classic semaphore acquire
	acquire := func(x uint32) (uint32, bool) {
		if x == 0 {
			return 0, false
		}
		return x - 1, true
	}

	a := New(uint32(2))
	prev, ok := a.FetchUpdate(AcqRel, Acquire, acquire)
	require.True(t, ok)
	require.Equal(t, uint32(2), prev)

	prev, ok = a.FetchUpdate(AcqRel, Acquire, acquire)
	require.True(t, ok)
	require.Equal(t, uint32(1), prev)

	prev, ok = a.FetchUpdate(AcqRel, Acquire, acquire)
	require.False(t, ok)
	require.Equal(t, uint32(0), prev)
	require.Equal(t, uint32(0), a.Load(SeqCst))
}

func TestFetch_OrderingValidation(t *testing.T) {
	a := New(uint8(0))
	require.Panics(t, func() { FetchAdd(a, 1, Ordering(99)) })
	require.Panics(t, func() { FetchAnd(a, 1, Ordering(99)) })
	require.Panics(t, func() { FetchMax(a, 1, Ordering(99)) })
}
