package timeline

import "math"

// FrameCount counts ticks since the host process started. Arithmetic
// saturates at the uint64 bounds instead of wrapping.
type FrameCount uint64

// Add returns f advanced by n frames, saturating at the maximum.
func (f FrameCount) Add(n uint64) FrameCount {
	if uint64(f) > math.MaxUint64-n {
		return FrameCount(math.MaxUint64)
	}
	return f + FrameCount(n)
}

// Sub returns f reduced by n frames, saturating at zero.
func (f FrameCount) Sub(n uint64) FrameCount {
	if uint64(f) < n {
		return 0
	}
	return f - FrameCount(n)
}
