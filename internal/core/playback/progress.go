package playback

import (
	"time"

	"github.com/penwyp/go-input-replay/internal/core/timeline"
)

// Progress tracks how far through the current bounded pass playback has
// gotten, in both frame and time units. Only the unit matching the active
// strategy's bound kind advances.
type Progress struct {
	elapsedTime   time.Duration
	elapsedFrames timeline.FrameCount
}

// CurrentFrame returns the pass's position as start plus elapsed frames.
func (p *Progress) CurrentFrame(start timeline.FrameCount) timeline.FrameCount {
	return start.Add(uint64(p.elapsedFrames))
}

// CurrentTime returns the pass's position as start plus elapsed time.
func (p *Progress) CurrentTime(start time.Duration) time.Duration {
	return start + p.elapsedTime
}

// NextFrame advances the pass by one frame and returns the new position.
func (p *Progress) NextFrame(start timeline.FrameCount) timeline.FrameCount {
	p.elapsedFrames = p.elapsedFrames.Add(1)
	return p.CurrentFrame(start)
}

// NextTime advances the pass by the tick's delta and returns the new
// position.
func (p *Progress) NextTime(delta time.Duration, start time.Duration) time.Duration {
	p.elapsedTime += delta
	return p.CurrentTime(start)
}

// Reset rewinds the reader to the start of the log and zeroes both counters,
// leaving the pass ready to run again from scratch.
func (p *Progress) Reset(r *timeline.Reader) {
	r.ResetCursor()
	p.elapsedTime = 0
	p.elapsedFrames = 0
}
