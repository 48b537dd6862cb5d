package observe

// Timing is passive: it never alters the call it measures.

import (
	"strconv"
	"time"
)

// Timing records start/end timestamps plus process CPU at both ends.
// time.Now carries a monotonic reading, so Duration is immune to wall clock jumps.
type Timing struct {
	StartedAt   time.Time
	CompletedAt time.Time
	startCPU    time.Duration
	endCPU      time.Duration
}

// NewTiming creates timing with current start time
func NewTiming() *Timing {
	return &Timing{
		startCPU:  CPUSample(),
		StartedAt: time.Now(),
	}
}

// Complete records completion time
func (t *Timing) Complete() {
	t.CompletedAt = time.Now()
	t.endCPU = CPUSample()
}

// Duration returns wall clock duration
func (t *Timing) Duration() time.Duration {
	if t.CompletedAt.IsZero() {
		return time.Since(t.StartedAt)
	}
	return t.CompletedAt.Sub(t.StartedAt)
}

// CPU returns process CPU time consumed between start and completion.
// Zero when incomplete or when sampling is unavailable.
func (t *Timing) CPU() time.Duration {
	if t.CompletedAt.IsZero() || t.endCPU < t.startCPU {
		return 0
	}
	return t.endCPU - t.startCPU
}

// Seconds formats a duration the way the timing wrapper prints it.
func Seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 4, 64)
}
