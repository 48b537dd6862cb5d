package report

import (
	"fmt"
	"time"

	"github.com/psantana5/agentdeco/internal/observe"
)

// Result is the record of one decorated call. Set once, never changed.
type Result struct {
	Target string        `json:"target"`
	Kind   string        `json:"kind,omitempty"`
	Path   string        `json:"path,omitempty"`
	Wall   time.Duration `json:"wall_seconds"`
	CPU    time.Duration `json:"cpu_seconds"`
	Err    error         `json:"-"`
}

// NewResult freezes a completed timing into a result
func NewResult(target string, timing *observe.Timing, err error) *Result {
	return &Result{
		Target: target,
		Wall:   timing.Duration(),
		CPU:    timing.CPU(),
		Err:    err,
	}
}

// Outcome is "ok" or "error"
func (r *Result) Outcome() string {
	if r.Err != nil {
		return "error"
	}
	return "ok"
}

// Summary is a one-line human readable record
func (r *Result) Summary() string {
	s := fmt.Sprintf("target=%s wall=%ss cpu=%ss outcome=%s",
		r.Target, observe.Seconds(r.Wall), observe.Seconds(r.CPU), r.Outcome())
	if r.Path != "" {
		s += " path=" + r.Path
	}
	return s
}
