package wrapper

// A wrapper never swallows a target's error and never alters its result.

import (
	"io"
	"os"

	"github.com/psantana5/agentdeco/internal/report"
)

// Func is the body of a target: any positional args in, one result out.
type Func func(args ...any) (any, error)

// Target is a named callable. Wrappers keep the name of what they wrap.
type Target struct {
	Name string
	Fn   Func
}

// Call invokes the target with all given arguments
func (t Target) Call(args ...any) (any, error) {
	return t.Fn(args...)
}

// Wrapper takes a target and returns a replacement with the same call signature.
type Wrapper func(Target) Target

// Console is where wrappers print and record. The zero value is not usable.
type Console struct {
	out io.Writer
	rec *report.Recorder
}

// NewConsole creates a console. A nil writer means stdout, a nil recorder a fresh one.
func NewConsole(out io.Writer, rec *report.Recorder) *Console {
	if out == nil {
		out = os.Stdout
	}
	if rec == nil {
		rec = report.NewRecorder()
	}
	return &Console{out: out, rec: rec}
}

// Out returns the console writer
func (c *Console) Out() io.Writer {
	return c.out
}

// Recorder returns the recorder timed calls are reported to
func (c *Console) Recorder() *report.Recorder {
	return c.rec
}
