package program

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/psantana5/agentdeco/internal/wrapper"
)

var (
	// ErrUnknownTarget is returned for a target name with no built-in body
	ErrUnknownTarget = errors.New("unknown target")
	// ErrBadArgument is returned when a target is called with arguments it cannot take
	ErrBadArgument = errors.New("bad argument")
)

// DefaultBibleThumpCount is used when BibleThump is called without a count
const DefaultBibleThumpCount = 5

// Builtins builds the demo targets. They print to Out and nap with Sleep.
type Builtins struct {
	Out   io.Writer
	Nap   time.Duration
	Sleep func(time.Duration)
}

// NewBuiltins returns builtins printing to out and really sleeping
func NewBuiltins(out io.Writer, nap time.Duration) Builtins {
	if out == nil {
		out = os.Stdout
	}
	return Builtins{Out: out, Nap: nap, Sleep: time.Sleep}
}

// Names lists the built-in target names, sorted
func (b Builtins) Names() []string {
	names := make([]string, 0, len(b.bodies()))
	for name := range b.bodies() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target returns the named built-in target
func (b Builtins) Target(name string) (wrapper.Target, error) {
	fn, ok := b.bodies()[name]
	if !ok {
		return wrapper.Target{}, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}
	return wrapper.Target{Name: name, Fn: fn}, nil
}

func (b Builtins) bodies() map[string]wrapper.Func {
	return map[string]wrapper.Func{
		"monkaS":     b.monkaS,
		"LUL":        b.say("LUL", "LUL"),
		"speedrun":   b.say("speedrun", "Done"),
		"gachiBASS":  b.say("gachiBASS", "Billy gachiBASS I am not timed"),
		"BibleThump": b.bibleThump,
	}
}

func (b Builtins) say(name, line string) wrapper.Func {
	return func(args ...any) (any, error) {
		if err := noArgs(name, args); err != nil {
			return nil, err
		}
		fmt.Fprintln(b.Out, line)
		return nil, nil
	}
}

func (b Builtins) monkaS(args ...any) (any, error) {
	if err := noArgs("monkaS", args); err != nil {
		return nil, err
	}
	fmt.Fprintln(b.Out, "monkaS I love sleeping zzzZZZ")
	if b.Sleep != nil {
		b.Sleep(b.Nap)
	}
	fmt.Fprintln(b.Out, "Oh no I have to wake up monkaS")
	return nil, nil
}

func (b Builtins) bibleThump(args ...any) (any, error) {
	count := DefaultBibleThumpCount
	switch len(args) {
	case 0:
	case 1:
		n, err := toCount(args[0])
		if err != nil {
			return nil, fmt.Errorf("BibleThump: %w", err)
		}
		count = n
	default:
		return nil, fmt.Errorf("%w: BibleThump takes at most 1 argument (%d given)", ErrBadArgument, len(args))
	}
	if count < 0 {
		count = 0
	}
	fmt.Fprintf(b.Out, "Help me %s\n", strings.Repeat("BibleThump ", count))
	return nil, nil
}

func noArgs(name string, args []any) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %s takes 0 arguments (%d given)", ErrBadArgument, name, len(args))
	}
	return nil
}

// toCount accepts the integer shapes YAML, JSON and flags hand us
func toCount(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%w: count must be an integer, got %T", ErrBadArgument, v)
}

// IsBuiltin reports whether name has a built-in body
func IsBuiltin(name string) bool {
	_, ok := Builtins{}.bodies()[name]
	return ok
}
