package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/psantana5/agentdeco/internal/wrapper"
)

var (
	// ErrUnknownAgent is returned when resolving an agent id nobody answers to
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrUnknownKind is returned when a selection carries no usable variant
	ErrUnknownKind = errors.New("unknown selection kind")
)

// Kind tags which variant a Selection carries
type Kind int

const (
	// KindWrapper: a ready wrapper, applied directly to the target
	KindWrapper Kind = iota
	// KindFactory: a factory that produces the wrapped target when invoked on it
	KindFactory
	// KindDoubleWrap: a heckling closure around the target, itself timed
	KindDoubleWrap
)

func (k Kind) String() string {
	switch k {
	case KindWrapper:
		return "wrapper"
	case KindFactory:
		return "factory"
	case KindDoubleWrap:
		return "double-wrap"
	default:
		return "unknown"
	}
}

// Factory produces a wrapped target. Same shape as wrapper.Wrapper, different contract.
type Factory func(wrapper.Target) wrapper.Target

// DoubleWrap wraps the target and then wraps the wrapper.
type DoubleWrap func(wrapper.Target) wrapper.Target

// Hop is one agent visited during selection
type Hop struct {
	Agent      string `json:"agent" yaml:"agent"`
	Payment    int64  `json:"payment,omitempty" yaml:"payment,omitempty"`
	HasPayment bool   `json:"-" yaml:"-"`
}

func (h Hop) String() string {
	if !h.HasPayment {
		return h.Agent
	}
	return fmt.Sprintf("%s(%d)", h.Agent, h.Payment)
}

// Selection is what an agent hands back. Exactly one of Wrapper, Factory
// or DoubleWrap is set, matching Kind.
type Selection struct {
	Kind       Kind
	Wrapper    wrapper.Wrapper
	Factory    Factory
	DoubleWrap DoubleWrap
	Path       []Hop
}

// Apply decorates t according to the selection's variant
func (s Selection) Apply(t wrapper.Target) (wrapper.Target, error) {
	switch {
	case s.Kind == KindWrapper && s.Wrapper != nil:
		return s.Wrapper(t), nil
	case s.Kind == KindFactory && s.Factory != nil:
		return s.Factory(t), nil
	case s.Kind == KindDoubleWrap && s.DoubleWrap != nil:
		return s.DoubleWrap(t), nil
	default:
		return wrapper.Target{}, fmt.Errorf("%w: %s", ErrUnknownKind, s.Kind)
	}
}

// PathString renders the hops, e.g. "1(90000) -> 0(80000) -> 2(71000)"
func (s Selection) PathString() string {
	parts := make([]string, len(s.Path))
	for i, h := range s.Path {
		parts[i] = h.String()
	}
	return strings.Join(parts, " -> ")
}

func (s Selection) via(h Hop) Selection {
	s.Path = append([]Hop{h}, s.Path...)
	return s
}
