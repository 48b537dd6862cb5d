package program

import (
	"fmt"
	"sort"

	"github.com/psantana5/agentdeco/internal/agent"
	"github.com/psantana5/agentdeco/internal/logging"
	"github.com/psantana5/agentdeco/internal/report"
	"github.com/psantana5/agentdeco/internal/wrapper"
)

// Step is one decorated call: which target, which agent picks its wrapper,
// what the agent is paid and what the call receives. Define orders
// decoration independently of the call order; equal values keep call order.
type Step struct {
	Define  int    `mapstructure:"define" json:"define,omitempty" yaml:"define,omitempty"`
	Target  string `mapstructure:"target" json:"target" yaml:"target"`
	Agent   string `mapstructure:"agent" json:"agent" yaml:"agent"`
	Payment *int64 `mapstructure:"payment" json:"payment,omitempty" yaml:"payment,omitempty"`
	Args    []any  `mapstructure:"args" json:"args,omitempty" yaml:"args,omitempty"`
}

// PaymentString renders the payment, "-" when the agent's default applies
func (s Step) PaymentString() string {
	if s.Payment == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *s.Payment)
}

func pay(n int64) *int64 { return &n }

// Default returns the five fixed calls in the order they run. They are
// defined gachiBASS, speedrun, LUL, monkaS, BibleThump.
func Default() []Step {
	return []Step{
		{Define: 4, Target: "monkaS", Agent: agent.Kekw},
		{Define: 3, Target: "LUL", Agent: agent.Forwarder, Payment: pay(90000)},
		{Define: 2, Target: "speedrun", Agent: agent.Thankful, Payment: pay(69)},
		{Define: 1, Target: "gachiBASS", Agent: agent.Thankful, Payment: pay(6900000)},
		{Define: 5, Target: "BibleThump", Agent: agent.Greedy, Payment: pay(99999999999), Args: []any{15}},
	}
}

// DefinitionOrder returns step indexes in the order they are decorated
func DefinitionOrder(steps []Step) []int {
	order := make([]int, len(steps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return steps[order[a]].Define < steps[order[b]].Define
	})
	return order
}

// Runner decorates every step, then calls them in order.
type Runner struct {
	dispatcher *agent.Dispatcher
	builtins   Builtins
	rec        *report.Recorder
	log        *logging.Logger
}

// NewRunner creates a runner
func NewRunner(d *agent.Dispatcher, builtins Builtins, rec *report.Recorder, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{dispatcher: d, builtins: builtins, rec: rec, log: log}
}

type decorated struct {
	step   Step
	sel    agent.Selection
	target wrapper.Target
}

// Run executes the steps. All decoration happens, in definition order,
// before the first call; calls then run in step order.
// The first failing call stops the run and its error is returned.
func (r *Runner) Run(steps []Step) error {
	ready := make([]decorated, len(steps))
	for _, i := range DefinitionOrder(steps) {
		d, err := r.decorate(steps[i])
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, steps[i].Target, err)
		}
		ready[i] = d
	}

	for i, d := range ready {
		r.rec.Scope(d.sel.Kind.String(), d.sel.PathString())
		r.log.Debug("calling", map[string]interface{}{"step": i + 1, "target": d.step.Target})
		if _, err := d.target.Call(d.step.Args...); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, d.step.Target, err)
		}
	}

	r.log.Info("program finished", map[string]interface{}{"steps": len(ready)})
	return nil
}

func (r *Runner) decorate(s Step) (decorated, error) {
	target, err := r.builtins.Target(s.Target)
	if err != nil {
		return decorated{}, err
	}
	sel, err := r.dispatcher.Resolve(s.Agent, s.Payment)
	if err != nil {
		return decorated{}, err
	}
	wrapped, err := r.dispatcher.Decorate(sel, target)
	if err != nil {
		return decorated{}, err
	}
	return decorated{step: s, sel: sel, target: wrapped}, nil
}
