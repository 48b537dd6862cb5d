package agent

import (
	"fmt"
	"math"

	"github.com/psantana5/agentdeco/internal/logging"
	"github.com/psantana5/agentdeco/internal/wrapper"
)

// Agent ids
const (
	Greedy    = "0"
	Forwarder = "1"
	Thankful  = "2"
	Idle      = "3"
	Kekw      = "kekw"
)

const (
	// FBIThreshold and above makes the greedy agent hand out the double wrap
	FBIThreshold int64 = 999_999_999
	// BigMoneyThreshold and above makes the thankful agent actually help
	BigMoneyThreshold int64 = 400_000

	greedyCut    int64 = 9000
	forwarderCut int64 = 10000
)

// cut takes an agent's share, bottoming out at math.MinInt64 instead of wrapping.
func cut(payment, share int64) int64 {
	if payment < math.MinInt64+share {
		return math.MinInt64
	}
	return payment - share
}

// Defaults are the payments used when a caller names an agent but no amount.
type Defaults struct {
	Agent0 int64 `mapstructure:"agent0" json:"agent0" yaml:"agent0"`
	Agent1 int64 `mapstructure:"agent1" json:"agent1" yaml:"agent1"`
	Agent2 int64 `mapstructure:"agent2" json:"agent2" yaml:"agent2"`
}

// DefaultPayments returns 5000 for agent 0 and 20000 for agents 1 and 2
func DefaultPayments() Defaults {
	return Defaults{Agent0: 5000, Agent1: 20000, Agent2: 20000}
}

// Known reports whether id names an agent
func Known(id string) bool {
	switch id {
	case Greedy, Forwarder, Thankful, Idle, Kekw:
		return true
	}
	return false
}

// Dispatcher runs the agents. Every agent prints its chatter to the console.
type Dispatcher struct {
	console  *wrapper.Console
	log      *logging.Logger
	defaults Defaults
}

// NewDispatcher creates a dispatcher
func NewDispatcher(console *wrapper.Console, log *logging.Logger, defaults Defaults) *Dispatcher {
	if log == nil {
		log = logging.Discard()
	}
	return &Dispatcher{console: console, log: log, defaults: defaults}
}

// Defaults returns the payments used when none is given
func (d *Dispatcher) Defaults() Defaults {
	return d.defaults
}

func (d *Dispatcher) say(format string, args ...any) {
	fmt.Fprintf(d.console.Out(), format+"\n", args...)
}

func (d *Dispatcher) visit(agent string, payment int64, hasPayment bool) Hop {
	d.console.Recorder().Metrics().ObserveSelection(agent)
	d.log.Debug("agent consulted", map[string]interface{}{"agent": agent, "payment": payment})
	return Hop{Agent: agent, Payment: payment, HasPayment: hasPayment}
}

// Agent0 takes the money. A fortune earns the double wrap; anything less is
// thrown to agent 2 minus a cut.
func (d *Dispatcher) Agent0(payment int64) Selection {
	hop := d.visit(Greedy, payment, true)
	d.say("0: Give me that %d", payment)

	if payment >= FBIThreshold {
		d.say("0: FBI will steal that money from me. I will KEKW you")
		return Selection{Kind: KindDoubleWrap, DoubleWrap: d.console.Kekw}.via(hop)
	}

	d.say("0: I could reject you silently but I try to throw you away instead")
	return d.Agent2(cut(payment, greedyCut)).via(hop)
}

// Agent1 knows nothing and forwards to agent 0 minus a cut.
func (d *Dispatcher) Agent1(payment int64) Selection {
	hop := d.visit(Forwarder, payment, true)
	d.say("1: Nice money %d", payment)
	d.say("1: I know nothing, try another agent. I will forward you")
	return d.Agent0(cut(payment, forwarderCut)).via(hop)
}

// Agent2 helps with big money by handing out a factory; otherwise it returns
// the timing wrapper unapplied.
func (d *Dispatcher) Agent2(payment int64) Selection {
	hop := d.visit(Thankful, payment, true)
	d.say("2: Thanks for the money %d", payment)

	if payment >= BigMoneyThreshold {
		d.say("2: Wow, big money. I try to help")
		factory := Factory(d.console.ResidentSleeper)
		d.say("2: See if this works")
		return Selection{Kind: KindFactory, Factory: factory}.via(hop)
	}

	d.say("2: No matter how much you pay. I do nothing and know nothing. I throw you to timer")
	return Selection{Kind: KindWrapper, Wrapper: d.console.Timer}.via(hop)
}

// Agent3 takes no payment and times the target straight away.
func (d *Dispatcher) Agent3(t wrapper.Target) wrapper.Target {
	d.visit(Idle, 0, false)
	d.say("I don't take you money but don't do anything useful too")
	return d.console.Timer(t)
}

// Resolve runs the agent named by id. A nil payment uses the agent's default.
// Agents 3 and kekw take no payment and resolve to direct wrappers.
func (d *Dispatcher) Resolve(id string, payment *int64) (Selection, error) {
	pay := func(def int64) int64 {
		if payment != nil {
			return *payment
		}
		return def
	}

	var sel Selection
	switch id {
	case Greedy:
		sel = d.Agent0(pay(d.defaults.Agent0))
	case Forwarder:
		sel = d.Agent1(pay(d.defaults.Agent1))
	case Thankful:
		sel = d.Agent2(pay(d.defaults.Agent2))
	case Idle:
		sel = Selection{Kind: KindWrapper, Wrapper: d.Agent3, Path: []Hop{{Agent: Idle}}}
	case Kekw:
		d.visit(Kekw, 0, false)
		sel = Selection{Kind: KindDoubleWrap, DoubleWrap: d.console.Kekw, Path: []Hop{{Agent: Kekw}}}
	default:
		return Selection{}, fmt.Errorf("%w: %q", ErrUnknownAgent, id)
	}

	d.log.Debug("selection resolved", map[string]interface{}{
		"agent": id,
		"kind":  sel.Kind.String(),
		"path":  sel.PathString(),
	})
	return sel, nil
}

// Decorate applies sel to t and counts the decoration
func (d *Dispatcher) Decorate(sel Selection, t wrapper.Target) (wrapper.Target, error) {
	decorated, err := sel.Apply(t)
	if err != nil {
		return wrapper.Target{}, fmt.Errorf("failed to decorate %s: %w", t.Name, err)
	}
	d.console.Recorder().Metrics().ObserveDecoration(sel.Kind.String())
	return decorated, nil
}
