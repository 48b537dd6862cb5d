package wrapper

import (
	"fmt"

	"github.com/psantana5/agentdeco/internal/observe"
	"github.com/psantana5/agentdeco/internal/report"
)

// Timer wraps t so every call prints its elapsed wall time to four decimals.
// A failing call is recorded but prints nothing.
func (c *Console) Timer(t Target) Target {
	return Target{
		Name: t.Name,
		Fn: func(args ...any) (any, error) {
			timing := observe.NewTiming()
			result, err := t.Call(args...)
			timing.Complete()

			c.rec.Record(report.NewResult(t.Name, timing, err))
			if err != nil {
				return result, err
			}

			fmt.Fprintf(c.out, "Finished '%s' in %s secs\n", t.Name, observe.Seconds(timing.Duration()))
			return result, nil
		},
	}
}
