package wrapper

import "fmt"

// KekwName labels the closure Kekw builds around its target. The closure
// does not inherit the target's name, so the timing line reports this one.
const KekwName = "modified_f"

const (
	kekwLine    = "KEK: I will KEKW at you"
	sleeperLine = "Zzz Zzz Zzz ResidentSleeper zzZ zzZ zzzZZZ"
)

// Kekw prints a heckle before delegating, then times the heckling closure.
// The result is a wrapper of a wrapper.
func (c *Console) Kekw(t Target) Target {
	inner := Target{
		Name: KekwName,
		Fn: func(args ...any) (any, error) {
			fmt.Fprintln(c.out, kekwLine)
			return t.Call(args...)
		},
	}
	return c.Timer(inner)
}

// ResidentSleeper prints a closing line once the target has returned.
func (c *Console) ResidentSleeper(t Target) Target {
	return Target{
		Name: t.Name,
		Fn: func(args ...any) (any, error) {
			result, err := t.Call(args...)
			if err != nil {
				return result, err
			}
			fmt.Fprintln(c.out, sleeperLine)
			return result, nil
		},
	}
}
