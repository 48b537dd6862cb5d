package observe

import (
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

var (
	selfOnce sync.Once
	self     *process.Process
)

// CPUSample returns user+system CPU time of the current process.
// Best effort: any failure yields zero.
func CPUSample() time.Duration {
	selfOnce.Do(func() {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err == nil {
			self = p
		}
	})
	if self == nil {
		return 0
	}

	times, err := self.Times()
	if err != nil || times == nil {
		return 0
	}
	return time.Duration((times.User + times.System) * float64(time.Second))
}
