package taskpool

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultRestartInitial = 50 * time.Millisecond
	defaultRestartMax     = 5 * time.Second
)

// FaultPolicy decides what a worker does after a task panicked.
type FaultPolicy int

const (
	// FaultContinue logs and reports the fault, then keeps the worker running.
	FaultContinue FaultPolicy = iota

	// FaultStopWorker makes the fault the worker's terminal signal.
	// The worker exits and the fault is returned by WaitForCompletion.
	FaultStopWorker

	// FaultRestartWorker exits the worker loop, waits a backoff delay
	// and re-enters the loop in the same slot.
	FaultRestartWorker
)

func (fp FaultPolicy) String() string {
	switch fp {
	case FaultContinue:
		return "continue"
	case FaultStopWorker:
		return "stop"
	case FaultRestartWorker:
		return "restart"
	default:
		return "unknown"
	}
}

// ParseFaultPolicy accepts the names printed by FaultPolicy.String.
func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch strings.ToLower(s) {
	case "continue", "":
		return FaultContinue, nil
	case "stop":
		return FaultStopWorker, nil
	case "restart":
		return FaultRestartWorker, nil
	default:
		return 0, fmt.Errorf("taskpool: unknown fault policy %q", s)
	}
}

// RestartPolicy bounds the backoff between worker restarts.
// Zero values are treated as "use pool defaults".
type RestartPolicy struct {
	// Initial is the first backoff duration.
	Initial time.Duration

	// Max is the cap for backoff duration.
	Max time.Duration
}

// GetDefaultRP returns the restart policy used when none is configured.
func GetDefaultRP() RestartPolicy {
	return RestartPolicy{
		Initial: defaultRestartInitial,
		Max:     defaultRestartMax,
	}
}
