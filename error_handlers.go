package taskpool

import (
	lg "github.com/Andrej220/go-utils/zlog"
)

// reportFault logs a recovered task panic and hands it to the
// OnFault hook and the metrics policy.
//
// Task faults never reach the submitter directly; this is the only
// path by which they become visible.
func (p *Pool) reportFault(f *ExecutionFault) {
	p.metrics.IncFaulted()
	lg.FromContext(p.ctx).Error("task panicked",
		lg.Int("worker", f.Worker),
		lg.String("task_id", f.TaskID.String()),
		lg.Int("priority", int(f.Priority)),
		lg.Any("panic", f.Value),
		lg.String("policy", p.opts.FaultPolicy.String()),
	)
	if p.opts.OnFault != nil {
		p.opts.OnFault(f)
	}
}

// recordTerminal stores a fault that ended a worker under FaultStopWorker.
// WaitForCompletion returns all of them joined.
func (p *Pool) recordTerminal(f *ExecutionFault) {
	p.faultsMu.Lock()
	p.terminal = append(p.terminal, f)
	p.faultsMu.Unlock()
}
