package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	tp "github.com/Andrej220/go-utils/taskpool"
	lg "github.com/Andrej220/go-utils/zlog"
)

var (
	workersFlag     int
	tasksFlag       int
	queueFlag       string
	sleepFlag       time.Duration
	terminateFlag   bool
	panicEveryFlag  int
	faultPolicyFlag string
	metricsAddrFlag string
)

// taskpool run
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Submit a workload and wait for the pool to finish",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		qt, err := parseQueueType(queueFlag)
		if err != nil {
			return err
		}
		policy, err := tp.ParseFaultPolicy(faultPolicyFlag)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		prom, err := tp.NewPrometheusMetrics(reg, "taskpool", "demo")
		if err != nil {
			return err
		}
		counts := &tp.AtomicMetrics{}

		if metricsAddrFlag != "" {
			srv := serveMetrics(ctx, reg, metricsAddrFlag)
			defer srv.Close()
		}

		p, err := tp.NewFromOptions(tp.Options{
			Workers:     workersFlag,
			QT:          qt,
			FaultPolicy: policy,
			Metrics:     fanout{counts, prom},
			Ctx:         ctx,
			Name:        "demo",
		})
		if err != nil {
			return err
		}

		fmt.Printf("🚀 Pool started (%d workers, %s). Press Ctrl+C to terminate.\n", p.Workers(), qt)

		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		poolCtx := p.Context()
		for i := 1; i <= tasksFlag; i++ {
			faulty := panicEveryFlag > 0 && i%panicEveryFlag == 0
			n := i
			work := func() {
				select {
				case <-time.After(sleepFlag):
				case <-poolCtx.Done():
					return
				}
				if faulty {
					panic(fmt.Sprintf("injected fault in task %d", n))
				}
			}
			if err := p.SubmitPriority(work, r.Intn(int(tp.MaxPriority))+1); err != nil {
				if errors.Is(err, tp.ErrPoolTerminating) {
					break
				}
				return err
			}
		}

		if terminateFlag {
			p.Terminate()
		} else {
			p.Stop()
		}
		waitErr := p.WaitForCompletion()

		fmt.Printf("submitted=%d executed=%d faulted=%d discarded=%d restarted=%d\n",
			counts.Submitted(), counts.Executed(), counts.Faulted(), counts.Discarded(), counts.Restarted())

		if waitErr != nil {
			lg.FromContext(ctx).Error("pool finished with faults", lg.Any("error", waitErr))
			return waitErr
		}
		fmt.Println("⚡ Pool stopped.")
		return nil
	},
}

func init() {
	runCmd.Flags().IntVarP(&workersFlag, "workers", "w", runtime.NumCPU(), "Number of workers")
	runCmd.Flags().IntVarP(&tasksFlag, "tasks", "n", 100, "Number of tasks to submit")
	runCmd.Flags().StringVar(&queueFlag, "queue", "fifo", "Queue type: fifo or priority")
	runCmd.Flags().DurationVar(&sleepFlag, "sleep", 10*time.Millisecond, "Duration of every task")
	runCmd.Flags().BoolVar(&terminateFlag, "terminate", false, "Terminate instead of draining the queue")
	runCmd.Flags().IntVar(&panicEveryFlag, "panic-every", 0, "Make every n-th task panic (0 disables)")
	runCmd.Flags().StringVar(&faultPolicyFlag, "fault-policy", "continue", "Fault policy: continue, stop or restart")
	runCmd.Flags().StringVar(&metricsAddrFlag, "metrics-addr", "", "Serve Prometheus /metrics on this address while running")
}

func parseQueueType(s string) (tp.QueueType, error) {
	switch s {
	case "fifo":
		return tp.FifoQueue, nil
	case "priority":
		return tp.PriorityQueue, nil
	default:
		return 0, fmt.Errorf("unknown queue type %q", s)
	}
}

func serveMetrics(ctx context.Context, reg *prometheus.Registry, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.FromContext(ctx).Warn("metrics server failed", lg.String("addr", addr), lg.Any("error", err))
		}
	}()
	return srv
}

// fanout forwards every update to each policy in order.
type fanout []tp.MetricsPolicy

func (f fanout) IncSubmitted() {
	for _, m := range f {
		m.IncSubmitted()
	}
}

func (f fanout) IncExecuted() {
	for _, m := range f {
		m.IncExecuted()
	}
}

func (f fanout) IncFaulted() {
	for _, m := range f {
		m.IncFaulted()
	}
}

func (f fanout) IncRestarted() {
	for _, m := range f {
		m.IncRestarted()
	}
}

func (f fanout) AddDiscarded(n int) {
	for _, m := range f {
		m.AddDiscarded(n)
	}
}
