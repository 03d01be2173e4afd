package hunt

import (
	"context"
	"errors"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

// ErrNoIterations is returned by Run and RunSet when IterationsPerCall is 0.
var ErrNoIterations = errors.New("iterations per call must be greater than zero")

// Config controls the worker pool.
type Config struct {
	// Workers is the number of goroutines (0 = auto-detect)
	Workers int

	// IterationsPerCall is the sample budget of each Search call
	IterationsPerCall uint32

	// MaxCalls caps the total number of Search calls across workers
	// (0 = run until found or cancelled)
	MaxCalls uint64

	// ReportInterval is the period of progress log lines (0 = no reports)
	ReportInterval time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:           0, // Auto-detect
		IterationsPerCall: 10000,
		MaxCalls:          0,
		ReportInterval:    10 * time.Second,
	}
}

// Outcome summarizes a hunt.
type Outcome struct {
	Found    bool                `json:"found"`
	Result   puzzle.SearchResult `json:"result"`
	Attempts uint64              `json:"attempts"`
	Calls    uint64              `json:"calls"`
	Workers  int                 `json:"workers"`
	Elapsed  time.Duration       `json:"elapsed"`
	Progress float64             `json:"progress"` // percent of the range, see puzzle.Progress
}

// Rate returns the average number of keys checked per second.
func (o *Outcome) Rate() float64 {
	if o.Elapsed <= 0 {
		return 0
	}
	return float64(o.Attempts) / o.Elapsed.Seconds()
}

// Hunter runs many bounded searches in parallel until one of them finds a
// target. Each Search call stays single-threaded; the hunter only fans calls
// out over goroutines.
type Hunter struct {
	searcher *puzzle.Searcher
	config   Config
	logger   *zap.Logger
}

// New creates a hunter driving searcher with the default configuration.
func New(searcher *puzzle.Searcher) *Hunter {
	return &Hunter{
		searcher: searcher,
		config:   DefaultConfig(),
		logger:   zap.NewNop(),
	}
}

// WithConfig sets the pool configuration.
func (h *Hunter) WithConfig(config Config) *Hunter {
	h.config = config
	return h
}

// WithLogger sets the logger used for progress reports.
func (h *Hunter) WithLogger(logger *zap.Logger) *Hunter {
	if logger == nil {
		logger = zap.NewNop()
	}
	h.logger = logger
	return h
}

// Config returns the pool configuration.
func (h *Hunter) Config() Config {
	return h.config
}

// Run searches [start, end] for target.
//
// It returns when a worker finds the target, when MaxCalls searches have
// run, when ctx is done or when a search fails. A found target is reported
// with a nil error even if ctx is cancelled at the same time.
func (h *Hunter) Run(ctx context.Context, target string, start, end keyspace.Key) (*Outcome, error) {
	search := func(ctx context.Context) (puzzle.SearchResult, error) {
		return h.searcher.Search(ctx, target, start, end, h.config.IterationsPerCall)
	}
	return h.run(ctx, search, h.logger.With(zap.String("target", target)), puzzle.RangeCount(start, end))
}

// RunSet is Run against every address in set.
func (h *Hunter) RunSet(ctx context.Context, set puzzle.AddressSet, start, end keyspace.Key) (*Outcome, error) {
	search := func(ctx context.Context) (puzzle.SearchResult, error) {
		return h.searcher.SearchSet(ctx, set, start, end, h.config.IterationsPerCall)
	}
	return h.run(ctx, search, h.logger.With(zap.Int("targets", set.Len())), puzzle.RangeCount(start, end))
}

type searchFunc func(ctx context.Context) (puzzle.SearchResult, error)

// counters are shared by all workers of one run.
type counters struct {
	issued   atomic.Uint64
	calls    atomic.Uint64
	attempts atomic.Uint64
}

func (h *Hunter) run(parent context.Context, search searchFunc, logger *zap.Logger, rangeSize *big.Int) (*Outcome, error) {
	// A zero budget makes every call return at once without sampling.
	if h.config.IterationsPerCall == 0 {
		return nil, ErrNoIterations
	}

	numWorkers := h.config.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	logger.Info("starting hunt",
		zap.Int("workers", numWorkers),
		zap.Uint32("iterations_per_call", h.config.IterationsPerCall),
		zap.Uint64("max_calls", h.config.MaxCalls))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	resultChan := make(chan puzzle.SearchResult, 1)
	errChan := make(chan error, 1)
	var c counters

	begin := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			h.worker(ctx, cancel, search, &c, resultChan, errChan, logger.With(zap.Int("worker", workerID)))
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var tick <-chan time.Time
	if h.config.ReportInterval > 0 {
		ticker := time.NewTicker(h.config.ReportInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

wait:
	for {
		select {
		case <-done:
			break wait
		case <-tick:
			attempts := c.attempts.Load()
			elapsed := time.Since(begin)
			logger.Info("hunt progress",
				zap.Uint64("attempts", attempts),
				zap.Float64("keys_per_second", float64(attempts)/elapsed.Seconds()),
				zap.Float64("progress", puzzle.Progress(attempts, rangeSize)))
		}
	}

	outcome := &Outcome{
		Attempts: c.attempts.Load(),
		Calls:    c.calls.Load(),
		Workers:  numWorkers,
		Elapsed:  time.Since(begin),
	}
	outcome.Progress = puzzle.Progress(outcome.Attempts, rangeSize)

	select {
	case result := <-resultChan:
		outcome.Found = true
		outcome.Result = result
		logger.Info("hunt finished: target found",
			zap.String("address", result.AddressFound),
			zap.Uint64("attempts", outcome.Attempts),
			zap.Duration("elapsed", outcome.Elapsed))
		return outcome, nil
	default:
	}

	select {
	case err := <-errChan:
		logger.Error("hunt failed", zap.Error(err))
		return outcome, err
	default:
	}

	logger.Info("hunt finished",
		zap.Uint64("attempts", outcome.Attempts),
		zap.Uint64("calls", outcome.Calls),
		zap.Duration("elapsed", outcome.Elapsed))
	return outcome, parent.Err()
}

// worker issues Search calls until the budget is spent or the run ends.
func (h *Hunter) worker(
	ctx context.Context,
	cancel context.CancelFunc,
	search searchFunc,
	c *counters,
	resultChan chan<- puzzle.SearchResult,
	errChan chan<- error,
	logger *zap.Logger,
) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if n := c.issued.Add(1); h.config.MaxCalls > 0 && n > h.config.MaxCalls {
			return
		}

		result, err := search(ctx)
		c.attempts.Add(uint64(result.Attempts))
		c.calls.Add(1)

		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil:
			select {
			case errChan <- err:
			default:
			}
			cancel()
			return
		case result.Found:
			logger.Debug("worker found target", zap.Uint32("attempts", result.Attempts))
			select {
			case resultChan <- result:
			default:
			}
			cancel()
			return
		}
	}
}
