package sender

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/quizbot/core/logger"
	"github.com/m3rciful/quizbot/core/telegram/netutil"
)

const logComponent = "tg.sender"

var (
	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull means the worker owning the key has no room left.
	ErrQueueFull = errors.New("telegram sender: queue full")
)

// Options controls the behaviour of the outbound dispatcher.
type Options struct {
	// QueueSize is the capacity of each worker queue.
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent on a single job, retries included.
	MaxDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	o.MaxRetries = max(o.MaxRetries, 0)
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 2 * time.Second
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 12 * time.Second
	}
	return o
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
}

// Dispatcher executes outbound Telegram calls on a fixed set of workers.
// Jobs sharing a key land on the same worker and run in enqueue order,
// so the replies of one chat never overtake each other.
type Dispatcher struct {
	opts    Options
	workers []chan job
	wg      sync.WaitGroup
	failed  atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts the workers; zero options take defaults.
func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{opts: opts, workers: make([]chan job, opts.Workers)}
	d.wg.Add(len(d.workers))
	for i := range d.workers {
		q := make(chan job, opts.QueueSize)
		d.workers[i] = q
		go func() {
			defer d.wg.Done()
			for j := range q {
				d.process(j)
			}
		}()
	}
	return d
}

// Enqueue hands run to the worker owning key (a chat id). It never blocks:
// a full worker queue yields ErrQueueFull. run may be called more than
// once when the failure looks transient.
func (d *Dispatcher) Enqueue(ctx context.Context, key int64, action, endpoint string, run func() error) error {
	if run == nil {
		return errors.New("telegram sender: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.workers[d.shard(key)] <- job{ctx: ctx, action: action, endpoint: endpoint, run: run}:
		return nil
	default:
		return ErrQueueFull
	}
}

// shard works on the unsigned key so negative group ids spread too.
func (d *Dispatcher) shard(key int64) int {
	return int(uint64(key) % uint64(len(d.workers)))
}

// ErrorCount returns the number of jobs that finally failed.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.failed.Load()
}

// Close stops accepting jobs and waits until queued ones are done.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, q := range d.workers {
		close(q)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) process(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attempts, err := d.runWithRetry(ctx, j)
	attrs := []slog.Attr{
		slog.String("action", j.action),
		slog.String("endpoint", j.endpoint),
		slog.Int("attempts", attempts),
		slog.Duration("elapsed", time.Since(start)),
	}
	if err == nil {
		logger.Debug(j.ctx, logComponent, "send.ok", attrs...)
		return
	}
	d.failed.Add(1)
	logger.Error(j.ctx, logComponent, "send.fail", append(attrs,
		slog.String("err", redact(err)),
		slog.String("err_kind", errKind(err)),
	)...)
}

func (d *Dispatcher) runWithRetry(ctx context.Context, j job) (int, error) {
	limit := d.opts.MaxRetries + 1
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return n - 1, err
		}
		err := j.run()
		if err == nil || n >= limit || !retryable(err) {
			return n, err
		}

		delay := max(d.opts.RetryBackoff*time.Duration(n), retryAfter(err))
		logger.Debug(ctx, logComponent, "send.retry",
			slog.String("action", j.action),
			slog.Int("attempt", n),
			slog.Duration("backoff", delay),
			slog.String("err_kind", errKind(err)),
		)
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return n, errors.Join(ctx.Err(), err)
		case <-t.C:
		}
	}
}

func retryable(err error) bool {
	return netutil.ShouldRetry(err) || retryAfter(err) > 0
}
