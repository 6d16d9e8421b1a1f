package resource

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimit is returned when a single reservation is larger than the
// configured memory limit and so can never be granted.
var ErrMemoryLimit = errors.New("resource: request exceeds memory limit")

// Config holds resource limits.
type Config struct {
	// MaxWorkers is the maximum number of concurrent row workers.
	// If 0, defaults to GOMAXPROCS.
	MaxWorkers int64

	// MemoryLimitBytes is the hard limit for scratch memory held by
	// in-flight parallel transforms. If 0, usage is only tracked.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec caps the throughput of frame writers.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller bounds the work the codec packages run in parallel.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	// Concurrency
	workers *semaphore.Weighted

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = int64(runtime.GOMAXPROCS(0))
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Workers returns the worker limit, GOMAXPROCS for a nil controller.
func (c *Controller) Workers() int {
	if c == nil {
		return runtime.GOMAXPROCS(0)
	}
	return int(c.cfg.MaxWorkers)
}

// AcquireWorker reserves a worker slot, blocking until one is free or ctx is done.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.workers.Acquire(ctx, 1)
}

// TryAcquireWorker reserves a worker slot without blocking.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	return c.workers.TryAcquire(1)
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workers.Release(1)
}

// AcquireMemory reserves memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
// A request larger than the limit itself fails with ErrMemoryLimit.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return fmt.Errorf("%w: %d bytes requested, limit is %d", ErrMemoryLimit, bytes, c.cfg.MemoryLimitBytes)
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves memory without blocking.
// Returns true if acquired, false if the limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return false
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// IOBurst returns the largest single IO reservation AcquireIO accepts,
// or 0 when IO is unlimited.
func (c *Controller) IOBurst() int {
	if c == nil || c.ioLimiter == nil {
		return 0
	}
	return c.ioLimiter.Burst()
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than IOBurst must be split by the caller.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
