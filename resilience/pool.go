package resilience

import (
	"context"
	"sync"
)

// PoolConfig configures the bounded concurrency pool.
type PoolConfig struct {
	// Workers is the maximum number of tasks running at once.
	// Default: 10
	Workers int

	// QueueSize is the capacity of the pending-task queue.
	// Default: 64
	QueueSize int
}

// Pool runs tasks with bounded concurrency. Queued tasks are dispatched
// to a fixed set of workers in arrival (FIFO) order.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: Submit honors cancellation while queued or waiting, but a
//   task already dispatched keeps running; its side effects are not
//   rolled back.
// - Errors: task failures are returned to the submitter, never retried
//   by the pool.
type Pool struct {
	config PoolConfig
	tasks  chan *poolTask
	wg     sync.WaitGroup

	mu        sync.RWMutex
	closed    bool
	running   int
	completed int64
}

type poolTask struct {
	ctx  context.Context
	run  func(context.Context) error
	done chan error
}

// NewPool creates a pool and starts its workers.
func NewPool(config PoolConfig) *Pool {
	// Apply defaults
	if config.Workers <= 0 {
		config.Workers = 10
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 64
	}

	p := &Pool{
		config: config,
		tasks:  make(chan *poolTask, config.QueueSize),
	}

	p.wg.Add(config.Workers)
	for i := 0; i < config.Workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues run and waits for its result.
//
// If a worker is free the task starts immediately; otherwise it waits in
// FIFO order. Cancelling ctx abandons the wait, but cannot recall a task
// that has already been dispatched.
func (p *Pool) Submit(ctx context.Context, run func(context.Context) error) error {
	task := &poolTask{
		ctx:  ctx,
		run:  run,
		done: make(chan error, 1),
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}

	select {
	case err := <-task.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Execute runs op through the pool. It exists to match the
// Execute(ctx, op) shape of the other resilience primitives.
func (p *Pool) Execute(ctx context.Context, op func(context.Context) error) error {
	return p.Submit(ctx, op)
}

// Close stops accepting tasks and waits for queued work to drain.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		// Skip tasks whose submitter already gave up.
		if err := task.ctx.Err(); err != nil {
			task.done <- err
			continue
		}

		p.mu.Lock()
		p.running++
		p.mu.Unlock()

		err := task.run(task.ctx)

		p.mu.Lock()
		p.running--
		p.completed++
		p.mu.Unlock()

		task.done <- err
	}
}

// PoolMetrics contains pool statistics.
type PoolMetrics struct {
	Workers   int
	Running   int
	Queued    int
	Completed int64
}

// Metrics returns current pool statistics.
func (p *Pool) Metrics() PoolMetrics {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return PoolMetrics{
		Workers:   p.config.Workers,
		Running:   p.running,
		Queued:    len(p.tasks),
		Completed: p.completed,
	}
}
