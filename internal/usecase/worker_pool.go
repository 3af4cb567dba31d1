package usecase

import (
	"context"
	"fmt"
	"sync"
)

// Task is one unit of per-role work. Panics inside a task are
// converted to errors so a single bad role cannot abort a batch.
type Task func(ctx context.Context) error

type taskResult struct {
	Err error
}

// workerPool fans per-role computations out over a fixed number of
// goroutines. Roles have no data dependency on one another, so order
// of execution does not matter.
type workerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func newWorkerPool(workers, buffer int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &workerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *workerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

func (p *workerPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *workerPool) Run(ctx context.Context) <-chan taskResult {
	buf := p.workers * 64
	out := make(chan taskResult, buf)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					err := runTask(ctx, t)
					select {
					case <-ctx.Done():
						return
					case out <- taskResult{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	return t(ctx)
}
