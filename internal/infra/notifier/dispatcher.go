package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type task struct {
	name string
	fn   func(ctx context.Context)
}

// Dispatcher runs delivery tasks on a fixed pool of workers behind a bounded
// queue. Submit never blocks the caller: when the queue is full the task is
// dropped and logged, which keeps slow sinks from backing up into request
// handlers.
type Dispatcher struct {
	queue       chan task
	taskTimeout time.Duration
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

func NewDispatcher(workers, queueSize int, taskTimeout time.Duration) *Dispatcher {
	d := &Dispatcher{
		queue:       make(chan task, queueSize),
		taskTimeout: taskTimeout,
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *Dispatcher) Submit(name string, fn func(ctx context.Context)) {
	select {
	case d.queue <- task{name: name, fn: fn}:
	default:
		slog.Warn("notification queue full, dropping event", slog.String("event", name))
	}
}

// Close stops accepting tasks and waits for in-flight deliveries to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for t := range d.queue {
		d.run(t)
	}
}

func (d *Dispatcher) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("notification task panicked",
				slog.String("event", t.name), slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer cancel()

	t.fn(ctx)
}
