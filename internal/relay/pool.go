package relay

import (
	"context"
	"sync"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
)

// Handler processes one payload.
type Handler interface {
	Process(ctx context.Context, data []byte) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, data []byte) error

func (f HandlerFunc) Process(ctx context.Context, data []byte) error { return f(ctx, data) }

// Pool runs a fixed number of workers over a bounded queue.
type Pool struct {
	handler Handler
	jobs    chan []byte
	workers int
	log     *logging.Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func NewPool(workers int, handler Handler, log *logging.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		handler: handler,
		jobs:    make(chan []byte, workers*2),
		workers: workers,
		log:     log,
	}
}

// Start launches the workers. They stop once Close has been called and the
// queue is drained.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(ctx, i)
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.wg.Done()
	for data := range p.jobs {
		if err := p.handler.Process(ctx, data); err != nil {
			p.log.Error("processing failed", "worker", id, "error", err)
		}
	}
}

// Submit queues a payload, blocking while the queue is full. It returns
// false if ctx ends first or the pool is closed.
func (p *Pool) Submit(ctx context.Context, data []byte) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- data:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close stops accepting work and waits for queued payloads to finish. Cancel
// the context given to blocked Submit calls first.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
