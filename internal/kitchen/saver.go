package kitchen

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/metrics"
)

// Persister stores serialized collections durably.
type Persister interface {
	Load(ctx context.Context) (map[string][]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
}

// AsyncSaver writes collections on a background goroutine. Pending writes to
// the same collection coalesce so only the latest value is saved. Errors are
// logged and counted, never returned to the mutating caller.
type AsyncSaver struct {
	persister Persister
	logger    *slog.Logger

	mu      sync.Mutex
	pending map[event.Collection][]byte
	order   []event.Collection
	closed  bool

	saveMu sync.Mutex
	wake   chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewAsyncSaver starts the background writer. Call Close to flush and stop it.
func NewAsyncSaver(p Persister, logger *slog.Logger) *AsyncSaver {
	a := &AsyncSaver{
		persister: p,
		logger:    logger,
		pending:   make(map[event.Collection][]byte),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *AsyncSaver) Enqueue(c event.Collection, data []byte) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.logger.Warn("save after close dropped", "collection", c)
		return
	}
	if _, ok := a.pending[c]; !ok {
		a.order = append(a.order, c)
	}
	a.pending[c] = data
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *AsyncSaver) run() {
	defer a.wg.Done()
	for {
		select {
		case <-a.wake:
			a.Flush(context.Background())
		case <-a.done:
			a.Flush(context.Background())
			return
		}
	}
}

// Flush synchronously writes everything pending.
func (a *AsyncSaver) Flush(ctx context.Context) {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	a.mu.Lock()
	pending, order := a.pending, a.order
	a.pending = make(map[event.Collection][]byte)
	a.order = nil
	a.mu.Unlock()

	for _, c := range order {
		if err := a.persister.Save(ctx, string(c), pending[c]); err != nil {
			metrics.PersistFailures.WithLabelValues(string(c)).Inc()
			a.logger.Error("failed to save collection", "collection", c, "error", err)
			continue
		}
		a.logger.Debug("collection saved", "collection", c, "bytes", len(pending[c]))
	}
}

// Close flushes pending writes and stops the worker. Later Enqueue calls are
// dropped.
func (a *AsyncSaver) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	close(a.done)
	a.wg.Wait()
}
