// Package watch keeps the experiment catalog fresh by polling the tracking
// server in the background and publishing updates on the event bus.
package watch

import (
	"context"
	"log"
	"sync"
	"time"

	"rungrip/internal/domain"
	"rungrip/internal/eventbus"
	"rungrip/internal/tracker"
)

// Watcher polls the experiment catalog on an interval.
type Watcher interface {
	Start(ctx context.Context)
	Stop()
}

// watcher is the concrete implementation
type watcher struct {
	bus      eventbus.EventBus
	client   *tracker.Client
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	kick    chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher. It subscribes to refresh requests so the UI can
// force an immediate poll.
func New(bus eventbus.EventBus, client *tracker.Client, interval time.Duration) Watcher {
	w := &watcher{
		bus:      bus,
		client:   client,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}

	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		select {
		case w.kick <- struct{}{}:
		default:
		}
	})

	return w
}

// Start begins polling until the context is cancelled or Stop is called.
func (w *watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	pollCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.running = false
			w.cancel = nil
			w.mu.Unlock()
		}()

		w.poll(pollCtx)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				w.poll(pollCtx)
			case <-w.kick:
				// An explicit refresh also asks the server to rescan
				// its store before listing.
				if err := w.client.Refresh(pollCtx); err != nil {
					log.Printf("store refresh failed: %v", err)
				}
				w.poll(pollCtx)
			}
		}
	}()
}

// Stop cancels polling and waits for the poll goroutine to exit.
func (w *watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *watcher) poll(ctx context.Context) {
	experiments, err := w.client.Experiments(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("experiment poll failed: %v", err)
		w.bus.Publish(domain.ServerErrorEvent{Message: "experiment poll failed", Err: err})
		return
	}
	w.bus.Publish(domain.ExperimentsUpdatedEvent{Experiments: experiments})
}
