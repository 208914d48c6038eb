package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rungrip/internal/domain"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var got []domain.ExperimentInfo
	b.Subscribe(EventExperimentsUpdated, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = e.(ExperimentsUpdatedEvent).Experiments
	})

	b.Publish(ExperimentsUpdatedEvent{Experiments: []domain.ExperimentInfo{{ExperimentID: "exp-a"}}})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1 && got[0].ExperimentID == "exp-a"
	})
}

func TestSubscribersAreTypeScoped(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var refreshes, errors int
	b.Subscribe(EventRefreshRequested, func(DomainEvent) {
		mu.Lock()
		refreshes++
		mu.Unlock()
	})
	b.Subscribe(EventServerError, func(DomainEvent) {
		mu.Lock()
		errors++
		mu.Unlock()
	})

	b.Publish(RefreshRequestedEvent{})
	b.Publish(RefreshRequestedEvent{})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return refreshes == 2
	})
	mu.Lock()
	require.Zero(t, errors)
	mu.Unlock()
}

func TestPanickingHandlerDoesNotKillDispatcher(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var delivered bool
	b.Subscribe(EventServerError, func(DomainEvent) {
		panic("handler bug")
	})
	b.Subscribe(EventServerError, func(DomainEvent) {
		mu.Lock()
		delivered = true
		mu.Unlock()
	})

	b.Publish(ServerErrorEvent{Message: "boom"})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return delivered
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New()
	b.Close()
	b.Close()
}

func TestCloseWaitsForInFlightDelivery(t *testing.T) {
	b := New()

	// Mirrors the shutdown path in main: a handler forwarding onto a
	// channel that is closed right after the bus. Close must not return
	// while that handler is still mid-delivery.
	events := make(chan DomainEvent, 1)
	started := make(chan struct{})
	b.Subscribe(EventRefreshRequested, func(e DomainEvent) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		select {
		case events <- e:
		default:
		}
	})

	b.Publish(RefreshRequestedEvent{})
	<-started

	b.Close()
	close(events)

	require.Len(t, events, 1)
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	counts := make(map[string]int)
	record := func(name string) EventHandler {
		return func(DomainEvent) {
			mu.Lock()
			counts[name]++
			mu.Unlock()
		}
	}

	unsubA := b.Subscribe(EventRefreshRequested, record("a"))
	unsubB := b.Subscribe(EventRefreshRequested, record("b"))
	b.Subscribe(EventRefreshRequested, record("c"))

	// Unsubscribing in registration order must not shift which handler
	// the later closure removes.
	unsubA()
	unsubB()

	b.Publish(RefreshRequestedEvent{})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return counts["c"] == 1
	})
	mu.Lock()
	defer mu.Unlock()
	require.Zero(t, counts["a"])
	require.Zero(t, counts["b"])
}
