package streamclient

import (
	"context"
	"sync"

	"realty-stream/internal/models"
)

// Fetcher streams the projects of a city.
type Fetcher interface {
	StreamProjects(ctx context.Context, city string, onRecord func(models.ProjectRecord)) error
}

// CityBrowser drives one view: opening a city abandons the previous fetch
// and starts a fresh listing.
type CityBrowser struct {
	fetcher Fetcher
	state   *State

	// openMu serializes Open and Close from stop through start.
	openMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func NewCityBrowser(fetcher Fetcher, state *State) *CityBrowser {
	return &CityBrowser{fetcher: fetcher, state: state}
}

// State returns the state the browser writes to.
func (b *CityBrowser) State() *State {
	return b.state
}

// Open cancels any fetch in flight, waits for it to stop, resets the state
// and starts streaming city in the background. The returned channel is
// closed when this fetch ends; Err then reports its outcome.
func (b *CityBrowser) Open(ctx context.Context, city string) <-chan struct{} {
	b.openMu.Lock()
	defer b.openMu.Unlock()

	b.stop()

	gen := b.state.Begin()
	fetchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	b.mu.Lock()
	b.cancel, b.done, b.err = cancel, done, nil
	b.mu.Unlock()

	go func() {
		defer close(done)
		err := b.fetcher.StreamProjects(fetchCtx, city, func(p models.ProjectRecord) {
			if fetchCtx.Err() != nil {
				return
			}
			b.state.Append(gen, p)
		})
		b.state.Finish(gen, err)

		b.mu.Lock()
		if b.done == done {
			b.err = err
		}
		b.mu.Unlock()
	}()
	return done
}

// Close cancels the fetch in flight, if any, and waits for it to stop.
func (b *CityBrowser) Close() {
	b.openMu.Lock()
	defer b.openMu.Unlock()
	b.stop()
}

// Err reports how the most recent fetch ended. It is nil while the fetch
// is running or when it completed normally.
func (b *CityBrowser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// stop cancels the current fetch and waits for it to exit. Callers hold
// openMu, so no other fetch can be installed meanwhile.
func (b *CityBrowser) stop() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
