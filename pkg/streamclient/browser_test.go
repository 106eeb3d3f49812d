package streamclient

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty-stream/internal/handlers"
	"realty-stream/internal/middleware"
	"realty-stream/internal/models"
	"realty-stream/internal/services"
	"realty-stream/internal/stream"
	"realty-stream/internal/validators"
)

const waitFor = 5 * time.Second

// scriptedFetcher hands out records pushed on feed and keeps calling
// onRecord after cancellation, the way a slow reader might.
type scriptedFetcher struct {
	feed   chan models.ProjectRecord
	err    error
	cities chan string
}

func newScriptedFetcher() *scriptedFetcher {
	return &scriptedFetcher{
		feed:   make(chan models.ProjectRecord),
		cities: make(chan string, 8),
	}
}

func (f *scriptedFetcher) StreamProjects(ctx context.Context, city string, onRecord func(models.ProjectRecord)) error {
	f.cities <- city
	for {
		select {
		case <-ctx.Done():
			onRecord(models.ProjectRecord{Name: "late " + city})
			return ctx.Err()
		case p, ok := <-f.feed:
			if !ok {
				return f.err
			}
			onRecord(p)
		}
	}
}

func TestCityBrowser_OpenDropsPreviousFetch(t *testing.T) {
	f := newScriptedFetcher()
	b := NewCityBrowser(f, NewState(nil))
	defer b.Close()

	b.Open(context.Background(), "Hyderabad")
	assert.Equal(t, "Hyderabad", <-f.cities)
	f.feed <- models.ProjectRecord{Name: "h1"}
	f.feed <- models.ProjectRecord{Name: "h2"}

	b.Open(context.Background(), "Mumbai")
	assert.Equal(t, "Mumbai", <-f.cities)

	snap := b.State().Snapshot()
	assert.Empty(t, snap.Projects)
	assert.True(t, snap.Loading)

	f.feed <- models.ProjectRecord{Name: "m1"}
	require.Eventually(t, func() bool {
		return len(b.State().Snapshot().Projects) == 1
	}, waitFor, time.Millisecond)
	assert.Equal(t, "m1", b.State().Snapshot().Projects[0].Name)
}

func TestCityBrowser_FetchErrorKeepsRecords(t *testing.T) {
	f := newScriptedFetcher()
	f.err = errors.New("connection reset")
	b := NewCityBrowser(f, NewState(nil))

	done := b.Open(context.Background(), "Pune")
	<-f.cities
	f.feed <- models.ProjectRecord{Name: "p1"}
	close(f.feed)
	<-done

	snap := b.State().Snapshot()
	assert.Len(t, snap.Projects, 1)
	assert.False(t, snap.Loading)
	assert.Equal(t, FetchFailedMessage, snap.Error)
	assert.EqualError(t, b.Err(), "connection reset")
}

func TestCityBrowser_CloseStopsLoading(t *testing.T) {
	f := newScriptedFetcher()
	b := NewCityBrowser(f, NewState(nil))

	b.Close()

	b.Open(context.Background(), "Delhi")
	<-f.cities
	b.Close()
	b.Close()

	snap := b.State().Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	for _, p := range snap.Projects {
		assert.False(t, strings.HasPrefix(p.Name, "late"), "record arrived after close: %s", p.Name)
	}
}

// slowUnwindFetcher records every fetch context and lingers briefly after
// cancellation before returning.
type slowUnwindFetcher struct {
	mu   sync.Mutex
	ctxs []context.Context
}

func (f *slowUnwindFetcher) StreamProjects(ctx context.Context, _ string, _ func(models.ProjectRecord)) error {
	f.mu.Lock()
	f.ctxs = append(f.ctxs, ctx)
	f.mu.Unlock()

	<-ctx.Done()
	time.Sleep(3 * time.Millisecond)
	return ctx.Err()
}

func (f *slowUnwindFetcher) contexts() []context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]context.Context(nil), f.ctxs...)
}

func TestCityBrowser_ConcurrentOpensAllCanceledByClose(t *testing.T) {
	for round := 0; round < 20; round++ {
		f := &slowUnwindFetcher{}
		b := NewCityBrowser(f, NewState(nil))

		b.Open(context.Background(), "a")

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.Open(context.Background(), "b")
			}()
		}
		wg.Wait()
		b.Close()

		ctxs := f.contexts()
		require.Len(t, ctxs, 5, "round %d", round)
		for i, ctx := range ctxs {
			assert.Error(t, ctx.Err(), "round %d: fetch %d still running after Close", round, i)
		}
		assert.False(t, b.State().Snapshot().Loading, "round %d", round)
	}
}

type history struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (h *history) record(s Snapshot) {
	h.mu.Lock()
	h.snaps = append(h.snaps, s)
	h.mu.Unlock()
}

func (h *history) all() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Snapshot(nil), h.snaps...)
}

func newStreamServer(clock clockwork.Clock) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	source := services.NewMockProjectSource(services.NewGeocodingService(nil, nil, "IN"), clock, 0)
	h := handlers.NewProjectHandler(source, stream.NewEmitter(clock, time.Second), validators.NewCityValidator())
	scrape := r.Group("/api/scrape", middleware.StreamIDMiddleware())
	scrape.GET("/", h.StreamProjects)
	scrape.GET("/:cityName", h.StreamProjects)
	return httptest.NewServer(r)
}

func TestCityBrowser_SwitchCityMidStream(t *testing.T) {
	clock := clockwork.NewFakeClock()
	srv := newStreamServer(clock)
	defer srv.Close()

	var h history
	b := NewCityBrowser(NewClient(srv.URL, nil), NewState(h.record))
	defer b.Close()

	count := func() int { return len(b.State().Snapshot().Projects) }

	b.Open(context.Background(), "Hyderabad")
	require.Eventually(t, func() bool { return count() == 1 }, waitFor, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	for want := 2; want <= 3; want++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(time.Second)
		require.Eventually(t, func() bool { return count() == want }, waitFor, time.Millisecond)
	}

	done := b.Open(context.Background(), "Mumbai")
	require.Eventually(t, func() bool {
		clock.Advance(time.Second)
		return count() == 8
	}, waitFor, 5*time.Millisecond)

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("second fetch did not finish")
	}
	require.NoError(t, b.Err())

	snap := b.State().Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	for _, p := range snap.Projects {
		assert.True(t, strings.HasSuffix(p.Location, ", Mumbai"), p.Location)
		assert.Equal(t, 19.0760, p.Coordinates.Lat)
	}
	assert.Equal(t, "Luxury Heights", snap.Projects[0].Name)
	assert.Equal(t, "Urban Oasis", snap.Projects[7].Name)

	// The listing is cleared before the first Mumbai record lands, and no
	// Hyderabad record shows up after that.
	snaps := h.all()
	reset := -1
	for i, s := range snaps {
		if i > 0 && len(s.Projects) == 0 && s.Loading && len(snaps[i-1].Projects) == 3 {
			reset = i
		}
	}
	require.NotEqual(t, -1, reset, "no reset between fetches")
	for _, s := range snaps[reset:] {
		for _, p := range s.Projects {
			assert.True(t, strings.HasSuffix(p.Location, ", Mumbai"), p.Location)
		}
	}
}
