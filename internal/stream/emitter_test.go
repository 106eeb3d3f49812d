package stream

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty-stream/internal/models"
)

// recordingWriter captures frames and signals each write.
type recordingWriter struct {
	mu      sync.Mutex
	frames  [][]byte
	written chan struct{}
	failAt  int
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{written: make(chan struct{}, 64), failAt: -1}
}

func (w *recordingWriter) WriteFrame(frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failAt == len(w.frames) {
		return errors.New("broken pipe")
	}
	w.frames = append(w.frames, append([]byte(nil), frame...))
	w.written <- struct{}{}
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames)
}

func projects(n int) []models.ProjectRecord {
	out := make([]models.ProjectRecord, n)
	for i := range out {
		out[i] = sampleProject(fmt.Sprintf("Project %d", i))
	}
	return out
}

func waitWritten(t *testing.T, w *recordingWriter) {
	t.Helper()
	select {
	case <-w.written:
	case <-time.After(5 * time.Second):
		t.Fatal("frame not written")
	}
}

func TestEmitter_PacesFramesWithDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	e := NewEmitter(clock, time.Second)
	w := newRecordingWriter()

	done := make(chan error, 1)
	go func() {
		_, err := e.Emit(context.Background(), w, projects(3))
		done <- err
	}()

	// First frame goes out immediately.
	waitWritten(t, w)
	assert.Equal(t, 1, w.count())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for want := 2; want <= 3; want++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		assert.Equal(t, want-1, w.count())
		clock.Advance(time.Second)
		waitWritten(t, w)
		assert.Equal(t, want, w.count())
	}

	// No trailing delay after the last frame.
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("emit did not finish")
	}
}

func TestEmitter_PreservesOrder(t *testing.T) {
	w := newRecordingWriter()
	in := projects(20)

	sent, err := NewEmitter(clockwork.NewFakeClock(), 0).Emit(context.Background(), w, in)
	require.NoError(t, err)
	assert.Equal(t, 20, sent)

	dec := NewDecoder()
	var got []models.ProjectRecord
	for _, f := range w.frames {
		recs, err := dec.Feed(f)
		require.NoError(t, err)
		got = append(got, recs...)
	}
	assert.Equal(t, in, got)
}

func TestEmitter_StopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	w := newRecordingWriter()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	var sent int
	var err error
	go func() {
		sent, err = NewEmitter(clock, time.Second).Emit(ctx, w, projects(8))
		close(done)
	}()

	waitWritten(t, w)
	bctx, bcancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer bcancel()
	require.NoError(t, clock.BlockUntilContext(bctx, 1))
	cancel()

	<-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sent)
}

func TestEmitter_EncodeFailureWritesNothingForThatFrame(t *testing.T) {
	in := projects(3)
	in[1].Coordinates.Lon = math.Inf(1)
	w := newRecordingWriter()

	sent, err := NewEmitter(clockwork.NewFakeClock(), 0).Emit(context.Background(), w, in)
	require.Error(t, err)

	var ef *EncodeFailure
	require.ErrorAs(t, err, &ef)
	assert.Equal(t, 1, ef.Index)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, w.count())
}

func TestEmitter_WriteError(t *testing.T) {
	w := newRecordingWriter()
	w.failAt = 2

	sent, err := NewEmitter(clockwork.NewFakeClock(), 0).Emit(context.Background(), w, projects(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, 2, sent)
}

func TestEmitter_EmptyInput(t *testing.T) {
	w := newRecordingWriter()
	sent, err := NewEmitter(clockwork.NewFakeClock(), time.Second).Emit(context.Background(), w, nil)
	require.NoError(t, err)
	assert.Zero(t, sent)
}
