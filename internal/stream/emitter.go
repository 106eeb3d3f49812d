package stream

import (
	"context"
	"fmt"
	"time"

	"realty-stream/internal/models"
	"realty-stream/pkg/metrics"

	"github.com/jonboulle/clockwork"
)

// EncodeFailure reports a record that could not be serialized. Nothing of the
// failing frame reaches the wire.
type EncodeFailure struct {
	Index int
	Err   error
}

func (e *EncodeFailure) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *EncodeFailure) Unwrap() error {
	return e.Err
}

// Emitter writes one frame per record, waiting a fixed delay between frames.
type Emitter struct {
	clock clockwork.Clock
	delay time.Duration
}

func NewEmitter(clock clockwork.Clock, delay time.Duration) *Emitter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Emitter{clock: clock, delay: delay}
}

// Emit streams projects in order and returns how many frames were written.
// It stops at the first encode failure, write error or context cancellation.
func (e *Emitter) Emit(ctx context.Context, w FrameWriter, projects []models.ProjectRecord) (int, error) {
	sent := 0
	for i, p := range projects {
		if i > 0 {
			if err := e.wait(ctx); err != nil {
				return sent, err
			}
		} else if err := ctx.Err(); err != nil {
			return sent, err
		}

		frame, err := EncodeProject(p)
		if err != nil {
			return sent, &EncodeFailure{Index: i, Err: err}
		}
		if err := w.WriteFrame(frame); err != nil {
			return sent, fmt.Errorf("write frame %d: %w", i, err)
		}
		sent++
		metrics.StreamFramesTotal.Inc()
	}
	return sent, nil
}

func (e *Emitter) wait(ctx context.Context) error {
	if e.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.clock.After(e.delay):
		return nil
	}
}
