package stream

import (
	"net/http"

	apperrors "realty-stream/internal/errors"
)

// FrameWriter delivers complete frames to the client one at a time.
type FrameWriter interface {
	WriteFrame(frame []byte) error
}

// Writer is a FrameWriter over an http.ResponseWriter. The status line and
// event-stream headers are committed on the first frame, so a failure before
// that can still be answered with an ordinary error response.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

// NewWriter wraps w. It fails when w cannot flush partial responses.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, apperrors.ErrStreamingUnsupported
	}
	return &Writer{w: w, flusher: flusher}, nil
}

// Start commits the status line and headers if no frame has done so yet.
func (w *Writer) Start() {
	if w.started {
		return
	}
	SetHeaders(w.w.Header())
	w.w.WriteHeader(http.StatusOK)
	w.flusher.Flush()
	w.started = true
}

// WriteFrame writes frame and flushes it to the client.
func (w *Writer) WriteFrame(frame []byte) error {
	w.Start()
	if _, err := w.w.Write(frame); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

// Started reports whether any frame has been committed to the response.
func (w *Writer) Started() bool {
	return w.started
}
