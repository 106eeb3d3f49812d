// Package stream implements the Server-Sent Events wire format used to
// deliver project records one frame at a time.
package stream

import (
	"encoding/json"
	"fmt"
	"net/http"

	"realty-stream/internal/models"
)

// EventError is the SSE event name of a terminating error frame.
const EventError = "error"

// SetHeaders applies the event-stream response headers.
func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
}

// EncodeProject serializes one record as a complete data frame.
func EncodeProject(p models.ProjectRecord) ([]byte, error) {
	payload, err := json.Marshal(models.ProjectFrame{Project: &p})
	if err != nil {
		return nil, fmt.Errorf("encode project %q: %w", p.Name, err)
	}
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, "\n\n"...)
	return frame, nil
}

// EncodeError serializes a terminating error event carrying msg.
func EncodeError(msg string) []byte {
	// A struct with a single string field always marshals.
	payload, _ := json.Marshal(models.StreamError{Error: msg})
	frame := make([]byte, 0, len(payload)+22)
	frame = append(frame, "event: "+EventError+"\ndata: "...)
	frame = append(frame, payload...)
	frame = append(frame, "\n\n"...)
	return frame
}
