package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"realty-stream/internal/models"
)

// ErrMalformedFrame is returned for a data frame that does not hold a
// project record.
var ErrMalformedFrame = errors.New("malformed frame")

// ServerError is the message carried by an error event.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "server error: " + e.Message
}

// Decoder splits an event stream into project records. Bytes may be fed in
// chunks of any size; a frame or a multi-byte character split across chunks
// is reassembled before decoding.
type Decoder struct {
	pending []byte
	data    bytes.Buffer
	hasData bool
	event   string
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed consumes chunk and returns the records of every frame it completed,
// in stream order. On error the records decoded before the failing frame are
// still returned.
func (d *Decoder) Feed(chunk []byte) ([]models.ProjectRecord, error) {
	d.pending = append(d.pending, chunk...)

	var out []models.ProjectRecord
	start := 0
	for {
		i := bytes.IndexByte(d.pending[start:], '\n')
		if i < 0 {
			break
		}
		line := d.pending[start : start+i]
		start += i + 1

		rec, ok, err := d.processLine(bytes.TrimSuffix(line, []byte{'\r'}))
		if err != nil {
			d.compact(start)
			return out, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	d.compact(start)
	return out, nil
}

// Flush dispatches a frame left open at end of stream, treating any
// unterminated final line as complete.
func (d *Decoder) Flush() ([]models.ProjectRecord, error) {
	if len(d.pending) > 0 {
		line := bytes.TrimSuffix(d.pending, []byte{'\r'})
		d.pending = nil
		if _, _, err := d.processLine(line); err != nil {
			return nil, err
		}
	}
	rec, ok, err := d.dispatch()
	if err != nil || !ok {
		return nil, err
	}
	return []models.ProjectRecord{rec}, nil
}

func (d *Decoder) compact(consumed int) {
	n := copy(d.pending, d.pending[consumed:])
	d.pending = d.pending[:n]
}

func (d *Decoder) processLine(line []byte) (models.ProjectRecord, bool, error) {
	if len(line) == 0 {
		return d.dispatch()
	}
	if line[0] == ':' {
		return models.ProjectRecord{}, false, nil
	}

	field, value := line, []byte(nil)
	if i := bytes.IndexByte(line, ':'); i >= 0 {
		field, value = line[:i], line[i+1:]
		value = bytes.TrimPrefix(value, []byte{' '})
	}

	switch string(field) {
	case "data":
		if d.hasData {
			d.data.WriteByte('\n')
		}
		d.data.Write(value)
		d.hasData = true
	case "event":
		d.event = string(value)
	}
	return models.ProjectRecord{}, false, nil
}

func (d *Decoder) dispatch() (models.ProjectRecord, bool, error) {
	event, hasData := d.event, d.hasData
	payload := append([]byte(nil), d.data.Bytes()...)
	d.event, d.hasData = "", false
	d.data.Reset()

	if !hasData {
		return models.ProjectRecord{}, false, nil
	}

	switch event {
	case "", "message":
		var frame models.ProjectFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			return models.ProjectRecord{}, false, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		if frame.Project == nil {
			return models.ProjectRecord{}, false, fmt.Errorf("%w: missing project", ErrMalformedFrame)
		}
		return *frame.Project, true, nil
	case EventError:
		var se models.StreamError
		if err := json.Unmarshal(payload, &se); err != nil || se.Error == "" {
			return models.ProjectRecord{}, false, &ServerError{Message: string(payload)}
		}
		return models.ProjectRecord{}, false, &ServerError{Message: se.Error}
	default:
		return models.ProjectRecord{}, false, nil
	}
}

// ReadFrames reads r incrementally through buf and calls fn for each record
// as soon as its frame is complete. io.EOF ends the stream normally.
func ReadFrames(r io.Reader, buf []byte, fn func(models.ProjectRecord)) error {
	if len(buf) == 0 {
		buf = make([]byte, 4096)
	}
	dec := NewDecoder()
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			recs, err := dec.Feed(buf[:n])
			for _, rec := range recs {
				fn(rec)
			}
			if err != nil {
				return err
			}
		}
		if errors.Is(readErr, io.EOF) {
			recs, err := dec.Flush()
			for _, rec := range recs {
				fn(rec)
			}
			return err
		}
		if readErr != nil {
			return readErr
		}
	}
}
