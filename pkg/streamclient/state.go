package streamclient

import (
	"context"
	"errors"
	"sync"

	apperrors "realty-stream/internal/errors"
	"realty-stream/internal/models"
	"realty-stream/internal/stream"
)

// FetchFailedMessage is shown when a stream breaks without a server message.
const FetchFailedMessage = apperrors.MsgFetchFailed

// Snapshot is a point-in-time copy of the state.
type Snapshot struct {
	Projects []models.ProjectRecord
	Loading  bool
	Error    string
	Selected string
}

// State holds the records of the current fetch. Every fetch starts with
// Begin, which bumps a generation number; writes tagged with an older
// generation are dropped, so a late record from an abandoned fetch never
// lands in the new listing.
type State struct {
	mu       sync.Mutex
	gen      uint64
	projects []models.ProjectRecord
	loading  bool
	errMsg   string
	selected string
	onChange func(Snapshot)
}

// NewState creates an empty state. onChange, if non-nil, receives a
// snapshot after every accepted change.
func NewState(onChange func(Snapshot)) *State {
	return &State{onChange: onChange}
}

// Begin clears the state for a new fetch and returns its generation.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.projects = nil
	s.loading = true
	s.errMsg = ""
	s.selected = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return gen
}

// Append adds p to the listing if gen is still current.
func (s *State) Append(gen uint64, p models.ProjectRecord) bool {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	s.projects = append(s.projects, p)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

// Finish ends fetch gen. Records already appended are kept; a non-nil err
// other than cancellation sets the error message.
func (s *State) Finish(gen uint64, err error) bool {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	s.loading = false
	if err != nil && !errors.Is(err, context.Canceled) {
		s.errMsg = errorMessage(err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

// Select marks the named project as selected. It reports false when no
// project of that name is loaded.
func (s *State) Select(name string) bool {
	s.mu.Lock()
	found := false
	for _, p := range s.projects {
		if p.Name == name {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return false
	}
	s.selected = name
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Projects: append([]models.ProjectRecord(nil), s.projects...),
		Loading:  s.loading,
		Error:    s.errMsg,
		Selected: s.selected,
	}
}

func (s *State) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}

func errorMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	var srv *stream.ServerError
	if errors.As(err, &srv) && srv.Message != "" {
		return srv.Message
	}
	return FetchFailedMessage
}
