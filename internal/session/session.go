// Package session holds the presentation-side state of the weather form: the
// outcome of the latest submission, kept until the next one replaces it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/city-weather/internal/weather"
)

// State of the form after the latest submission.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateSuccess  State = "success"
	StateFailed   State = "failed"
)

// LookupFunc runs the pipeline for one city.
type LookupFunc func(ctx context.Context, city string) (weather.WeatherResult, error)

// Snapshot is a copy of the session as presentation sees it.
type Snapshot struct {
	SubmissionID string
	State        State
	Result       *weather.WeatherResult
	Error        string
	Warning      string
}

// Session tracks the latest submission. Only the most recent submission may
// commit its outcome; a slower earlier one is discarded.
type Session struct {
	mu     sync.Mutex
	lookup LookupFunc
	snap   Snapshot
}

// New creates a Session in the Idle state.
func New(lookup LookupFunc) *Session {
	return &Session{
		lookup: lookup,
		snap:   Snapshot{State: StateIdle},
	}
}

// Submit runs one submission and returns the resulting snapshot. A blank city
// returns the session to Idle with a warning; any failure clears the prior result.
func (s *Session) Submit(ctx context.Context, city string) Snapshot {
	id := uuid.NewString()

	s.mu.Lock()
	// The previous result stays visible while fetching.
	s.snap = Snapshot{SubmissionID: id, State: StateFetching, Result: s.snap.Result}
	s.mu.Unlock()

	result, err := s.lookup(ctx, city)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.SubmissionID != id {
		return s.copyLocked()
	}

	if err != nil {
		if errors.Is(err, weather.ErrValidation) {
			s.snap = Snapshot{SubmissionID: id, State: StateIdle, Warning: weather.UserMessage(err)}
		} else {
			s.snap = Snapshot{SubmissionID: id, State: StateFailed, Error: weather.UserMessage(err)}
		}
		return s.copyLocked()
	}

	s.snap = Snapshot{SubmissionID: id, State: StateSuccess, Result: &result}
	return s.copyLocked()
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Session) copyLocked() Snapshot {
	out := s.snap
	if out.Result != nil {
		r := *out.Result
		out.Result = &r
	}
	return out
}
