package goSession

import (
	"sync"
	"time"
)

// ActivityKind defines a public type used by goSession APIs.
//
// ActivityKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ActivityKind string

const (
	// ActivityClick is an exported constant or variable used by the session store.
	ActivityClick ActivityKind = "click"
	// ActivityKeypress is an exported constant or variable used by the session store.
	ActivityKeypress ActivityKind = "keypress"
	// ActivityScroll is an exported constant or variable used by the session store.
	ActivityScroll ActivityKind = "scroll"
)

// RecordActivity marks the session as recently active. Callers wire this to
// whatever user-interaction signals their host application observes.
func (s *Store) RecordActivity(kind ActivityKind) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()

	s.notifyTrackers(kind)
}

// LastActivity reports when activity was last recorded.
func (s *Store) LastActivity() time.Time {
	if s == nil {
		return time.Time{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActivity
}

// ActivityTracker receives a notification for every recorded activity event
// until it is closed. Trackers are fan-out only; a slow consumer misses
// events instead of blocking the store.
type ActivityTracker struct {
	store  *Store
	events chan ActivityKind
	once   sync.Once
}

// TrackActivity registers a tracker with the given buffer capacity.
func (s *Store) TrackActivity(buffer int) *ActivityTracker {
	if buffer <= 0 {
		buffer = 1
	}

	t := &ActivityTracker{
		store:  s,
		events: make(chan ActivityKind, buffer),
	}

	s.mu.Lock()
	s.trackers = append(s.trackers, t)
	s.mu.Unlock()

	return t
}

// Events exposes the receiving side of the tracker.
func (t *ActivityTracker) Events() <-chan ActivityKind {
	return t.events
}

// Close unregisters the tracker from its store.
func (t *ActivityTracker) Close() {
	if t == nil || t.store == nil {
		return
	}
	t.once.Do(func() {
		s := t.store

		s.mu.Lock()
		for i, reg := range s.trackers {
			if reg == t {
				s.trackers = append(s.trackers[:i], s.trackers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	})
}

func (s *Store) notifyTrackers(kind ActivityKind) {
	s.mu.Lock()
	registered := make([]*ActivityTracker, len(s.trackers))
	copy(registered, s.trackers)
	s.mu.Unlock()

	for _, t := range registered {
		select {
		case t.events <- kind:
		default:
		}
	}
}
