// Package session holds the observable authentication state shown by the
// front-end. Only the auth service mutates it; everyone else reads
// snapshots or subscribes to changes.
package session

import (
	"maps"
	"sync"

	"github.com/gymmi-app/gymmi/internal/client/models"
)

// Snapshot is an immutable copy of the session at one point in time.
type Snapshot struct {
	Token           string
	IsAuthenticated bool
	CurrentUser     *models.User
	IsLoading       bool
	FieldErrors     map[string]string
}

// FieldError returns the message for field, or "".
func (s Snapshot) FieldError(field string) string {
	return s.FieldErrors[field]
}

func (s Snapshot) clone() Snapshot {
	c := s
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		c.CurrentUser = &u
	}
	c.FieldErrors = maps.Clone(s.FieldErrors)
	if c.FieldErrors == nil {
		c.FieldErrors = map[string]string{}
	}
	return c
}

// State guards the current snapshot and fans changes out to subscribers.
type State struct {
	mu      sync.Mutex
	current Snapshot
	subs    map[int]chan Snapshot
	nextID  int
}

func NewState() *State {
	return &State{
		current: Snapshot{FieldErrors: map[string]string{}},
		subs:    map[int]chan Snapshot{},
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Update applies fn to the current state and publishes the result.
func (s *State) Update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.clone()
	fn(&next)
	s.current = next

	for _, ch := range s.subs {
		publish(ch, next.clone())
	}
}

// Reset clears the transient UI fields (loading flag and field errors).
func (s *State) Reset() {
	s.Update(func(sn *Snapshot) {
		sn.IsLoading = false
		sn.FieldErrors = map[string]string{}
	})
}

// Subscribe returns a channel that receives the current snapshot and then
// every change. Slow readers only see the latest snapshot. cancel closes
// the channel and is safe to call more than once.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Snapshot, 1)
	ch <- s.current.clone()
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish replaces a pending unread snapshot so the sender never blocks.
func publish(ch chan Snapshot, sn Snapshot) {
	for {
		select {
		case ch <- sn:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
