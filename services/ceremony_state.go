package services

import (
	"sync"
	"time"

	"github.com/hashicorp/go-uuid"
)

// CeremonyStateStore keeps the server half of an in-progress WebAuthn
// ceremony between its begin and complete calls, keyed by an opaque
// random identifier. Entries are consumed exactly once: TakeAndRemove
// performs the lookup and the delete in a single critical section, so
// two concurrent completions can never both succeed.
//
// A non-zero ttl evicts abandoned entries; zero keeps them until
// consumed.
type CeremonyStateStore[T any] struct {
	mu     sync.RWMutex
	states map[string]ceremonyEntry[T]
	ttl    time.Duration
	stop   chan struct{}
	once   sync.Once
}

type ceremonyEntry[T any] struct {
	state   T
	expires time.Time
}

func NewCeremonyStateStore[T any](ttl time.Duration) *CeremonyStateStore[T] {
	s := &CeremonyStateStore[T]{
		states: make(map[string]ceremonyEntry[T]),
		ttl:    ttl,
		stop:   make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

// Put stores the state under a fresh unguessable identifier and returns it.
func (s *CeremonyStateStore[T]) Put(state T) (string, error) {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "", err
	}

	entry := ceremonyEntry[T]{state: state}
	if s.ttl > 0 {
		entry.expires = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.states[id] = entry
	s.mu.Unlock()
	return id, nil
}

// TakeAndRemove atomically retrieves and deletes the state for id.
// Missing, already-consumed and expired identifiers all report false.
func (s *CeremonyStateStore[T]) TakeAndRemove(id string) (T, bool) {
	var zero T

	s.mu.Lock()
	entry, ok := s.states[id]
	if ok {
		delete(s.states, id)
	}
	s.mu.Unlock()

	if !ok {
		return zero, false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		return zero, false
	}
	return entry.state, true
}

// Len reports the number of pending ceremonies.
func (s *CeremonyStateStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// Close stops the background eviction loop.
func (s *CeremonyStateStore[T]) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *CeremonyStateStore[T]) sweep() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, entry := range s.states {
				if !entry.expires.IsZero() && now.After(entry.expires) {
					delete(s.states, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
