// Package store provides session.Store implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/warp/calendar-engine/session"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]session.Session),
	}
}

// SaveSession inserts or replaces a session.
func (m *Memory) SaveSession(_ context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Defensive copy of the selection: callers may reuse the slice.
	s.Selection = append(s.Selection[:0:0], s.Selection...)
	m.sessions[s.ID] = s
	return nil
}

func (m *Memory) GetSession(_ context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	s.Selection = append(s.Selection[:0:0], s.Selection...)
	return &s, nil
}

func (m *Memory) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// PurgeSessionsBefore removes sessions whose UpdatedAt is before the cutoff.
func (m *Memory) PurgeSessionsBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			purged++
		}
	}
	return purged, nil
}

// Len reports the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
