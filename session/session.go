/*
Package session binds stored calendar profiles to live engine state.

PURPOSE:
  A session is one client's calendar widget living on the server: the
  profile it was opened from, the navigation state tuple (view, anchor,
  focused) and the current selection. The engine itself is stateless
  between commands; a session is rebuilt into a Controller on every
  Apply, the command runs, and the new state is persisted.

LIFECYCLE:
  Open   -> resolve profile, build controller, persist initial state
  Apply  -> restore controller, run one command, persist, return Result
  Get    -> restore without mutating
  Close  -> delete

CONCURRENCY:
  The Manager serializes Apply per session ID. Two clients hammering the
  same session see commands applied one at a time; distinct sessions do
  not contend.

IMPLEMENTATIONS OF Store:
  - session/store/memory.go: In-memory for testing/dev
  - store/sqlite/sqlite.go: Production SQLite

SEE ALSO:
  - calendar/navigation.go: RestoreController, Handle
  - factory/profile.go: Profile resolution
*/
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
)

// ErrNotFound is returned by the Manager when a session ID is unknown.
var ErrNotFound = errors.New("session not found")

// =============================================================================
// SESSION
// =============================================================================

// Session is the persisted form of one live calendar. State is stored as
// plain dates plus the view name so any Store can round-trip it.
type Session struct {
	ID        string
	ProfileID string
	Profile   factory.ProfileJSON

	View      string
	Anchor    calendar.Date
	Focused   calendar.Date
	Selection []calendar.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store handles session persistence.
type Store interface {
	// SaveSession inserts or replaces a session.
	SaveSession(ctx context.Context, s Session) error

	// GetSession returns the session, or nil when the ID is unknown.
	GetSession(ctx context.Context, id string) (*Session, error)

	// DeleteSession removes a session. Unknown IDs are not an error.
	DeleteSession(ctx context.Context, id string) error

	// PurgeSessionsBefore deletes sessions not updated since the cutoff
	// and returns how many were removed.
	PurgeSessionsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns session lifecycle on top of a Store.
type Manager struct {
	store   Store
	factory *factory.ProfileFactory
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:   store,
		factory: factory.NewProfileFactory(),
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// SetNow overrides the clock. Tests pin this.
func (m *Manager) SetNow(now func() time.Time) { m.now = now }

// Open resolves a profile, builds the initial engine state and persists a
// new session.
func (m *Manager) Open(ctx context.Context, profile factory.ProfileJSON) (*Session, error) {
	cfg, err := m.factory.FromJSON(profile)
	if err != nil {
		return nil, err
	}
	values, err := m.factory.ParseValues(profile)
	if err != nil {
		return nil, err
	}
	ctrl, err := calendar.NewController(cfg, values)
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	s := Session{
		ID:        newID(),
		ProfileID: profile.ID,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.applyState(ctrl.State(), ctrl.Selection())

	if err := m.store.SaveSession(ctx, s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get returns the session and a controller restored to its state.
func (m *Manager) Get(ctx context.Context, id string) (*Session, *calendar.Controller, error) {
	s, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, ErrNotFound
	}
	ctrl, err := m.restore(s)
	if err != nil {
		return nil, nil, err
	}
	return s, ctrl, nil
}

// Apply runs one command against the session and persists the outcome.
// Commands for the same session are applied one at a time.
func (m *Manager) Apply(ctx context.Context, id string, cmd calendar.Command) (*Session, calendar.Result, error) {
	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s, ctrl, err := m.Get(ctx, id)
	if err != nil {
		return nil, calendar.Result{}, err
	}

	res := ctrl.Handle(cmd)
	s.applyState(res.State, res.Selection)
	s.UpdatedAt = m.now().UTC()

	if err := m.store.SaveSession(ctx, *s); err != nil {
		return nil, calendar.Result{}, err
	}
	return s, res, nil
}

// Close deletes the session.
func (m *Manager) Close(ctx context.Context, id string) error {
	return m.store.DeleteSession(ctx, id)
}

// PurgeIdle removes sessions idle for at least ttl.
func (m *Manager) PurgeIdle(ctx context.Context, ttl time.Duration) (int, error) {
	return m.store.PurgeSessionsBefore(ctx, m.now().UTC().Add(-ttl))
}

// restore rebuilds a controller from the persisted state.
func (m *Manager) restore(s *Session) (*calendar.Controller, error) {
	cfg, err := m.factory.FromJSON(s.Profile)
	if err != nil {
		return nil, err
	}
	view, err := calendar.ParseView(s.View)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", s.ID, err)
	}
	st := calendar.State{View: view, Anchor: s.Anchor, Focused: s.Focused}
	return calendar.RestoreController(cfg, st, s.Selection)
}

func (s *Session) applyState(st calendar.State, selection []calendar.Date) {
	s.View = st.View.String()
	s.Anchor = st.Anchor
	s.Focused = st.Focused
	s.Selection = selection
}

func (m *Manager) sessionLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.locks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	m.locks[id] = l
	return l
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return "sess-" + hex.EncodeToString(b)
}
