package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/session"
	memstore "github.com/warp/calendar-engine/session/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestManager(t *testing.T) (*session.Manager, *memstore.Memory) {
	t.Helper()
	store := memstore.NewMemory()
	m := session.NewManager(store)
	m.SetNow(func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	return m, store
}

func juneProfile() factory.ProfileJSON {
	return factory.ProfileJSON{
		ID:      "june",
		Name:    "June window",
		MinDate: "2024-06-01",
		MaxDate: "2024-06-30",
		Values:  []string{"2024-06-15"},
	}
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestManager_Open_PersistsInitialState(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	s, err := m.Open(ctx, juneProfile())
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "june", s.ProfileID)
	assert.Equal(t, "month", s.View)
	assert.Equal(t, calendar.NewDate(2024, time.June, 15), s.Focused)
	require.Len(t, s.Selection, 1)

	stored, err := store.GetSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, s.Focused, stored.Focused)
}

func TestManager_Open_RejectsBadProfile(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Open(context.Background(), factory.ProfileJSON{
		ID: "bad", Start: "month", Depth: "decade",
	})
	assert.ErrorIs(t, err, calendar.ErrInvalidDepth)
}

func TestManager_Apply_AdvancesAndPersists(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.Open(ctx, juneProfile())
	require.NoError(t, err)

	_, res, err := m.Apply(ctx, s.ID, calendar.Command{Key: calendar.KeyArrowRight})
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2024, time.June, 16), res.State.Focused)

	// A fresh Get restores the advanced state.
	restored, ctrl, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2024, time.June, 16), restored.Focused)
	assert.Equal(t, restored.Focused, ctrl.State().Focused)
}

func TestManager_Apply_CommitReturnsValue(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.Open(ctx, juneProfile())
	require.NoError(t, err)

	_, _, err = m.Apply(ctx, s.ID, calendar.Command{Key: calendar.KeyArrowRight})
	require.NoError(t, err)
	_, res, err := m.Apply(ctx, s.ID, calendar.Command{Key: calendar.KeyEnter})
	require.NoError(t, err)

	assert.True(t, res.ValueChanged)
	require.Len(t, res.Committed, 1)
	assert.Equal(t, calendar.NewDate(2024, time.June, 16), res.Committed[0])
}

func TestManager_Apply_ImproperProfileFreezes(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.Open(ctx, factory.ProfileJSON{
		ID: "inverted", MinDate: "2024-06-20", MaxDate: "2024-06-10",
	})
	require.NoError(t, err, "inverted bounds open fine, they just freeze")

	before := s.Focused
	_, res, err := m.Apply(ctx, s.ID, calendar.Command{Key: calendar.KeyArrowRight})
	require.NoError(t, err)
	assert.Equal(t, before, res.State.Focused)
	assert.False(t, res.ValueChanged)
}

func TestManager_UnknownSession(t *testing.T) {
	m, _ := newTestManager(t)

	_, _, err := m.Get(context.Background(), "sess-missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, _, err = m.Apply(context.Background(), "sess-missing", calendar.Command{Key: calendar.KeyEnter})
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_Close(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	s, err := m.Open(ctx, juneProfile())
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx, s.ID))
	assert.Equal(t, 0, store.Len())
}

func TestManager_PurgeIdle(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	stale, err := m.Open(ctx, juneProfile())
	require.NoError(t, err)

	// Move the clock past the TTL and open a fresh session.
	m.SetNow(func() time.Time {
		return time.Date(2024, time.June, 15, 14, 0, 0, 0, time.UTC)
	})
	fresh, err := m.Open(ctx, juneProfile())
	require.NoError(t, err)

	purged, err := m.PurgeIdle(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, store.Len())

	_, _, err = m.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, _, err = m.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
