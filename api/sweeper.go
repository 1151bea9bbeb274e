/*
sweeper.go - Idle session sweeper

PURPOSE:
  Periodically purges sessions that have been idle longer than the TTL.
  Sessions are cheap rows but abandoned pickers accumulate forever
  without this.

DESIGN:
  - Runs a background goroutine with configurable sweep interval
  - Deletes sessions whose last update is older than SessionTTL
  - Safe to run alongside live traffic: the session manager rebuilds
    controllers from the store on each command, so a swept session is
    simply gone (404) rather than half-alive

CONFIGURATION:
  - SweepInterval: How often to sweep (default: 10 minutes)
  - SessionTTL:    Idle time before a session is purged (default: 24 hours)
  - Enabled:       Whether the sweeper is active (default: true)

USAGE:
  sweeper := NewSessionSweeper(sessions)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - session/session.go: Manager.PurgeIdle
  - cmd/server/main.go: Sweeper startup/shutdown
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/calendar-engine/session"
)

// SessionSweeper purges idle sessions in the background.
type SessionSweeper struct {
	Sessions      *session.Manager
	SweepInterval time.Duration
	SessionTTL    time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSessionSweeper creates a new sweeper with default intervals.
func NewSessionSweeper(sessions *session.Manager) *SessionSweeper {
	return &SessionSweeper{
		Sessions:      sessions,
		SweepInterval: 10 * time.Minute,
		SessionTTL:    24 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the sweeper.
func (ss *SessionSweeper) Start() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.Enabled {
		log.Println("[Sweeper] Disabled, not starting")
		return
	}

	ss.ticker = time.NewTicker(ss.SweepInterval)
	ss.wg.Add(1)

	go ss.run()

	log.Printf("[Sweeper] Started with sweep interval: %v, session TTL: %v", ss.SweepInterval, ss.SessionTTL)
}

// Stop stops the sweeper.
func (ss *SessionSweeper) Stop() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.ticker != nil {
		ss.ticker.Stop()
		close(ss.stop)
		ss.wg.Wait()
		log.Println("[Sweeper] Stopped")
	}
}

func (ss *SessionSweeper) run() {
	defer ss.wg.Done()

	// Run immediately on start
	ss.sweep()

	for {
		select {
		case <-ss.ticker.C:
			ss.sweep()
		case <-ss.stop:
			return
		}
	}
}

func (ss *SessionSweeper) sweep() {
	ctx := context.Background()

	purged, err := ss.Sessions.PurgeIdle(ctx, ss.SessionTTL)
	if err != nil {
		log.Printf("[Sweeper] Error purging idle sessions: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("[Sweeper] Purged %d idle sessions", purged)
	}
}

// RunNow triggers an immediate sweep (for testing/admin).
func (ss *SessionSweeper) RunNow() {
	ss.sweep()
}
