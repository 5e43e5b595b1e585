package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrServerFull is returned by Tracker.Add when the player cap is reached.
var ErrServerFull = errors.New("session: server is full")

// Player describes one connected remote player.
type Player struct {
	ID         string
	User       string
	RemoteAddr string
	JoinedAt   time.Time
}

// Tracker keeps the set of active remote sessions.
// Thread-safe for concurrent access.
type Tracker struct {
	mu      sync.RWMutex
	max     int // 0 means unlimited
	players map[string]Player
}

// NewTracker creates a tracker admitting at most max players.
func NewTracker(max int) *Tracker {
	return &Tracker{
		max:     max,
		players: make(map[string]Player),
	}
}

// Add registers a player and returns its assigned ID.
func (t *Tracker) Add(user, remoteAddr string) (Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.max > 0 && len(t.players) >= t.max {
		return Player{}, ErrServerFull
	}
	p := Player{
		ID:         uuid.NewString(),
		User:       user,
		RemoteAddr: remoteAddr,
		JoinedAt:   time.Now(),
	}
	t.players[p.ID] = p
	return p, nil
}

// Remove drops a player. Unknown IDs are ignored.
func (t *Tracker) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.players, id)
}

// Count returns the number of active players.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.players)
}

// List returns active players ordered by join time.
func (t *Tracker) List() []Player {
	t.mu.RLock()
	out := make([]Player, 0, len(t.players))
	for _, p := range t.players {
		out = append(out, p)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}
