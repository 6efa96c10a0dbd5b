package lobby

import (
	"sync"
	"time"

	"quizboard/internal/engine"
)

// Room owns the game state of one room. All access goes through its
// methods, which serialize on the room's mutex.
type Room struct {
	mu        sync.Mutex
	ID        string
	CreatedAt time.Time
	game      *engine.Game
}

// NewRoom creates a room in the LOBBY phase.
func NewRoom(id string, cfg engine.GameConfig) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now(),
		game:      engine.NewGame(id, cfg),
	}
}

// Apply runs one intent against the room's game.
func (r *Room) Apply(playerID string, action engine.Action) ([]engine.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Apply(playerID, action)
}

// Do runs fn with exclusive access to the game. fn must not retain g.
func (r *Room) Do(fn func(g *engine.Game)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.game)
}

// Snapshot returns the public view of the room.
func (r *Room) Snapshot() engine.PublicViewData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Snapshot()
}

// ViewFor returns the room as seen by one player.
func (r *Room) ViewFor(playerID string) engine.PlayerViewData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.ViewFor(playerID)
}

// Summary is a short listing entry for a room.
type Summary struct {
	ID      string `json:"id"`
	Phase   string `json:"phase"`
	Round   int    `json:"round"`
	Players int    `json:"players"`
}

func (r *Room) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		ID:      r.ID,
		Phase:   r.game.Phase.String(),
		Round:   r.game.Round,
		Players: len(r.game.Players),
	}
}

// Empty reports whether no players remain.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.game.Players) == 0
}
