package lobby

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
	"strings"
	"sync"

	"quizboard/internal/engine"
)

// Manager is the room state store: one Room per externally keyed room id.
type Manager struct {
	mu     sync.Mutex
	config engine.GameConfig
	rooms  map[string]*Room
}

func NewManager(cfg engine.GameConfig) *Manager {
	return &Manager{config: cfg, rooms: make(map[string]*Room)}
}

// Create creates a room under a fresh random id.
func (m *Manager) Create() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateID()
	for m.rooms[id] != nil {
		id = generateID()
	}
	r := NewRoom(id, m.config)
	m.rooms[id] = r
	return r
}

// GetOrCreate returns the room with the given id, creating it on first
// use. The bool reports whether it was created.
func (m *Manager) GetOrCreate(id string) (*Room, bool) {
	id = NormalizeID(id)
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rooms[id]; ok {
		return r, false
	}
	r := NewRoom(id, m.config)
	m.rooms[id] = r
	return r, true
}

// Get returns a room by ID, or nil.
func (m *Manager) Get(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[NormalizeID(id)]
}

// Delete drops a room.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, NormalizeID(id))
}

// List returns a summary of every room, sorted by id.
func (m *Manager) List() []Summary {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()

	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Summary())
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// NormalizeID trims and upper-cases a room code so "ab12" and "AB12 "
// name the same room.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func generateID() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
