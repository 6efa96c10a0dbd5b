package lobby_test

import (
	"fmt"
	"sync"
	"testing"

	"quizboard/internal/engine"
	"quizboard/internal/lobby"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	m := lobby.NewManager(engine.DefaultConfig())

	r, created := m.GetOrCreate("ab12")
	require.True(t, created)
	assert.Equal(t, "AB12", r.ID)

	again, created := m.GetOrCreate(" AB12 ")
	assert.False(t, created)
	assert.Same(t, r, again)
	assert.Same(t, r, m.Get("ab12"))
	assert.Nil(t, m.Get("zz99"))

	m.Delete("ab12")
	assert.Nil(t, m.Get("AB12"))
}

func TestCreate(t *testing.T) {
	m := lobby.NewManager(engine.DefaultConfig())
	a := m.Create()
	b := m.Create()
	assert.Len(t, a.ID, 6)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.ID, lobby.NormalizeID(a.ID))
}

func TestRoomsAreIsolated(t *testing.T) {
	m := lobby.NewManager(engine.DefaultConfig())
	r1, _ := m.GetOrCreate("one")
	r2, _ := m.GetOrCreate("two")

	_, err := r1.Apply("p1", engine.Action{Type: engine.ActionJoin, Name: "Ann"})
	require.NoError(t, err)

	assert.Len(t, r1.Snapshot().Players, 1)
	assert.Empty(t, r2.Snapshot().Players)
	assert.False(t, r1.Empty())
	assert.True(t, r2.Empty())

	assert.Equal(t, []lobby.Summary{
		{ID: "ONE", Phase: "LOBBY", Players: 1},
		{ID: "TWO", Phase: "LOBBY"},
	}, m.List())
}

func TestRoomApplyConcurrent(t *testing.T) {
	m := lobby.NewManager(engine.DefaultConfig())
	r, _ := m.GetOrCreate("busy")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Apply(fmt.Sprintf("p%d", i), engine.Action{Type: engine.ActionJoin})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	r.Do(func(g *engine.Game) {
		assert.Len(t, g.Seats, 20)
	})
	assert.Equal(t, "p3", r.ViewFor("p3").You.ID)
}
