package engine_test

import (
	"fmt"
	"testing"

	"quizboard/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, n int, mutate ...func(*engine.GameConfig)) *engine.Game {
	t.Helper()
	cfg := engine.DefaultConfig()
	for _, fn := range mutate {
		fn(&cfg)
	}
	g := engine.NewGame("room1", cfg)
	seq := 0
	g.NewID = func() string {
		seq++
		return fmt.Sprintf("q%d", seq)
	}
	for i := 1; i <= n; i++ {
		require.NoError(t, g.Join(fmt.Sprintf("p%d", i), fmt.Sprintf("Player%d", i)))
	}
	return g
}

// startedGame returns a game in PLANNING with the subject draft skipped.
func startedGame(t *testing.T, n int, mutate ...func(*engine.GameConfig)) *engine.Game {
	t.Helper()
	g := newTestGame(t, n, mutate...)
	require.NoError(t, g.StartGame())
	require.NoError(t, g.AdvancePhase())
	require.Equal(t, engine.PhasePlanning, g.Phase)
	return g
}

// quizGame returns a two-player game in QUIZ with p1_0 and p2_0 facing
// each other on NEUTRAL.
func quizGame(t *testing.T, mutate ...func(*engine.GameConfig)) *engine.Game {
	t.Helper()
	g := startedGame(t, 2, mutate...)
	require.NoError(t, g.SubmitPlan("p1", []engine.PlanStep{{TokenID: "p1_0", ToTableID: "NEUTRAL"}}))
	require.NoError(t, g.SubmitPlan("p2", []engine.PlanStep{{TokenID: "p2_0", ToTableID: "NEUTRAL"}}))
	require.Equal(t, engine.PhaseAction, g.Phase)
	for g.Phase == engine.PhaseAction {
		require.NoError(t, g.ResolveNextAction())
	}
	require.Equal(t, engine.PhaseQuiz, g.Phase)
	return g
}

// checkOccupancy asserts every token sits in exactly the table it names.
func checkOccupancy(t *testing.T, g *engine.Game) {
	t.Helper()
	seen := map[string]string{}
	for tid, table := range g.Tables {
		for _, id := range table.Tokens {
			prev, dup := seen[id]
			require.Falsef(t, dup, "token %s listed on %s and %s", id, prev, tid)
			seen[id] = tid
		}
	}
	for id, tok := range g.Tokens {
		assert.Equalf(t, tok.TableID, seen[id], "token %s table mismatch", id)
	}
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 0)
	assert.Equal(t, engine.PhaseLobby, g.Phase)
	assert.Equal(t, 0, g.Round)
	assert.Len(t, g.Tables, 6)
	assert.Equal(t, []string{"A_BASE", "B_BASE", "MATH", "PHYS", "NEUTRAL", "HOME"}, g.TableOrder)
	assert.Equal(t, engine.TeamA, g.Tables["MATH"].OwnerTeam)
}

func TestJoin(t *testing.T) {
	g := newTestGame(t, 2)
	require.NoError(t, g.Join("p1", "Renamed"))
	assert.Equal(t, "Renamed", g.Players["p1"].Name)
	assert.Equal(t, []string{"p1", "p2"}, g.Seats)

	require.NoError(t, g.StartGame())
	assert.ErrorIs(t, g.Join("p9", "Late"), engine.ErrGameAlreadyStarted)
	assert.NoError(t, g.Join("p2", "Back"))
}

func TestSetTeam(t *testing.T) {
	g := newTestGame(t, 2)
	assert.ErrorIs(t, g.SetTeam("p1", "C"), engine.ErrInvalidTeam)
	assert.ErrorIs(t, g.SetTeam("nobody", engine.TeamA), engine.ErrPlayerNotFound)
	require.NoError(t, g.SetTeam("p1", engine.TeamB))
	assert.Equal(t, engine.TeamB, g.Players["p1"].Team)

	require.NoError(t, g.StartGame())
	assert.ErrorIs(t, g.SetTeam("p1", engine.TeamA), engine.ErrWrongPhase)
}

func TestStartGame(t *testing.T) {
	g := newTestGame(t, 1)
	assert.ErrorIs(t, g.StartGame(), engine.ErrNotEnoughPlayers)
	assert.Equal(t, engine.PhaseLobby, g.Phase)

	g = newTestGame(t, 4)
	require.NoError(t, g.SetTeam("p3", engine.TeamA))
	require.NoError(t, g.StartGame())

	assert.Equal(t, engine.PhasePickSubject, g.Phase)
	assert.Equal(t, 1, g.Round)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, g.TurnOrder)
	assert.Equal(t, g.TurnOrder, g.PreviousTurnOrder)

	teams := map[engine.Team]int{}
	for _, p := range g.Players {
		require.True(t, p.Team.Valid(), "player %s has no team", p.ID)
		teams[p.Team]++
	}
	assert.Equal(t, 2, teams[engine.TeamA])
	assert.Equal(t, 2, teams[engine.TeamB])

	assert.Len(t, g.Tokens, 24)
	for _, tok := range g.Tokens {
		want := g.Config.SpawnTable(g.Players[tok.Owner].Team)
		assert.Equal(t, want, tok.TableID)
		assert.Equal(t, 3, tok.Logic)
		assert.Equal(t, 3, tok.Memory)
		assert.False(t, tok.Home)
	}
	checkOccupancy(t, g)

	assert.ErrorIs(t, g.StartGame(), engine.ErrGameAlreadyStarted)
}

func TestLeave(t *testing.T) {
	g := startedGame(t, 3)
	require.NoError(t, g.SubmitPlan("p1", nil))
	require.NoError(t, g.SubmitPlan("p2", nil))
	assert.Equal(t, engine.PhasePlanning, g.Phase)

	require.NoError(t, g.Leave("p3"))
	assert.NotContains(t, g.Players, "p3")
	assert.Equal(t, engine.PhaseAction, g.Phase, "remaining seats had all submitted")
	assert.Len(t, g.TokensOf("p3"), 6, "tokens stay on the board")
	assert.ErrorIs(t, g.Leave("p3"), engine.ErrPlayerNotFound)
}

func TestApply(t *testing.T) {
	g := newTestGame(t, 0)

	events, err := g.Apply("p1", engine.Action{Type: engine.ActionJoin, Name: "Ann"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, engine.EventPlayerJoined, events[0].Type)

	_, err = g.Apply("p2", engine.Action{Type: engine.ActionJoin, Name: "Bob"})
	require.NoError(t, err)

	events, err = g.Apply("p1", engine.Action{Type: engine.ActionStartGame})
	require.NoError(t, err)
	assert.Equal(t, engine.EventPhaseChange, events[len(events)-1].Type)

	events, err = g.Apply("p1", engine.Action{Type: "dance"})
	assert.ErrorIs(t, err, engine.ErrInvalidAction)
	assert.Nil(t, events)

	_, err = g.Apply("p1", engine.Action{Type: engine.ActionSubmitPlan})
	assert.Equal(t, engine.ErrWrongPhase, engine.ReasonOf(err))
}

func TestApplyRequiresSeatedPlayer(t *testing.T) {
	g := newTestGame(t, 2)

	tests := []struct {
		name   string
		player string
		action engine.ActionType
	}{
		{"display starts game", "", engine.ActionStartGame},
		{"stranger starts game", "stranger", engine.ActionStartGame},
		{"display advances phase", "", engine.ActionAdvancePhase},
		{"stranger resolves action", "stranger", engine.ActionResolveNextAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := g.Apply(tt.player, engine.Action{Type: tt.action})
			assert.ErrorIs(t, err, engine.ErrPlayerNotFound)
			assert.Nil(t, events)
			assert.Equal(t, engine.PhaseLobby, g.Phase)
		})
	}

	_, err := g.Apply("p1", engine.Action{Type: engine.ActionStartGame})
	require.NoError(t, err)
	for _, pid := range []string{"", "stranger"} {
		_, err = g.Apply(pid, engine.Action{Type: engine.ActionAdvancePhase})
		assert.ErrorIs(t, err, engine.ErrPlayerNotFound)
	}
	assert.Equal(t, engine.PhasePickSubject, g.Phase)

	_, err = g.Apply("p3", engine.Action{Type: engine.ActionJoin, Name: "Late"})
	assert.ErrorIs(t, err, engine.ErrGameAlreadyStarted, "join skips the seat check")
}

func TestReasonOf(t *testing.T) {
	err := fmt.Errorf("%w: MATH", engine.ErrTableFull)
	assert.Equal(t, engine.ErrTableFull, engine.ReasonOf(err))
	assert.Equal(t, "TABLE_FULL: MATH", err.Error())
	assert.Equal(t, engine.ErrInvalidAction, engine.ReasonOf(fmt.Errorf("boom")))
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase engine.GamePhase
		want  string
	}{
		{engine.PhaseLobby, "LOBBY"},
		{engine.PhasePickSubject, "PICK_SUBJECT"},
		{engine.PhaseResource, "RESOURCE"},
		{engine.PhaseGameOver, "GAME_OVER"},
		{engine.GamePhase(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.phase.String())
	}

	var p engine.GamePhase
	require.NoError(t, p.UnmarshalText([]byte("SOLVE")))
	assert.Equal(t, engine.PhaseSolve, p)
	assert.Error(t, p.UnmarshalText([]byte("NAP")))
}
