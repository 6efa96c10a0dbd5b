package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Game holds the entire state of one room. It is not safe for concurrent
// use; callers serialize intents per room.
type Game struct {
	RoomID string     `json:"room_id"`
	Config GameConfig `json:"-"`
	Hooks  *Hooks     `json:"-"`

	// NewID generates question ids.
	NewID func() string `json:"-"`

	Phase GamePhase `json:"phase"`
	Round int       `json:"round"`

	Players map[string]*Player `json:"players"`
	Seats   []string           `json:"seats"` // join order
	Tokens  map[string]*Token  `json:"tokens"`

	Tables     map[string]*Table `json:"tables"`
	TableOrder []string          `json:"table_order"`

	Plans             map[string][]PlanStep `json:"plans"`
	TurnOrder         []string              `json:"turn_order"`
	PreviousTurnOrder []string              `json:"previous_turn_order"`

	ActionQueue      []QueuedAction `json:"action_queue"`
	ActiveAction     *QueuedAction  `json:"active_action,omitempty"`
	LastActionResult *ActionResult  `json:"last_action_result,omitempty"`

	Questions     map[string]*Question `json:"questions"`
	QuestionOrder []string             `json:"question_order"`

	Solve             *SolveState  `json:"solve,omitempty"`
	LastSolveResult   *SolveResult `json:"last_solve_result,omitempty"`
	ContestedTableIDs []string     `json:"contested_table_ids"`

	Scores []ScoreEntry `json:"scores,omitempty"`

	pending []Event
}

// NewGame creates a room in the LOBBY phase with the map's tables.
func NewGame(roomID string, config GameConfig) *Game {
	g := &Game{
		RoomID:    roomID,
		Config:    config,
		Hooks:     &Hooks{},
		NewID:     uuid.NewString,
		Phase:     PhaseLobby,
		Players:   make(map[string]*Player),
		Tokens:    make(map[string]*Token),
		Tables:    make(map[string]*Table),
		Plans:     make(map[string][]PlanStep),
		Questions: make(map[string]*Question),
		Solve:     &SolveState{PickerTeam: TeamA},
	}
	for _, tc := range config.Map.Tables {
		g.Tables[tc.ID] = &Table{
			ID:          tc.ID,
			Subject:     tc.Subject,
			Capacity:    tc.Capacity,
			OwnerTeam:   tc.OwnerTeam,
			Tokens:      []string{},
			QuestionIDs: []string{},
		}
		g.TableOrder = append(g.TableOrder, tc.ID)
	}
	return g
}

// Apply is the single entry point for player intents. Only seated players
// may act; anyone may join. On error the game is left unchanged.
func (g *Game) Apply(playerID string, action Action) ([]Event, error) {
	g.pending = nil
	if action.Type != ActionJoin {
		if _, ok := g.Players[playerID]; !ok {
			return nil, ErrPlayerNotFound
		}
	}
	var err error
	switch action.Type {
	case ActionJoin:
		err = g.Join(playerID, action.Name)
	case ActionLeave:
		err = g.Leave(playerID)
	case ActionSetTeam:
		err = g.SetTeam(playerID, action.Team)
	case ActionStartGame:
		err = g.StartGame()
	case ActionPickSubject:
		err = g.PickSubject(playerID, action.Subject, action.Card)
	case ActionSubmitPlan:
		err = g.SubmitPlan(playerID, action.Steps)
	case ActionResolveNextAction:
		err = g.ResolveNextAction()
	case ActionAskQuestion:
		_, err = g.AskQuestion(playerID, Ask{
			TableID:     action.TableID,
			TokenID:     action.TokenID,
			SpendLogic:  action.SpendLogic,
			SpendMemory: action.SpendMemory,
			Modifiers:   action.Modifiers,
		})
	case ActionPickSolveTable:
		err = g.PickSolveTable(playerID, action.TableID)
	case ActionPickQuestion:
		err = g.PickQuestion(playerID, action.QuestionID)
	case ActionAttemptSolve:
		_, err = g.AttemptSolve(playerID, AttemptRequest{
			QuestionID:     action.QuestionID,
			SolverTokenIDs: action.SolverTokenIDs,
			SpendLogic:     action.SpendLogic,
			SpendMemory:    action.SpendMemory,
			Modifiers:      action.Modifiers,
		})
	case ActionAdvancePhase:
		err = g.AdvancePhase()
	default:
		err = ErrInvalidAction
	}
	if err != nil {
		g.pending = nil
		return nil, err
	}
	return g.DrainEvents(), nil
}

// DrainEvents returns and clears the events emitted since the last drain.
func (g *Game) DrainEvents() []Event {
	events := g.pending
	g.pending = nil
	return events
}

func (g *Game) emit(ev Event) {
	g.pending = append(g.pending, ev)
}

func (g *Game) setPhase(p GamePhase) {
	g.Phase = p
	g.emit(Event{Type: EventPhaseChange, Data: map[string]interface{}{
		"phase": p.String(), "round": g.Round,
	}})
}

// Join adds a player or renames an existing one. Once the game has started
// only known players may rejoin.
func (g *Game) Join(playerID, name string) error {
	if playerID == "" {
		return fmt.Errorf("%w: empty player id", ErrInvalidAction)
	}
	if p, ok := g.Players[playerID]; ok {
		if name != "" {
			p.Name = name
		}
		g.emit(Event{Type: EventPlayerJoined, Player: playerID, Data: map[string]interface{}{"name": p.Name}})
		return nil
	}
	if g.Phase != PhaseLobby {
		return ErrGameAlreadyStarted
	}
	if name == "" {
		name = "player"
	}
	g.Players[playerID] = NewPlayer(playerID, name)
	g.Seats = append(g.Seats, playerID)
	g.emit(Event{Type: EventPlayerJoined, Player: playerID, Data: map[string]interface{}{"name": name}})
	return nil
}

// Leave removes a player. Their tokens stay on the board.
func (g *Game) Leave(playerID string) error {
	if _, ok := g.Players[playerID]; !ok {
		return ErrPlayerNotFound
	}
	delete(g.Players, playerID)
	delete(g.Plans, playerID)
	g.Seats = without(g.Seats, playerID)
	g.TurnOrder = without(g.TurnOrder, playerID)
	g.emit(Event{Type: EventPlayerLeft, Player: playerID})

	switch g.Phase {
	case PhasePlanning:
		if g.allPlansSubmitted() {
			g.beginAction()
		}
	case PhasePickSubject:
		if g.allSubjectsPicked() {
			g.setPhase(PhasePlanning)
		}
	}
	return nil
}

// SetTeam seats a player on a team before the game starts.
func (g *Game) SetTeam(playerID string, team Team) error {
	if g.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	if !team.Valid() {
		return ErrInvalidTeam
	}
	p, ok := g.Players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Team = team
	g.emit(Event{Type: EventTeamSet, Player: playerID, Data: map[string]interface{}{"team": team}})
	return nil
}

// StartGame balances teams, creates tokens and opens the subject draft.
func (g *Game) StartGame() error {
	if g.Phase != PhaseLobby {
		return ErrGameAlreadyStarted
	}
	minPlayers := g.Config.MinPlayers
	if minPlayers < 2 {
		minPlayers = 2
	}
	if len(g.Seats) < minPlayers {
		return ErrNotEnoughPlayers
	}
	role, ok := g.Config.Role(g.Config.DefaultRoleID)
	if !ok {
		return fmt.Errorf("%w: default role %q", ErrInvalidCard, g.Config.DefaultRoleID)
	}
	for _, team := range []Team{TeamA, TeamB} {
		if _, ok := g.Tables[g.Config.SpawnTable(team)]; !ok {
			return fmt.Errorf("%w: spawn table for team %s", ErrTableNotFound, team)
		}
	}

	counts := map[Team]int{}
	for _, pid := range g.Seats {
		counts[g.Players[pid].Team]++
	}
	for _, pid := range g.Seats {
		p := g.Players[pid]
		if p.Team.Valid() {
			continue
		}
		p.Team = TeamA
		if counts[TeamA] > counts[TeamB] {
			p.Team = TeamB
		}
		counts[p.Team]++
	}

	g.TurnOrder = append([]string(nil), g.Seats...)
	g.PreviousTurnOrder = append([]string(nil), g.Seats...)

	for _, pid := range g.Seats {
		p := g.Players[pid]
		p.Card = role.ID
		spawn := g.Config.SpawnTable(p.Team)
		for i := 0; i < g.Config.TokensPerPlayer; i++ {
			t := &Token{
				ID:    fmt.Sprintf("%s_%d", pid, i),
				Owner: pid,
				Team:  p.Team,
			}
			t.applyRole(role)
			g.Tokens[t.ID] = t
			g.place(t, spawn)
		}
	}

	g.Round = 1
	g.resetRound()
	g.Questions = make(map[string]*Question)
	g.QuestionOrder = nil
	g.Solve = &SolveState{PickerTeam: TeamA}
	g.LastSolveResult = nil
	g.emit(Event{Type: EventGameStarted, Data: map[string]interface{}{
		"players": len(g.Seats), "tokens": len(g.Tokens),
	}})
	g.setPhase(PhasePickSubject)
	return nil
}

// place puts a fresh token on a table without capacity checks or hooks.
func (g *Game) place(t *Token, tableID string) {
	t.TableID = tableID
	table := g.Tables[tableID]
	table.Tokens = append(table.Tokens, t.ID)
}

// resetRound clears per-round transient state.
func (g *Game) resetRound() {
	g.Plans = make(map[string][]PlanStep)
	g.ActionQueue = nil
	g.ActiveAction = nil
	g.LastActionResult = nil
	g.ContestedTableIDs = nil
	if g.Solve != nil {
		g.Solve.PickedTableID = ""
		g.Solve.PickedQuestionID = ""
	}
}

// GetPlayer finds a player by ID.
func (g *Game) GetPlayer(id string) *Player {
	return g.Players[id]
}

// PlayersOnTeam returns the team's player ids in seat order.
func (g *Game) PlayersOnTeam(team Team) []string {
	var out []string
	for _, pid := range g.Seats {
		if p := g.Players[pid]; p != nil && p.Team == team {
			out = append(out, pid)
		}
	}
	return out
}

// TokensOf returns a player's tokens in id order.
func (g *Game) TokensOf(playerID string) []*Token {
	var out []*Token
	for i := 0; ; i++ {
		t, ok := g.Tokens[fmt.Sprintf("%s_%d", playerID, i)]
		if !ok {
			return out
		}
		out = append(out, t)
	}
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
