package engine

import "slices"

// PublicViewData is the room snapshot broadcast to every client. Plan
// contents stay hidden until the action queue is built.
type PublicViewData struct {
	RoomID            string         `json:"room_id"`
	Phase             string         `json:"phase"`
	Round             int            `json:"round"`
	MaxRounds         int            `json:"max_rounds"`
	Players           []Player       `json:"players"`
	Tokens            []Token        `json:"tokens"`
	Tables            []Table        `json:"tables"`
	Questions         []Question     `json:"questions"`
	Submitted         []string       `json:"submitted"`
	TurnOrder         []string       `json:"turn_order"`
	ActionQueue       []QueuedAction `json:"action_queue"`
	ActiveAction      *QueuedAction  `json:"active_action,omitempty"`
	LastActionResult  *ActionResult  `json:"last_action_result,omitempty"`
	Solve             *SolveState    `json:"solve,omitempty"`
	LastSolveResult   *SolveResult   `json:"last_solve_result,omitempty"`
	ContestedTableIDs []string       `json:"contested_table_ids"`
	Scores            []ScoreEntry   `json:"scores,omitempty"`
	Winner            Team           `json:"winner,omitempty"`
}

// PlayerViewData adds what only the given player may see.
type PlayerViewData struct {
	PublicViewData
	You       *Player      `json:"you,omitempty"`
	Plan      []PlanStep   `json:"plan,omitempty"`
	Subjects  []string     `json:"subjects,omitempty"`
	Cards     []RoleConfig `json:"cards,omitempty"`
	AskTables []string     `json:"ask_tables,omitempty"`
	CanPick   bool         `json:"can_pick"`
}

// Snapshot returns the sanitized projection of the room.
func (g *Game) Snapshot() PublicViewData {
	pv := PublicViewData{
		RoomID:            g.RoomID,
		Phase:             g.Phase.String(),
		Round:             g.Round,
		MaxRounds:         g.Config.Rules.MaxRounds,
		TurnOrder:         slices.Clone(g.TurnOrder),
		ActionQueue:       slices.Clone(g.ActionQueue),
		ContestedTableIDs: slices.Clone(g.ContestedTableIDs),
		Scores:            g.Scores,
	}
	for _, pid := range g.Seats {
		pv.Players = append(pv.Players, *g.Players[pid])
		if _, ok := g.Plans[pid]; ok {
			pv.Submitted = append(pv.Submitted, pid)
		}
	}

	ids := make([]string, 0, len(g.Tokens))
	for id := range g.Tokens {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		pv.Tokens = append(pv.Tokens, *g.Tokens[id])
	}

	for _, tid := range g.TableOrder {
		t := *g.Tables[tid]
		t.Tokens = slices.Clone(t.Tokens)
		t.QuestionIDs = slices.Clone(t.QuestionIDs)
		pv.Tables = append(pv.Tables, t)
	}
	for _, qid := range g.QuestionOrder {
		pv.Questions = append(pv.Questions, *g.Questions[qid])
	}

	if g.ActiveAction != nil {
		a := *g.ActiveAction
		pv.ActiveAction = &a
	}
	if g.LastActionResult != nil {
		r := *g.LastActionResult
		pv.LastActionResult = &r
	}
	if g.Solve != nil {
		s := *g.Solve
		pv.Solve = &s
	}
	if g.LastSolveResult != nil {
		r := *g.LastSolveResult
		pv.LastSolveResult = &r
	}
	if g.Phase == PhaseGameOver {
		pv.Winner = g.Winner()
	}
	return pv
}

// ViewFor returns the snapshot as seen by one player.
func (g *Game) ViewFor(playerID string) PlayerViewData {
	pv := PlayerViewData{PublicViewData: g.Snapshot()}

	p := g.GetPlayer(playerID)
	if p == nil {
		return pv
	}
	you := *p
	pv.You = &you
	pv.Plan = slices.Clone(g.Plans[playerID])

	switch g.Phase {
	case PhasePickSubject:
		pv.Subjects = g.Config.Subjects()
		pv.Cards = g.Config.Roles
	case PhaseQuiz:
		for _, t := range g.TokensOf(playerID) {
			if g.CanAskOnTable(playerID, t.TableID, t.ID) && !slices.Contains(pv.AskTables, t.TableID) {
				pv.AskTables = append(pv.AskTables, t.TableID)
			}
		}
	case PhaseSolve:
		pv.CanPick = g.Solve != nil && g.Solve.PickerTeam == p.Team
	}
	return pv
}
