package engine

import "fmt"

// Ask is a request to post a question.
type Ask struct {
	TableID     string
	TokenID     string
	SpendLogic  int
	SpendMemory int
	Modifiers   map[string]string
}

// Attempt is a validated solve attempt fed to ResolveAttempt.
type Attempt struct {
	QuestionID     string
	SolverPlayerID string
	SolverTokenIDs []string
	SpendLogic     int
	SpendMemory    int
	Modifiers      map[string]string
}

// AttemptRequest is a player's solve intent; the first solver token pays
// the spend.
type AttemptRequest struct {
	QuestionID     string
	SolverTokenIDs []string
	SpendLogic     int
	SpendMemory    int
	Modifiers      map[string]string
}

// teamsOn returns the teams with a non-home token on the table.
func (g *Game) teamsOn(table *Table) map[Team]bool {
	teams := map[Team]bool{}
	for _, id := range table.Tokens {
		if t, ok := g.Tokens[id]; ok && !t.Home {
			teams[t.Team] = true
		}
	}
	return teams
}

func (g *Game) hasPending(table *Table) bool {
	for _, qid := range table.QuestionIDs {
		if q, ok := g.Questions[qid]; ok && q.Pending {
			return true
		}
	}
	return false
}

// ListContestedTables returns the tables, in map order, where at least two
// teams have a non-home token.
func (g *Game) ListContestedTables() []string {
	ids := []string{}
	for _, tid := range g.TableOrder {
		if len(g.teamsOn(g.Tables[tid])) >= 2 {
			ids = append(ids, tid)
		}
	}
	return ids
}

// CanAskOnTable reports whether the player's token may post a question on
// the table. A token holds at most one pending question per table.
func (g *Game) CanAskOnTable(playerID, tableID, tokenID string) bool {
	table, ok := g.Tables[tableID]
	if !ok {
		return false
	}
	token, ok := g.Tokens[tokenID]
	if !ok || token.Owner != playerID || token.TableID != tableID || token.Home {
		return false
	}
	if len(g.teamsOn(table)) < 2 {
		return false
	}
	for _, qid := range table.QuestionIDs {
		if q := g.Questions[qid]; q != nil && q.Pending && q.FromTokenID == tokenID {
			return false
		}
	}
	return true
}

// CanSolveOnTable reports whether the table has a pending question and is
// still contested.
func (g *Game) CanSolveOnTable(tableID string) bool {
	table, ok := g.Tables[tableID]
	if !ok {
		return false
	}
	return g.hasPending(table) && len(g.teamsOn(table)) >= 2
}

func validSpend(logic, memory int) error {
	if logic < 0 || memory < 0 {
		return fmt.Errorf("%w: spend must be non-negative", ErrInvalidSpend)
	}
	if logic+memory <= 0 {
		return fmt.Errorf("%w: spend must be > 0", ErrInvalidSpend)
	}
	return nil
}

// AskQuestion spends the asking token's stats and posts a pending question.
// The spend is not refunded.
func (g *Game) AskQuestion(playerID string, ask Ask) (*Question, error) {
	if g.Phase != PhaseQuiz {
		return nil, ErrWrongPhase
	}
	if _, ok := g.Players[playerID]; !ok {
		return nil, ErrPlayerNotFound
	}
	if !g.CanAskOnTable(playerID, ask.TableID, ask.TokenID) {
		return nil, ErrCannotAsk
	}
	if err := validSpend(ask.SpendLogic, ask.SpendMemory); err != nil {
		return nil, err
	}
	token := g.Tokens[ask.TokenID]
	if token.Logic < ask.SpendLogic || token.Memory < ask.SpendMemory {
		return nil, ErrInsufficientStats
	}

	info := AskInfo{
		PlayerID:    playerID,
		TableID:     ask.TableID,
		TokenID:     ask.TokenID,
		SpendLogic:  ask.SpendLogic,
		SpendMemory: ask.SpendMemory,
	}
	runAsk(g, g.hooks().beforeAsk, info)

	token.Logic -= ask.SpendLogic
	token.Memory -= ask.SpendMemory

	mods := ask.Modifiers
	if mods == nil {
		mods = map[string]string{}
	}
	q := &Question{
		ID:           g.NewID(),
		TableID:      ask.TableID,
		FromTokenID:  ask.TokenID,
		FromPlayerID: playerID,
		Team:         token.Team,
		X:            ask.SpendLogic,
		Y:            ask.SpendMemory,
		Modifiers:    mods,
		Pending:      true,
	}
	g.Questions[q.ID] = q
	g.QuestionOrder = append(g.QuestionOrder, q.ID)
	table := g.Tables[ask.TableID]
	table.QuestionIDs = append(table.QuestionIDs, q.ID)

	info.QuestionID = q.ID
	runAsk(g, g.hooks().afterAsk, info)

	g.emit(Event{Type: EventQuestionAsked, Player: playerID, Data: map[string]interface{}{
		"question_id": q.ID, "table_id": q.TableID, "token_id": q.FromTokenID,
	}})
	return q, nil
}

func (g *Game) solvePicker(playerID string) (*Player, error) {
	if g.Phase != PhaseSolve {
		return nil, ErrWrongPhase
	}
	p, ok := g.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if g.Solve == nil || p.Team != g.Solve.PickerTeam {
		return nil, ErrNotPickerTeam
	}
	return p, nil
}

// PickSolveTable selects the table the picking team will attempt on.
func (g *Game) PickSolveTable(playerID, tableID string) error {
	if _, err := g.solvePicker(playerID); err != nil {
		return err
	}
	if !g.CanSolveOnTable(tableID) {
		return ErrTableNotSolvable
	}
	g.Solve.PickedTableID = tableID
	g.Solve.PickedQuestionID = ""
	g.emit(Event{Type: EventSolveTable, Player: playerID, Data: map[string]interface{}{"table_id": tableID}})
	return nil
}

// PickQuestion selects a pending question of the other team on the picked table.
func (g *Game) PickQuestion(playerID, questionID string) error {
	me, err := g.solvePicker(playerID)
	if err != nil {
		return err
	}
	q, ok := g.Questions[questionID]
	if !ok || !q.Pending {
		return ErrQuestionNotPending
	}
	if g.Solve.PickedTableID != q.TableID {
		return ErrQuestionNotOnTable
	}
	if q.Team == me.Team {
		return ErrOwnQuestion
	}
	g.Solve.PickedQuestionID = questionID
	g.emit(Event{Type: EventQuestionPicked, Player: playerID, Data: map[string]interface{}{"question_id": questionID}})
	return nil
}

// AttemptSolve validates a solve intent, charges the primary solver token,
// resolves the attempt and hands the pick to the other team.
func (g *Game) AttemptSolve(playerID string, req AttemptRequest) (SolveResult, error) {
	me, err := g.solvePicker(playerID)
	if err != nil {
		return SolveResult{}, err
	}
	q, ok := g.Questions[req.QuestionID]
	if !ok || !q.Pending {
		return SolveResult{}, ErrQuestionNotPending
	}
	if q.Team == me.Team {
		return SolveResult{}, ErrOwnQuestion
	}
	if len(req.SolverTokenIDs) == 0 {
		return SolveResult{}, fmt.Errorf("%w: need solver tokens", ErrInvalidSolvers)
	}
	seen := map[string]bool{}
	for _, tid := range req.SolverTokenIDs {
		t, ok := g.Tokens[tid]
		switch {
		case !ok:
			return SolveResult{}, fmt.Errorf("%w: unknown token %s", ErrInvalidSolvers, tid)
		case seen[tid]:
			return SolveResult{}, fmt.Errorf("%w: token %s listed twice", ErrInvalidSolvers, tid)
		case t.Team != me.Team:
			return SolveResult{}, fmt.Errorf("%w: token %s is not on your team", ErrInvalidSolvers, tid)
		case t.Home:
			return SolveResult{}, fmt.Errorf("%w: token %s is home", ErrInvalidSolvers, tid)
		case t.TableID != q.TableID:
			return SolveResult{}, fmt.Errorf("%w: token %s is not on the table", ErrInvalidSolvers, tid)
		}
		seen[tid] = true
	}
	if err := validSpend(req.SpendLogic, req.SpendMemory); err != nil {
		return SolveResult{}, err
	}
	primary := g.Tokens[req.SolverTokenIDs[0]]
	if primary.Logic < req.SpendLogic || primary.Memory < req.SpendMemory {
		return SolveResult{}, ErrInsufficientStats
	}

	primary.Logic -= req.SpendLogic
	primary.Memory -= req.SpendMemory

	res, err := g.ResolveAttempt(Attempt{
		QuestionID:     req.QuestionID,
		SolverPlayerID: playerID,
		SolverTokenIDs: req.SolverTokenIDs,
		SpendLogic:     req.SpendLogic,
		SpendMemory:    req.SpendMemory,
		Modifiers:      req.Modifiers,
	})
	if err != nil {
		// unreachable: pending was checked above
		return SolveResult{}, err
	}

	g.Solve.PickerTeam = g.Solve.PickerTeam.Other()
	g.Solve.PickedTableID = ""
	g.Solve.PickedQuestionID = ""
	return res, nil
}

// ResolveAttempt settles a solve attempt against a pending question.
// Success needs both axes of power to strictly exceed the thresholds.
func (g *Game) ResolveAttempt(a Attempt) (SolveResult, error) {
	q, ok := g.Questions[a.QuestionID]
	if !ok || !q.Pending {
		return SolveResult{}, ErrQuestionNotPending
	}
	solver, ok := g.Players[a.SolverPlayerID]
	if !ok {
		return SolveResult{}, ErrPlayerNotFound
	}
	rules := g.Config.Rules

	runSolve(g, g.hooks().beforeSolve, SolveInfo{Attempt: a})

	asker := g.Tokens[q.FromTokenID]
	if asker != nil {
		g.addStress(asker, rules.StressOnQuestionReveal)
	}

	n := len(a.SolverTokenIDs)
	power := Power{
		Logic:  a.SpendLogic + n*rules.AssistLogicBonusPerToken,
		Memory: a.SpendMemory + n*rules.AssistMemoryBonusPerToken,
	}
	success := power.Logic > q.X && power.Memory > q.Y

	if success {
		solver.Score += rules.SolveSuccessScore
		for _, tid := range a.SolverTokenIDs {
			if t := g.Tokens[tid]; t != nil {
				g.addStress(t, rules.StressOnSolveSuccessSolver)
			}
		}
		if asker != nil {
			g.addStress(asker, rules.StressOnSolveSuccessAsker)
		}
		q.Pending = false
	} else {
		for _, tid := range a.SolverTokenIDs {
			if t := g.Tokens[tid]; t != nil {
				g.addStress(t, rules.StressOnSolveFailSolver)
			}
		}
	}

	res := SolveResult{
		QuestionID:  q.ID,
		Success:     success,
		RevealedSum: q.X + q.Y,
		Power:       power,
		Need:        Power{Logic: q.X, Memory: q.Y},
	}
	g.LastSolveResult = &res

	runSolve(g, g.hooks().afterSolve, SolveInfo{Attempt: a, Result: &res})

	g.emit(Event{Type: EventSolveAttempt, Player: a.SolverPlayerID, Data: res})
	return res, nil
}

// addStress raises a token's stress and sends it home once it reaches the limit.
func (g *Game) addStress(t *Token, amount int) {
	t.Stress += amount
	g.enforceStress(t)
}

func (g *Game) enforceStress(t *Token) {
	if t.Stress < g.Config.Rules.StressLimit {
		return
	}
	wasHome := t.Home
	t.Home = true
	if err := g.ApplyMove(t.ID, g.Config.Map.HomeTableID, MoveOptions{Force: true}); err != nil {
		// the home table is missing from the map; the token stays locked in place
		return
	}
	if !wasHome {
		g.emit(Event{Type: EventSentHome, Player: t.Owner, Data: map[string]interface{}{
			"token_id": t.ID, "stress": t.Stress,
		}})
	}
}

// AutoOccupyTables hands uncontested tables to the only team present.
// Home, contested, empty and question-holding tables keep their owner.
func (g *Game) AutoOccupyTables() {
	if !g.Config.Rules.EnableAutoOccupy {
		return
	}
	for _, tid := range g.TableOrder {
		if tid == g.Config.Map.HomeTableID {
			continue
		}
		table := g.Tables[tid]
		if g.hasPending(table) {
			continue
		}
		teams := g.teamsOn(table)
		if len(teams) != 1 {
			continue
		}
		for team := range teams {
			if table.OwnerTeam != team {
				g.emit(Event{Type: EventTableOccupied, Data: map[string]interface{}{
					"table_id": tid, "team": team, "previous": table.OwnerTeam,
				}})
			}
			table.OwnerTeam = team
		}
	}
}

// ApplyResourceIncome pays each owned table's income to every player of
// the owning team.
func (g *Game) ApplyResourceIncome() {
	for _, tid := range g.TableOrder {
		table := g.Tables[tid]
		if !table.OwnerTeam.Valid() {
			continue
		}
		income, ok := g.Config.Rules.TableIncome[tid]
		if !ok {
			continue
		}
		pids := g.PlayersOnTeam(table.OwnerTeam)
		if len(pids) == 0 {
			continue
		}
		for _, pid := range pids {
			p := g.Players[pid]
			p.Score += income.Score
			p.Resource += income.Resource
		}
		g.emit(Event{Type: EventIncomePaid, Data: map[string]interface{}{
			"table_id": tid, "team": table.OwnerTeam, "score": income.Score, "resource": income.Resource,
		}})
	}
}
