package engine

import "fmt"

// NextPhase advances exactly one step along the phase sequence. It is a
// no-op at RESOURCE and GAME_OVER; round rollover belongs to AdvancePhase.
func (g *Game) NextPhase() {
	for i, p := range phaseSequence {
		if p == g.Phase && i+1 < len(phaseSequence) {
			g.setPhase(phaseSequence[i+1])
			return
		}
	}
}

// AdvancePhase handles the advance-phase intent: it moves to the next
// phase and runs that phase's entry effects.
func (g *Game) AdvancePhase() error {
	switch g.Phase {
	case PhaseLobby, PhaseGameOver:
		return ErrWrongPhase
	case PhasePickSubject:
		g.setPhase(PhasePlanning)
		return nil
	case PhasePlanning:
		// stalled seats get an empty plan
		for _, pid := range g.TurnOrder {
			if _, ok := g.Plans[pid]; !ok {
				g.Plans[pid] = []PlanStep{}
			}
		}
		g.beginAction()
		return nil
	case PhaseAction:
		for len(g.ActionQueue) > 0 {
			g.popAction()
		}
		g.enterQuiz()
		return nil
	}

	g.NextPhase()
	switch g.Phase {
	case PhaseQuiz:
		g.ContestedTableIDs = g.ListContestedTables()
	case PhaseSolve:
		if g.Solve == nil {
			g.Solve = &SolveState{PickerTeam: TeamA}
		}
	case PhaseSettle:
		g.AutoOccupyTables()
	case PhaseGrowth:
		g.applyGrowth()
	case PhaseResource:
		g.endRound()
	}
	return nil
}

// endRound pays income and either opens the next round or ends the game.
func (g *Game) endRound() {
	g.ApplyResourceIncome()
	g.emit(Event{Type: EventRoundEnd, Data: map[string]interface{}{"round": g.Round}})
	g.Round++
	if g.Round > g.Config.Rules.MaxRounds {
		g.endGame()
		return
	}
	g.resetRound()
	g.setPhase(PhasePlanning)
}

func (g *Game) endGame() {
	g.ActionQueue = nil
	g.ActiveAction = nil
	g.Scores = g.CalculateScores()
	g.emit(Event{Type: EventGameOver, Data: map[string]interface{}{
		"scores": g.Scores, "winner": g.Winner(),
	}})
	g.setPhase(PhaseGameOver)
}

// SubmitPlan records a player's tracks for the round. Once every seat has
// submitted, turn order is recomputed and the action queue is built.
func (g *Game) SubmitPlan(playerID string, steps []PlanStep) error {
	if g.Phase != PhasePlanning {
		return ErrWrongPhase
	}
	if _, ok := g.Players[playerID]; !ok {
		return ErrPlayerNotFound
	}
	if len(steps) > g.Config.Rules.MaxTracksPerRound {
		return fmt.Errorf("%w: max %d", ErrTooManyTracks, g.Config.Rules.MaxTracksPerRound)
	}
	seen := map[string]bool{}
	for _, s := range steps {
		t, ok := g.Tokens[s.TokenID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrTokenNotFound, s.TokenID)
		}
		if t.Owner != playerID {
			return fmt.Errorf("%w: %s", ErrNotYourToken, s.TokenID)
		}
		if _, ok := g.Tables[s.ToTableID]; !ok {
			return fmt.Errorf("%w: %s", ErrTableNotFound, s.ToTableID)
		}
		if seen[s.TokenID] {
			return fmt.Errorf("%w: %s", ErrDuplicateToken, s.TokenID)
		}
		seen[s.TokenID] = true
	}

	plan := make([]PlanStep, len(steps))
	copy(plan, steps)
	g.Plans[playerID] = plan
	g.emit(Event{Type: EventPlanSubmitted, Player: playerID, Data: map[string]interface{}{"tracks": len(plan)}})

	if g.allPlansSubmitted() {
		g.beginAction()
	}
	return nil
}

func (g *Game) allPlansSubmitted() bool {
	for _, pid := range g.TurnOrder {
		if _, ok := g.Plans[pid]; !ok {
			return false
		}
	}
	return true
}

// beginAction orders the seats and flattens their plans into the queue.
func (g *Game) beginAction() {
	g.TurnOrder = g.ComputeTurnOrderFromPlans()
	g.ActionQueue = nil
	for _, pid := range g.TurnOrder {
		for idx, s := range g.Plans[pid] {
			g.ActionQueue = append(g.ActionQueue, QueuedAction{
				PlayerID:  pid,
				Index:     idx,
				TokenID:   s.TokenID,
				ToTableID: s.ToTableID,
			})
		}
	}
	g.ActiveAction = nil
	g.emit(Event{Type: EventTurnOrder, Data: map[string]interface{}{
		"turn_order": g.TurnOrder, "actions": len(g.ActionQueue),
	}})
	g.setPhase(PhaseAction)
}

func (g *Game) enterQuiz() {
	g.ActiveAction = nil
	g.ContestedTableIDs = g.ListContestedTables()
	g.setPhase(PhaseQuiz)
}

// applyGrowth rewards tokens sitting on a table of their owner's subject.
func (g *Game) applyGrowth() {
	amount := g.Config.Rules.SubjectGrowth
	if amount == 0 {
		return
	}
	for _, tid := range g.TableOrder {
		table := g.Tables[tid]
		if table.Subject == "" {
			continue
		}
		for _, id := range table.Tokens {
			t := g.Tokens[id]
			if t == nil || t.Home {
				continue
			}
			owner := g.Players[t.Owner]
			if owner == nil || owner.Subject != table.Subject {
				continue
			}
			t.Logic += amount
			t.Memory += amount
			g.emit(Event{Type: EventGrowth, Player: t.Owner, Data: map[string]interface{}{
				"token_id": t.ID, "table_id": tid, "amount": amount,
			}})
		}
	}
}
