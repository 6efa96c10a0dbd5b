package engine

// Resolve drains the action queue one plan step at a time during ACTION.

// ResolveNextAction applies the head of the action queue. Called with an
// empty queue it closes the ACTION phase and opens QUIZ.
func (g *Game) ResolveNextAction() error {
	if g.Phase != PhaseAction {
		return ErrWrongPhase
	}
	if len(g.ActionQueue) == 0 {
		g.enterQuiz()
		return nil
	}
	g.popAction()
	return nil
}

// popAction removes the queue head and moves its token. A rejected move
// consumes the step; the outcome is kept in LastActionResult.
func (g *Game) popAction() {
	next := g.ActionQueue[0]
	g.ActionQueue = g.ActionQueue[1:]
	g.ActiveAction = &next

	res := ActionResult{Action: next, OK: true}
	if err := g.ApplyMove(next.TokenID, next.ToTableID, MoveOptions{}); err != nil {
		res.OK = false
		res.Reason = ReasonOf(err)
	}
	g.LastActionResult = &res
	g.emit(Event{Type: EventActionResolved, Player: next.PlayerID, Data: res})
}
