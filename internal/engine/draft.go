package engine

import (
	"fmt"
	"slices"
)

// PickSubject records a player's subject draft and optional role card.
// A card re-initializes that player's token stats. When every seat has
// picked, planning opens.
func (g *Game) PickSubject(playerID, subject, card string) error {
	if g.Phase != PhasePickSubject {
		return ErrWrongPhase
	}
	p, ok := g.Players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if !slices.Contains(g.Config.Subjects(), subject) {
		return fmt.Errorf("%w: %q", ErrInvalidSubject, subject)
	}
	var role RoleConfig
	if card != "" {
		if role, ok = g.Config.Role(card); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidCard, card)
		}
	}

	p.Subject = subject
	if card != "" {
		p.Card = card
		for _, t := range g.TokensOf(playerID) {
			t.applyRole(role)
		}
	}
	g.emit(Event{Type: EventSubjectPicked, Player: playerID, Data: map[string]interface{}{
		"subject": subject, "card": p.Card,
	}})

	if g.allSubjectsPicked() {
		g.setPhase(PhasePlanning)
	}
	return nil
}

func (g *Game) allSubjectsPicked() bool {
	for _, pid := range g.TurnOrder {
		if p := g.Players[pid]; p == nil || p.Subject == "" {
			return false
		}
	}
	return true
}
