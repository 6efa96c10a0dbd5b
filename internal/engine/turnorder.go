package engine

import (
	"cmp"
	"slices"
)

// ComputeTurnOrderFromPlans orders the current turn order by track count,
// then score (lower first), then position in the previous round's order.
// The result is recorded as the next round's tie-break anchor.
func (g *Game) ComputeTurnOrderFromPlans() []string {
	anchor := g.PreviousTurnOrder
	if len(anchor) == 0 {
		anchor = g.TurnOrder
	}
	pos := make(map[string]int, len(anchor))
	for i, pid := range anchor {
		pos[pid] = i
	}
	rank := func(pid string) int {
		if i, ok := pos[pid]; ok {
			return i
		}
		return len(anchor)
	}
	score := func(pid string) int {
		if p := g.Players[pid]; p != nil {
			return p.Score
		}
		return 0
	}

	order := slices.Clone(g.TurnOrder)
	slices.SortStableFunc(order, func(a, b string) int {
		if c := cmp.Compare(len(g.Plans[a]), len(g.Plans[b])); c != 0 {
			return c
		}
		if c := cmp.Compare(score(a), score(b)); c != 0 {
			return c
		}
		return cmp.Compare(rank(a), rank(b))
	})

	g.PreviousTurnOrder = slices.Clone(order)
	return order
}
