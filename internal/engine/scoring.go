package engine

import (
	"cmp"
	"slices"
)

// ScoreEntry holds the final scoring breakdown for one player.
type ScoreEntry struct {
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	Team          Team   `json:"team"`
	Score         int    `json:"score"`
	ResourceScore int    `json:"resource_score"`
	Total         int    `json:"total"`
}

// CalculateScores computes final standings, highest total first. Leftover
// resource converts to score at the configured rate.
func (g *Game) CalculateScores() []ScoreEntry {
	rate := g.Config.Rules.ResourceToScoreRate
	entries := make([]ScoreEntry, 0, len(g.Seats))
	for _, pid := range g.Seats {
		p := g.Players[pid]
		e := ScoreEntry{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Team:       p.Team,
			Score:      p.Score,
		}
		if rate > 0 {
			e.ResourceScore = p.Resource / rate
		}
		e.Total = e.Score + e.ResourceScore
		entries = append(entries, e)
	}
	slices.SortStableFunc(entries, func(a, b ScoreEntry) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return entries
}

// TeamTotals sums final totals per team.
func (g *Game) TeamTotals() map[Team]int {
	totals := map[Team]int{TeamA: 0, TeamB: 0}
	scores := g.Scores
	if scores == nil {
		scores = g.CalculateScores()
	}
	for _, e := range scores {
		totals[e.Team] += e.Total
	}
	return totals
}

// Winner returns the team with the higher total, or TeamNone on a draw.
func (g *Game) Winner() Team {
	t := g.TeamTotals()
	switch {
	case t[TeamA] > t[TeamB]:
		return TeamA
	case t[TeamB] > t[TeamA]:
		return TeamB
	}
	return TeamNone
}
