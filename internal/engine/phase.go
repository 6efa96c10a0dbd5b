package engine

import "fmt"

// GamePhase represents the current phase of the room state machine.
type GamePhase int

const (
	PhaseLobby       GamePhase = iota // waiting for players
	PhasePickSubject                  // players drafting subjects and cards
	PhasePlanning                     // players submitting move plans
	PhaseAction                       // draining the action queue
	PhaseQuiz                         // asking questions on contested tables
	PhaseSolve                        // teams alternate solve attempts
	PhaseSettle                       // auto-occupancy
	PhaseGrowth                       // subject growth
	PhaseResource                     // income, then round rollover
	PhaseGameOver                     // game finished
)

var phaseNames = map[GamePhase]string{
	PhaseLobby:       "LOBBY",
	PhasePickSubject: "PICK_SUBJECT",
	PhasePlanning:    "PLANNING",
	PhaseAction:      "ACTION",
	PhaseQuiz:        "QUIZ",
	PhaseSolve:       "SOLVE",
	PhaseSettle:      "SETTLE",
	PhaseGrowth:      "GROWTH",
	PhaseResource:    "RESOURCE",
	PhaseGameOver:    "GAME_OVER",
}

// phaseSequence is the order NextPhase walks. GAME_OVER is reached only
// through round rollover.
var phaseSequence = []GamePhase{
	PhaseLobby,
	PhasePickSubject,
	PhasePlanning,
	PhaseAction,
	PhaseQuiz,
	PhaseSolve,
	PhaseSettle,
	PhaseGrowth,
	PhaseResource,
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "UNKNOWN"
}

func (p GamePhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *GamePhase) UnmarshalText(b []byte) error {
	for k, v := range phaseNames {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(b))
}
