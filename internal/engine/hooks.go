package engine

// MoveInfo describes a token relocation for move observers.
type MoveInfo struct {
	TokenID string
	From    string
	To      string
	Forced  bool
}

// AskInfo describes a question being posted.
type AskInfo struct {
	PlayerID    string
	TableID     string
	TokenID     string
	SpendLogic  int
	SpendMemory int
	QuestionID  string // empty for BeforeAsk
}

// SolveInfo describes a solve attempt. Result is nil for BeforeSolve.
type SolveInfo struct {
	Attempt Attempt
	Result  *SolveResult
}

type (
	MoveObserver  func(g *Game, info MoveInfo)
	AskObserver   func(g *Game, info AskInfo)
	SolveObserver func(g *Game, info SolveInfo)
)

// Hooks holds optional observers. Observers run synchronously in
// registration order and must not mutate the game. Forced relocations are
// reported too, including a stress overflow on a token already sitting on
// the home table.
type Hooks struct {
	beforeMove  []MoveObserver
	afterMove   []MoveObserver
	beforeAsk   []AskObserver
	afterAsk    []AskObserver
	beforeSolve []SolveObserver
	afterSolve  []SolveObserver
}

func (h *Hooks) OnBeforeMove(fn MoveObserver)   { h.beforeMove = append(h.beforeMove, fn) }
func (h *Hooks) OnAfterMove(fn MoveObserver)    { h.afterMove = append(h.afterMove, fn) }
func (h *Hooks) OnBeforeAsk(fn AskObserver)     { h.beforeAsk = append(h.beforeAsk, fn) }
func (h *Hooks) OnAfterAsk(fn AskObserver)      { h.afterAsk = append(h.afterAsk, fn) }
func (h *Hooks) OnBeforeSolve(fn SolveObserver) { h.beforeSolve = append(h.beforeSolve, fn) }
func (h *Hooks) OnAfterSolve(fn SolveObserver)  { h.afterSolve = append(h.afterSolve, fn) }

func runMove(g *Game, fns []MoveObserver, info MoveInfo) {
	for _, fn := range fns {
		fn(g, info)
	}
}

func runAsk(g *Game, fns []AskObserver, info AskInfo) {
	for _, fn := range fns {
		fn(g, info)
	}
}

func runSolve(g *Game, fns []SolveObserver, info SolveInfo) {
	for _, fn := range fns {
		fn(g, info)
	}
}

func (g *Game) hooks() *Hooks {
	if g.Hooks == nil {
		g.Hooks = &Hooks{}
	}
	return g.Hooks
}
