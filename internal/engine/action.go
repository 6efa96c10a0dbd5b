package engine

// ActionType identifies player intents sent to Game.Apply.
type ActionType string

const (
	ActionJoin              ActionType = "join"
	ActionLeave             ActionType = "leave"
	ActionSetTeam           ActionType = "set_team"
	ActionStartGame         ActionType = "start_game"
	ActionPickSubject       ActionType = "pick_subject"
	ActionSubmitPlan        ActionType = "submit_plan"
	ActionResolveNextAction ActionType = "resolve_next_action"
	ActionAskQuestion       ActionType = "ask_question"
	ActionPickSolveTable    ActionType = "pick_solve_table"
	ActionPickQuestion      ActionType = "pick_question"
	ActionAttemptSolve      ActionType = "attempt_solve"
	ActionAdvancePhase      ActionType = "advance_phase"
)

// Action is a player's intent. Params depend on Type:
// join: Name
// set_team: Team
// pick_subject: Subject, Card
// submit_plan: Steps
// ask_question: TableID, TokenID, SpendLogic, SpendMemory, Modifiers
// pick_solve_table: TableID
// pick_question: QuestionID
// attempt_solve: QuestionID, SolverTokenIDs, SpendLogic, SpendMemory
type Action struct {
	Type           ActionType        `json:"type"`
	Name           string            `json:"name,omitempty"`
	Team           Team              `json:"team,omitempty"`
	Subject        string            `json:"subject,omitempty"`
	Card           string            `json:"card,omitempty"`
	Steps          []PlanStep        `json:"steps,omitempty"`
	TableID        string            `json:"table_id,omitempty"`
	TokenID        string            `json:"token_id,omitempty"`
	QuestionID     string            `json:"question_id,omitempty"`
	SolverTokenIDs []string          `json:"solver_token_ids,omitempty"`
	SpendLogic     int               `json:"spend_logic,omitempty"`
	SpendMemory    int               `json:"spend_memory,omitempty"`
	Modifiers      map[string]string `json:"modifiers,omitempty"`
}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventPlayerJoined   EventType = "player_joined"
	EventPlayerLeft     EventType = "player_left"
	EventTeamSet        EventType = "team_set"
	EventGameStarted    EventType = "game_started"
	EventSubjectPicked  EventType = "subject_picked"
	EventPlanSubmitted  EventType = "plan_submitted"
	EventTurnOrder      EventType = "turn_order"
	EventActionResolved EventType = "action_resolved"
	EventQuestionAsked  EventType = "question_asked"
	EventSolveTable     EventType = "solve_table_picked"
	EventQuestionPicked EventType = "question_picked"
	EventSolveAttempt   EventType = "solve_attempt"
	EventSentHome       EventType = "sent_home"
	EventTableOccupied  EventType = "table_occupied"
	EventGrowth         EventType = "growth"
	EventIncomePaid     EventType = "income_paid"
	EventRoundEnd       EventType = "round_end"
	EventPhaseChange    EventType = "phase_change"
	EventGameOver       EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType   `json:"type"`
	Player string      `json:"player,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}
