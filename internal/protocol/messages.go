package protocol

import (
	"encoding/json"
	"fmt"

	"quizboard/internal/engine"
)

// Message types: Server → Client
const (
	MsgRoomState = "room_state"
	MsgEvent     = "event"
	MsgError     = "error"
)

// Message types: Client → Server. They match engine ActionType names.
const (
	MsgJoin              = "join"
	MsgSetTeam           = "set_team"
	MsgStartGame         = "start_game"
	MsgPickSubject       = "pick_subject"
	MsgSubmitPlan        = "submit_plan"
	MsgResolveNextAction = "resolve_next_action"
	MsgAskQuestion       = "ask_question"
	MsgPickSolveTable    = "pick_solve_table"
	MsgPickQuestion      = "pick_question"
	MsgAttemptSolve      = "attempt_solve"
	MsgAdvancePhase      = "advance_phase"
)

// Error codes that do not come from the engine.
const (
	CodeRateLimited = "RATE_LIMITED"
	CodeBadMessage  = "BAD_MESSAGE"
	CodeReadOnly    = "READ_ONLY"
)

// JoinMsg is sent by a player to join the room.
type JoinMsg struct {
	Name string `json:"name"`
}

type SetTeamMsg struct {
	Team engine.Team `json:"team"`
}

type PickSubjectMsg struct {
	Subject string `json:"subject"`
	Card    string `json:"card,omitempty"`
}

type SubmitPlanMsg struct {
	Steps []engine.PlanStep `json:"steps"`
}

type AskQuestionMsg struct {
	TableID     string            `json:"table_id"`
	TokenID     string            `json:"token_id"`
	SpendLogic  int               `json:"spend_logic"`
	SpendMemory int               `json:"spend_memory"`
	Modifiers   map[string]string `json:"modifiers,omitempty"`
}

type PickSolveTableMsg struct {
	TableID string `json:"table_id"`
}

type PickQuestionMsg struct {
	QuestionID string `json:"question_id"`
}

type AttemptSolveMsg struct {
	QuestionID     string            `json:"question_id"`
	SolverTokenIDs []string          `json:"solver_token_ids"`
	SpendLogic     int               `json:"spend_logic"`
	SpendMemory    int               `json:"spend_memory"`
	Modifiers      map[string]string `json:"modifiers,omitempty"`
}

// ErrorMsg is sent to a client whose intent was rejected.
type ErrorMsg struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeAction turns a client envelope into an engine action.
func DecodeAction(env Envelope) (engine.Action, error) {
	a := engine.Action{Type: engine.ActionType(env.Type)}
	var err error
	switch env.Type {
	case MsgJoin:
		var m JoinMsg
		err = decode(env.Payload, &m)
		a.Name = m.Name
	case MsgSetTeam:
		var m SetTeamMsg
		err = decode(env.Payload, &m)
		a.Team = m.Team
	case MsgPickSubject:
		var m PickSubjectMsg
		err = decode(env.Payload, &m)
		a.Subject, a.Card = m.Subject, m.Card
	case MsgSubmitPlan:
		var m SubmitPlanMsg
		err = decode(env.Payload, &m)
		a.Steps = m.Steps
	case MsgAskQuestion:
		var m AskQuestionMsg
		err = decode(env.Payload, &m)
		a.TableID, a.TokenID = m.TableID, m.TokenID
		a.SpendLogic, a.SpendMemory, a.Modifiers = m.SpendLogic, m.SpendMemory, m.Modifiers
	case MsgPickSolveTable:
		var m PickSolveTableMsg
		err = decode(env.Payload, &m)
		a.TableID = m.TableID
	case MsgPickQuestion:
		var m PickQuestionMsg
		err = decode(env.Payload, &m)
		a.QuestionID = m.QuestionID
	case MsgAttemptSolve:
		var m AttemptSolveMsg
		err = decode(env.Payload, &m)
		a.QuestionID, a.SolverTokenIDs = m.QuestionID, m.SolverTokenIDs
		a.SpendLogic, a.SpendMemory, a.Modifiers = m.SpendLogic, m.SpendMemory, m.Modifiers
	case MsgStartGame, MsgResolveNextAction, MsgAdvancePhase:
	default:
		return engine.Action{}, fmt.Errorf("%w: unknown message type %q", engine.ErrInvalidAction, env.Type)
	}
	if err != nil {
		return engine.Action{}, fmt.Errorf("%w: bad %s payload: %v", engine.ErrInvalidAction, env.Type, err)
	}
	return a, nil
}

// decode tolerates a missing payload.
func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// NewError builds an error envelope from an engine rejection.
func NewError(err error) Envelope {
	return MustEnvelope(MsgError, ErrorMsg{
		Code:    string(engine.ReasonOf(err)),
		Message: err.Error(),
	})
}
