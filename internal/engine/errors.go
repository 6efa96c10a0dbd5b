package engine

import "errors"

// Reason is a rejection reason code. Every error returned by the engine
// wraps one.
type Reason string

func (r Reason) Error() string { return string(r) }

const (
	ErrInvalidAction      Reason = "INVALID_ACTION"
	ErrWrongPhase         Reason = "WRONG_PHASE"
	ErrPlayerNotFound     Reason = "PLAYER_NOT_FOUND"
	ErrGameAlreadyStarted Reason = "GAME_ALREADY_STARTED"
	ErrNotEnoughPlayers   Reason = "NOT_ENOUGH_PLAYERS"
	ErrInvalidTeam        Reason = "INVALID_TEAM"
	ErrInvalidSubject     Reason = "INVALID_SUBJECT"
	ErrInvalidCard        Reason = "INVALID_CARD"

	ErrTokenNotFound Reason = "TOKEN_NOT_FOUND"
	ErrTokenAtHome   Reason = "TOKEN_AT_HOME"
	ErrTableNotFound Reason = "TABLE_NOT_FOUND"
	ErrTableFull     Reason = "TABLE_FULL"

	ErrNotYourToken   Reason = "NOT_YOUR_TOKEN"
	ErrDuplicateToken Reason = "DUPLICATE_TOKEN"
	ErrTooManyTracks  Reason = "TOO_MANY_TRACKS"

	ErrCannotAsk          Reason = "CANNOT_ASK"
	ErrInvalidSpend       Reason = "INVALID_SPEND"
	ErrInsufficientStats  Reason = "INSUFFICIENT_STATS"
	ErrNotPickerTeam      Reason = "NOT_PICKER_TEAM"
	ErrTableNotSolvable   Reason = "TABLE_NOT_SOLVABLE"
	ErrQuestionNotPending Reason = "QUESTION_NOT_PENDING"
	ErrQuestionNotOnTable Reason = "QUESTION_NOT_ON_TABLE"
	ErrOwnQuestion        Reason = "OWN_QUESTION"
	ErrInvalidSolvers     Reason = "INVALID_SOLVERS"
)

// ReasonOf extracts the reason code from err.
func ReasonOf(err error) Reason {
	var r Reason
	if errors.As(err, &r) {
		return r
	}
	return ErrInvalidAction
}
