package protocol_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"quizboard/internal/engine"
	"quizboard/internal/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want engine.Action
	}{
		{
			"join",
			`{"type":"join","payload":{"name":"Ann"}}`,
			engine.Action{Type: engine.ActionJoin, Name: "Ann"},
		},
		{
			"submit plan",
			`{"type":"submit_plan","payload":{"steps":[{"token_id":"p1_0","to_table_id":"MATH"}]}}`,
			engine.Action{Type: engine.ActionSubmitPlan, Steps: []engine.PlanStep{{TokenID: "p1_0", ToTableID: "MATH"}}},
		},
		{
			"attempt solve",
			`{"type":"attempt_solve","payload":{"question_id":"q1","solver_token_ids":["p2_0"],"spend_logic":2,"spend_memory":1}}`,
			engine.Action{Type: engine.ActionAttemptSolve, QuestionID: "q1", SolverTokenIDs: []string{"p2_0"}, SpendLogic: 2, SpendMemory: 1},
		},
		{
			"no payload",
			`{"type":"advance_phase"}`,
			engine.Action{Type: engine.ActionAdvancePhase},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env protocol.Envelope
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &env))
			got, err := protocol.DecodeAction(env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeActionErrors(t *testing.T) {
	_, err := protocol.DecodeAction(protocol.Envelope{Type: "dance"})
	assert.ErrorIs(t, err, engine.ErrInvalidAction)

	_, err = protocol.DecodeAction(protocol.Envelope{Type: protocol.MsgSubmitPlan, Payload: json.RawMessage(`{"steps":"nope"}`)})
	assert.ErrorIs(t, err, engine.ErrInvalidAction)
}

func TestNewError(t *testing.T) {
	env := protocol.NewError(fmt.Errorf("%w: MATH", engine.ErrTableFull))
	assert.Equal(t, protocol.MsgError, env.Type)

	var msg protocol.ErrorMsg
	require.NoError(t, json.Unmarshal(env.Payload, &msg))
	assert.Equal(t, protocol.ErrorMsg{Code: "TABLE_FULL", Message: "TABLE_FULL: MATH"}, msg)
}
