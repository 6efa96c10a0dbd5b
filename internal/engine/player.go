package engine

// Team is one of the two sides. The zero value means unassigned.
type Team string

const (
	TeamNone Team = ""
	TeamA    Team = "A"
	TeamB    Team = "B"
)

func (t Team) Valid() bool { return t == TeamA || t == TeamB }

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Player holds one player's state.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     Team   `json:"team"`
	Score    int    `json:"score"`
	Resource int    `json:"resource"`
	Subject  string `json:"subject,omitempty"`
	Card     string `json:"card,omitempty"` // role template the player's tokens use
}

func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name}
}

// Token is a movable piece owned by a player.
type Token struct {
	ID      string `json:"id"`
	Owner   string `json:"owner"`
	Team    Team   `json:"team"`
	RoleID  string `json:"role_id"`
	Logic   int    `json:"logic"`
	Memory  int    `json:"memory"`
	Exec    int    `json:"exec"`
	Stress  int    `json:"stress"`
	Home    bool   `json:"home"`
	TableID string `json:"table_id"`
}

func (t *Token) applyRole(r RoleConfig) {
	t.RoleID = r.ID
	t.Logic = r.Logic
	t.Memory = r.Memory
	t.Exec = r.Exec
}

// Table is a shared location tokens move between.
type Table struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject,omitempty"`
	Capacity    int      `json:"capacity"`
	OwnerTeam   Team     `json:"owner_team,omitempty"`
	Tokens      []string `json:"tokens"`
	QuestionIDs []string `json:"question_ids"`
}

// Question is posted by an asking token on a contested table.
type Question struct {
	ID           string            `json:"id"`
	TableID      string            `json:"table_id"`
	FromTokenID  string            `json:"from_token_id"`
	FromPlayerID string            `json:"from_player_id"`
	Team         Team              `json:"team"`
	X            int               `json:"x"` // logic threshold
	Y            int               `json:"y"` // memory threshold
	Modifiers    map[string]string `json:"modifiers,omitempty"`
	Pending      bool              `json:"pending"`
}

// PlanStep is one track: move one token to one table.
type PlanStep struct {
	TokenID   string `json:"token_id"`
	ToTableID string `json:"to_table_id"`
}

// QueuedAction is a plan step scheduled in the action queue.
type QueuedAction struct {
	PlayerID  string `json:"player_id"`
	Index     int    `json:"index"`
	TokenID   string `json:"token_id"`
	ToTableID string `json:"to_table_id"`
}

// ActionResult records how a queued action resolved.
type ActionResult struct {
	Action QueuedAction `json:"action"`
	OK     bool         `json:"ok"`
	Reason Reason       `json:"reason,omitempty"`
}

// SolveState tracks which team may pick and what it picked.
type SolveState struct {
	PickerTeam       Team   `json:"picker_team"`
	PickedTableID    string `json:"picked_table_id,omitempty"`
	PickedQuestionID string `json:"picked_question_id,omitempty"`
}

// Power is a pair of logic/memory amounts.
type Power struct {
	Logic  int `json:"logic"`
	Memory int `json:"memory"`
}

// SolveResult is the outcome of one solve attempt.
type SolveResult struct {
	QuestionID  string `json:"question_id"`
	Success     bool   `json:"success"`
	RevealedSum int    `json:"revealed_sum"`
	Power       Power  `json:"power"`
	Need        Power  `json:"need"`
}
