package engine

import "fmt"

// TableConfig describes one table of the map.
type TableConfig struct {
	ID        string `json:"id" yaml:"id"`
	Subject   string `json:"subject,omitempty" yaml:"subject"`
	Capacity  int    `json:"capacity" yaml:"capacity"`
	OwnerTeam Team   `json:"owner_team,omitempty" yaml:"owner_team"`
}

// MapConfig is the static board topology.
type MapConfig struct {
	HomeTableID         string          `json:"home_table_id" yaml:"home_table_id"`
	DefaultSpawnTableID string          `json:"default_spawn_table_id" yaml:"default_spawn_table_id"`
	SpawnTableByTeam    map[Team]string `json:"spawn_table_by_team" yaml:"spawn_table_by_team"`
	Tables              []TableConfig   `json:"tables" yaml:"tables"`
}

// Income is paid per player of the owning team each RESOURCE phase.
type Income struct {
	Score    int `json:"score" yaml:"score"`
	Resource int `json:"resource" yaml:"resource"`
}

// RulesConfig holds the rule constants.
type RulesConfig struct {
	MaxRounds         int `json:"max_rounds" yaml:"max_rounds"`
	MaxTracksPerRound int `json:"max_tracks_per_round" yaml:"max_tracks_per_round"`
	StressLimit       int `json:"stress_limit" yaml:"stress_limit"`

	SolveSuccessScore         int `json:"solve_success_score" yaml:"solve_success_score"`
	AssistLogicBonusPerToken  int `json:"assist_logic_bonus_per_token" yaml:"assist_logic_bonus_per_token"`
	AssistMemoryBonusPerToken int `json:"assist_memory_bonus_per_token" yaml:"assist_memory_bonus_per_token"`

	StressOnQuestionReveal     int `json:"stress_on_question_reveal" yaml:"stress_on_question_reveal"`
	StressOnSolveSuccessSolver int `json:"stress_on_solve_success_solver" yaml:"stress_on_solve_success_solver"`
	StressOnSolveSuccessAsker  int `json:"stress_on_solve_success_asker" yaml:"stress_on_solve_success_asker"`
	StressOnSolveFailSolver    int `json:"stress_on_solve_fail_solver" yaml:"stress_on_solve_fail_solver"`

	EnableAutoOccupy bool `json:"enable_auto_occupy" yaml:"enable_auto_occupy"`
	SubjectGrowth    int  `json:"subject_growth" yaml:"subject_growth"`

	ResourceToScoreRate int               `json:"resource_to_score_rate" yaml:"resource_to_score_rate"`
	TableIncome         map[string]Income `json:"table_income" yaml:"table_income"`
}

// RoleConfig is a stat template used to initialize tokens.
type RoleConfig struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Logic  int    `json:"logic" yaml:"logic"`
	Memory int    `json:"memory" yaml:"memory"`
	Exec   int    `json:"exec" yaml:"exec"`
}

// GameConfig holds configuration for creating a new room.
type GameConfig struct {
	Map             MapConfig    `json:"map" yaml:"map"`
	Rules           RulesConfig  `json:"rules" yaml:"rules"`
	Roles           []RoleConfig `json:"roles" yaml:"roles"`
	DefaultRoleID   string       `json:"default_role_id" yaml:"default_role_id"`
	TokensPerPlayer int          `json:"tokens_per_player" yaml:"tokens_per_player"`
	MinPlayers      int          `json:"min_players" yaml:"min_players"`
}

func DefaultConfig() GameConfig {
	return GameConfig{
		Map: MapConfig{
			HomeTableID:         "HOME",
			DefaultSpawnTableID: "NEUTRAL",
			SpawnTableByTeam:    map[Team]string{TeamA: "A_BASE", TeamB: "B_BASE"},
			Tables: []TableConfig{
				{ID: "A_BASE", Subject: "A_BASE", Capacity: 8, OwnerTeam: TeamA},
				{ID: "B_BASE", Subject: "B_BASE", Capacity: 8, OwnerTeam: TeamB},
				{ID: "MATH", Subject: "Math", Capacity: 4, OwnerTeam: TeamA},
				{ID: "PHYS", Subject: "Physics", Capacity: 4, OwnerTeam: TeamB},
				{ID: "NEUTRAL", Capacity: 6},
				{ID: "HOME", Subject: "HOME", Capacity: 999},
			},
		},
		Rules: RulesConfig{
			MaxRounds:         6,
			MaxTracksPerRound: 5,
			StressLimit:       9,

			SolveSuccessScore:         2,
			AssistLogicBonusPerToken:  1,
			AssistMemoryBonusPerToken: 1,

			StressOnQuestionReveal:     1,
			StressOnSolveSuccessSolver: 1,
			StressOnSolveSuccessAsker:  1,
			StressOnSolveFailSolver:    2,

			EnableAutoOccupy: true,
			SubjectGrowth:    0,

			ResourceToScoreRate: 10,
			TableIncome: map[string]Income{
				"A_BASE":  {Score: 0, Resource: 1},
				"B_BASE":  {Score: 0, Resource: 1},
				"MATH":    {Score: 1, Resource: 2},
				"PHYS":    {Score: 1, Resource: 2},
				"NEUTRAL": {Score: 1, Resource: 1},
			},
		},
		Roles: []RoleConfig{
			{ID: "STUDENT_BASIC", Name: "Student", Logic: 3, Memory: 3, Exec: 3},
			{ID: "STUDENT_LOGICIAN", Name: "Logician", Logic: 4, Memory: 2, Exec: 3},
			{ID: "STUDENT_MEMORIZER", Name: "Memorizer", Logic: 2, Memory: 4, Exec: 3},
		},
		DefaultRoleID:   "STUDENT_BASIC",
		TokensPerPlayer: 6,
		MinPlayers:      2,
	}
}

// Role returns the role template with the given id.
func (c GameConfig) Role(id string) (RoleConfig, bool) {
	for _, r := range c.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return RoleConfig{}, false
}

// Subjects lists the distinct pickable subjects in table order. Base and
// home tables are excluded.
func (c GameConfig) Subjects() []string {
	var out []string
	seen := map[string]bool{}
	excluded := map[string]bool{c.Map.HomeTableID: true}
	for _, id := range c.Map.SpawnTableByTeam {
		excluded[id] = true
	}
	for _, t := range c.Map.Tables {
		if t.Subject == "" || excluded[t.ID] || seen[t.Subject] {
			continue
		}
		seen[t.Subject] = true
		out = append(out, t.Subject)
	}
	return out
}

// SpawnTable returns the spawn table for a team.
func (c GameConfig) SpawnTable(team Team) string {
	if id, ok := c.Map.SpawnTableByTeam[team]; ok {
		return id
	}
	return c.Map.DefaultSpawnTableID
}

// Validate checks that the map and roles are consistent enough to start a
// room.
func (c GameConfig) Validate() error {
	tables := map[string]bool{}
	for _, t := range c.Map.Tables {
		if t.ID == "" {
			return fmt.Errorf("table with empty id")
		}
		if tables[t.ID] {
			return fmt.Errorf("duplicate table %q", t.ID)
		}
		if t.Capacity < 0 {
			return fmt.Errorf("table %q: negative capacity", t.ID)
		}
		if t.OwnerTeam != TeamNone && !t.OwnerTeam.Valid() {
			return fmt.Errorf("table %q: unknown owner team %q", t.ID, t.OwnerTeam)
		}
		tables[t.ID] = true
	}
	if !tables[c.Map.HomeTableID] {
		return fmt.Errorf("home table %q not on the map", c.Map.HomeTableID)
	}
	for _, team := range []Team{TeamA, TeamB} {
		if id := c.SpawnTable(team); !tables[id] {
			return fmt.Errorf("spawn table %q for team %s not on the map", id, team)
		}
	}
	for id := range c.Rules.TableIncome {
		if !tables[id] {
			return fmt.Errorf("income for unknown table %q", id)
		}
	}
	if _, ok := c.Role(c.DefaultRoleID); !ok {
		return fmt.Errorf("default role %q not defined", c.DefaultRoleID)
	}
	switch {
	case c.Rules.MaxRounds < 1:
		return fmt.Errorf("max_rounds must be positive")
	case c.Rules.StressLimit < 1:
		return fmt.Errorf("stress_limit must be positive")
	case c.Rules.MaxTracksPerRound < 0:
		return fmt.Errorf("max_tracks_per_round must not be negative")
	case c.TokensPerPlayer < 1:
		return fmt.Errorf("tokens_per_player must be positive")
	}
	return nil
}
