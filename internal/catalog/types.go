package catalog

// Row is one flat record produced by the spreadsheet decoder. Fields are kept
// as raw strings; the builder owns all typing and defaulting.
type Row map[string]string

// Role is one of the five player position categories.
type Role string

const (
	RoleGoalkeeper Role = "POR"
	RoleDefender   Role = "DIF"
	RoleMidfielder Role = "CEN"
	RolePlaymaker  Role = "TRQ"
	RoleForward    Role = "ATT"
	// RoleUnknown marks rows whose role column could not be interpreted.
	// They are kept in the catalog but excluded from per-role rankings.
	RoleUnknown Role = "UNKNOWN"
)

// Roles lists the five real roles in dataset order.
var Roles = []Role{RoleGoalkeeper, RoleDefender, RoleMidfielder, RolePlaymaker, RoleForward}

// ParseRole maps a raw role column value onto the closed enum.
func ParseRole(raw string) Role {
	switch raw {
	case string(RoleGoalkeeper):
		return RoleGoalkeeper
	case string(RoleDefender):
		return RoleDefender
	case string(RoleMidfielder):
		return RoleMidfielder
	case string(RolePlaymaker):
		return RolePlaymaker
	case string(RoleForward):
		return RoleForward
	default:
		return RoleUnknown
	}
}

// Spreadsheet column names consumed by the builder. Everything else is carried
// through verbatim in Player.Raw.
const (
	ColName                = "Nome"
	ColTeam                = "Squadra"
	ColRole                = "Ruolo"
	ColConvenience         = "Convenienza Potenziale"
	ColFantasyAvg          = "Fantamedia anno 2024-2025"
	ColAppearances         = "Presenze campionato corrente"
	ColOverallScore        = "Punteggio"
	ColExpectedGoals       = "Gol previsti"
	ColExpectedAssists     = "Assist previsti"
	ColExpectedAppearances = "Presenze previste"
	ColInjuryResistance    = "Resistenza infortuni"
	ColPrice               = "Quotazione"
	ColInjured             = "Infortunato"
	ColRecommended         = "Consigliato prossima giornata"
	ColNewSigning          = "Nuovo acquisto"
	ColGoodInvestment      = "Buon investimento"
)

// Player is one row of the source spreadsheet, enriched with normalized
// aliases and its per-role ranking.
type Player struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Team           string   `json:"team"`
	Role           Role     `json:"role"`
	NormalizedName string   `json:"normalized_name"`
	Convenience    float64  `json:"convenience"`
	FantasyAvg     float64  `json:"fantasy_avg"`
	Appearances    float64  `json:"appearances"`
	OverallScore   float64  `json:"overall_score"`
	Injured        bool     `json:"injured"`
	Recommended    bool     `json:"recommended"`
	NewSigning     bool     `json:"new_signing"`
	Skills         []string `json:"skills,omitempty"`
	OriginalRank   int      `json:"original_rank"`
	TotalInRole    int      `json:"total_in_role"`
	Raw            Row      `json:"-"`
}

// Index maps a normalized search token to the positions of the players that
// produced it. Built once per catalog load, read-only thereafter.
type Index map[string][]int

// Catalog is the in-memory player catalog plus its search index.
type Catalog struct {
	Players []Player
	Index   Index
}

// RoleStats summarizes one role cohort.
type RoleStats struct {
	Role           Role    `json:"role"`
	Count          int     `json:"count"`
	AvgConvenience float64 `json:"avg_convenience"`
	AvgFantasyAvg  float64 `json:"avg_fantasy_avg"`
}
