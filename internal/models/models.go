// internal/models/models.go
package models

import "strings"

// Game status values as stored. Comparisons are case-insensitive because
// legacy documents carry mixed casing.
const (
	GameStatusScheduled = "scheduled"
	GameStatusFinished  = "finished"
)

// PhaseRegular is the only phase that counts toward the regular-season
// table. An empty phase is treated as regular season.
const PhaseRegular = "regular"

// GroupUnique marks competitions without a conference split. Teams in the
// unique group are folded into group "A" for standings purposes.
const GroupUnique = "unique"

// Team is one entry in a competition category. Wins/Losses/LeaguePoints/
// PointsFor/PointsAgainst are the running totals the live-scoring workflow
// increments as results come in. Standings never trust them; they exist for
// quick display and for the drift audit.
type Team struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Name          string `json:"name"`
	Group         string `json:"group"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	LeaguePoints  int    `json:"leaguePoints"`
	PointsFor     int    `json:"pointsFor"`
	PointsAgainst int    `json:"pointsAgainst"`
}

// Game is a scheduled or finished game. Team names are denormalized onto the
// game because some legacy records have no team ids. Group is copied from the
// home team at creation time.
type Game struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	HomeTeamID   string `json:"homeTeamId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamID   string `json:"awayTeamId"`
	AwayTeamName string `json:"awayTeamName"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	Status       string `json:"status"`
	Phase        string `json:"phase"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Group        string `json:"group"`
}

// Finished reports whether the game has a final result.
func (g Game) Finished() bool {
	return strings.EqualFold(strings.TrimSpace(g.Status), GameStatusFinished)
}

// RegularSeason reports whether the game belongs to the regular-season
// calendar. Absent phases are regular season; named elimination phases
// ("octavos", "semifinal", ...) are not.
func (g Game) RegularSeason() bool {
	phase := strings.TrimSpace(g.Phase)
	return phase == "" || strings.EqualFold(phase, PhaseRegular)
}

// StatLine is one player's accumulated counters for one game. There is at
// most one line per (game, player); live scoring merges into it. TeamName is
// free text, so joins against team records go through NormalizeName.
type StatLine struct {
	GameID        string `json:"gameId"`
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	TeamName      string `json:"teamName"`
	FreeThrows    int    `json:"freeThrows"`
	TwoPointers   int    `json:"twoPointers"`
	ThreePointers int    `json:"threePointers"`
	Rebounds      int    `json:"rebounds"`
	Steals        int    `json:"steals"`
	Blocks        int    `json:"blocks"`
}

// Points derives scored points from the made-shot counters.
func (l StatLine) Points() int {
	return l.FreeThrows + 2*l.TwoPointers + 3*l.ThreePointers
}

// NormalizeName canonicalizes a free-text team or player name for matching.
// Both sides of every name-based join must go through this.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NormalizeGroup canonicalizes a group label. Empty labels and the unique
// sentinel collapse into group "A" so single-group competitions produce one
// table.
func NormalizeGroup(group string) string {
	normalized := strings.ToUpper(strings.TrimSpace(group))
	if normalized == "" || strings.EqualFold(normalized, GroupUnique) {
		return "A"
	}
	return normalized
}
