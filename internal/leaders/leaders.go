// internal/leaders/leaders.go
package leaders

import (
	"errors"
	"math"
	"sort"

	"github.com/courtsidehq/courtside/internal/models"
)

// Stat identifies a leaderboard category.
type Stat string

const (
	StatPoints        Stat = "points"
	StatRebounds      Stat = "rebounds"
	StatSteals        Stat = "steals"
	StatBlocks        Stat = "blocks"
	StatThreePointers Stat = "three_pointers"
	StatTwoPointers   Stat = "two_pointers"
	StatFreeThrows    Stat = "free_throws"
	// Valuation is the composite points+rebounds+steals+blocks board.
	StatValuation Stat = "valuation"
)

// TopN is the leaderboard depth. Pagination beyond this belongs to the
// presentation layer.
const TopN = 10

// ErrNilInput is returned when a caller passes nil collections.
var ErrNilInput = errors.New("teams, games, and stat lines collections are required")

// Stats lists every leaderboard category in display order.
func Stats() []Stat {
	return []Stat{
		StatPoints,
		StatRebounds,
		StatSteals,
		StatBlocks,
		StatThreePointers,
		StatTwoPointers,
		StatFreeThrows,
		StatValuation,
	}
}

type Entry struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	TeamName   string  `json:"teamName"`
	Total      int     `json:"total"`
	// GamesPlayed is the denominator used for the average: the team's
	// finished-game count, or the player's own appearance count when the team
	// tally is unavailable.
	GamesPlayed int     `json:"gamesPlayed"`
	Average     float64 `json:"average"`
	Position    int     `json:"position"`
}

type playerTotals struct {
	playerID    string
	playerName  string
	teamName    string
	appearances int
	totals      map[Stat]int
}

// Compute aggregates globally-stored stat lines into ranked top-10 boards per
// category, averaging over each team's finished-game count.
//
// Stat lines are not partitioned by competition in storage, so every line is
// checked against this category's finished-game ids first; anything else is
// another competition's data and is dropped.
func Compute(teams []models.Team, games []models.Game, lines []models.StatLine) (map[Stat][]Entry, error) {
	if teams == nil || games == nil || lines == nil {
		return nil, ErrNilInput
	}

	teamGames := make(map[string]int)
	validGames := make(map[string]struct{})
	for _, game := range games {
		if !game.Finished() {
			continue
		}
		validGames[game.ID] = struct{}{}
		teamGames[models.NormalizeName(game.HomeTeamName)]++
		teamGames[models.NormalizeName(game.AwayTeamName)]++
	}

	players := make(map[string]*playerTotals)
	order := make([]string, 0)
	for _, line := range lines {
		if _, ok := validGames[line.GameID]; !ok {
			continue
		}
		player, ok := players[line.PlayerID]
		if !ok {
			player = &playerTotals{
				playerID: line.PlayerID,
				totals:   make(map[Stat]int),
			}
			players[line.PlayerID] = player
			order = append(order, line.PlayerID)
		}
		// Display metadata follows the most recent line.
		player.playerName = line.PlayerName
		player.teamName = line.TeamName
		player.appearances++
		player.totals[StatPoints] += line.Points()
		player.totals[StatRebounds] += line.Rebounds
		player.totals[StatSteals] += line.Steals
		player.totals[StatBlocks] += line.Blocks
		player.totals[StatThreePointers] += line.ThreePointers
		player.totals[StatTwoPointers] += line.TwoPointers
		player.totals[StatFreeThrows] += line.FreeThrows
		player.totals[StatValuation] += line.Points() + line.Rebounds + line.Steals + line.Blocks
	}

	boards := make(map[Stat][]Entry, len(Stats()))
	for _, stat := range Stats() {
		entries := make([]Entry, 0, len(order))
		for _, playerID := range order {
			player := players[playerID]
			denominator := teamGames[models.NormalizeName(player.teamName)]
			if denominator == 0 {
				// Team-name mismatch guard: fall back to the player's own
				// appearance count rather than divide by zero.
				denominator = player.appearances
			}
			entries = append(entries, Entry{
				PlayerID:    player.playerID,
				PlayerName:  player.playerName,
				TeamName:    player.teamName,
				Total:       player.totals[stat],
				GamesPlayed: denominator,
				Average:     roundAverage(player.totals[stat], denominator),
			})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Average > entries[j].Average
		})
		if len(entries) > TopN {
			entries = entries[:TopN]
		}
		for position := range entries {
			entries[position].Position = position + 1
		}
		boards[stat] = entries
	}
	return boards, nil
}

// roundAverage rounds to one decimal, the precision the boards display and
// rank by.
func roundAverage(total, games int) float64 {
	if games == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(games)*10) / 10
}
