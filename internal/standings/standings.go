// internal/standings/standings.go
package standings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/courtsidehq/courtside/internal/models"
)

// League points per result. Losing still earns a point; unplayed games earn
// nothing.
const (
	winPoints  = 2
	lossPoints = 1
)

// ErrNilInput is returned when a caller passes nil collections. Data-quality
// problems inside the collections never produce an error.
var ErrNilInput = errors.New("teams and games collections are required")

type Row struct {
	TeamID        string `json:"teamId"`
	TeamName      string `json:"teamName"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	LeaguePoints  int    `json:"leaguePoints"`
	PointsFor     int    `json:"pointsFor"`
	PointsAgainst int    `json:"pointsAgainst"`
	Position      int    `json:"position"`
}

// PointDifferential is the overall for/against margin across counted games.
func (r Row) PointDifferential() int {
	return r.PointsFor - r.PointsAgainst
}

type teamRecord struct {
	Row
	group string
	// key identifies this record in the head-to-head maps. It is the team id
	// when present; legacy roster rows without an id get a synthetic key so
	// two id-less teams never share aggregates.
	key string
	// Per-opponent head-to-head aggregates over counted games, keyed by the
	// opponent's record key. Restricting a sum to a tied cohort's members
	// yields exactly the cohort mini-table.
	h2hPoints map[string]int
	h2hDiff   map[string]int
	h2hFor    map[string]int
}

// Compute turns a category's team roster and full game list into one ordered
// classification table per group, best to worst.
//
// Only finished regular-season games count. Running totals stored on the team
// records are ignored on purpose: the game log is the single source of truth,
// so a playoff result or a manual edit that corrupted the totals cannot leak
// into the table. A finished game with equal scores is malformed for
// basketball and is excluded from aggregation entirely.
func Compute(teams []models.Team, games []models.Game) (map[string][]Row, error) {
	if teams == nil || games == nil {
		return nil, ErrNilInput
	}

	records := make([]*teamRecord, 0, len(teams))
	byID := make(map[string]*teamRecord, len(teams))
	byName := make(map[string]*teamRecord, len(teams))
	for i, team := range teams {
		key := team.ID
		if key == "" {
			key = fmt.Sprintf("roster-%d", i)
		}
		record := &teamRecord{
			Row: Row{
				TeamID:   team.ID,
				TeamName: team.Name,
			},
			group:     models.NormalizeGroup(team.Group),
			key:       key,
			h2hPoints: make(map[string]int),
			h2hDiff:   make(map[string]int),
			h2hFor:    make(map[string]int),
		}
		records = append(records, record)
		if team.ID != "" {
			byID[team.ID] = record
		}
		if key := models.NormalizeName(team.Name); key != "" {
			if _, exists := byName[key]; !exists {
				byName[key] = record
			}
		}
	}

	for _, game := range games {
		if !game.Finished() || !game.RegularSeason() {
			continue
		}
		if game.HomeScore == game.AwayScore {
			// Malformed for basketball; counting it would hand someone an
			// unearned win.
			continue
		}
		home := resolveTeam(byID, byName, game.HomeTeamID, game.HomeTeamName)
		away := resolveTeam(byID, byName, game.AwayTeamID, game.AwayTeamName)
		if home != nil {
			home.accumulate(game.HomeScore, game.AwayScore, away)
		}
		if away != nil {
			away.accumulate(game.AwayScore, game.HomeScore, home)
		}
	}

	grouped := make(map[string][]*teamRecord)
	for _, record := range records {
		grouped[record.group] = append(grouped[record.group], record)
	}

	tables := make(map[string][]Row, len(grouped))
	for group, members := range grouped {
		sortGroup(members)
		rows := make([]Row, 0, len(members))
		for position, record := range members {
			record.Position = position + 1
			rows = append(rows, record.Row)
		}
		tables[group] = rows
	}
	return tables, nil
}

func resolveTeam(byID, byName map[string]*teamRecord, id, name string) *teamRecord {
	if id != "" {
		if record, ok := byID[id]; ok {
			return record
		}
	}
	// Legacy games may carry names only.
	if record, ok := byName[models.NormalizeName(name)]; ok {
		return record
	}
	return nil
}

func (t *teamRecord) accumulate(ownScore, opponentScore int, opponent *teamRecord) {
	t.PointsFor += ownScore
	t.PointsAgainst += opponentScore

	points := lossPoints
	if ownScore > opponentScore {
		t.Wins++
		points = winPoints
	} else {
		t.Losses++
	}
	t.LeaguePoints += points

	if opponent != nil {
		t.h2hPoints[opponent.key] += points
		t.h2hDiff[opponent.key] += ownScore - opponentScore
		t.h2hFor[opponent.key] += ownScore
	}
}

// sortGroup applies the FIBA cascade: league points, then head-to-head league
// points, differential, and points-for computed over games among the full set
// of teams tied on that points value, then overall differential. The tied
// cohort is rebuilt for every comparison because different cohorts can
// coexist in one group. Anything still tied keeps input order.
func sortGroup(members []*teamRecord) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.LeaguePoints != b.LeaguePoints {
			return a.LeaguePoints > b.LeaguePoints
		}

		cohort := make(map[string]struct{})
		for _, record := range members {
			if record.LeaguePoints == a.LeaguePoints {
				cohort[record.key] = struct{}{}
			}
		}

		if ap, bp := sumOver(a.h2hPoints, cohort), sumOver(b.h2hPoints, cohort); ap != bp {
			return ap > bp
		}
		if ad, bd := sumOver(a.h2hDiff, cohort), sumOver(b.h2hDiff, cohort); ad != bd {
			return ad > bd
		}
		if af, bf := sumOver(a.h2hFor, cohort), sumOver(b.h2hFor, cohort); af != bf {
			return af > bf
		}
		return a.PointDifferential() > b.PointDifferential()
	})
}

func sumOver(values map[string]int, cohort map[string]struct{}) int {
	total := 0
	for opponentID, value := range values {
		if _, ok := cohort[opponentID]; ok {
			total += value
		}
	}
	return total
}
