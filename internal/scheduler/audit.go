// internal/scheduler/audit.go
package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsidehq/courtside/internal/standings"
	"github.com/courtsidehq/courtside/internal/store"
)

const auditTimeout = 2 * time.Minute

// RegisterAuditJobs wires the standings drift audit into the scheduler.
// The audit recomputes each category's classification from game results and
// flags teams whose stored running totals disagree. A blank cron expression
// disables the job.
func RegisterAuditJobs(st *store.Store, cronExpr string) error {
	if strings.TrimSpace(cronExpr) == "" {
		log.Info().Msg("Standings drift audit disabled")
		return nil
	}
	_, err := AddJob("standings-drift-audit", cronExpr, func() {
		RunDriftAudit(st)
	})
	return err
}

// RunDriftAudit audits every category once.
func RunDriftAudit(st *store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	categories, err := st.ListCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Drift audit failed to list categories")
		return
	}

	var drifted int
	for _, category := range categories {
		drifted += auditCategory(ctx, st, category)
	}
	log.Info().
		Int("categories", len(categories)).
		Int("drifted_teams", drifted).
		Msg("Standings drift audit completed")
}

func auditCategory(ctx context.Context, st *store.Store, category string) int {
	logger := log.With().Str("category", category).Logger()

	teams, err := st.ListTeamsByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Msg("Drift audit failed to list teams")
		return 0
	}
	games, err := st.ListGamesByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Msg("Drift audit failed to list games")
		return 0
	}

	tables, err := standings.Compute(teams, games)
	if err != nil {
		logger.Error().Err(err).Msg("Drift audit failed to compute standings")
		return 0
	}

	stored := make(map[string]int, len(teams))
	for i, team := range teams {
		stored[team.ID] = i
	}

	var drifted int
	for group, rows := range tables {
		for _, row := range rows {
			idx, ok := stored[row.TeamID]
			if !ok {
				continue
			}
			team := teams[idx]
			if team.Wins == row.Wins &&
				team.Losses == row.Losses &&
				team.LeaguePoints == row.LeaguePoints &&
				team.PointsFor == row.PointsFor &&
				team.PointsAgainst == row.PointsAgainst {
				continue
			}
			drifted++
			logger.Warn().
				Str("team_id", row.TeamID).
				Str("team_name", row.TeamName).
				Str("group", group).
				Int("stored_wins", team.Wins).
				Int("computed_wins", row.Wins).
				Int("stored_losses", team.Losses).
				Int("computed_losses", row.Losses).
				Int("stored_league_points", team.LeaguePoints).
				Int("computed_league_points", row.LeaguePoints).
				Int("stored_points_for", team.PointsFor).
				Int("computed_points_for", row.PointsFor).
				Int("stored_points_against", team.PointsAgainst).
				Int("computed_points_against", row.PointsAgainst).
				Msg("Team running totals drifted from computed standings")
		}
	}
	return drifted
}
