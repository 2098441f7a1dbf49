// internal/store/store.go

// Package store is the system-of-record access layer for teams, games, and
// player stat lines. The ranking engines never touch it directly; callers
// fetch snapshots here and hand them to the engines.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	appdb "github.com/courtsidehq/courtside/internal/db"
	"github.com/courtsidehq/courtside/internal/models"
)

var ErrGameFinished = errors.New("game already has a final result")

type Store struct {
	db *appdb.DB
}

func New(database *appdb.DB) *Store {
	return &Store{db: database}
}

func (s *Store) CreateTeam(ctx context.Context, team models.Team) (models.Team, error) {
	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (id, category, name, group_label)
		VALUES (?, ?, ?, ?)`,
		team.ID, team.Category, team.Name, team.Group,
	)
	if err != nil {
		return models.Team{}, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (s *Store) GetTeam(ctx context.Context, id string) (models.Team, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category, name, group_label, wins, losses, league_points, points_for, points_against
		FROM teams WHERE id = ?`, id)
	return scanTeam(row)
}

func (s *Store) ListTeamsByCategory(ctx context.Context, category string) ([]models.Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, name, group_label, wins, losses, league_points, points_for, points_against
		FROM teams WHERE category = ? ORDER BY created_at, id`, category)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// ListCategories returns every competition scope with at least one team.
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM teams ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// CreateGame schedules a game. The group label is copied from the home team
// for reference, matching how the documents are denormalized.
func (s *Store) CreateGame(ctx context.Context, game models.Game) (models.Game, error) {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.Status == "" {
		game.Status = models.GameStatusScheduled
	}

	if game.HomeTeamID != "" {
		home, err := s.GetTeam(ctx, game.HomeTeamID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return models.Game{}, err
		}
		if err == nil {
			if game.HomeTeamName == "" {
				game.HomeTeamName = home.Name
			}
			game.Group = home.Group
		}
	}
	if game.AwayTeamID != "" && game.AwayTeamName == "" {
		away, err := s.GetTeam(ctx, game.AwayTeamID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return models.Game{}, err
		}
		if err == nil {
			game.AwayTeamName = away.Name
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, category, home_team_id, home_team_name, away_team_id, away_team_name,
			home_score, away_score, status, phase, game_date, game_time, group_label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID, game.Category, game.HomeTeamID, game.HomeTeamName, game.AwayTeamID, game.AwayTeamName,
		game.HomeScore, game.AwayScore, game.Status, game.Phase, game.Date, game.Time, game.Group,
	)
	if err != nil {
		return models.Game{}, fmt.Errorf("create game: %w", err)
	}
	return game, nil
}

func (s *Store) GetGame(ctx context.Context, id string) (models.Game, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category, home_team_id, home_team_name, away_team_id, away_team_name,
			home_score, away_score, status, phase, game_date, game_time, group_label
		FROM games WHERE id = ?`, id)
	return scanGame(row)
}

func (s *Store) ListGamesByCategory(ctx context.Context, category string) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, home_team_id, home_team_name, away_team_id, away_team_name,
			home_score, away_score, status, phase, game_date, game_time, group_label
		FROM games WHERE category = ? ORDER BY game_date, game_time, id`, category)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// RecordResult finalizes a scheduled game and increments the running totals
// on both team rows, mirroring what the live scoring workflow does in the
// source system. The standings engine recomputes from the game log and never
// reads these totals; they feed the quick display and the drift audit. An
// equal score is a data error and leaves the totals untouched.
func (s *Store) RecordResult(ctx context.Context, gameID string, homeScore, awayScore int) (models.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Game{}, fmt.Errorf("begin record result: %w", err)
	}
	defer tx.Rollback()

	game, err := scanGame(tx.QueryRowContext(ctx, `
		SELECT id, category, home_team_id, home_team_name, away_team_id, away_team_name,
			home_score, away_score, status, phase, game_date, game_time, group_label
		FROM games WHERE id = ?`, gameID))
	if err != nil {
		return models.Game{}, err
	}
	if game.Finished() {
		return models.Game{}, ErrGameFinished
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE games SET home_score = ?, away_score = ?, status = ? WHERE id = ?`,
		homeScore, awayScore, models.GameStatusFinished, gameID,
	); err != nil {
		return models.Game{}, fmt.Errorf("finalize game: %w", err)
	}

	if game.RegularSeason() && homeScore != awayScore {
		if err := applyResultToTeam(ctx, tx, game.HomeTeamID, homeScore, awayScore); err != nil {
			return models.Game{}, err
		}
		if err := applyResultToTeam(ctx, tx, game.AwayTeamID, awayScore, homeScore); err != nil {
			return models.Game{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Game{}, fmt.Errorf("commit record result: %w", err)
	}

	game.HomeScore = homeScore
	game.AwayScore = awayScore
	game.Status = models.GameStatusFinished
	return game, nil
}

func applyResultToTeam(ctx context.Context, tx *sql.Tx, teamID string, ownScore, opponentScore int) error {
	if teamID == "" {
		return nil
	}
	wins, losses, leaguePoints := 0, 1, 1
	if ownScore > opponentScore {
		wins, losses, leaguePoints = 1, 0, 2
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE teams SET
			wins = wins + ?,
			losses = losses + ?,
			league_points = league_points + ?,
			points_for = points_for + ?,
			points_against = points_against + ?
		WHERE id = ?`,
		wins, losses, leaguePoints, ownScore, opponentScore, teamID,
	); err != nil {
		return fmt.Errorf("update team totals: %w", err)
	}
	return nil
}

// UpsertStatLine merges a player's counters for one game: at most one row per
// (game, player), later writes accumulate.
func (s *Store) UpsertStatLine(ctx context.Context, line models.StatLine) (models.StatLine, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stat_lines (game_id, player_id, player_name, team_name,
			free_throws, two_pointers, three_pointers, rebounds, steals, blocks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			player_name = CASE WHEN excluded.player_name != '' THEN excluded.player_name ELSE player_name END,
			team_name = CASE WHEN excluded.team_name != '' THEN excluded.team_name ELSE team_name END,
			free_throws = free_throws + excluded.free_throws,
			two_pointers = two_pointers + excluded.two_pointers,
			three_pointers = three_pointers + excluded.three_pointers,
			rebounds = rebounds + excluded.rebounds,
			steals = steals + excluded.steals,
			blocks = blocks + excluded.blocks`,
		line.GameID, line.PlayerID, line.PlayerName, line.TeamName,
		line.FreeThrows, line.TwoPointers, line.ThreePointers, line.Rebounds, line.Steals, line.Blocks,
	)
	if err != nil {
		return models.StatLine{}, fmt.Errorf("upsert stat line: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT game_id, player_id, player_name, team_name,
			free_throws, two_pointers, three_pointers, rebounds, steals, blocks
		FROM stat_lines WHERE game_id = ? AND player_id = ?`,
		line.GameID, line.PlayerID)
	return scanStatLine(row)
}

// ListStatLines returns every stored stat line. The statistics store is not
// partitioned by competition; the leaderboard aggregator scopes lines to a
// category by game id membership.
func (s *Store) ListStatLines(ctx context.Context) ([]models.StatLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, player_id, player_name, team_name,
			free_throws, two_pointers, three_pointers, rebounds, steals, blocks
		FROM stat_lines ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list stat lines: %w", err)
	}
	defer rows.Close()

	lines := make([]models.StatLine, 0)
	for rows.Next() {
		line, err := scanStatLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTeam(row scanner) (models.Team, error) {
	var team models.Team
	err := row.Scan(&team.ID, &team.Category, &team.Name, &team.Group,
		&team.Wins, &team.Losses, &team.LeaguePoints, &team.PointsFor, &team.PointsAgainst)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, err
		}
		return models.Team{}, fmt.Errorf("scan team: %w", err)
	}
	return team, nil
}

func scanGame(row scanner) (models.Game, error) {
	var game models.Game
	err := row.Scan(&game.ID, &game.Category, &game.HomeTeamID, &game.HomeTeamName,
		&game.AwayTeamID, &game.AwayTeamName, &game.HomeScore, &game.AwayScore,
		&game.Status, &game.Phase, &game.Date, &game.Time, &game.Group)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Game{}, err
		}
		return models.Game{}, fmt.Errorf("scan game: %w", err)
	}
	return game, nil
}

func scanStatLine(row scanner) (models.StatLine, error) {
	var line models.StatLine
	err := row.Scan(&line.GameID, &line.PlayerID, &line.PlayerName, &line.TeamName,
		&line.FreeThrows, &line.TwoPointers, &line.ThreePointers, &line.Rebounds, &line.Steals, &line.Blocks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StatLine{}, err
		}
		return models.StatLine{}, fmt.Errorf("scan stat line: %w", err)
	}
	return line, nil
}

// IsSQLiteUniqueViolation reports whether err is a UNIQUE constraint failure.
func IsSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsSQLiteForeignKeyViolation reports whether err is a FOREIGN KEY
// constraint failure.
func IsSQLiteForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
