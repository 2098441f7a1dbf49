// internal/api/games/handlers.go
package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsidehq/courtside/internal/api/apiutil"
	"github.com/courtsidehq/courtside/internal/api/teams"
	"github.com/courtsidehq/courtside/internal/models"
	"github.com/courtsidehq/courtside/internal/store"
)

const (
	gameQueryTimeout = 5 * time.Second
	gameIDPathKey    = "id"
)

var dataStore *store.Store

type gameRequest struct {
	Category     string `json:"category"`
	HomeTeamID   string `json:"homeTeamId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamID   string `json:"awayTeamId"`
	AwayTeamName string `json:"awayTeamName"`
	Phase        string `json:"phase"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

type resultRequest struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

type statLineRequest struct {
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

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *store.Store) {
	dataStore = s
}

// POST /api/v1/games
func HandleGameCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req gameRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input, err := parseGameRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	game, err := dataStore.CreateGame(ctx, input)
	if err != nil {
		logger.Error().Err(err).Str("category", input.Category).Msg("Failed to create game")
		http.Error(w, "Failed to create game", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, game); err != nil {
		logger.Error().Err(err).Str("game_id", game.ID).Msg("Failed to write game response")
	}
}

// GET /api/v1/categories/{category}/games
func HandleGamesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	category, err := teams.CategoryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	games, err := dataStore.ListGamesByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to list games")
		http.Error(w, "Failed to list games", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"games": games}); err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to write games response")
	}
}

// POST /api/v1/games/{id}/result
func HandleGameResult(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gameID, err := gameIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	var req resultRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.HomeScore < 0 || req.AwayScore < 0 {
		http.Error(w, "Scores must not be negative", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	game, err := dataStore.RecordResult(ctx, gameID, req.HomeScore, req.AwayScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, store.ErrGameFinished) {
			http.Error(w, "Game already finished", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Str("game_id", gameID).Msg("Failed to record result")
		http.Error(w, "Failed to record result", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, game); err != nil {
		logger.Error().Err(err).Str("game_id", gameID).Msg("Failed to write result response")
	}
}

// POST /api/v1/games/{id}/stats
func HandleStatLineUpsert(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gameID, err := gameIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	var req statLineRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	line, err := parseStatLineRequest(gameID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	if _, err := dataStore.GetGame(ctx, gameID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("game_id", gameID).Msg("Failed to fetch game")
		http.Error(w, "Failed to record stat line", http.StatusInternalServerError)
		return
	}

	merged, err := dataStore.UpsertStatLine(ctx, line)
	if err != nil {
		logger.Error().Err(err).Str("game_id", gameID).Str("player_id", line.PlayerID).Msg("Failed to upsert stat line")
		http.Error(w, "Failed to record stat line", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, merged); err != nil {
		logger.Error().Err(err).Str("game_id", gameID).Msg("Failed to write stat line response")
	}
}

func parseGameRequest(req gameRequest) (models.Game, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return models.Game{}, fmt.Errorf("category is required")
	}
	if strings.TrimSpace(req.HomeTeamID) == "" && strings.TrimSpace(req.HomeTeamName) == "" {
		return models.Game{}, fmt.Errorf("home team is required")
	}
	if strings.TrimSpace(req.AwayTeamID) == "" && strings.TrimSpace(req.AwayTeamName) == "" {
		return models.Game{}, fmt.Errorf("away team is required")
	}

	return models.Game{
		Category:     category,
		HomeTeamID:   strings.TrimSpace(req.HomeTeamID),
		HomeTeamName: strings.TrimSpace(req.HomeTeamName),
		AwayTeamID:   strings.TrimSpace(req.AwayTeamID),
		AwayTeamName: strings.TrimSpace(req.AwayTeamName),
		Status:       models.GameStatusScheduled,
		Phase:        strings.TrimSpace(req.Phase),
		Date:         strings.TrimSpace(req.Date),
		Time:         strings.TrimSpace(req.Time),
	}, nil
}

func parseStatLineRequest(gameID string, req statLineRequest) (models.StatLine, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		return models.StatLine{}, fmt.Errorf("player_id is required")
	}
	if req.FreeThrows < 0 || req.TwoPointers < 0 || req.ThreePointers < 0 ||
		req.Rebounds < 0 || req.Steals < 0 || req.Blocks < 0 {
		return models.StatLine{}, fmt.Errorf("counters must not be negative")
	}

	return models.StatLine{
		GameID:        gameID,
		PlayerID:      playerID,
		PlayerName:    strings.TrimSpace(req.PlayerName),
		TeamName:      strings.TrimSpace(req.TeamName),
		FreeThrows:    req.FreeThrows,
		TwoPointers:   req.TwoPointers,
		ThreePointers: req.ThreePointers,
		Rebounds:      req.Rebounds,
		Steals:        req.Steals,
		Blocks:        req.Blocks,
	}, nil
}

func gameIDFromRequest(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.PathValue(gameIDPathKey))
	if raw == "" {
		return "", fmt.Errorf("invalid game ID")
	}
	return raw, nil
}
