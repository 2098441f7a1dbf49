// internal/api/leaders/handlers.go
package leaders

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsidehq/courtside/internal/api/apiutil"
	"github.com/courtsidehq/courtside/internal/api/teams"
	leadersengine "github.com/courtsidehq/courtside/internal/leaders"
	"github.com/courtsidehq/courtside/internal/store"
)

const (
	leadersQueryTimeout = 5 * time.Second
	statPathKey         = "stat"
)

var dataStore *store.Store

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *store.Store) {
	dataStore = s
}

// GET /api/v1/categories/{category}/leaders
func HandleLeaders(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	category, boards, ok := computeBoards(w, r)
	if !ok {
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"leaders":  boards,
	}); err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to write leaders response")
	}
}

// GET /api/v1/categories/{category}/leaders/{stat}
func HandleLeadersByStat(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	stat, ok := statFromRequest(r)
	if !ok {
		http.Error(w, "Unknown statistical category", http.StatusNotFound)
		return
	}

	category, boards, ok := computeBoards(w, r)
	if !ok {
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"stat":     stat,
		"leaders":  boards[stat],
	}); err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to write leaders response")
	}
}

func computeBoards(w http.ResponseWriter, r *http.Request) (string, map[leadersengine.Stat][]leadersengine.Entry, bool) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return "", nil, false
	}

	category, err := teams.CategoryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), leadersQueryTimeout)
	defer cancel()

	teamList, err := dataStore.ListTeamsByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to list teams")
		http.Error(w, "Failed to load leaders", http.StatusInternalServerError)
		return "", nil, false
	}

	gameList, err := dataStore.ListGamesByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to list games")
		http.Error(w, "Failed to load leaders", http.StatusInternalServerError)
		return "", nil, false
	}

	// Stat lines are stored globally; the aggregator scopes them to this
	// category by game id.
	lines, err := dataStore.ListStatLines(ctx)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to list stat lines")
		http.Error(w, "Failed to load leaders", http.StatusInternalServerError)
		return "", nil, false
	}

	boards, err := leadersengine.Compute(teamList, gameList, lines)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to compute leaders")
		http.Error(w, "Failed to compute leaders", http.StatusInternalServerError)
		return "", nil, false
	}
	return category, boards, true
}

func statFromRequest(r *http.Request) (leadersengine.Stat, bool) {
	raw := leadersengine.Stat(strings.ToLower(strings.TrimSpace(r.PathValue(statPathKey))))
	for _, stat := range leadersengine.Stats() {
		if raw == stat {
			return stat, true
		}
	}
	return "", false
}
