// internal/api/standings/handlers.go
package standings

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsidehq/courtside/internal/api/apiutil"
	"github.com/courtsidehq/courtside/internal/api/teams"
	standingsengine "github.com/courtsidehq/courtside/internal/standings"
	"github.com/courtsidehq/courtside/internal/store"
)

const (
	standingsQueryTimeout = 5 * time.Second
	categoryQueryKey      = "category"
)

var dataStore *store.Store

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *store.Store) {
	dataStore = s
}

// GET /api/v1/categories/{category}/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
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

	tables, ok := computeTables(w, r, category)
	if !ok {
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"category":  category,
		"standings": tables,
	}); err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to write standings response")
	}
}

// GET /standings?category={category}
func HandleStandingsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get(categoryQueryKey))
	if category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}

	tables, ok := computeTables(w, r, category)
	if !ok {
		return
	}

	page := standingsPageComponent(category, tables)
	if !apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render standings page", "Failed to render page") {
		return
	}
}

// computeTables fetches fresh team and game snapshots and recomputes the
// classification. Writes an error response and returns false on failure.
func computeTables(w http.ResponseWriter, r *http.Request, category string) (map[string][]standingsengine.Row, bool) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), standingsQueryTimeout)
	defer cancel()

	teamList, err := dataStore.ListTeamsByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to list teams")
		http.Error(w, "Failed to load standings", http.StatusInternalServerError)
		return nil, false
	}

	gameList, err := dataStore.ListGamesByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to list games")
		http.Error(w, "Failed to load standings", http.StatusInternalServerError)
		return nil, false
	}

	tables, err := standingsengine.Compute(teamList, gameList)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to compute standings")
		http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
		return nil, false
	}
	return tables, true
}
