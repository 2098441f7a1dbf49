// internal/api/teams/handlers.go
package teams

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsidehq/courtside/internal/api/apiutil"
	"github.com/courtsidehq/courtside/internal/models"
	"github.com/courtsidehq/courtside/internal/store"
)

const (
	teamQueryTimeout = 5 * time.Second
	categoryPathKey  = "category"
)

var dataStore *store.Store

type teamRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Group    string `json:"group"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *store.Store) {
	dataStore = s
}

// POST /api/v1/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input, err := parseTeamRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	team, err := dataStore.CreateTeam(ctx, input)
	if err != nil {
		logger.Error().Err(err).Str("category", input.Category).Msg("Failed to create team")
		http.Error(w, "Failed to create team", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, team); err != nil {
		logger.Error().Err(err).Str("team_id", team.ID).Msg("Failed to write team response")
	}
}

// GET /api/v1/categories/{category}/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	category, err := CategoryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	teams, err := dataStore.ListTeamsByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to list teams")
		http.Error(w, "Failed to list teams", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams}); err != nil {
		logger.Error().Err(err).Str("category", category).Msg("Failed to write teams response")
	}
}

// CategoryFromRequest extracts the competition category path value.
func CategoryFromRequest(r *http.Request) (string, error) {
	category := strings.TrimSpace(r.PathValue(categoryPathKey))
	if category == "" {
		return "", fmt.Errorf("invalid category")
	}
	return category, nil
}

func parseTeamRequest(req teamRequest) (models.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Team{}, fmt.Errorf("name is required")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return models.Team{}, fmt.Errorf("category is required")
	}

	return models.Team{
		Category: category,
		Name:     name,
		Group:    models.NormalizeGroup(req.Group),
	}, nil
}
