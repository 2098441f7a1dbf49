// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtsidehq/courtside/internal/api"
	"github.com/courtsidehq/courtside/internal/api/games"
	"github.com/courtsidehq/courtside/internal/api/leaders"
	"github.com/courtsidehq/courtside/internal/api/standings"
	"github.com/courtsidehq/courtside/internal/api/teams"
	"github.com/courtsidehq/courtside/internal/config"
	"github.com/courtsidehq/courtside/internal/store"
)

func newServer(cfg *config.Config, dataStore *store.Store) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	teams.InitHandlers(dataStore)
	games.InitHandlers(dataStore)
	standings.InitHandlers(dataStore)
	leaders.InitHandlers(dataStore)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Standings page
	mux.HandleFunc("GET /standings", standings.HandleStandingsPage)

	// Team routes
	mux.HandleFunc("POST /api/v1/teams", teams.HandleTeamCreate)
	mux.HandleFunc("GET /api/v1/categories/{category}/teams", teams.HandleTeamsList)

	// Game routes
	mux.HandleFunc("POST /api/v1/games", games.HandleGameCreate)
	mux.HandleFunc("GET /api/v1/categories/{category}/games", games.HandleGamesList)
	mux.HandleFunc("POST /api/v1/games/{id}/result", games.HandleGameResult)
	mux.HandleFunc("POST /api/v1/games/{id}/stats", games.HandleStatLineUpsert)

	// Classification routes
	mux.HandleFunc("GET /api/v1/categories/{category}/standings", standings.HandleStandings)
	mux.HandleFunc("GET /api/v1/categories/{category}/leaders", leaders.HandleLeaders)
	mux.HandleFunc("GET /api/v1/categories/{category}/leaders/{stat}", leaders.HandleLeadersByStat)
}
