package games

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/courtsidehq/courtside/internal/models"
	"github.com/courtsidehq/courtside/internal/testutil"
)

func newGameRequest(t *testing.T, category string) models.Game {
	t.Helper()
	game, err := dataStore.CreateGame(context.Background(), models.Game{
		Category:     category,
		HomeTeamName: "Lions",
		AwayTeamName: "Tigers",
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}

func TestHandleGameCreate(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	body := `{"category":"u18","homeTeamName":"Lions","awayTeamName":"Tigers","date":"2026-01-10","time":"18:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleGameCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var game models.Game
	if err := json.Unmarshal(rec.Body.Bytes(), &game); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if game.ID == "" || game.Status != models.GameStatusScheduled {
		t.Fatalf("unexpected game: %+v", game)
	}
}

func TestHandleGameCreateMissingCategory(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	body := `{"homeTeamName":"Lions","awayTeamName":"Tigers"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleGameCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleGameResult(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	game := newGameRequest(t, "u18")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/"+game.ID+"/result",
		strings.NewReader(`{"homeScore":80,"awayScore":70}`))
	req.SetPathValue("id", game.ID)
	rec := httptest.NewRecorder()

	HandleGameResult(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var finished models.Game
	if err := json.Unmarshal(rec.Body.Bytes(), &finished); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !finished.Finished() || finished.HomeScore != 80 || finished.AwayScore != 70 {
		t.Fatalf("unexpected game: %+v", finished)
	}
}

func TestHandleGameResultNotFound(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/missing/result",
		strings.NewReader(`{"homeScore":80,"awayScore":70}`))
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	HandleGameResult(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleGameResultConflict(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	game := newGameRequest(t, "u18")

	if _, err := dataStore.RecordResult(context.Background(), game.ID, 80, 70); err != nil {
		t.Fatalf("record result: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/"+game.ID+"/result",
		strings.NewReader(`{"homeScore":90,"awayScore":60}`))
	req.SetPathValue("id", game.ID)
	rec := httptest.NewRecorder()

	HandleGameResult(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHandleGameResultNegativeScore(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	game := newGameRequest(t, "u18")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/"+game.ID+"/result",
		strings.NewReader(`{"homeScore":-1,"awayScore":70}`))
	req.SetPathValue("id", game.ID)
	rec := httptest.NewRecorder()

	HandleGameResult(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleStatLineUpsert(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	game := newGameRequest(t, "u18")

	body := `{"playerId":"p1","playerName":"Ana","teamName":"Lions","freeThrows":2,"twoPointers":3,"threePointers":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/"+game.ID+"/stats", strings.NewReader(body))
	req.SetPathValue("id", game.ID)
	rec := httptest.NewRecorder()

	HandleStatLineUpsert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var line models.StatLine
	if err := json.Unmarshal(rec.Body.Bytes(), &line); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if line.Points() != 11 {
		t.Fatalf("expected 11 derived points, got %d", line.Points())
	}
}

func TestHandleStatLineUpsertUnknownGame(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	body := `{"playerId":"p1","freeThrows":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/missing/stats", strings.NewReader(body))
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	HandleStatLineUpsert(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleStatLineUpsertNegativeCounter(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	game := newGameRequest(t, "u18")

	body := `{"playerId":"p1","rebounds":-2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/"+game.ID+"/stats", strings.NewReader(body))
	req.SetPathValue("id", game.ID)
	rec := httptest.NewRecorder()

	HandleStatLineUpsert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleGamesList(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	newGameRequest(t, "u18")
	newGameRequest(t, "senior")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/u18/games", nil)
	req.SetPathValue("category", "u18")
	rec := httptest.NewRecorder()

	HandleGamesList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Games []models.Game `json:"games"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Games) != 1 || payload.Games[0].Category != "u18" {
		t.Fatalf("unexpected games: %+v", payload.Games)
	}
}
