package standings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/courtsidehq/courtside/internal/models"
	standingsengine "github.com/courtsidehq/courtside/internal/standings"
	"github.com/courtsidehq/courtside/internal/testutil"
)

func seedFinishedGame(t *testing.T, category string) (models.Team, models.Team) {
	t.Helper()
	ctx := context.Background()

	home, err := dataStore.CreateTeam(ctx, models.Team{Category: category, Name: "Lions", Group: "A"})
	if err != nil {
		t.Fatalf("create home team: %v", err)
	}
	away, err := dataStore.CreateTeam(ctx, models.Team{Category: category, Name: "Tigers", Group: "A"})
	if err != nil {
		t.Fatalf("create away team: %v", err)
	}

	game, err := dataStore.CreateGame(ctx, models.Game{
		Category: category, HomeTeamID: home.ID, AwayTeamID: away.ID,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := dataStore.RecordResult(ctx, game.ID, 80, 70); err != nil {
		t.Fatalf("record result: %v", err)
	}
	return home, away
}

func TestHandleStandings(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	home, away := seedFinishedGame(t, "u18")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/u18/standings", nil)
	req.SetPathValue("category", "u18")
	rec := httptest.NewRecorder()

	HandleStandings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Category  string                           `json:"category"`
		Standings map[string][]standingsengine.Row `json:"standings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Category != "u18" {
		t.Fatalf("unexpected category %q", payload.Category)
	}

	rows := payload.Standings["A"]
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows in group A, got %d", len(rows))
	}
	if rows[0].TeamID != home.ID || rows[0].LeaguePoints != 2 || rows[0].Position != 1 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].TeamID != away.ID || rows[1].LeaguePoints != 1 || rows[1].Position != 2 {
		t.Fatalf("unexpected runner-up: %+v", rows[1])
	}
}

func TestHandleStandingsEmptyCategory(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/empty/standings", nil)
	req.SetPathValue("category", "empty")
	rec := httptest.NewRecorder()

	HandleStandings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Standings map[string][]standingsengine.Row `json:"standings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Standings) != 0 {
		t.Fatalf("expected empty standings, got %+v", payload.Standings)
	}
}

func TestHandleStandingsMissingCategory(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories//standings", nil)
	rec := httptest.NewRecorder()

	HandleStandings(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleStandingsPage(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))
	seedFinishedGame(t, "u18")

	req := httptest.NewRequest(http.MethodGet, "/standings?category=u18", nil)
	rec := httptest.NewRecorder()

	HandleStandingsPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	for _, want := range []string{"Group A", "Lions", "Tigers"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q, got: %s", want, body)
		}
	}
}

func TestHandleStandingsPageRequiresCategory(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/standings", nil)
	rec := httptest.NewRecorder()

	HandleStandingsPage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
