package teams

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/courtsidehq/courtside/internal/models"
	"github.com/courtsidehq/courtside/internal/testutil"
)

func TestHandleTeamCreate(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	body := `{"category":"u18","name":"Lions","group":"unique"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleTeamCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var team models.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &team); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if team.ID == "" {
		t.Fatal("expected generated team id")
	}
	if team.Group != "A" {
		t.Fatalf("expected unique group folded into A, got %q", team.Group)
	}
}

func TestHandleTeamCreateMissingName(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", strings.NewReader(`{"category":"u18"}`))
	rec := httptest.NewRecorder()

	HandleTeamCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTeamCreateUnknownField(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	body := `{"category":"u18","name":"Lions","mascot":"Leo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleTeamCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTeamsList(t *testing.T) {
	InitHandlers(testutil.NewTestStore(t))

	for _, body := range []string{
		`{"category":"u18","name":"Lions","group":"A"}`,
		`{"category":"u18","name":"Tigers","group":"B"}`,
		`{"category":"senior","name":"Bears","group":"A"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleTeamCreate(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed team: expected 201, got %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/u18/teams", nil)
	req.SetPathValue("category", "u18")
	rec := httptest.NewRecorder()

	HandleTeamsList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Teams []models.Team `json:"teams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Teams) != 2 {
		t.Fatalf("expected 2 teams in u18, got %d", len(payload.Teams))
	}
}
