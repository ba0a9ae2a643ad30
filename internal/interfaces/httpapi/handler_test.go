package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pokedex-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
	"github.com/riskibarqy/pokedex-api/internal/usecase"
)

const testAuthToken = "secret-token"

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	pokemons := memory.NewPokemonRepository(memory.SeedPokemons())
	teams := memory.NewTeamRepository(pokemons)
	handler := NewHandler(
		usecase.NewPokemonService(pokemons, logger),
		usecase.NewSearchService(pokemons, logger),
		usecase.NewTeamService(teams, pokemons, logger),
		"http://localhost:3000/",
		logger,
	)

	return NewRouter(handler, logger, RouterConfig{
		SwaggerEnabled: true,
		AuthToken:      testAuthToken,
	})
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testAuthToken)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func summaryIDs(items []usecase.PokemonSummaryView) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestListPokemons_SortedByName(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/pokemons?sort=name-asc", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[[]usecase.PokemonSummaryView](t, rec)
	if len(body.Data) != 10 {
		t.Fatalf("expected 10 items, got %d", len(body.Data))
	}
	if body.Data[0].Name != "bulbasaur" || body.Data[len(body.Data)-1].Name != "venusaur" {
		t.Fatalf("unexpected name order: first=%s last=%s", body.Data[0].Name, body.Data[len(body.Data)-1].Name)
	}
}

func TestGetPokemon(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{name: "found", target: "/api/v1/pokemons/25", wantStatus: http.StatusOK},
		{name: "missing", target: "/api/v1/pokemons/9999", wantStatus: http.StatusNotFound},
		{name: "non integer", target: "/api/v1/pokemons/pikachu", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tt.target, "", false)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d body=%s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}

	rec := doRequest(t, router, http.MethodGet, "/api/v1/pokemons/25", "", false)
	body := decodeEnvelope[usecase.PokemonDetailView](t, rec)
	if body.Data.Name != "pikachu" || body.Data.Form.Name == "" {
		t.Fatalf("unexpected detail view: %+v", body.Data)
	}
}

func TestListPokemonsPaginated_Metadata(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v2/pokemons?limit=4&offset=4", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[pokemonPageDTO](t, rec)
	if got := summaryIDs(body.Data.Items); len(got) != 4 || got[0] != 5 || got[3] != 25 {
		t.Fatalf("unexpected page ids: %v", got)
	}
	meta := body.Data.Metadata
	if meta.Total != 10 || meta.Pages != 3 || meta.Page != 2 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.Next == nil || *meta.Next != "http://localhost:3000/api/v2/pokemons?limit=4&offset=8" {
		t.Fatalf("unexpected next link: %v", meta.Next)
	}
	if meta.Previous == nil || *meta.Previous != "http://localhost:3000/api/v2/pokemons?limit=4&offset=0" {
		t.Fatalf("unexpected previous link: %v", meta.Previous)
	}
}

func TestListPokemonsPaginated_Defaults(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v2/pokemons", "", false)
	body := decodeEnvelope[pokemonPageDTO](t, rec)
	if len(body.Data.Items) != 10 || body.Data.Metadata.Next != nil || body.Data.Metadata.Previous != nil {
		t.Fatalf("unexpected default page: %+v", body.Data.Metadata)
	}
}

func TestListPokemonsPaginated_RejectsBadParams(t *testing.T) {
	router := newTestRouter(t)

	targets := []string{
		"/api/v2/pokemons?limit=0",
		"/api/v2/pokemons?limit=abc",
		"/api/v2/pokemons?offset=-1",
	}
	for _, target := range targets {
		rec := doRequest(t, router, http.MethodGet, target, "", false)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, rec.Code)
		}
	}
}

func TestSearchPokemons(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search?query=Fire", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[[]usecase.PokemonSummaryView](t, rec)
	got := summaryIDs(body.Data)
	if len(got) != 3 || got[0] != 4 || got[2] != 6 {
		t.Fatalf("unexpected search ids: %v", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/search?query=saur&limit=1", "", false)
	body = decodeEnvelope[[]usecase.PokemonSummaryView](t, rec)
	if got := summaryIDs(body.Data); len(got) != 1 || got[0] != 1 {
		t.Fatalf("unexpected limited search ids: %v", got)
	}

	for _, target := range []string{"/api/v1/search", "/api/v1/search?query=a&limit=0"} {
		rec = doRequest(t, router, http.MethodGet, target, "", false)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, rec.Code)
		}
	}
}

func TestTeamsFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/teams", `{"name":"Kanto Starters"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	created := decodeEnvelope[usecase.TeamView](t, rec)
	if created.Data.ID == 0 || created.Data.Name != "Kanto Starters" || created.Data.Pokemons == nil {
		t.Fatalf("unexpected created team: %+v", created.Data)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/teams/1", `{"pokemons":[7,4,1]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	updated := decodeEnvelope[usecase.TeamView](t, rec)
	if got := updated.Data.Pokemons; len(got) != 3 || got[0] != 7 || got[1] != 4 || got[2] != 1 {
		t.Fatalf("unexpected members: %v", got)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/teams/1", `{"pokemons":[1,2,3,4,5,6,7]}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for oversized team, got %d", rec.Code)
	}
	failed := decodeEnvelope[usecase.TeamView](t, rec)
	if failed.Error == nil || !strings.Contains(failed.Error.Message, "maximum of 6") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/teams/1", `{"pokemons":[1,99999]}`, true)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Pokemon with IDs 99999 not found") {
		t.Fatalf("unexpected missing pokemon response: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/teams/1", "", true)
	current := decodeEnvelope[usecase.TeamView](t, rec)
	if len(current.Data.Pokemons) != 3 {
		t.Fatalf("failed updates must not change membership, got %v", current.Data.Pokemons)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/teams", "", true)
	listed := decodeEnvelope[[]usecase.TeamView](t, rec)
	if len(listed.Data) != 1 {
		t.Fatalf("expected one team, got %d", len(listed.Data))
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/teams/42", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreateTeam_RejectsBadPayload(t *testing.T) {
	router := newTestRouter(t)

	bodies := []string{
		`{"name":""}`,
		`{"name":"x","extra":true}`,
		`not-json`,
		`{"name":"` + strings.Repeat("a", 101) + `"}`,
	}
	for _, body := range bodies {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/teams", body, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected status 400, got %d", body, rec.Code)
		}
	}
}

func TestSetTeamMembers_RequiresPokemonsField(t *testing.T) {
	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/api/v1/teams", `{"name":"a"}`, true)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/teams/1", `{}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/teams/1", `{"pokemons":[]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected empty member list to be accepted, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestTeams_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/teams", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHealthzAndDocs(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", false)
	body := decodeEnvelope[map[string]string](t, rec)
	if body.Data["status"] != "ok" {
		t.Fatalf("unexpected healthz body: %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/openapi.yaml", "", false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "openapi:") {
		t.Fatalf("unexpected openapi response: %d", rec.Code)
	}
}
