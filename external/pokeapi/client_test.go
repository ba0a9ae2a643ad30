package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
	"github.com/riskibarqy/pokedex-api/internal/platform/resilience"
	"github.com/riskibarqy/pokedex-api/internal/usecase"
)

const pikachuPayload = `{
  "id": 25,
  "name": "pikachu",
  "height": 4,
  "weight": 60,
  "order": 35,
  "species": {"name": "pikachu", "url": "https://pokeapi.co/api/v2/pokemon-species/25/"},
  "forms": [{"name": "pikachu", "url": "https://pokeapi.co/api/v2/pokemon-form/25/"}],
  "sprites": {"front_default": "https://img/25.png", "back_female": null, "other": {"home": {}}},
  "types": [{"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}],
  "stats": [{"base_stat": 35, "effort": 0, "stat": {"name": "hp", "url": "https://pokeapi.co/api/v2/stat/1/"}}],
  "abilities": [{"ability": {"name": "static", "url": "https://pokeapi.co/api/v2/ability/9/"}, "is_hidden": false, "slot": 1}],
  "moves": [{"move": {"name": "thunder-shock", "url": "u"}, "version_group_details": [{"level_learned_at": 1, "move_learn_method": {"name": "level-up", "url": "u"}, "version_group": {"name": "red-blue", "url": "u"}}]}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     retries,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	})
	client.retryBackoff = time.Millisecond
	return client
}

func TestClient_FetchPokemon_NormalizesPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/pikachu" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(pikachuPayload))
	}, 0)

	item, err := client.FetchPokemon(context.Background(), "  PIKACHU ")
	if err != nil {
		t.Fatalf("fetch pokemon: %v", err)
	}
	if item.ID != 25 || item.Name != "pikachu" {
		t.Fatalf("unexpected pokemon: %+v", item)
	}
	if item.Form.URL != "https://pokeapi.co/api/v2/pokemon-form/25/" {
		t.Fatalf("expected first form to be used, got %+v", item.Form)
	}
	if item.Types[0].Type != "electric" || item.Stats[0].Stat != "hp" || item.Abilities[0].Ability != "static" {
		t.Fatalf("expected bare names, got %+v", item)
	}
	if item.Moves[0].VersionGroupDetails[0].VersionGroup != "red-blue" {
		t.Fatalf("unexpected move details: %+v", item.Moves[0])
	}
	if item.Sprites.FrontDefault != "https://img/25.png" || item.Sprites.BackFemale != "" {
		t.Fatalf("unexpected sprites: %+v", item.Sprites)
	}
}

func TestClient_FetchPokemon_NotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "Not Found", http.StatusNotFound)
	}, 2)

	_, err := client.FetchPokemon(context.Background(), "missingno")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected no retries on 404, got %d calls", got)
	}
}

func TestClient_FetchPokemon_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(pikachuPayload))
	}, 2)

	item, err := client.FetchPokemon(context.Background(), "25")
	if err != nil {
		t.Fatalf("fetch pokemon: %v", err)
	}
	if item.ID != 25 || calls.Load() != 2 {
		t.Fatalf("expected success on second attempt, id=%d calls=%d", item.ID, calls.Load())
	}
}

func TestClient_FetchPokemon_OpensCircuitAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, 0)

	for i := 0; i < 2; i++ {
		if _, err := client.FetchPokemon(context.Background(), "1"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}

	_, err := client.FetchPokemon(context.Background(), "1")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected open circuit to skip the request, got %d calls", got)
	}
}
