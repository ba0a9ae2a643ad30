package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
)

type stubPokemonSource struct {
	mu      sync.Mutex
	records map[string]pokemon.Pokemon
	failing map[string]error
	calls   []string
}

func (s *stubPokemonSource) FetchPokemon(_ context.Context, ref string) (pokemon.Pokemon, error) {
	s.mu.Lock()
	s.calls = append(s.calls, ref)
	s.mu.Unlock()

	if err, ok := s.failing[ref]; ok {
		return pokemon.Pokemon{}, err
	}
	if item, ok := s.records[ref]; ok {
		return item, nil
	}
	return pokemon.Pokemon{}, fmt.Errorf("%w: pokeapi has no pokemon %q", ErrNotFound, ref)
}

func TestImportService_ImportSeed_ReplacesCatalog(t *testing.T) {
	t.Parallel()

	repo := memory.NewPokemonRepository(memory.SeedPokemons())
	service := NewImportService(repo, nil, logging.NewNop())

	count, err := service.ImportSeed(t.Context(), []pokemon.Pokemon{
		{ID: 133, Name: "eevee"},
		{ID: 134, Name: "vaporeon"},
	})
	if err != nil {
		t.Fatalf("import seed: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected import count: %d", count)
	}

	total, err := repo.Count(t.Context())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected catalog to be replaced, got %d records", total)
	}
}

func TestImportService_ImportSeed_RejectsBadRecords(t *testing.T) {
	t.Parallel()

	seed := memory.SeedPokemons()
	repo := memory.NewPokemonRepository(seed)
	service := NewImportService(repo, nil, logging.NewNop())

	tests := map[string][]pokemon.Pokemon{
		"missing name": {{ID: 1}},
		"zero id":      {{ID: 0, Name: "missingno"}},
		"duplicate id": {{ID: 1, Name: "bulbasaur"}, {ID: 1, Name: "bulbasaur"}},
	}
	for name, items := range tests {
		if _, err := service.ImportSeed(t.Context(), items); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	total, err := repo.Count(t.Context())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != len(seed) {
		t.Fatalf("catalog changed after rejected seed: %d", total)
	}
}

func TestImportService_ImportFromSource(t *testing.T) {
	t.Parallel()

	repo := memory.NewPokemonRepository(nil)
	source := &stubPokemonSource{
		records: map[string]pokemon.Pokemon{
			"pikachu": {ID: 25, Name: "pikachu"},
			"1":       {ID: 1, Name: "bulbasaur"},
		},
		failing: map[string]error{
			"mew": fmt.Errorf("%w: upstream status 503", ErrDependencyUnavailable),
		},
	}
	service := NewImportService(repo, source, logging.NewNop())

	result, err := service.ImportFromSource(t.Context(), ImportFromSourceInput{
		Refs:    []string{" Pikachu ", "1", "missingno", "mew", "pikachu"},
		Workers: 3,
	})
	if err != nil {
		t.Fatalf("import from source: %v", err)
	}
	if result.ImportedCount != 2 || result.FailedCount != 2 {
		t.Fatalf("unexpected counts: imported=%d failed=%d", result.ImportedCount, result.FailedCount)
	}
	if len(source.calls) != 4 {
		t.Fatalf("expected deduplicated refs, got calls %v", source.calls)
	}

	statuses := make(map[string]string, len(result.Refs))
	for _, row := range result.Refs {
		statuses[row.Ref] = row.Status
	}
	want := map[string]string{
		"pikachu":   ImportStatusImported,
		"1":         ImportStatusImported,
		"missingno": ImportStatusNotFound,
		"mew":       ImportStatusFailed,
	}
	for ref, status := range want {
		if statuses[ref] != status {
			t.Fatalf("unexpected status for %s: got=%s want=%s", ref, statuses[ref], status)
		}
	}

	for _, id := range []int64{1, 25} {
		if _, ok, _ := repo.GetByID(t.Context(), id); !ok {
			t.Fatalf("expected pokemon %s to be stored", strconv.FormatInt(id, 10))
		}
	}
}

func TestImportService_ImportFromSource_RequiresRefs(t *testing.T) {
	t.Parallel()

	service := NewImportService(memory.NewPokemonRepository(nil), &stubPokemonSource{}, logging.NewNop())

	_, err := service.ImportFromSource(t.Context(), ImportFromSourceInput{Refs: []string{"  "}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalizeImportWorkerCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		requested int
		tasks     int
		want      int
	}{
		{requested: 0, tasks: 10, want: defaultImportWorkers},
		{requested: 100, tasks: 100, want: maxImportWorkers},
		{requested: 8, tasks: 3, want: 3},
		{requested: -1, tasks: 0, want: defaultImportWorkers},
	}
	for _, tc := range tests {
		if got := normalizeImportWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeImportWorkerCount(%d, %d) = %d, want %d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}
