package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
)

type PokemonRepository struct {
	mu    sync.RWMutex
	items map[int64]pokemon.Pokemon
}

func NewPokemonRepository(items []pokemon.Pokemon) *PokemonRepository {
	repo := &PokemonRepository{items: make(map[int64]pokemon.Pokemon, len(items))}
	for _, item := range items {
		repo.items[item.ID] = clonePokemon(item)
	}
	return repo
}

func (r *PokemonRepository) List(_ context.Context, sort pokemon.SortKey) ([]pokemon.Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(sort), nil
}

func (r *PokemonRepository) ListPage(_ context.Context, query pokemon.PageQuery) ([]pokemon.Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedLocked(query.Sort)
	if query.Offset >= len(all) {
		return []pokemon.Pokemon{}, nil
	}

	end := len(all)
	if query.Limit > 0 && query.Limit < end-query.Offset {
		end = query.Offset + query.Limit
	}
	return all[query.Offset:end], nil
}

func (r *PokemonRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

func (r *PokemonRepository) GetByID(_ context.Context, id int64) (pokemon.Pokemon, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return pokemon.Pokemon{}, false, nil
	}
	return clonePokemon(item), true, nil
}

func (r *PokemonRepository) GetByIDs(_ context.Context, ids []int64) ([]pokemon.Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pokemon.Pokemon, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.items[id]; ok {
			out = append(out, clonePokemon(item))
		}
	}
	slices.SortFunc(out, pokemon.SortIDAsc.Compare)
	return out, nil
}

func (r *PokemonRepository) Search(_ context.Context, term string, limit int) ([]pokemon.Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pokemon.Pokemon, 0)
	for _, item := range r.sortedLocked(pokemon.SortIDAsc) {
		if !item.Matches(term) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *PokemonRepository) Upsert(_ context.Context, item pokemon.Pokemon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = clonePokemon(item)
	return nil
}

func (r *PokemonRepository) ReplaceAll(_ context.Context, items []pokemon.Pokemon) error {
	next := make(map[int64]pokemon.Pokemon, len(items))
	for _, item := range items {
		next[item.ID] = clonePokemon(item)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = next
	return nil
}

func (r *PokemonRepository) sortedLocked(sort pokemon.SortKey) []pokemon.Pokemon {
	out := make([]pokemon.Pokemon, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, clonePokemon(item))
	}
	slices.SortFunc(out, sort.Compare)
	return out
}

func clonePokemon(item pokemon.Pokemon) pokemon.Pokemon {
	copied := item
	copied.Types = append(pokemon.Types(nil), item.Types...)
	copied.Stats = append(pokemon.Stats(nil), item.Stats...)
	copied.Abilities = append(pokemon.Abilities(nil), item.Abilities...)
	copied.Moves = append(pokemon.Moves(nil), item.Moves...)
	return copied
}
