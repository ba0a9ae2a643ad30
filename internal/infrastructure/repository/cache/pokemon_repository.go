package cache

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	basecache "github.com/riskibarqy/pokedex-api/internal/platform/cache"
)

const pokemonKeyPrefix = "pokemon:"

// errPokemonAbsent keeps lookup misses out of the store, so ids imported by
// another process become visible on the next read.
var errPokemonAbsent = errors.New("pokemon absent")

// PokemonRepository serves catalog reads from the store. Writes go to next and
// drop every cached catalog key.
type PokemonRepository struct {
	next  pokemon.Repository
	cache *basecache.Store
}

func NewPokemonRepository(next pokemon.Repository, cache *basecache.Store) *PokemonRepository {
	return &PokemonRepository{next: next, cache: cache}
}

func (r *PokemonRepository) List(ctx context.Context, sort pokemon.SortKey) ([]pokemon.Pokemon, error) {
	key := pokemonKeyPrefix + "list:" + string(sort)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, sort)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pokemon.Pokemon)
	return slices.Clone(items), nil
}

func (r *PokemonRepository) ListPage(ctx context.Context, query pokemon.PageQuery) ([]pokemon.Pokemon, error) {
	key := pokemonKeyPrefix + "page:" + string(query.Sort) + ":" + strconv.Itoa(query.Limit) + ":" + strconv.Itoa(query.Offset)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListPage(ctx, query)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pokemon.Pokemon)
	return slices.Clone(items), nil
}

func (r *PokemonRepository) Count(ctx context.Context) (int, error) {
	v, err := r.cache.GetOrLoad(ctx, pokemonKeyPrefix+"count", func(ctx context.Context) (any, error) {
		return r.next.Count(ctx)
	})
	if err != nil {
		return 0, err
	}

	count, _ := v.(int)
	return count, nil
}

func (r *PokemonRepository) GetByID(ctx context.Context, id int64) (pokemon.Pokemon, bool, error) {
	key := pokemonKeyPrefix + "id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errPokemonAbsent
		}
		return item, nil
	})
	if errors.Is(err, errPokemonAbsent) {
		return pokemon.Pokemon{}, false, nil
	}
	if err != nil {
		return pokemon.Pokemon{}, false, err
	}

	item, _ := v.(pokemon.Pokemon)
	return item, true, nil
}

func (r *PokemonRepository) GetByIDs(ctx context.Context, ids []int64) ([]pokemon.Pokemon, error) {
	if len(ids) == 0 {
		return []pokemon.Pokemon{}, nil
	}

	normalized := slices.Clone(ids)
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)

	parts := make([]string, 0, len(normalized))
	for _, id := range normalized {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	key := pokemonKeyPrefix + "ids:" + strings.Join(parts, ",")

	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, normalized)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pokemon.Pokemon)
	return slices.Clone(items), nil
}

func (r *PokemonRepository) Search(ctx context.Context, term string, limit int) ([]pokemon.Pokemon, error) {
	key := pokemonKeyPrefix + "search:" + strconv.Itoa(limit) + ":" + term
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.Search(ctx, term, limit)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pokemon.Pokemon)
	return slices.Clone(items), nil
}

func (r *PokemonRepository) Upsert(ctx context.Context, item pokemon.Pokemon) error {
	defer r.cache.DeletePrefix(ctx, pokemonKeyPrefix)
	return r.next.Upsert(ctx, item)
}

func (r *PokemonRepository) ReplaceAll(ctx context.Context, items []pokemon.Pokemon) error {
	defer r.cache.DeletePrefix(ctx, pokemonKeyPrefix)
	return r.next.ReplaceAll(ctx, items)
}
