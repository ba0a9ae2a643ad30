package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/domain/team"
)

type TeamRepository struct {
	mu       sync.RWMutex
	nextID   int64
	teams    map[int64]team.Team
	pokemons pokemon.Repository
}

// NewTeamRepository keeps teams in memory. Membership ids are checked against
// pokemons on every replace.
func NewTeamRepository(pokemons pokemon.Repository) *TeamRepository {
	return &TeamRepository{
		nextID:   1,
		teams:    make(map[int64]team.Team),
		pokemons: pokemons,
	}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, cloneTeam(item))
	}
	slices.SortFunc(out, func(a, b team.Team) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[id]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(item), true, nil
}

func (r *TeamRepository) Create(_ context.Context, name string, now time.Time) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := team.Team{
		ID:         r.nextID,
		Name:       strings.TrimSpace(name),
		PokemonIDs: []int64{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.teams[item.ID] = item
	r.nextID++

	return cloneTeam(item), nil
}

func (r *TeamRepository) ReplaceMembers(ctx context.Context, teamID int64, pokemonIDs []int64, now time.Time) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, team.ErrTeamNotFound
	}
	if err := team.ValidateMembers(pokemonIDs); err != nil {
		return team.Team{}, err
	}

	if r.pokemons != nil && len(pokemonIDs) > 0 {
		found, err := r.pokemons.GetByIDs(ctx, pokemonIDs)
		if err != nil {
			return team.Team{}, err
		}
		foundIDs := make(map[int64]struct{}, len(found))
		for _, p := range found {
			foundIDs[p.ID] = struct{}{}
		}
		if missing := team.MissingIDs(pokemonIDs, foundIDs); len(missing) > 0 {
			return team.Team{}, &team.MissingPokemonError{IDs: missing}
		}
	}

	item.PokemonIDs = append([]int64{}, pokemonIDs...)
	item.UpdatedAt = now
	r.teams[teamID] = item

	return cloneTeam(item), nil
}

func cloneTeam(item team.Team) team.Team {
	copied := item
	copied.PokemonIDs = append([]int64{}, item.PokemonIDs...)
	return copied
}
