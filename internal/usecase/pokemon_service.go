package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
)

const (
	DefaultPageLimit  = 20
	DefaultPageOffset = 0
)

// ListPokemonPageInput is the incoming query for the paginated catalog.
type ListPokemonPageInput struct {
	Limit  int
	Offset int
	// Sort is the raw key as supplied by the caller; empty means none.
	Sort string
}

// PokemonPage is one window of the ordered catalog plus the full record count.
type PokemonPage struct {
	Items  []pokemon.Pokemon
	Total  int
	Limit  int
	Offset int
	Sort   string
}

type PokemonService struct {
	repo   pokemon.Repository
	logger *logging.Logger
}

func NewPokemonService(repo pokemon.Repository, logger *logging.Logger) *PokemonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PokemonService{
		repo:   repo,
		logger: logger,
	}
}

func (s *PokemonService) List(ctx context.Context, sort string) ([]pokemon.Pokemon, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PokemonService.List")
	defer span.End()

	items, err := s.repo.List(ctx, pokemon.ParseSortKey(sort))
	if err != nil {
		return nil, fmt.Errorf("list pokemons: %w", err)
	}

	return items, nil
}

func (s *PokemonService) GetByID(ctx context.Context, id int64) (pokemon.Pokemon, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PokemonService.GetByID")
	defer span.End()

	if id <= 0 {
		return pokemon.Pokemon{}, invalidInputf("pokemon id must be greater than zero")
	}

	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return pokemon.Pokemon{}, fmt.Errorf("get pokemon by id: %w", err)
	}
	if !exists {
		return pokemon.Pokemon{}, notFoundf("Pokemon with ID %d not found", id)
	}

	return item, nil
}

func (s *PokemonService) ListPaginated(ctx context.Context, input ListPokemonPageInput) (PokemonPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PokemonService.ListPaginated")
	defer span.End()

	if input.Limit < 1 {
		return PokemonPage{}, invalidInputf("limit must be at least 1")
	}
	if input.Offset < 0 {
		return PokemonPage{}, invalidInputf("offset must not be negative")
	}
	input.Sort = strings.TrimSpace(input.Sort)

	total, err := s.repo.Count(ctx)
	if err != nil {
		return PokemonPage{}, fmt.Errorf("count pokemons: %w", err)
	}

	page := PokemonPage{
		Items:  []pokemon.Pokemon{},
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
		Sort:   input.Sort,
	}
	if input.Offset >= total {
		return page, nil
	}

	items, err := s.repo.ListPage(ctx, pokemon.PageQuery{
		Limit:  input.Limit,
		Offset: input.Offset,
		Sort:   pokemon.ParseSortKey(input.Sort),
	})
	if err != nil {
		return PokemonPage{}, fmt.Errorf("list pokemon page: %w", err)
	}
	page.Items = items

	s.logger.DebugContext(ctx, "pokemon page loaded",
		"limit", input.Limit,
		"offset", input.Offset,
		"items", len(items),
		"total", total,
	)

	return page, nil
}
