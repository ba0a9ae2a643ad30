package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
)

type SearchInput struct {
	Query string
	// Limit caps the result size; zero means unbounded.
	Limit int
}

type SearchService struct {
	repo   pokemon.Repository
	logger *logging.Logger
}

func NewSearchService(repo pokemon.Repository, logger *logging.Logger) *SearchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SearchService{
		repo:   repo,
		logger: logger,
	}
}

// Search matches records whose name or any type name contains the query,
// case-insensitively, ordered by id. An empty query matches every record.
func (s *SearchService) Search(ctx context.Context, input SearchInput) ([]pokemon.Pokemon, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.Search")
	defer span.End()

	if input.Limit < 0 {
		return nil, invalidInputf("limit must not be negative")
	}

	term := NormalizeSearchTerm(input.Query)
	items, err := s.repo.Search(ctx, term, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("search pokemons term=%q: %w", term, err)
	}

	s.logger.DebugContext(ctx, "pokemon search completed", "term", term, "limit", input.Limit, "matches", len(items))
	return items, nil
}

func NormalizeSearchTerm(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
