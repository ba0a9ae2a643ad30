package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/domain/team"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
)

type CreateTeamInput struct {
	Name string
}

// SetTeamMembersInput replaces the whole membership of a team.
type SetTeamMembersInput struct {
	TeamID     int64
	PokemonIDs []int64
}

// TeamView is the public team shape with membership projected to ids.
type TeamView struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Pokemons []int64 `json:"pokemons"`
}

func NewTeamView(t team.Team) TeamView {
	ids := make([]int64, 0, len(t.PokemonIDs))
	ids = append(ids, t.PokemonIDs...)
	return TeamView{
		ID:       t.ID,
		Name:     t.Name,
		Pokemons: ids,
	}
}

func NewTeamViews(items []team.Team) []TeamView {
	out := make([]TeamView, 0, len(items))
	for _, item := range items {
		out = append(out, NewTeamView(item))
	}
	return out
}

type TeamService struct {
	teamRepo    team.Repository
	pokemonRepo pokemon.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewTeamService(teamRepo team.Repository, pokemonRepo pokemon.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:    teamRepo,
		pokemonRepo: pokemonRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	candidate := team.Team{Name: strings.TrimSpace(input.Name)}
	if err := candidate.Validate(); err != nil {
		return team.Team{}, invalidInputf("%v", err)
	}

	created, err := s.teamRepo.Create(ctx, candidate.Name, s.now().UTC())
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func (s *TeamService) GetByID(ctx context.Context, id int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByID")
	defer span.End()

	if id <= 0 {
		return team.Team{}, invalidInputf("team id must be greater than zero")
	}

	item, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, teamNotFound(id)
	}

	return item, nil
}

// SetMembers replaces the membership of a team. It is all-or-nothing: any
// size violation or unknown pokemon id aborts before anything is written.
func (s *TeamService) SetMembers(ctx context.Context, input SetTeamMembersInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SetMembers")
	defer span.End()

	if _, err := s.GetByID(ctx, input.TeamID); err != nil {
		return team.Team{}, err
	}

	if err := team.ValidateMembers(input.PokemonIDs); err != nil {
		return team.Team{}, invalidInputf("%v", err)
	}

	if len(input.PokemonIDs) > 0 {
		found, err := s.pokemonRepo.GetByIDs(ctx, input.PokemonIDs)
		if err != nil {
			return team.Team{}, fmt.Errorf("get pokemons by ids: %w", err)
		}

		foundIDs := make(map[int64]struct{}, len(found))
		for _, p := range found {
			foundIDs[p.ID] = struct{}{}
		}
		if missing := team.MissingIDs(input.PokemonIDs, foundIDs); len(missing) > 0 {
			return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, &team.MissingPokemonError{IDs: missing})
		}
	}

	updated, err := s.teamRepo.ReplaceMembers(ctx, input.TeamID, input.PokemonIDs, s.now().UTC())
	if err != nil {
		var missingErr *team.MissingPokemonError
		switch {
		case errors.Is(err, team.ErrTeamNotFound):
			return team.Team{}, teamNotFound(input.TeamID)
		case errors.As(err, &missingErr):
			return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, missingErr)
		default:
			return team.Team{}, fmt.Errorf("replace team members team=%d: %w", input.TeamID, err)
		}
	}

	s.logger.InfoContext(ctx, "team members replaced",
		"team_id", updated.ID,
		"pokemon_ids", updated.PokemonIDs,
	)
	return updated, nil
}

func teamNotFound(id int64) error {
	return notFoundf("Team with ID %d not found", id)
}
