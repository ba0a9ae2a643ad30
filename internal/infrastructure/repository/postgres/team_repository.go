package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/pokedex-api/internal/domain/team"
	qb "github.com/riskibarqy/pokedex-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	if len(rows) == 0 {
		return []team.Team{}, nil
	}

	teamIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.ID)
	}
	members, err := r.membersByTeam(ctx, r.db, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row, members[row.ID]))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	members, err := r.membersByTeam(ctx, r.db, []int64{id})
	if err != nil {
		return team.Team{}, false, err
	}
	return teamFromRow(row, members[id]), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, name string, now time.Time) (team.Team, error) {
	query, args, err := qb.InsertModel("teams",
		teamTableModel{Name: name, CreatedAt: now, UpdatedAt: now},
		"RETURNING id, name, created_at, updated_at",
	)
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}
	return teamFromRow(row, nil), nil
}

// ReplaceMembers swaps the full membership of a team under a row lock on the
// team. Nothing is written when the team or any pokemon is missing.
func (r *TeamRepository) ReplaceMembers(ctx context.Context, teamID int64, pokemonIDs []int64, now time.Time) (team.Team, error) {
	if err := team.ValidateMembers(pokemonIDs); err != nil {
		return team.Team{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return team.Team{}, fmt.Errorf("begin tx for team members replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build lock team query: %w", err)
	}

	var row teamTableModel
	if err := tx.GetContext(ctx, &row, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("lock team: %w", err)
	}

	if len(pokemonIDs) > 0 {
		existsQuery, existsArgs, err := qb.Select("id").From("pokemons").
			Where(qb.Any("id", pq.Array(pokemonIDs))).
			ToSQL()
		if err != nil {
			return team.Team{}, fmt.Errorf("build select pokemon ids query: %w", err)
		}

		var foundIDs []int64
		if err := tx.SelectContext(ctx, &foundIDs, existsQuery, existsArgs...); err != nil {
			return team.Team{}, fmt.Errorf("select pokemon ids: %w", err)
		}
		found := make(map[int64]struct{}, len(foundIDs))
		for _, id := range foundIDs {
			found[id] = struct{}{}
		}
		if missing := team.MissingIDs(pokemonIDs, found); len(missing) > 0 {
			return team.Team{}, &team.MissingPokemonError{IDs: missing}
		}
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM team_pokemons WHERE team_id = ?`), teamID); err != nil {
		return team.Team{}, fmt.Errorf("delete team members: %w", err)
	}

	if len(pokemonIDs) > 0 {
		members := make([]teamMemberTableModel, 0, len(pokemonIDs))
		for position, pokemonID := range pokemonIDs {
			members = append(members, teamMemberTableModel{TeamID: teamID, PokemonID: pokemonID, Position: position})
		}
		insertQuery, insertArgs, err := qb.InsertModels("team_pokemons", members, "")
		if err != nil {
			return team.Team{}, fmt.Errorf("build insert team members query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return team.Team{}, fmt.Errorf("insert team members: %w", err)
		}
	}

	updateQuery, updateArgs, err := qb.Update("teams").
		Set("updated_at", now).
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build touch team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return team.Team{}, fmt.Errorf("touch team: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return team.Team{}, fmt.Errorf("commit team members replace: %w", err)
	}

	row.UpdatedAt = now
	return teamFromRow(row, pokemonIDs), nil
}

func (r *TeamRepository) membersByTeam(ctx context.Context, q sqlx.QueryerContext, teamIDs []int64) (map[int64][]int64, error) {
	query, args, err := qb.Select("team_id", "pokemon_id", "position").From("team_pokemons").
		Where(qb.Any("team_id", pq.Array(teamIDs))).
		OrderBy("team_id ASC", "position ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make(map[int64][]int64, len(teamIDs))
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], row.PokemonID)
	}
	return out, nil
}

func teamFromRow(row teamTableModel, members []int64) team.Team {
	ids := make([]int64, 0, len(members))
	ids = append(ids, members...)
	return team.Team{
		ID:         row.ID,
		Name:       row.Name,
		PokemonIDs: ids,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
