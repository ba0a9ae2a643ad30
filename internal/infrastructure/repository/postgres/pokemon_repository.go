package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	qb "github.com/riskibarqy/pokedex-api/internal/platform/querybuilder"
)

const (
	pokemonInsertBatchSize = 100

	typeNameMatchExpr = `EXISTS (
SELECT 1 FROM jsonb_array_elements(CASE WHEN jsonb_typeof(types) = 'array' THEN types ELSE '[]'::jsonb END) AS e
WHERE LOWER(COALESCE(e->'type'->>'name', e->>'type')) LIKE ?)`

	upsertPokemonSuffix = `ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    height = EXCLUDED.height,
    weight = EXCLUDED.weight,
    "order" = EXCLUDED."order",
    species = EXCLUDED.species,
    form = EXCLUDED.form,
    sprites = EXCLUDED.sprites,
    types = EXCLUDED.types,
    stats = EXCLUDED.stats,
    abilities = EXCLUDED.abilities,
    moves = EXCLUDED.moves`
)

type PokemonRepository struct {
	db *sqlx.DB
}

func NewPokemonRepository(db *sqlx.DB) *PokemonRepository {
	return &PokemonRepository{db: db}
}

func (r *PokemonRepository) List(ctx context.Context, sort pokemon.SortKey) ([]pokemon.Pokemon, error) {
	query, args, err := qb.Select("*").From("pokemons").
		OrderBy(orderByForSort(sort)...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pokemons query: %w", err)
	}

	return r.selectPokemons(ctx, query, args, "select pokemons")
}

func (r *PokemonRepository) ListPage(ctx context.Context, page pokemon.PageQuery) ([]pokemon.Pokemon, error) {
	query, args, err := pokemonPageQuery(page)
	if err != nil {
		return nil, fmt.Errorf("build select pokemon page query: %w", err)
	}

	return r.selectPokemons(ctx, query, args, "select pokemon page")
}

func pokemonPageQuery(page pokemon.PageQuery) (string, []any, error) {
	return qb.Select("*").From("pokemons").
		OrderBy(orderByForSort(page.Sort)...).
		Limit(page.Limit).
		Offset(page.Offset).
		ToSQL()
}

func (r *PokemonRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("pokemons").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count pokemons query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count pokemons: %w", err)
	}
	return count, nil
}

func (r *PokemonRepository) GetByID(ctx context.Context, id int64) (pokemon.Pokemon, bool, error) {
	query, args, err := qb.Select("*").From("pokemons").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return pokemon.Pokemon{}, false, fmt.Errorf("build select pokemon by id query: %w", err)
	}

	var row pokemonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pokemon.Pokemon{}, false, nil
		}
		return pokemon.Pokemon{}, false, fmt.Errorf("get pokemon by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PokemonRepository) GetByIDs(ctx context.Context, ids []int64) ([]pokemon.Pokemon, error) {
	if len(ids) == 0 {
		return []pokemon.Pokemon{}, nil
	}

	query, args, err := qb.Select("*").From("pokemons").
		Where(qb.Any("id", pq.Array(ids))).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pokemons by ids query: %w", err)
	}

	return r.selectPokemons(ctx, query, args, "select pokemons by ids")
}

func (r *PokemonRepository) Search(ctx context.Context, term string, limit int) ([]pokemon.Pokemon, error) {
	query, args, err := searchPokemonsQuery(term, limit)
	if err != nil {
		return nil, fmt.Errorf("build search pokemons query: %w", err)
	}

	return r.selectPokemons(ctx, query, args, "search pokemons")
}

// searchPokemonsQuery matches term against the name or any type name. An
// empty term selects every row.
func searchPokemonsQuery(term string, limit int) (string, []any, error) {
	builder := qb.Select("*").From("pokemons")
	if term != "" {
		builder = builder.Where(qb.Or(
			qb.ContainsFold("name", term),
			qb.Expr(typeNameMatchExpr, qb.ContainsPattern(strings.ToLower(term))),
		))
	}
	return builder.OrderBy("id ASC").Limit(limit).ToSQL()
}

func (r *PokemonRepository) Upsert(ctx context.Context, item pokemon.Pokemon) error {
	query, args, err := qb.InsertModel("pokemons", newPokemonTableModel(item), upsertPokemonSuffix)
	if err != nil {
		return fmt.Errorf("build upsert pokemon query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert pokemon id=%d: %w", item.ID, err)
	}
	return nil
}

// ReplaceAll truncates the catalog, cascading to team memberships, and
// inserts items in one transaction.
func (r *PokemonRepository) ReplaceAll(ctx context.Context, items []pokemon.Pokemon) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for pokemon replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE pokemons CASCADE`); err != nil {
		return fmt.Errorf("truncate pokemons: %w", err)
	}

	for start := 0; start < len(items); start += pokemonInsertBatchSize {
		end := min(start+pokemonInsertBatchSize, len(items))

		rows := make([]pokemonTableModel, 0, end-start)
		for _, item := range items[start:end] {
			rows = append(rows, newPokemonTableModel(item))
		}
		query, args, err := qb.InsertModels("pokemons", rows, "")
		if err != nil {
			return fmt.Errorf("build insert pokemons query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert pokemons batch %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pokemon replace: %w", err)
	}
	return nil
}

func (r *PokemonRepository) selectPokemons(ctx context.Context, query string, args []any, op string) ([]pokemon.Pokemon, error) {
	var rows []pokemonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]pokemon.Pokemon, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func orderByForSort(sort pokemon.SortKey) []string {
	switch sort {
	case pokemon.SortIDDesc:
		return []string{"id DESC"}
	case pokemon.SortNameAsc:
		return []string{`name COLLATE "C" ASC`, "id ASC"}
	case pokemon.SortNameDesc:
		return []string{`name COLLATE "C" DESC`, "id ASC"}
	default:
		return []string{"id ASC"}
	}
}
