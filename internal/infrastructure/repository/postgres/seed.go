package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	qb "github.com/riskibarqy/pokedex-api/internal/platform/querybuilder"
)

// BootstrapSeed loads items when the pokemons table is empty. It reports
// whether anything was written.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, items []pokemon.Pokemon) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Concurrent replicas starting together serialize here.
	if _, err := tx.ExecContext(ctx, `LOCK TABLE pokemons IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("lock pokemons for bootstrap seed: %w", err)
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(1) FROM pokemons`); err != nil {
		return false, fmt.Errorf("count pokemons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for start := 0; start < len(items); start += pokemonInsertBatchSize {
		end := min(start+pokemonInsertBatchSize, len(items))

		rows := make([]pokemonTableModel, 0, end-start)
		for _, item := range items[start:end] {
			rows = append(rows, newPokemonTableModel(item))
		}
		query, args, err := qb.InsertModels("pokemons", rows, "ON CONFLICT (id) DO NOTHING")
		if err != nil {
			return false, fmt.Errorf("build seed insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("seed pokemons %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed tx: %w", err)
	}
	return true, nil
}
