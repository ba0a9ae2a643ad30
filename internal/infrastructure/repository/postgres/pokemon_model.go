package postgres

import (
	"database/sql/driver"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
)

// jsonColumn maps a JSONB column onto T. Decoding goes through T's own
// unmarshaller so legacy nested shapes read back canonical.
type jsonColumn[T any] struct {
	V T
}

func (c *jsonColumn[T]) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		var zero T
		c.V = zero
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported json column source %T", src)
	}

	var out T
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	c.V = out
	return nil
}

func (c jsonColumn[T]) Value() (driver.Value, error) {
	raw, err := sonic.Marshal(c.V)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return string(raw), nil
}

type pokemonTableModel struct {
	ID        int64                         `db:"id"`
	Name      string                        `db:"name"`
	Height    int                           `db:"height"`
	Weight    int                           `db:"weight"`
	Order     int                           `db:"order"`
	Species   jsonColumn[pokemon.Resource]  `db:"species"`
	Form      jsonColumn[pokemon.Resource]  `db:"form"`
	Sprites   jsonColumn[pokemon.Sprites]   `db:"sprites"`
	Types     jsonColumn[pokemon.Types]     `db:"types"`
	Stats     jsonColumn[pokemon.Stats]     `db:"stats"`
	Abilities jsonColumn[pokemon.Abilities] `db:"abilities"`
	Moves     jsonColumn[pokemon.Moves]     `db:"moves"`
}

func newPokemonTableModel(p pokemon.Pokemon) pokemonTableModel {
	return pokemonTableModel{
		ID:        p.ID,
		Name:      p.Name,
		Height:    p.Height,
		Weight:    p.Weight,
		Order:     p.Order,
		Species:   jsonColumn[pokemon.Resource]{V: p.Species},
		Form:      jsonColumn[pokemon.Resource]{V: p.Form},
		Sprites:   jsonColumn[pokemon.Sprites]{V: p.Sprites},
		Types:     jsonColumn[pokemon.Types]{V: nonNil(p.Types)},
		Stats:     jsonColumn[pokemon.Stats]{V: nonNil(p.Stats)},
		Abilities: jsonColumn[pokemon.Abilities]{V: nonNil(p.Abilities)},
		Moves:     jsonColumn[pokemon.Moves]{V: nonNil(p.Moves)},
	}
}

func (m pokemonTableModel) toDomain() pokemon.Pokemon {
	return pokemon.Pokemon{
		ID:        m.ID,
		Name:      m.Name,
		Height:    m.Height,
		Weight:    m.Weight,
		Order:     m.Order,
		Species:   m.Species.V,
		Form:      m.Form.V,
		Sprites:   m.Sprites.V,
		Types:     nonNil(m.Types.V),
		Stats:     nonNil(m.Stats.V),
		Abilities: nonNil(m.Abilities.V),
		Moves:     nonNil(m.Moves.V),
	}
}

func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
