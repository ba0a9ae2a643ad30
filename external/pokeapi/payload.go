package pokeapi

import (
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
)

// pokemonPayload is the PokeAPI /pokemon/{id} shape. Seed files use it too,
// optionally with a pre-resolved form.
type pokemonPayload struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Height    int                `json:"height"`
	Weight    int                `json:"weight"`
	Order     int                `json:"order"`
	Species   pokemon.Resource   `json:"species"`
	Form      *pokemon.Resource  `json:"form"`
	Forms     []pokemon.Resource `json:"forms"`
	Sprites   pokemon.Sprites    `json:"sprites"`
	Types     pokemon.Types      `json:"types"`
	Stats     pokemon.Stats      `json:"stats"`
	Abilities pokemon.Abilities  `json:"abilities"`
	Moves     pokemon.Moves      `json:"moves"`
}

func (p pokemonPayload) toDomain() pokemon.Pokemon {
	form := pokemon.Resource{Name: p.Name}
	switch {
	case p.Form != nil:
		form = *p.Form
	case len(p.Forms) > 0:
		form = p.Forms[0]
	}

	return pokemon.Pokemon{
		ID:        p.ID,
		Name:      p.Name,
		Height:    p.Height,
		Weight:    p.Weight,
		Order:     p.Order,
		Species:   p.Species,
		Form:      form,
		Sprites:   p.Sprites,
		Types:     orEmpty(p.Types),
		Stats:     orEmpty(p.Stats),
		Abilities: orEmpty(p.Abilities),
		Moves:     orEmpty(p.Moves),
	}
}

// ParsePokemon decodes one PokeAPI pokemon document into canonical form.
func ParsePokemon(raw []byte) (pokemon.Pokemon, error) {
	var payload pokemonPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return pokemon.Pokemon{}, fmt.Errorf("decode pokemon payload: %w", err)
	}

	item := payload.toDomain()
	if err := item.Validate(); err != nil {
		return pokemon.Pokemon{}, err
	}
	return item, nil
}

// DecodeSeed stream-decodes a JSON array of pokemon documents.
func DecodeSeed(r io.Reader) ([]pokemon.Pokemon, error) {
	iter := jsoniter.Parse(jsoniter.ConfigCompatibleWithStandardLibrary, r, 64*1024)

	out := make([]pokemon.Pokemon, 0, 256)
	var decodeErr error
	iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		raw := it.SkipAndReturnBytes()
		if it.Error != nil {
			return false
		}

		item, err := ParsePokemon(raw)
		if err != nil {
			decodeErr = fmt.Errorf("seed record %d: %w", len(out), err)
			return false
		}
		out = append(out, item)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("read seed array: %w", iter.Error)
	}

	return out, nil
}

func orEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
