package memory

import (
	"fmt"

	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
)

const pokeAPIBaseURL = "https://pokeapi.co/api/v2"

type seedEntry struct {
	id     int64
	name   string
	height int
	weight int
	types  []string
	stats  [6]int
	abils  []string
}

var seedEntries = []seedEntry{
	{1, "bulbasaur", 7, 69, []string{"grass", "poison"}, [6]int{45, 49, 49, 65, 65, 45}, []string{"overgrow", "chlorophyll"}},
	{2, "ivysaur", 10, 130, []string{"grass", "poison"}, [6]int{60, 62, 63, 80, 80, 60}, []string{"overgrow", "chlorophyll"}},
	{3, "venusaur", 20, 1000, []string{"grass", "poison"}, [6]int{80, 82, 83, 100, 100, 80}, []string{"overgrow", "chlorophyll"}},
	{4, "charmander", 6, 85, []string{"fire"}, [6]int{39, 52, 43, 60, 50, 65}, []string{"blaze", "solar-power"}},
	{5, "charmeleon", 11, 190, []string{"fire"}, [6]int{58, 64, 58, 80, 65, 80}, []string{"blaze", "solar-power"}},
	{6, "charizard", 17, 905, []string{"fire", "flying"}, [6]int{78, 84, 78, 109, 85, 100}, []string{"blaze", "solar-power"}},
	{7, "squirtle", 5, 90, []string{"water"}, [6]int{44, 48, 65, 50, 64, 43}, []string{"torrent", "rain-dish"}},
	{25, "pikachu", 4, 60, []string{"electric"}, [6]int{35, 55, 40, 50, 50, 90}, []string{"static", "lightning-rod"}},
	{26, "raichu", 8, 300, []string{"electric"}, [6]int{60, 90, 55, 90, 80, 110}, []string{"static", "lightning-rod"}},
	{150, "mewtwo", 20, 1220, []string{"psychic"}, [6]int{106, 110, 90, 154, 90, 130}, []string{"pressure", "unnerve"}},
}

var statNames = [6]pokemon.Name{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// SeedPokemons returns a small catalog for local runs and tests.
func SeedPokemons() []pokemon.Pokemon {
	out := make([]pokemon.Pokemon, 0, len(seedEntries))
	for _, entry := range seedEntries {
		out = append(out, entry.build())
	}
	return out
}

func (s seedEntry) build() pokemon.Pokemon {
	types := make(pokemon.Types, 0, len(s.types))
	for i, name := range s.types {
		types = append(types, pokemon.TypeSlot{Type: pokemon.Name(name), Slot: i + 1})
	}

	stats := make(pokemon.Stats, 0, len(s.stats))
	for i, base := range s.stats {
		stats = append(stats, pokemon.StatEntry{Stat: statNames[i], BaseStat: base})
	}

	abilities := make(pokemon.Abilities, 0, len(s.abils))
	for i, name := range s.abils {
		abilities = append(abilities, pokemon.AbilitySlot{
			Ability:  pokemon.Name(name),
			IsHidden: i == len(s.abils)-1,
			Slot:     slotForAbility(i, len(s.abils)),
		})
	}

	return pokemon.Pokemon{
		ID:     s.id,
		Name:   s.name,
		Height: s.height,
		Weight: s.weight,
		Order:  int(s.id),
		Species: pokemon.Resource{
			Name: s.name,
			URL:  fmt.Sprintf("%s/pokemon-species/%d/", pokeAPIBaseURL, s.id),
		},
		Form: pokemon.Resource{
			Name: s.name,
			URL:  fmt.Sprintf("%s/pokemon-form/%d/", pokeAPIBaseURL, s.id),
		},
		Sprites: pokemon.Sprites{
			FrontDefault: fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", s.id),
			BackDefault:  fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/back/%d.png", s.id),
		},
		Types:     types,
		Stats:     stats,
		Abilities: abilities,
		Moves: pokemon.Moves{
			{
				Move: "tackle",
				VersionGroupDetails: pokemon.VersionGroupDetails{
					{MoveLearnMethod: "level-up", VersionGroup: "red-blue", LevelLearnedAt: 1},
				},
			},
		},
	}
}

func slotForAbility(idx, total int) int {
	if idx == total-1 {
		return 3
	}
	return idx + 1
}
